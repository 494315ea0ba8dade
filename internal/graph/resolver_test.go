package graph

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/auth"
	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/presence"
)

type fakeMailer struct {
	to      string
	subject string
	html    string
}

func (m *fakeMailer) Send(to, subject, html string) error {
	m.to, m.subject, m.html = to, subject, html
	return nil
}

type testEnv struct {
	resolver *Resolver

	users         *fakeUserRepo
	posts         *fakePostRepo
	comments      *fakeCommentRepo
	likes         *fakeLikeRepo
	follows       *fakeFollowRepo
	messages      *fakeMessageRepo
	notifications *fakeNotificationRepo
	mailer        *fakeMailer
	media         *fakeMediaStore
	broker        *events.Broker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:         newFakeUserRepo(),
		posts:         newFakePostRepo(),
		comments:      newFakeCommentRepo(),
		likes:         newFakeLikeRepo(),
		follows:       newFakeFollowRepo(),
		messages:      newFakeMessageRepo(),
		notifications: newFakeNotificationRepo(),
		mailer:        &fakeMailer{},
		media:         newFakeMediaStore(),
	}

	log := zap.NewNop()
	env.broker = events.NewBroker(log)
	t.Cleanup(func() { env.broker.Close() })

	env.resolver = &Resolver{
		Users:         env.users,
		Posts:         env.posts,
		Comments:      env.comments,
		Likes:         env.likes,
		Follows:       env.follows,
		Messages:      env.messages,
		Notifications: env.notifications,

		Media:    env.media,
		Broker:   env.broker,
		Presence: presence.NewTracker(nil, env.users, env.broker, log),
		Auth:     auth.NewManager("test-secret"),
		Mailer:   env.mailer,
		Validate: validator.New(),
		Log:      log,

		FrontendURL: "http://localhost:3000",
	}
	return env
}

func (env *testEnv) seedUser(username string) *models.User {
	return env.users.add(&models.User{
		ID:       primitive.NewObjectID(),
		FullName: "User " + username,
		Email:    username + "@example.com",
		Username: username,
	})
}

func authedCtx(user *models.User) context.Context {
	return auth.NewContext(context.Background(), &models.JwtCustomClaims{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Username: user.Username,
	})
}

func params(ctx context.Context, args map[string]interface{}) graphql.ResolveParams {
	return graphql.ResolveParams{Context: ctx, Args: args}
}

func inputParams(ctx context.Context, input map[string]interface{}) graphql.ResolveParams {
	return params(ctx, map[string]interface{}{"input": input})
}
