package graph

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/auth"
	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/presence"
	"github.com/tuanvm/social-network/backend/internal/repositories"
	"github.com/tuanvm/social-network/backend/pkg/mediastore"
)

// Every uploaded object lands in this bucket; the public id sent back to
// clients is "<bucket>/<key>".
const mediaBucket = "post"

// Resolver holds the dependencies every GraphQL operation resolves
// against.
type Resolver struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Likes         repositories.LikeRepository
	Follows       repositories.FollowRepository
	Messages      repositories.MessageRepository
	Notifications repositories.NotificationRepository

	Media    MediaStore
	Broker   *events.Broker
	Presence *presence.Tracker
	Auth     *auth.Manager
	Mailer   Mailer
	Validate *validator.Validate
	Log      *zap.Logger

	FrontendURL string

	types typeRegistry
}

// Mailer sends the password-reset mail. Nil-safe checks belong to the
// resolver using it.
type Mailer interface {
	Send(to, subject, html string) error
}

// MediaStore uploads and removes media objects. *mediastore.Store is the
// production implementation.
type MediaStore interface {
	Store(ctx context.Context, r io.Reader, bucket, contentType string) (*mediastore.Reference, error)
	Remove(ctx context.Context, bucket, key string) error
}

// authClaims returns the authenticated user's claims or ErrUnauthenticated.
func authClaims(ctx context.Context) (*models.JwtCustomClaims, error) {
	claims := auth.FromContext(ctx)
	if claims == nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// authClaimsOrNil is for operations that work anonymously but personalize
// the result for a signed-in user.
func authClaimsOrNil(ctx context.Context) *models.JwtCustomClaims {
	return auth.FromContext(ctx)
}
