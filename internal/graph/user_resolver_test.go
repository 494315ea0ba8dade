package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tuanvm/social-network/backend/internal/models"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob_99", "a.b.c", "user.name", "abc"}
	for _, username := range valid {
		assert.NoError(t, validateUsername(username), "username %q", username)
	}

	invalid := map[string]string{
		"ab":                       errUsernameTooShort,
		"a.much.too.long.username": errUsernameTooLong,
		".starts.with.dot":         errUsernameInvalid,
		"double..dot":              errUsernameInvalid,
		"trailing.":                errUsernameInvalid,
		"spa ce":                   errUsernameInvalid,
		"đặng":                     errUsernameInvalid,
		"explore":                  errUsernameReserved,
		"reset-password":           errUsernameInvalid,
	}
	for username, want := range invalid {
		err := validateUsername(username)
		require.Error(t, err, "username %q", username)
		assert.Equal(t, want, err.Error(), "username %q", username)
	}
}

func TestValidateSignUp(t *testing.T) {
	base := func() models.SignUpInput {
		return models.SignUpInput{
			FullName: "Alice Nguyen",
			Email:    "alice@example.com",
			Username: "alice",
			Password: "secret1",
		}
	}

	assert.NoError(t, validateSignUp(&models.SignUpInput{
		FullName: base().FullName, Email: base().Email,
		Username: base().Username, Password: base().Password,
	}))

	in := base()
	in.FullName = "Al"
	assert.EqualError(t, validateSignUp(&in), errFullNameTooShort)

	in = base()
	in.FullName = strings.Repeat("a", 41)
	assert.EqualError(t, validateSignUp(&in), errFullNameTooLong)

	in = base()
	in.Email = "not-an-email"
	assert.EqualError(t, validateSignUp(&in), errInvalidEmail)

	in = base()
	in.Password = "short"
	assert.EqualError(t, validateSignUp(&in), errPasswordTooShort)
}

func TestSignupAndSignin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.resolver.signup(inputParams(ctx, map[string]interface{}{
		"fullName": "Alice Nguyen",
		"email":    "Alice@Example.com",
		"username": "Alice",
		"password": "secret1",
	}))
	require.NoError(t, err)
	token := result.(tokenPayload).Token
	require.NotEmpty(t, token)

	claims, err := env.resolver.Auth.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)

	// Sign in by email, then by username.
	for _, handle := range []string{"alice@example.com", "alice"} {
		result, err = env.resolver.signin(inputParams(ctx, map[string]interface{}{
			"emailOrUsername": handle,
			"password":        "secret1",
		}))
		require.NoError(t, err)
		assert.NotEmpty(t, result.(tokenPayload).Token)
	}

	_, err = env.resolver.signin(inputParams(ctx, map[string]interface{}{
		"emailOrUsername": "alice",
		"password":        "wrong-password",
	}))
	require.Error(t, err)
	assert.Equal(t, errInvalidPassword, err.Error())
}

func TestSignupRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice")

	_, err := env.resolver.signup(inputParams(context.Background(), map[string]interface{}{
		"fullName": "Another Alice",
		"email":    "alice@example.com",
		"username": "alice2",
		"password": "secret1",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	_, err = env.resolver.signup(inputParams(context.Background(), map[string]interface{}{
		"fullName": "Another Alice",
		"email":    "other@example.com",
		"username": "alice",
		"password": "secret1",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser("alice")
	ctx := context.Background()

	result, err := env.resolver.requestPasswordReset(params(ctx, map[string]interface{}{
		"email": "alice@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, msgResetLinkSent("alice@example.com"), result.(successPayload).Message)
	assert.Equal(t, "alice@example.com", env.mailer.to)
	assert.Contains(t, env.mailer.html, "reset-password")

	stored, err := env.users.GetByID(ctx, alice.ID.Hex())
	require.NoError(t, err)
	token := stored.PasswordResetToken
	require.NotEmpty(t, token)
	assert.Contains(t, env.mailer.html, token)

	// The token verifies, then resets the password and signs the user in.
	_, err = env.resolver.verifyResetPasswordToken(params(ctx, map[string]interface{}{
		"email": "alice@example.com", "token": token,
	}))
	require.NoError(t, err)

	result, err = env.resolver.resetPassword(params(ctx, map[string]interface{}{
		"email": "alice@example.com", "token": token, "password": "brand-new",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, result.(tokenPayload).Token)

	stored, err = env.users.GetByID(ctx, alice.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, stored.PasswordResetToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("brand-new")))

	// A consumed token no longer verifies.
	_, err = env.resolver.verifyResetPasswordToken(params(ctx, map[string]interface{}{
		"email": "alice@example.com", "token": token,
	}))
	require.Error(t, err)
	assert.Equal(t, errTokenInvalid, err.Error())
}

func TestGetUsersExcludesSelfAndFollowees(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser("alice")
	bob := env.seedUser("bob")
	env.seedUser("carol")

	// alice follows bob.
	_, err := env.resolver.createFollow(inputParams(authedCtx(alice), map[string]interface{}{
		"userId": bob.ID.Hex(),
	}))
	require.NoError(t, err)

	result, err := env.resolver.getUsers(params(authedCtx(alice), map[string]interface{}{
		"skip": 0, "limit": 10,
	}))
	require.NoError(t, err)

	page := result.(usersPage)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "carol", page.Users[0].Username)
	assert.Equal(t, int64(1), page.Count)
}

func TestGetAuthUserRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.resolver.getAuthUser(params(context.Background(), nil))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
