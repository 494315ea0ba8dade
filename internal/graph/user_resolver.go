package graph

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tuanvm/social-network/backend/internal/auth"
	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/repositories"
	"github.com/tuanvm/social-network/backend/pkg/mediastore"
)

const suggestedPeopleLimit = 6

// Route names the frontend owns. Usernames must not shadow them.
var reservedUsernames = []string{
	"forgot-password", "reset-password", "explore", "people", "notifications", "post",
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Letters, digits, underscore and dot; must start with a word
	// character. Consecutive or trailing dots are rejected separately.
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_.]*$`)
)

func validateSignUp(input *models.SignUpInput) error {
	if len(input.FullName) > 40 {
		return inputError(errFullNameTooLong)
	}
	if len(input.FullName) < 4 {
		return inputError(errFullNameTooShort)
	}
	if !emailRe.MatchString(input.Email) {
		return inputError(errInvalidEmail)
	}
	if err := validateUsername(input.Username); err != nil {
		return err
	}
	if len(input.Password) < 6 {
		return inputError(errPasswordTooShort)
	}
	return nil
}

func validateUsername(username string) error {
	if !usernameRe.MatchString(username) ||
		strings.Contains(username, "..") ||
		strings.HasSuffix(username, ".") {
		return inputError(errUsernameInvalid)
	}
	if len(username) > 20 {
		return inputError(errUsernameTooLong)
	}
	if len(username) < 3 {
		return inputError(errUsernameTooShort)
	}
	for _, reserved := range reservedUsernames {
		if username == reserved {
			return inputError(errUsernameReserved)
		}
	}
	return nil
}

func (r *Resolver) signup(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	input := models.SignUpInput{
		FullName: inputString(in, "fullName"),
		Email:    strings.ToLower(inputString(in, "email")),
		Username: strings.ToLower(inputString(in, "username")),
		Password: inputString(in, "password"),
	}
	if err := r.Validate.Struct(&input); err != nil {
		return nil, inputError(errMissingFields)
	}
	if err := validateSignUp(&input); err != nil {
		return nil, err
	}

	existing, err := r.Users.GetDuplicate(p.Context, input.Email, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		field := "username"
		if existing.Email == input.Email {
			field = "email"
		}
		return nil, errDuplicateUser(field)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName: input.FullName,
		Email:    input.Email,
		Username: input.Username,
		Password: string(hash),
	}
	if err := r.Users.Create(p.Context, user); err != nil {
		return nil, err
	}

	token, err := r.Auth.GenerateToken(user, auth.AuthTokenExpiry)
	if err != nil {
		return nil, err
	}
	return tokenPayload{Token: token}, nil
}

func (r *Resolver) signin(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	input := models.SignInInput{
		EmailOrUsername: strings.ToLower(inputString(in, "emailOrUsername")),
		Password:        inputString(in, "password"),
	}
	if err := r.Validate.Struct(&input); err != nil {
		return nil, inputError(errMissingFields)
	}

	user, err := r.Users.GetByEmailOrUsername(p.Context, input.EmailOrUsername)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return nil, inputError(errInvalidPassword)
	}

	token, err := r.Auth.GenerateToken(user, auth.AuthTokenExpiry)
	if err != nil {
		return nil, err
	}
	return tokenPayload{Token: token}, nil
}

func (r *Resolver) requestPasswordReset(p graphql.ResolveParams) (interface{}, error) {
	email := strings.ToLower(stringArg(p, "email"))
	if !emailRe.MatchString(email) {
		return nil, inputError(errInvalidEmail)
	}

	user, err := r.Users.GetByEmailOrUsername(p.Context, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}

	token, err := resetToken()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(auth.ResetTokenExpiry)
	if err := r.Users.SetPasswordReset(p.Context, user.ID.Hex(), token, expiry); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s", r.FrontendURL, email, token)
	html := fmt.Sprintf(
		`<h3>Chào %s,</h3><p>Nhấn vào liên kết dưới đây để đặt lại mật khẩu của bạn. Liên kết hết hạn sau 1 giờ.</p><p><a href="%s">%s</a></p>`,
		user.FullName, link, link,
	)
	if err := r.Mailer.Send(user.Email, "Đặt lại mật khẩu", html); err != nil {
		return nil, err
	}
	return successPayload{Message: msgResetLinkSent(email)}, nil
}

// resetToken returns 40 hex characters of randomness.
func resetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (r *Resolver) resetPassword(p graphql.ResolveParams) (interface{}, error) {
	email := strings.ToLower(stringArg(p, "email"))
	token := stringArg(p, "token")
	password := stringArg(p, "password")

	if password == "" {
		return nil, inputError(errPasswordRequired)
	}
	if len(password) < 6 {
		return nil, inputError(errPasswordTooShort)
	}

	user, err := r.Users.GetByResetToken(p.Context, email, token)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errTokenInvalid)
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := r.Users.UpdatePassword(p.Context, user.ID.Hex(), string(hash)); err != nil {
		return nil, err
	}

	authToken, err := r.Auth.GenerateToken(user, auth.AuthTokenExpiry)
	if err != nil {
		return nil, err
	}
	return tokenPayload{Token: authToken}, nil
}

func (r *Resolver) verifyResetPasswordToken(p graphql.ResolveParams) (interface{}, error) {
	email := strings.ToLower(stringArg(p, "email"))
	token := stringArg(p, "token")

	if _, err := r.Users.GetByResetToken(p.Context, email, token); err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errTokenInvalid)
		}
		return nil, err
	}
	return successPayload{Message: msgSuccess}, nil
}

func (r *Resolver) uploadUserPhoto(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	id := inputString(in, "id")
	isCover := inputBool(in, "isCover")
	upload := inputUpload(in, "image")
	if upload == nil {
		return nil, inputError(errMissingFields)
	}
	if id != claims.UserID {
		return nil, ErrUnauthenticated
	}

	user, err := r.Users.GetByID(p.Context, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}

	file, err := upload.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ref, err := r.Media.Store(p.Context, file, mediaBucket, upload.ContentType())
	if err != nil {
		return nil, err
	}

	updated, err := r.Users.UpdatePhoto(p.Context, id, ref.URL, ref.PublicID(), isCover)
	if err != nil {
		// The record was not updated, reclaim the uploaded object.
		r.removeMedia(p.Context, ref.PublicID())
		return nil, err
	}

	old := user.ImagePublicID
	if isCover {
		old = user.CoverImagePublicID
	}
	if old != "" {
		r.removeMedia(p.Context, old)
	}
	return updated, nil
}

// removeMedia deletes the object behind publicID. Failures are logged, not
// surfaced: an orphaned object never blocks the user-visible operation.
func (r *Resolver) removeMedia(ctx context.Context, publicID string) {
	bucket, key, err := mediastore.SplitPublicID(publicID)
	if err != nil {
		r.Log.Warn("malformed media public id", zap.String("publicId", publicID), zap.Error(err))
		return
	}
	if err := r.Media.Remove(ctx, bucket, key); err != nil {
		r.Log.Warn("failed to remove media object",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
	}
}

func (r *Resolver) getAuthUser(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	user, err := r.Users.GetByID(p.Context, claims.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}

	if err := r.Presence.MarkOnline(p.Context, claims.UserID); err != nil {
		r.Log.Warn("failed to mark user online", zap.String("userId", claims.UserID), zap.Error(err))
	}
	user.IsOnline = true
	return user, nil
}

func (r *Resolver) getUser(p graphql.ResolveParams) (interface{}, error) {
	var (
		user *models.User
		err  error
	)
	if username := stringArg(p, "username"); username != "" {
		user, err = r.Users.GetByUsername(p.Context, strings.ToLower(username))
	} else if id := stringArg(p, "id"); id != "" {
		user, err = r.Users.GetByID(p.Context, id)
	} else {
		return nil, inputError(errUserNotFound)
	}
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}
	user.IsOnline = r.Presence.IsOnline(p.Context, user.ID.Hex())
	return user, nil
}

// getUsers lists users the authenticated user does not follow yet.
func (r *Resolver) getUsers(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	followees, err := r.Follows.FolloweeIDs(p.Context, authID)
	if err != nil {
		return nil, err
	}
	exclude := append(followees, authID)

	count, err := r.Users.CountNotIn(p.Context, exclude)
	if err != nil {
		return nil, err
	}
	users, err := r.Users.FindNotIn(p.Context, exclude, int64Arg(p, "skip"), int64Arg(p, "limit"))
	if err != nil {
		return nil, err
	}
	return usersPage{Users: users, Count: count}, nil
}

func (r *Resolver) searchUsers(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	query := stringArg(p, "searchQuery")
	if query == "" {
		return []models.User{}, nil
	}
	return r.Users.Search(p.Context, query, claims.UserID, 50)
}

// suggestPeople picks a random window of users the authenticated user does
// not follow.
func (r *Resolver) suggestPeople(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}

	followees, err := r.Follows.FolloweeIDs(p.Context, authID)
	if err != nil {
		return nil, err
	}
	exclude := append(followees, authID)

	count, err := r.Users.CountNotIn(p.Context, exclude)
	if err != nil {
		return nil, err
	}
	var skip int64
	if count > suggestedPeopleLimit {
		skip = mrand.Int63n(count - suggestedPeopleLimit + 1)
	}
	return r.Users.FindNotIn(p.Context, exclude, skip, suggestedPeopleLimit)
}

func (r *Resolver) getUserPosts(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.Users.GetByUsername(p.Context, strings.ToLower(stringArg(p, "username")))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}

	posts, count, err := r.Posts.GetByAuthors(p.Context,
		[]primitive.ObjectID{user.ID}, int64Arg(p, "skip"), int64Arg(p, "limit"))
	if err != nil {
		return nil, err
	}
	return postsPage{Posts: posts, Count: count}, nil
}
