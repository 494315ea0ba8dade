package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/tuanvm/social-network/backend/internal/models"
)

// Token lifetimes
const (
	AuthTokenExpiry  = 365 * 24 * time.Hour
	ResetTokenExpiry = time.Hour
)

type contextKey struct{}

// NewContext returns ctx carrying the authenticated user's claims.
func NewContext(ctx context.Context, claims *models.JwtCustomClaims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// FromContext returns the authenticated user's claims, or nil when the
// request is unauthenticated.
func FromContext(ctx context.Context) *models.JwtCustomClaims {
	claims, _ := ctx.Value(contextKey{}).(*models.JwtCustomClaims)
	return claims
}

// Manager mints and parses HS256 tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a Manager signing with the given secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// GenerateToken mints a signed token for the user.
func (m *Manager) GenerateToken(user *models.User, expiry time.Duration) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims.
func (m *Manager) Parse(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
