package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tuanvm/social-network/backend/internal/auth"
)

// JWTAuthMiddleware extracts the Bearer token, if any, and stores the
// parsed claims on the request context. Authentication is optional here:
// public operations run unauthenticated and resolvers requiring a user
// check the context themselves, so a missing or invalid token just leaves
// the request anonymous.
func JWTAuthMiddleware(manager *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return next(c)
			}

			claims, err := manager.Parse(parts[1])
			if err != nil {
				return next(c)
			}

			ctx := auth.NewContext(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
