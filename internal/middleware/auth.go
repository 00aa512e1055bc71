// Package middleware provides authentication, logging, metrics, and rate
// limiting middleware for the application.
package middleware

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/token"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired returns a middleware that enforces authentication for
// protected routes. The verified user ID is stored in c.Locals("userID") and
// in the request context for logging. Identity is only ever taken from the
// verified token, never from the request body.
func AuthRequired(codec token.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}

		identity, err := codec.Verify(tokenString)
		if err != nil {
			return models.RespondWithAppError(c,
				models.NewInvalidCredentialError("Invalid or expired token"))
		}

		c.Locals("userID", identity.UserID)
		ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", models.NewMissingCredentialError("Authorization required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", models.NewMissingCredentialError("Invalid authorization header format")
	}
	return parts[1], nil
}

// OptionalIdentity attempts to resolve the caller's identity but does not
// enforce it. Used on public routes that behave slightly differently for
// logged-in users.
func OptionalIdentity(c *fiber.Ctx, codec token.Codec) (models.Identity, bool) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return models.Identity{}, false
	}
	identity, err := codec.Verify(tokenString)
	if err != nil {
		return models.Identity{}, false
	}
	return identity, true
}
