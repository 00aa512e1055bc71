package token

import (
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "inkwell-api"
	audience = "inkwell-client"
)

// JWTCodec is the production Codec: HS256-signed JWTs with a 7 day lifetime.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec creates a codec signing with the given secret.
func NewJWTCodec(secret string) (*JWTCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	return &JWTCodec{
		secret: []byte(secret),
		ttl:    7 * 24 * time.Hour,
	}, nil
}

// Sign issues a token bound to the given identity.
func (c *JWTCodec) Sign(identity models.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(identity.UserID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(c.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify resolves a token back to the identity it was signed for. Any
// failure (malformed token, wrong signature, expiry, unexpected claims)
// yields ErrInvalidToken.
func (c *JWTCodec) Verify(tokenString string) (models.Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	if iss, issOk := claims["iss"].(string); !issOk || iss != issuer {
		return models.Identity{}, ErrInvalidToken
	}
	if aud, audOk := claims["aud"].(string); !audOk || aud != audience {
		return models.Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{UserID: uint(userID)}, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
