// Package token provides the signed session-token capability used by the
// auth service and the auth middleware. Both depend on the Codec interface so
// tests can substitute a deterministic implementation.
package token

import (
	"errors"

	"inkwell/internal/models"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// resolved to an identity: malformed, bad signature, expired, or carrying
// unexpected claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Codec signs identities into opaque tokens and verifies them back.
type Codec interface {
	Sign(identity models.Identity) (string, error)
	Verify(token string) (models.Identity, error)
}
