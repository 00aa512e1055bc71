package server

import (
	"inkwell/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/feature-flags. The route is public:
// anonymous callers get the zero-user evaluation, while a valid bearer token
// puts the caller into their deterministic rollout bucket.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	var userID uint
	if identity, ok := middleware.OptionalIdentity(c, s.codec); ok {
		userID = identity.UserID
	}

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
