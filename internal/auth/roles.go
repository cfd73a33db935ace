package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

// RequireAdmin rejects requests without an authenticated admin principal.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return apperrors.NewUnauthorized("admin authentication required")
		}
		return c.Next()
	}
}

// IsAdmin reports whether the request carries an authenticated admin.
func IsAdmin(c *fiber.Ctx) bool {
	_, ok := PrincipalFromContext(c)
	return ok
}
