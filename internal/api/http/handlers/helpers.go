package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gis-site-service/internal/auth"
	"github.com/spec-kit/gis-site-service/internal/domain"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

func requireAdmin(c *fiber.Ctx) (*domain.Admin, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("admin required")
	}
	return principal.Admin, nil
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

func invalidPayload() error {
	return apperrors.NewValidationError("invalid payload", nil)
}
