package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gis-site-service/internal/api/dto"
	"github.com/spec-kit/gis-site-service/internal/domain"
)

// AdminAuth is the login surface of service.AuthService.
type AdminAuth interface {
	Login(ctx context.Context, email, password string) (*domain.Admin, domain.Token, error)
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error
}

// AuthHandler serves admin authentication endpoints.
type AuthHandler struct {
	auth AdminAuth
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService AdminAuth) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/admin/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	admin, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		Admin:     dto.NewAdminResponse(admin),
	}})
}

// Me handles GET /auth/admin/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, err := requireAdmin(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// ChangePassword handles PUT /auth/admin/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	admin, err := requireAdmin(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	if err := h.auth.ChangePassword(c.UserContext(), admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
