package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gis-site-service/internal/api/dto"
	"github.com/spec-kit/gis-site-service/internal/domain"
)

// EmailConfigs is implemented by service.EmailConfigService.
type EmailConfigs interface {
	Get(ctx context.Context) (*domain.EmailConfig, error)
	List(ctx context.Context) ([]domain.EmailConfig, error)
	Save(ctx context.Context, cfg domain.EmailConfig) (*domain.EmailConfig, error)
	Delete(ctx context.Context) error
	AddCC(ctx context.Context, addr string) (*domain.EmailConfig, error)
	RemoveCC(ctx context.Context, addr string) (*domain.EmailConfig, error)
}

// EmailConfigHandler manages notification recipient settings.
type EmailConfigHandler struct {
	configs EmailConfigs
}

// NewEmailConfigHandler constructs handler.
func NewEmailConfigHandler(configs EmailConfigs) *EmailConfigHandler {
	return &EmailConfigHandler{configs: configs}
}

// Get GET /contact/email-config.
func (h *EmailConfigHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.configs.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmailConfigResponse(cfg)})
}

// List GET /contact/email-config/all.
func (h *EmailConfigHandler) List(c *fiber.Ctx) error {
	items, err := h.configs.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.EmailConfigResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewEmailConfigResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Save PUT /contact/email-config.
func (h *EmailConfigHandler) Save(c *fiber.Ctx) error {
	var req dto.EmailConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	cfg, err := h.configs.Save(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmailConfigResponse(cfg)})
}

// Delete DELETE /contact/email-config.
func (h *EmailConfigHandler) Delete(c *fiber.Ctx) error {
	if err := h.configs.Delete(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddCC POST /contact/email-config/cc.
func (h *EmailConfigHandler) AddCC(c *fiber.Ctx) error {
	var req dto.AddCCRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	cfg, err := h.configs.AddCC(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmailConfigResponse(cfg)})
}

// RemoveCC DELETE /contact/email-config/cc/:email.
func (h *EmailConfigHandler) RemoveCC(c *fiber.Ctx) error {
	addr, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return invalidPayload()
	}
	cfg, err := h.configs.RemoveCC(c.UserContext(), addr)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmailConfigResponse(cfg)})
}
