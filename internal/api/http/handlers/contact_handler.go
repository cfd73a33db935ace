package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gis-site-service/internal/api/dto"
	"github.com/spec-kit/gis-site-service/internal/auth"
	"github.com/spec-kit/gis-site-service/internal/domain"
)

// ContactContent is implemented by service.ContactService.
type ContactContent interface {
	GetInfo(ctx context.Context) (*domain.ContactInfo, error)
	SaveInfo(ctx context.Context, info domain.ContactInfo) (*domain.ContactInfo, error)

	ListDepartments(ctx context.Context, activeOnly bool) ([]domain.DepartmentalContact, error)
	GetDepartment(ctx context.Context, id string) (*domain.DepartmentalContact, error)
	CreateDepartment(ctx context.Context, dept domain.DepartmentalContact) (*domain.DepartmentalContact, error)
	UpdateDepartment(ctx context.Context, id string, dept domain.DepartmentalContact) (*domain.DepartmentalContact, error)
	DeleteDepartment(ctx context.Context, id string) error

	ListSocialLinks(ctx context.Context, activeOnly bool) ([]domain.SocialLink, error)
	GetSocialLink(ctx context.Context, id string) (*domain.SocialLink, error)
	CreateSocialLink(ctx context.Context, link domain.SocialLink) (*domain.SocialLink, error)
	UpdateSocialLink(ctx context.Context, id string, link domain.SocialLink) (*domain.SocialLink, error)
	DeleteSocialLink(ctx context.Context, id string) error
}

// ContactHandler serves company info, departments and social links.
type ContactHandler struct {
	content ContactContent
}

// NewContactHandler constructs handler.
func NewContactHandler(content ContactContent) *ContactHandler {
	return &ContactHandler{content: content}
}

// GetInfo GET /contact/info.
func (h *ContactHandler) GetInfo(c *fiber.Ctx) error {
	info, err := h.content.GetInfo(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContactInfoPayload(info)})
}

// UpdateInfo PUT /contact/info.
func (h *ContactHandler) UpdateInfo(c *fiber.Ctx) error {
	var req dto.ContactInfoPayload
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	info, err := h.content.SaveInfo(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContactInfoPayload(info)})
}

// ListDepartments GET /contact/departments. Anonymous callers only see active entries.
func (h *ContactHandler) ListDepartments(c *fiber.Ctx) error {
	items, err := h.content.ListDepartments(c.UserContext(), !auth.IsAdmin(c))
	if err != nil {
		return err
	}
	resp := make([]dto.DepartmentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewDepartmentResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *ContactHandler) GetDepartment(c *fiber.Ctx) error {
	dept, err := h.content.GetDepartment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

func (h *ContactHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.content.CreateDepartment(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

func (h *ContactHandler) UpdateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.content.UpdateDepartment(c.UserContext(), c.Params("id"), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

func (h *ContactHandler) DeleteDepartment(c *fiber.Ctx) error {
	if err := h.content.DeleteDepartment(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSocialLinks GET /contact/social. Anonymous callers only see active entries.
func (h *ContactHandler) ListSocialLinks(c *fiber.Ctx) error {
	items, err := h.content.ListSocialLinks(c.UserContext(), !auth.IsAdmin(c))
	if err != nil {
		return err
	}
	resp := make([]dto.SocialLinkResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewSocialLinkResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *ContactHandler) GetSocialLink(c *fiber.Ctx) error {
	link, err := h.content.GetSocialLink(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSocialLinkResponse(link)})
}

func (h *ContactHandler) CreateSocialLink(c *fiber.Ctx) error {
	var req dto.SocialLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	link, err := h.content.CreateSocialLink(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewSocialLinkResponse(link)})
}

func (h *ContactHandler) UpdateSocialLink(c *fiber.Ctx) error {
	var req dto.SocialLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	link, err := h.content.UpdateSocialLink(c.UserContext(), c.Params("id"), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSocialLinkResponse(link)})
}

func (h *ContactHandler) DeleteSocialLink(c *fiber.Ctx) error {
	if err := h.content.DeleteSocialLink(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
