package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gis-site-service/internal/api/dto"
	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/service"
)

// MessageWorkflow is implemented by service.MessageService.
type MessageWorkflow interface {
	Submit(ctx context.Context, input service.MessageSubmission) (*domain.Message, error)
	List(ctx context.Context, query service.MessageQuery) (*service.MessagePage, error)
	Get(ctx context.Context, id string) (*domain.Message, error)
	SetStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.Message, error)
	Reply(ctx context.Context, id, content string, admin *domain.Admin) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (map[domain.MessageStatus]int, error)
}

// MessagesHandler manages contact message endpoints.
type MessagesHandler struct {
	messages MessageWorkflow
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messages MessageWorkflow) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// Submit POST /contact/message.
func (h *MessagesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	msg, err := h.messages.Submit(c.UserContext(), service.MessageSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Service: req.Service,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// List GET /contact/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	page, err := h.messages.List(c.UserContext(), service.MessageQuery{
		Status:   c.Query("status"),
		Service:  c.Query("service"),
		Search:   c.Query("q"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "page_size", 20),
	})
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, dto.NewMessageResponse(&page.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.MessageListResponse{Items: items, Page: page.Page, PageSize: page.PageSize}})
}

// Stats GET /contact/messages/stats.
func (h *MessagesHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.messages.Stats(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.MessageStatsResponse{
		New:     counts[domain.MessageStatusNew],
		Read:    counts[domain.MessageStatusRead],
		Replied: counts[domain.MessageStatusReplied],
	}
	resp.Total = resp.New + resp.Read + resp.Replied
	return c.JSON(fiber.Map{"data": resp})
}

// Get GET /contact/messages/:id.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	msg, err := h.messages.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// UpdateStatus PUT /contact/messages/:id/status.
func (h *MessagesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateMessageStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	msg, err := h.messages.SetStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// Reply POST /contact/messages/:id/reply.
func (h *MessagesHandler) Reply(c *fiber.Ctx) error {
	admin, err := requireAdmin(c)
	if err != nil {
		return err
	}
	var req dto.ReplyMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	msg, err := h.messages.Reply(c.UserContext(), c.Params("id"), req.ReplyContent, admin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// Delete DELETE /contact/messages/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	if err := h.messages.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
