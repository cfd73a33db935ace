package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/events"
	"github.com/spec-kit/gis-site-service/internal/notify"
	"github.com/spec-kit/gis-site-service/internal/observability"
	"github.com/spec-kit/gis-site-service/internal/repository"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps the row offset far from overflow.
	maxPage = 10000
)

// ReplySender delivers admin replies to visitors.
type ReplySender interface {
	SendReply(ctx context.Context, msg domain.Message, reply domain.MessageReply) (string, error)
}

// MessageService coordinates the contact message workflow.
type MessageService struct {
	messages   repository.MessageRepository
	replies    ReplySender
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// MessageDependencies bundles collaborators for the message service.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	Replies     ReplySender
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// MessageSubmission is the public contact form payload.
type MessageSubmission struct {
	Name    string
	Email   string
	Company string
	Service string
	Message string
}

// MessageQuery describes admin listing filters.
type MessageQuery struct {
	Status   string
	Service  string
	Search   string
	Page     int
	PageSize int
}

// MessagePage is one page of the admin inbox.
type MessagePage struct {
	Items    []domain.Message
	Page     int
	PageSize int
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		messages:   deps.MessageRepo,
		replies:    deps.Replies,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit persists a visitor message and hands the notification emails to the dispatcher.
// The caller gets the stored record as soon as the insert succeeds.
func (s *MessageService) Submit(ctx context.Context, input MessageSubmission) (*domain.Message, error) {
	msg := &domain.Message{
		Name:    input.Name,
		Email:   input.Email,
		Company: input.Company,
		Service: domain.ServiceCategory(input.Service),
		Body:    input.Message,
		Status:  domain.MessageStatusNew,
	}
	msg.Normalize()
	if err := invalid("invalid message", msg.Validate()); err != nil {
		return nil, err
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("contact message received",
		zap.String("message_id", msg.ID),
		zap.String("service", string(msg.Service)))

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMessageCreated,
		MessageID: msg.ID,
		Payload:   events.MessageCreatedPayload{Message: *msg},
	})
	return msg, nil
}

// List returns active messages newest first.
func (s *MessageService) List(ctx context.Context, query MessageQuery) (*MessagePage, error) {
	filter := repository.MessageFilter{}
	fields := domain.FieldErrors{}

	if status := strings.TrimSpace(query.Status); status != "" {
		for _, raw := range strings.Split(status, ",") {
			st := domain.MessageStatus(strings.TrimSpace(raw))
			if !st.Valid() {
				fields.Add("status", "unknown status")
				continue
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}
	if svc := strings.TrimSpace(query.Service); svc != "" {
		category := domain.ServiceCategory(svc)
		if !category.Valid() {
			fields.Add("service", "unknown service category")
		}
		filter.Service = &category
	}
	if err := invalid("invalid filter", fields.OrNil()); err != nil {
		return nil, err
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		filter.SearchTerm = &search
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	size := query.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	filter.Limit = size
	filter.Offset = (page - 1) * size

	items, err := s.messages.ListActive(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.Message{}
	}
	return &MessagePage{Items: items, Page: page, PageSize: size}, nil
}

// Get loads one active message.
func (s *MessageService) Get(ctx context.Context, id string) (*domain.Message, error) {
	if err := checkID("message", id); err != nil {
		return nil, err
	}
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("message", id, err)
	}
	return msg, nil
}

// SetStatus changes the workflow status. Any message can be marked read and keeps its reply;
// moving back to new is a conflict and replied needs a stored reply.
func (s *MessageService) SetStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.Message, error) {
	if !status.Valid() {
		return nil, apperrors.NewFieldErrors("invalid status", map[string]string{"status": "unknown status"})
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.Status == status {
		return msg, nil
	}
	if status == domain.MessageStatusReplied && msg.Reply == nil {
		return nil, apperrors.NewFieldErrors("invalid status",
			map[string]string{"status": "replied requires a reply; use the reply endpoint"})
	}
	if !msg.Status.CanTransitionTo(status) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"reason": "INVALID_TRANSITION",
			"from":   msg.Status,
			"to":     status,
		})
	}

	updatedAt, err := s.messages.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, notFoundOr("message", id, err)
	}
	msg.Status = status
	msg.UpdatedAt = updatedAt
	return msg, nil
}

// Reply emails the visitor and records the answer. Nothing is stored when delivery fails.
func (s *MessageService) Reply(ctx context.Context, id, content string, admin *domain.Admin) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewFieldErrors("invalid reply", map[string]string{"replyContent": "replyContent is required"})
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reply := domain.MessageReply{
		Content: content,
		SentAt:  s.now().UTC(),
		SentBy:  admin.Identity(),
	}
	providerID, err := s.replies.SendReply(ctx, *msg, reply)
	s.metrics.RecordEmail(notify.KindAdminReply, err == nil)
	if err != nil {
		s.logger.Warn("reply delivery failed", zap.String("message_id", id), zap.Error(err))
		return nil, apperrors.NewDeliveryFailed(err)
	}

	updatedAt, err := s.messages.SetReply(ctx, id, reply)
	if err != nil {
		return nil, notFoundOr("message", id, err)
	}
	msg.Status = domain.MessageStatusReplied
	msg.Reply = &reply
	msg.UpdatedAt = updatedAt

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMessageReplied,
		MessageID: id,
		Payload:   events.MessageRepliedPayload{ProviderMessageID: providerID, SentBy: reply.SentBy},
	})
	return msg, nil
}

// Delete hides a message from every listing.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := checkID("message", id); err != nil {
		return err
	}
	if err := s.messages.SoftDelete(ctx, id); err != nil {
		return notFoundOr("message", id, err)
	}
	return nil
}

// Stats counts active messages per status.
func (s *MessageService) Stats(ctx context.Context) (map[domain.MessageStatus]int, error) {
	counts, err := s.messages.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

func (s *MessageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed",
			zap.String("event_type", string(event.Type)),
			zap.String("message_id", event.MessageID),
			zap.Error(err))
	}
}
