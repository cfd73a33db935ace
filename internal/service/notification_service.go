package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/events"
	"github.com/spec-kit/gis-site-service/internal/notify"
	"github.com/spec-kit/gis-site-service/internal/observability"
)

// SubmissionNotifier sends the two emails triggered by a new message.
type SubmissionNotifier interface {
	NotifyAdmin(ctx context.Context, msg domain.Message, to notify.Recipients) (string, error)
	ConfirmToSender(ctx context.Context, msg domain.Message) (string, error)
}

// RecipientSource yields the active notification recipients.
type RecipientSource interface {
	GetActive(ctx context.Context) (*domain.EmailConfig, error)
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	notifier   SubmissionNotifier
	recipients RecipientSource
	fallback   string
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	Notifier   SubmissionNotifier
	Recipients RecipientSource
	// FallbackRecipient is used when no email config is active.
	FallbackRecipient string
	Metrics           *observability.Metrics
	Logger            *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		notifier:   deps.Notifier,
		recipients: deps.Recipients,
		fallback:   deps.FallbackRecipient,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageCreated, n.handleMessageCreated)
	n.dispatcher.Subscribe(events.EventMessageReplied, n.handleMessageReplied)
}

// handleMessageCreated sends the admin notification and the sender confirmation side by side.
// Failures are logged; nothing is reported back to the submitter.
func (n *NotificationService) handleMessageCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	msg := payload.Message
	to := n.resolveRecipients(ctx)

	var g errgroup.Group
	g.Go(func() error {
		id, err := n.notifier.NotifyAdmin(ctx, msg, to)
		n.record(notify.KindAdminNotification, msg.ID, id, err)
		return err
	})
	g.Go(func() error {
		id, err := n.notifier.ConfirmToSender(ctx, msg)
		n.record(notify.KindUserConfirmation, msg.ID, id, err)
		return err
	})
	if err := g.Wait(); err != nil {
		n.logger.Warn("message notifications incomplete", zap.String("message_id", msg.ID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleMessageReplied(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.MessageRepliedPayload)
	n.logger.Info("MessageReplied",
		zap.String("message_id", event.MessageID),
		zap.String("provider_message_id", payload.ProviderMessageID),
		zap.String("sent_by", payload.SentBy))
	return nil
}

func (n *NotificationService) resolveRecipients(ctx context.Context) notify.Recipients {
	if n.recipients != nil {
		cfg, err := n.recipients.GetActive(ctx)
		switch {
		case err == nil:
			return notify.Recipients{To: cfg.RecipientEmail, CC: cfg.CCEmails}
		case !errors.Is(err, pgx.ErrNoRows):
			n.logger.Warn("load email config failed, using fallback recipient", zap.Error(err))
		}
	}
	return notify.Recipients{To: n.fallback}
}

func (n *NotificationService) record(kind, messageID, providerID string, err error) {
	n.metrics.RecordEmail(kind, err == nil)
	if err != nil {
		n.logger.Error("email send failed",
			zap.String("kind", kind),
			zap.String("message_id", messageID),
			zap.Error(err))
		return
	}
	n.logger.Debug("email sent",
		zap.String("kind", kind),
		zap.String("message_id", messageID),
		zap.String("provider_message_id", providerID))
}
