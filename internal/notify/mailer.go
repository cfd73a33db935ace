package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/config"
)

// ErrDelivery marks every failure to hand an email to the relay.
var ErrDelivery = errors.New("mail delivery failed")

// Email is a rendered message ready for the relay.
type Email struct {
	To       []string
	CC       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends a single email and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

type relayAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type relayRequest struct {
	Sender      relayAddress   `json:"sender"`
	To          []relayAddress `json:"to"`
	CC          []relayAddress `json:"cc,omitempty"`
	ReplyTo     *relayAddress  `json:"replyTo,omitempty"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

type relayResponse struct {
	MessageID string `json:"messageId"`
}

type relayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RelayMailer posts emails to a transactional mail relay HTTP API.
type RelayMailer struct {
	client *resty.Client
	url    string
	sender relayAddress
	logger *zap.Logger
}

// NewRelayMailer builds a mailer. Sends are single attempts; the relay client never retries.
func NewRelayMailer(cfg config.MailConfig, logger *zap.Logger) *RelayMailer {
	client := resty.New().
		SetTimeout(cfg.Timeout()).
		SetRetryCount(0).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &RelayMailer{
		client: client,
		url:    cfg.APIURL,
		sender: relayAddress{Email: cfg.FromAddress, Name: cfg.FromName},
		logger: logger,
	}
}

// Send implements Mailer.
func (m *RelayMailer) Send(ctx context.Context, email Email) (string, error) {
	if len(email.To) == 0 {
		return "", fmt.Errorf("%w: no recipients", ErrDelivery)
	}
	req := relayRequest{
		Sender:      m.sender,
		To:          addresses(email.To),
		CC:          addresses(email.CC),
		Subject:     email.Subject,
		HTMLContent: email.HTMLBody,
		TextContent: email.TextBody,
	}
	if email.ReplyTo != "" {
		req.ReplyTo = &relayAddress{Email: email.ReplyTo}
	}

	var result relayResponse
	var failure relayError
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&failure).
		Post(m.url)
	if err != nil {
		m.logger.Error("mail relay call failed", zap.Error(err), zap.Strings("to", email.To))
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if resp.IsError() {
		m.logger.Error("mail relay rejected email",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("code", failure.Code),
			zap.String("msg", failure.Message),
		)
		return "", fmt.Errorf("%w: relay status %d: %s", ErrDelivery, resp.StatusCode(), strings.TrimSpace(failure.Message))
	}

	m.logger.Debug("email sent", zap.String("message_id", result.MessageID), zap.String("subject", email.Subject))
	return result.MessageID, nil
}

func addresses(list []string) []relayAddress {
	if len(list) == 0 {
		return nil
	}
	out := make([]relayAddress, 0, len(list))
	for _, addr := range list {
		out = append(out, relayAddress{Email: addr})
	}
	return out
}

// LogMailer only logs emails; used when no relay API key is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates the logging mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements Mailer.
func (m *LogMailer) Send(_ context.Context, email Email) (string, error) {
	id := "log-" + uuid.NewString()
	m.logger.Info("email not sent: relay not configured",
		zap.String("message_id", id),
		zap.Strings("to", email.To),
		zap.Strings("cc", email.CC),
		zap.String("subject", email.Subject))
	return id, nil
}

// NewMailer picks the relay mailer when an API key is present.
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("MAIL_API_KEY not provided; emails will only be logged")
		return NewLogMailer(logger)
	}
	return NewRelayMailer(cfg, logger)
}
