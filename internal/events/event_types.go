package events

import (
	"time"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageCreated EventType = "message_created"
	EventMessageReplied EventType = "message_replied"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MessageID string      `json:"message_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageCreatedPayload carries a copy of the persisted submission.
type MessageCreatedPayload struct {
	Message domain.Message `json:"message"`
}

// MessageRepliedPayload payload.
type MessageRepliedPayload struct {
	ProviderMessageID string `json:"provider_message_id"`
	SentBy            string `json:"sent_by"`
}
