package dto

import (
	"time"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// SubmitMessageRequest is the public contact form payload.
type SubmitMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// UpdateMessageStatusRequest payload.
type UpdateMessageStatusRequest struct {
	Status domain.MessageStatus `json:"status"`
}

// ReplyMessageRequest payload.
type ReplyMessageRequest struct {
	ReplyContent string `json:"replyContent"`
}

// MessageReplyResponse is the stored admin answer.
type MessageReplyResponse struct {
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
	SentBy  string    `json:"sentBy"`
}

// MessageResponse represents a contact message.
type MessageResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Company   string                 `json:"company,omitempty"`
	Service   domain.ServiceCategory `json:"service,omitempty"`
	Message   string                 `json:"message"`
	Status    domain.MessageStatus   `json:"status"`
	Reply     *MessageReplyResponse  `json:"reply,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// MessageListResponse wraps a page of messages.
type MessageListResponse struct {
	Items    []MessageResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// MessageStatsResponse counts active messages per status.
type MessageStatsResponse struct {
	New     int `json:"new"`
	Read    int `json:"read"`
	Replied int `json:"replied"`
	Total   int `json:"total"`
}

// NewMessageResponse maps the domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Company:   msg.Company,
		Service:   msg.Service,
		Message:   msg.Body,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
	if msg.Reply != nil {
		resp.Reply = &MessageReplyResponse{
			Content: msg.Reply.Content,
			SentAt:  msg.Reply.SentAt,
			SentBy:  msg.Reply.SentBy,
		}
	}
	return resp
}
