package dto

import (
	"time"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// EmailConfigRequest saves the notification recipients. Without an id the active record is
// updated; isActive defaults to true.
type EmailConfigRequest struct {
	ID             string   `json:"id"`
	RecipientEmail string   `json:"recipientEmail"`
	CCEmails       []string `json:"ccEmails"`
	Description    string   `json:"description"`
	IsActive       *bool    `json:"isActive"`
}

func (r EmailConfigRequest) ToDomain() domain.EmailConfig {
	return domain.EmailConfig{
		ID:             r.ID,
		RecipientEmail: r.RecipientEmail,
		CCEmails:       r.CCEmails,
		Description:    r.Description,
		IsActive:       boolOr(r.IsActive, true),
	}
}

// AddCCRequest payload.
type AddCCRequest struct {
	Email string `json:"email"`
}

// EmailConfigResponse payload.
type EmailConfigResponse struct {
	ID             string    `json:"id"`
	RecipientEmail string    `json:"recipientEmail"`
	CCEmails       []string  `json:"ccEmails"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewEmailConfigResponse(cfg *domain.EmailConfig) EmailConfigResponse {
	cc := cfg.CCEmails
	if cc == nil {
		cc = []string{}
	}
	return EmailConfigResponse{
		ID:             cfg.ID,
		RecipientEmail: cfg.RecipientEmail,
		CCEmails:       cc,
		Description:    cfg.Description,
		IsActive:       cfg.IsActive,
		CreatedAt:      cfg.CreatedAt,
		UpdatedAt:      cfg.UpdatedAt,
	}
}
