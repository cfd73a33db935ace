package dto

import (
	"time"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AdminResponse describes the authenticated admin.
type AdminResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse carries the access token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

func NewAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Name: a.Name, Email: a.Email}
}
