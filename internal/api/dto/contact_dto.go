package dto

import (
	"time"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// ContactInfoPayload is used both to read and to replace the company contact block.
type ContactInfoPayload struct {
	CompanyName    string               `json:"companyName"`
	Address        string               `json:"address"`
	Phone          string               `json:"phone"`
	SecondaryPhone string               `json:"secondaryPhone"`
	Email          string               `json:"email"`
	Website        string               `json:"website"`
	MapURL         string               `json:"mapUrl"`
	BusinessHours  domain.BusinessHours `json:"businessHours"`
	UpdatedAt      *time.Time           `json:"updatedAt,omitempty"`
}

func (p ContactInfoPayload) ToDomain() domain.ContactInfo {
	return domain.ContactInfo{
		CompanyName:    p.CompanyName,
		Address:        p.Address,
		Phone:          p.Phone,
		SecondaryPhone: p.SecondaryPhone,
		Email:          p.Email,
		Website:        p.Website,
		MapURL:         p.MapURL,
		BusinessHours:  p.BusinessHours,
	}
}

func NewContactInfoPayload(info *domain.ContactInfo) ContactInfoPayload {
	p := ContactInfoPayload{
		CompanyName:    info.CompanyName,
		Address:        info.Address,
		Phone:          info.Phone,
		SecondaryPhone: info.SecondaryPhone,
		Email:          info.Email,
		Website:        info.Website,
		MapURL:         info.MapURL,
		BusinessHours:  info.BusinessHours,
	}
	if !info.UpdatedAt.IsZero() {
		updated := info.UpdatedAt
		p.UpdatedAt = &updated
	}
	return p
}

// DepartmentRequest creates or replaces a departmental contact. IsActive defaults to true.
type DepartmentRequest struct {
	Department    string `json:"department"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Description   string `json:"description"`
	DisplayOrder  int    `json:"displayOrder"`
	IsActive      *bool  `json:"isActive"`
}

func (r DepartmentRequest) ToDomain() domain.DepartmentalContact {
	return domain.DepartmentalContact{
		Department:    r.Department,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Phone:         r.Phone,
		Description:   r.Description,
		DisplayOrder:  r.DisplayOrder,
		IsActive:      boolOr(r.IsActive, true),
	}
}

// DepartmentResponse payload.
type DepartmentResponse struct {
	ID            string    `json:"id"`
	Department    string    `json:"department"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Description   string    `json:"description"`
	DisplayOrder  int       `json:"displayOrder"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewDepartmentResponse(d *domain.DepartmentalContact) DepartmentResponse {
	return DepartmentResponse{
		ID:            d.ID,
		Department:    d.Department,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Description:   d.Description,
		DisplayOrder:  d.DisplayOrder,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// SocialLinkRequest creates or replaces a social link. IsActive defaults to true.
type SocialLinkRequest struct {
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

func (r SocialLinkRequest) ToDomain() domain.SocialLink {
	return domain.SocialLink{
		Platform:     r.Platform,
		URL:          r.URL,
		Icon:         r.Icon,
		DisplayOrder: r.DisplayOrder,
		IsActive:     boolOr(r.IsActive, true),
	}
}

// SocialLinkResponse payload.
type SocialLinkResponse struct {
	ID           string    `json:"id"`
	Platform     string    `json:"platform"`
	URL          string    `json:"url"`
	Icon         string    `json:"icon"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewSocialLinkResponse(l *domain.SocialLink) SocialLinkResponse {
	return SocialLinkResponse{
		ID:           l.ID,
		Platform:     l.Platform,
		URL:          l.URL,
		Icon:         l.Icon,
		DisplayOrder: l.DisplayOrder,
		IsActive:     l.IsActive,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
