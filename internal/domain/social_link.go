package domain

import (
	"strings"
	"time"
)

// SocialLink is a platform profile shown in the site footer.
type SocialLink struct {
	ID           string
	Platform     string
	URL          string
	Icon         string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *SocialLink) Normalize() {
	s.Platform = strings.TrimSpace(s.Platform)
	s.URL = strings.TrimSpace(s.URL)
	s.Icon = strings.TrimSpace(s.Icon)
}

func (s *SocialLink) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.Required("platform", s.Platform)
	errs.URL("url", s.URL, true)
	return errs.OrNil()
}
