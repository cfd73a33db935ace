package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailConfigNormalizeDedupesCC(t *testing.T) {
	cfg := &EmailConfig{
		RecipientEmail: " Ops@Example.com",
		CCEmails:       []string{"A@x.com", " a@x.com ", "", "b@x.com"},
	}
	cfg.Normalize()
	assert.Equal(t, "ops@example.com", cfg.RecipientEmail)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.CCEmails)
	assert.True(t, cfg.HasCC(" B@X.COM"))
	assert.False(t, cfg.HasCC("c@x.com"))
}

func TestEmailConfigValidate(t *testing.T) {
	cfg := &EmailConfig{RecipientEmail: "", CCEmails: []string{"ok@x.com", "broken"}}
	errs := cfg.Validate()
	assert.Contains(t, errs, "recipientEmail")
	assert.Contains(t, errs, "ccEmails[1]")
	assert.NotContains(t, errs, "ccEmails[0]")
}

func TestContactValidators(t *testing.T) {
	info := DefaultContactInfo()
	info.Website = "example.com"
	assert.Contains(t, info.Validate(), "website")

	link := &SocialLink{Platform: "LinkedIn", URL: "https://linkedin.com/company/x"}
	assert.Nil(t, link.Validate())

	dept := &DepartmentalContact{Department: "Training"}
	assert.Contains(t, dept.Validate(), "email")
}

func TestAdminIdentity(t *testing.T) {
	assert.Equal(t, "Jo <jo@x.com>", (&Admin{Name: "Jo", Email: "jo@x.com"}).Identity())
	assert.Equal(t, "jo@x.com", (&Admin{Email: "jo@x.com"}).Identity())
	var nilAdmin *Admin
	assert.Equal(t, "", nilAdmin.Identity())
}
