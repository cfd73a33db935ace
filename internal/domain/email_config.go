package domain

import (
	"strconv"
	"strings"
	"time"
)

// EmailConfig decides who receives new-message notifications.
type EmailConfig struct {
	ID             string
	RecipientEmail string
	CCEmails       []string
	IsActive       bool
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Normalize lowercases addresses and drops blank or repeated CC entries.
func (e *EmailConfig) Normalize() {
	e.RecipientEmail = NormalizeEmail(e.RecipientEmail)
	e.Description = strings.TrimSpace(e.Description)
	seen := make(map[string]struct{}, len(e.CCEmails))
	cc := make([]string, 0, len(e.CCEmails))
	for _, addr := range e.CCEmails {
		addr = NormalizeEmail(addr)
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		cc = append(cc, addr)
	}
	e.CCEmails = cc
}

func (e *EmailConfig) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.Email("recipientEmail", e.RecipientEmail, true)
	for i, addr := range e.CCEmails {
		if !IsEmail(addr) {
			errs.Add("ccEmails["+strconv.Itoa(i)+"]", "must be a valid email address")
		}
	}
	return errs.OrNil()
}

// HasCC reports whether addr (normalized) is already in the CC list.
func (e *EmailConfig) HasCC(addr string) bool {
	addr = NormalizeEmail(addr)
	for _, existing := range e.CCEmails {
		if NormalizeEmail(existing) == addr {
			return true
		}
	}
	return false
}
