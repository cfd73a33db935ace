package domain

import (
	"net/url"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field name to a human readable problem.
type FieldErrors map[string]string

// Add records msg for field unless an earlier problem is already recorded.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Required flags blank values.
func (f FieldErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.Add(field, field+" is required")
	}
}

// Email flags malformed addresses; blank values are flagged only when required.
func (f FieldErrors) Email(field, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			f.Add(field, field+" is required")
		}
		return
	}
	if !IsEmail(value) {
		f.Add(field, "must be a valid email address")
	}
}

// URL flags values that are not absolute http(s) URLs.
func (f FieldErrors) URL(field, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			f.Add(field, field+" is required")
		}
		return
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		f.Add(field, "must be an absolute http(s) URL")
	}
}

// OrNil returns nil when no problems were recorded.
func (f FieldErrors) OrNil() FieldErrors {
	if len(f) == 0 {
		return nil
	}
	return f
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
