package domain

import "time"

// Admin is a back-office operator allowed to manage site content.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is how the admin signs outgoing replies.
func (a *Admin) Identity() string {
	if a == nil {
		return ""
	}
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}
