package domain

import (
	"strings"
	"time"
)

// DepartmentalContact maps a department to the person handling its enquiries.
type DepartmentalContact struct {
	ID            string
	Department    string
	ContactPerson string
	Email         string
	Phone         string
	Description   string
	DisplayOrder  int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (d *DepartmentalContact) Normalize() {
	d.Department = strings.TrimSpace(d.Department)
	d.ContactPerson = strings.TrimSpace(d.ContactPerson)
	d.Email = NormalizeEmail(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *DepartmentalContact) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.Required("department", d.Department)
	errs.Email("email", d.Email, true)
	return errs.OrNil()
}
