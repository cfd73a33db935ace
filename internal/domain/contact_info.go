package domain

import (
	"strings"
	"time"
)

// ContactInfoKey is the well-known key of the company contact record.
const ContactInfoKey = "primary"

// BusinessHours holds display strings per day group.
type BusinessHours struct {
	Weekdays string `json:"weekdays"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
}

// ContactInfo is the company wide contact block shown on the public site.
type ContactInfo struct {
	CompanyName    string
	Address        string
	Phone          string
	SecondaryPhone string
	Email          string
	Website        string
	MapURL         string
	BusinessHours  BusinessHours
	UpdatedAt      time.Time
}

// DefaultContactInfo is stored the first time the record is read.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		CompanyName: "GIS Services",
		BusinessHours: BusinessHours{
			Weekdays: "8:00 AM - 5:00 PM",
			Saturday: "9:00 AM - 1:00 PM",
			Sunday:   "Closed",
		},
	}
}

// Normalize trims every field.
func (c *ContactInfo) Normalize() {
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	c.Address = strings.TrimSpace(c.Address)
	c.Phone = strings.TrimSpace(c.Phone)
	c.SecondaryPhone = strings.TrimSpace(c.SecondaryPhone)
	c.Email = NormalizeEmail(c.Email)
	c.Website = strings.TrimSpace(c.Website)
	c.MapURL = strings.TrimSpace(c.MapURL)
	c.BusinessHours.Weekdays = strings.TrimSpace(c.BusinessHours.Weekdays)
	c.BusinessHours.Saturday = strings.TrimSpace(c.BusinessHours.Saturday)
	c.BusinessHours.Sunday = strings.TrimSpace(c.BusinessHours.Sunday)
}

// Validate returns field errors; nil means valid.
func (c *ContactInfo) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.Required("companyName", c.CompanyName)
	errs.Email("email", c.Email, false)
	errs.URL("website", c.Website, false)
	errs.URL("mapUrl", c.MapURL, false)
	return errs.OrNil()
}
