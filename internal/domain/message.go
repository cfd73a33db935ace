package domain

import (
	"strings"
	"time"
)

// MessageStatus enumerates lifecycle states for contact messages.
type MessageStatus string

const (
	MessageStatusNew     MessageStatus = "new"
	MessageStatusRead    MessageStatus = "read"
	MessageStatusReplied MessageStatus = "replied"
)

// messageTransitions lists the allowed moves; staying in the same state is always allowed.
// Any message may be marked read, but nothing goes back to new.
var messageTransitions = map[MessageStatus][]MessageStatus{
	MessageStatusNew:     {MessageStatusRead, MessageStatusReplied},
	MessageStatusRead:    {MessageStatusReplied},
	MessageStatusReplied: {MessageStatusRead},
}

// Valid reports whether s is a known status.
func (s MessageStatus) Valid() bool {
	_, ok := messageTransitions[s]
	return ok
}

// CanTransitionTo reports whether a message in state s may move to next.
func (s MessageStatus) CanTransitionTo(next MessageStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range messageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceCategory is the service a visitor is enquiring about.
type ServiceCategory string

const (
	ServiceNone            ServiceCategory = ""
	ServiceGISMapping      ServiceCategory = "gis-mapping"
	ServiceRemoteSensing   ServiceCategory = "remote-sensing"
	ServiceLandSurveying   ServiceCategory = "land-surveying"
	ServiceSpatialAnalysis ServiceCategory = "spatial-analysis"
	ServiceWebGIS          ServiceCategory = "web-gis"
	ServiceTraining        ServiceCategory = "training"
	ServiceConsulting      ServiceCategory = "consulting"
	ServiceOther           ServiceCategory = "other"
)

// ServiceCategories returns every selectable category.
func ServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		ServiceGISMapping,
		ServiceRemoteSensing,
		ServiceLandSurveying,
		ServiceSpatialAnalysis,
		ServiceWebGIS,
		ServiceTraining,
		ServiceConsulting,
		ServiceOther,
	}
}

// Valid reports whether c is empty or one of the known categories.
func (c ServiceCategory) Valid() bool {
	if c == ServiceNone {
		return true
	}
	for _, known := range ServiceCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// MessageReply records the admin answer sent to the visitor.
type MessageReply struct {
	Content string
	SentAt  time.Time
	SentBy  string
}

// Message is one inbound contact form submission.
type Message struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Service   ServiceCategory
	Body      string
	Status    MessageStatus
	Reply     *MessageReply
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims free text and lowercases the sender address.
func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = NormalizeEmail(m.Email)
	m.Company = strings.TrimSpace(m.Company)
	m.Service = ServiceCategory(strings.TrimSpace(string(m.Service)))
	m.Body = strings.TrimSpace(m.Body)
}

// Validate returns field errors for a submission; nil means valid.
func (m *Message) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.Required("name", m.Name)
	errs.Email("email", m.Email, true)
	errs.Required("message", m.Body)
	if !m.Service.Valid() {
		errs.Add("service", "unknown service category")
	}
	if m.Status != "" && !m.Status.Valid() {
		errs.Add("status", "unknown status")
	}
	return errs.OrNil()
}
