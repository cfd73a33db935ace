package domain

import "time"

// SubjectType identifies who a token was issued to.
type SubjectType string

const SubjectTypeAdmin SubjectType = "ADMIN"

// Token is an issued access token and its metadata.
type Token struct {
	Value     string
	SubjectID string
	Subject   SubjectType
	ExpiresAt time.Time
	IssuedAt  time.Time
}
