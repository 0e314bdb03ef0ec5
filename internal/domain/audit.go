package domain

import "time"

// Audit actions recorded by the posting engine.
const (
	AuditActionPost    = "posting.create"
	AuditActionReplay  = "posting.replay"
	AuditActionReverse = "posting.reverse"
)

// Audit statuses.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
	AuditStatusSkipped = "skipped"
)

// AuditLog records one post/reverse attempt, including idempotent
// replays and failures, for the operator-facing audit trail.
type AuditLog struct {
	ID           string
	CompanyID    string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Reference    string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	CompanyID    string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}
