package models

import "time"

// Submission is a single anonymous wall entry moving through moderation.
type Submission struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission types form a small closed set.
const (
	TypeMessage = "message"
	TypeReview  = "review"
	TypeBright  = "bright"
)

// Moderation states. Every submission starts out pending; moderators may
// flip between approved and rejected to correct mistakes.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidType reports whether t names a known submission type.
func ValidType(t string) bool {
	switch t {
	case TypeMessage, TypeReview, TypeBright:
		return true
	}
	return false
}

// ValidStatus reports whether s names a known moderation state.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
