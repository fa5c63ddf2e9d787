package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleNone     RoleType = "NONE"
	RoleStudent  RoleType = "STUDENT"
	RoleLandlord RoleType = "LANDLORD"
)

// ValidRole reports whether r is one of the closed set of roles.
// Role is always validated on write paths; the identity provider's copy
// of the value is never trusted.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleNone, RoleStudent, RoleLandlord:
		return true
	}
	return false
}

// User is created on first successful authentication with role NONE and
// never deleted by application logic.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Role       RoleType  `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StudentSummary is the projection of a student attached to inquiries and
// viewings when a landlord views their property's engagement history.
type StudentSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}
