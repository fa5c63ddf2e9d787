package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedProperty is a join record between a student and a property.
// At most one row exists per (student, property) pair.
type SavedProperty struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	PropertyID uuid.UUID `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// SavedListing is a property annotated with when the student saved it.
type SavedListing struct {
	Property
	SavedAt time.Time `json:"saved_at"`
}
