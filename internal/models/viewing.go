package models

import (
	"time"

	"github.com/google/uuid"
)

type ViewingStatusType string

const (
	ViewingStatusRequested ViewingStatusType = "REQUESTED"
	ViewingStatusConfirmed ViewingStatusType = "CONFIRMED"
	ViewingStatusDeclined  ViewingStatusType = "DECLINED"
	ViewingStatusCompleted ViewingStatusType = "COMPLETED"
)

func ValidViewingStatus(s ViewingStatusType) bool {
	switch s {
	case ViewingStatusRequested, ViewingStatusConfirmed, ViewingStatusDeclined, ViewingStatusCompleted:
		return true
	}
	return false
}

// Viewing is a scheduled-visit request from one student for one property.
type Viewing struct {
	Versioned

	ID          uuid.UUID         `json:"id"`
	PropertyID  uuid.UUID         `json:"property_id"`
	StudentID   uuid.UUID         `json:"student_id"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Notes       *string           `json:"notes,omitempty"`
	Status      ViewingStatusType `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (v *Viewing) GetID() string {
	return v.ID.String()
}

// ViewingWithStudent is the landlord-facing projection of a viewing.
type ViewingWithStudent struct {
	Viewing
	Student StudentSummary `json:"student"`
}

// UpcomingViewing carries the property/student summaries the dashboard
// shows for the next scheduled visits.
type UpcomingViewing struct {
	Viewing
	PropertyTitle    string `json:"property_title"`
	PropertyImageURL string `json:"property_image_url"`
	StudentName      string `json:"student_name"`
}
