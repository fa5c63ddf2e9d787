package models

import (
	"time"

	"github.com/google/uuid"
)

type InquiryStatusType string

const (
	InquiryStatusPending   InquiryStatusType = "PENDING"
	InquiryStatusResponded InquiryStatusType = "RESPONDED"
	InquiryStatusDeclined  InquiryStatusType = "DECLINED"
)

func ValidInquiryStatus(s InquiryStatusType) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusDeclined:
		return true
	}
	return false
}

// Inquiry anchors a message-and-optional-response thread from one student
// to one property.
type Inquiry struct {
	Versioned

	ID         uuid.UUID         `json:"id"`
	PropertyID uuid.UUID         `json:"property_id"`
	StudentID  uuid.UUID         `json:"student_id"`
	Message    string            `json:"message"`
	Status     InquiryStatusType `json:"status"`
	Response   *string           `json:"response,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (i *Inquiry) GetID() string {
	return i.ID.String()
}

// InquiryWithStudent is the landlord-facing projection of an inquiry.
type InquiryWithStudent struct {
	Inquiry
	Student StudentSummary `json:"student"`
}
