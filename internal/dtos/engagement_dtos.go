package dtos

import (
	"time"

	"github.com/google/uuid"
)

type SendInquiryRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Message    string    `json:"message" validate:"required"`
}

type RespondToInquiryRequest struct {
	Response string `json:"response" validate:"required"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING RESPONDED DECLINED"`
}

type ScheduleViewingRequest struct {
	PropertyID  uuid.UUID `json:"property_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       *string   `json:"notes,omitempty"`
}

type UpdateViewingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=REQUESTED CONFIRMED DECLINED COMPLETED"`
}
