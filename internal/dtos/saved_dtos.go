package dtos

import "github.com/google/uuid"

type ToggleSavedRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
}

type ToggleSavedResponse struct {
	// Saved is the new state after the toggle.
	Saved bool `json:"saved"`
}
