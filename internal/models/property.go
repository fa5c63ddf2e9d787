package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyStatusType string

const (
	PropertyStatusDraft    PropertyStatusType = "DRAFT"
	PropertyStatusActive   PropertyStatusType = "ACTIVE"
	PropertyStatusRented   PropertyStatusType = "RENTED"
	PropertyStatusArchived PropertyStatusType = "ARCHIVED"
)

// AllPropertyStatuses is the fixed bucket order used by the dashboard
// distribution.
var AllPropertyStatuses = []PropertyStatusType{
	PropertyStatusActive,
	PropertyStatusRented,
	PropertyStatusDraft,
	PropertyStatusArchived,
}

func ValidPropertyStatus(s PropertyStatusType) bool {
	switch s {
	case PropertyStatusDraft, PropertyStatusActive, PropertyStatusRented, PropertyStatusArchived:
		return true
	}
	return false
}

// Property is a listing owned by exactly one landlord. LandlordID is
// immutable after creation.
type Property struct {
	Versioned

	ID               uuid.UUID          `json:"id"`
	LandlordID       uuid.UUID          `json:"landlord_id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	ImageURL         string             `json:"image_url"`
	Price            float64            `json:"price"`
	Bedrooms         int                `json:"bedrooms"`
	Bathrooms        int                `json:"bathrooms"`
	Location         string             `json:"location"`
	DistanceToCampus *string            `json:"distance_to_campus,omitempty"`
	Amenities        []string           `json:"amenities"`
	AvailableFrom    *time.Time         `json:"available_from,omitempty"`
	Status           PropertyStatusType `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (p *Property) GetID() string {
	return p.ID.String()
}
