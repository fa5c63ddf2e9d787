package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/models"
)

/*
PropertyUpsertRequest is the request DTO for POST /api/v1/properties.
PropertyID empty => create; otherwise update-in-place of the caller's own
row, preserving id, landlord_id and created_at.
*/
type PropertyUpsertRequest struct {
	PropertyID       *uuid.UUID `json:"property_id,omitempty"`
	Title            string     `json:"title" validate:"required,min=5"`
	Description      string     `json:"description" validate:"required,min=20"`
	ImageURL         string     `json:"image_url"`
	Price            float64    `json:"price" validate:"required,gt=0"`
	Bedrooms         int        `json:"bedrooms" validate:"required,gte=1"`
	Bathrooms        int        `json:"bathrooms" validate:"required,gte=1"`
	Location         string     `json:"location" validate:"required,min=5"`
	DistanceToCampus *string    `json:"distance_to_campus,omitempty"`
	Amenities        []string   `json:"amenities" validate:"required,min=1"`
	AvailableFrom    *time.Time `json:"available_from,omitempty"`
	Status           string     `json:"status" validate:"required,oneof=DRAFT ACTIVE RENTED ARCHIVED"`
}

/*
PropertyEngagementDTO joins a property with its full inquiry/viewing
history for the owning landlord.
*/
type PropertyEngagementDTO struct {
	Property  *models.Property              `json:"property"`
	Inquiries []*models.InquiryWithStudent  `json:"inquiries"`
	Viewings  []*models.ViewingWithStudent  `json:"viewings"`
}

/*
StudentPropertyThreadDTO is one property the student has inquired about,
carrying only that student's own inquiries.
*/
type StudentPropertyThreadDTO struct {
	Property  *models.Property  `json:"property"`
	Inquiries []*models.Inquiry `json:"inquiries"`
}
