package dtos

import (
	"github.com/google/uuid"

	"github.com/studentnest/studentnest-backend/internal/models"
)

type DashboardStats struct {
	TotalProperties    int `json:"total_properties"`
	ActiveProperties   int `json:"active_properties"`
	RentedProperties   int `json:"rented_properties"`
	DraftProperties    int `json:"draft_properties"`
	ArchivedProperties int `json:"archived_properties"`
	TotalInquiries     int `json:"total_inquiries"`
	PendingInquiries   int `json:"pending_inquiries"`
	TotalViewings      int `json:"total_viewings"`
	UpcomingViewings   int `json:"upcoming_viewings"`
	// OccupancyRate is round(rented/total*100); 0 when the landlord has
	// no properties.
	OccupancyRate int `json:"occupancy_rate"`
}

type PropertyStatusCount struct {
	Status models.PropertyStatusType `json:"status"`
	Count  int                       `json:"count"`
}

// PropertyEngagementSummary is the per-property row on the dashboard.
type PropertyEngagementSummary struct {
	ID               uuid.UUID                 `json:"id"`
	Title            string                    `json:"title"`
	Location         string                    `json:"location"`
	ImageURL         string                    `json:"image_url"`
	Status           models.PropertyStatusType `json:"status"`
	PendingInquiries int                       `json:"pending_inquiries"`
	TotalViewings    int                       `json:"total_viewings"`
}

type DashboardData struct {
	Stats                DashboardStats                     `json:"stats"`
	PropertyDistribution []PropertyStatusCount              `json:"property_distribution"`
	Properties           []PropertyEngagementSummary        `json:"properties"`
	UpcomingViewings     []*models.UpcomingViewing          `json:"upcoming_viewings"`
	Notifications        []*models.NotificationWithProperty `json:"notifications"`
}
