package routes

const (
	// Health
	Health = "/health"

	// Session / role selection
	AuthSession = "/api/v1/auth/session"
	AuthRole    = "/api/v1/auth/role"

	// Landlord listing endpoints
	PropertiesMy       = "/api/v1/properties/my"
	PropertiesMyDetail = "/api/v1/properties/my/{propertyId}"
	PropertiesUpsert   = "/api/v1/properties"
	PropertiesDelete   = "/api/v1/properties/{propertyId}"

	// Student-facing browse
	PropertiesBrowse = "/api/v1/properties/browse"
	PropertiesDetail = "/api/v1/properties/{propertyId}"

	// Engagement
	Inquiries             = "/api/v1/inquiries"
	InquiryResponse       = "/api/v1/inquiries/{inquiryId}/response"
	InquiryStatus         = "/api/v1/inquiries/{inquiryId}/status"
	Viewings              = "/api/v1/viewings"
	ViewingStatus         = "/api/v1/viewings/{viewingId}/status"
	EngagementMyInquiries = "/api/v1/engagement/my"

	// Saved properties
	SavedToggle = "/api/v1/saved/toggle"
	SavedList   = "/api/v1/saved"

	// Notifications
	Notifications           = "/api/v1/notifications"
	NotificationsUnread     = "/api/v1/notifications/unread-count"
	NotificationMarkRead    = "/api/v1/notifications/{notificationId}/read"
	NotificationMarkAllRead = "/api/v1/notifications/read-all"

	// Landlord dashboard
	Dashboard = "/api/v1/dashboard"
)
