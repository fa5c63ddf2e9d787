package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only record owned by one user. Only the
// is_read flag is ever updated; rows are never deleted.
type Notification struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	Message    string     `json:"message"`
	IsRead     bool       `json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NotificationWithProperty adds the referenced property's title for
// list/dashboard rendering.
type NotificationWithProperty struct {
	Notification
	PropertyTitle *string `json:"property_title,omitempty"`
}
