package model

import "strings"

// SenderProfile holds optional display metadata about the account that
// produced a notification.
type SenderProfile struct {
	// Username is the sender's display name.
	Username string `json:"username"`

	// AvatarURL points to the sender's profile picture, if any.
	AvatarURL string `json:"profile_picture"`
}

// Notification represents a single notification for the current viewer
// as reported by the ResourceHub service.
type Notification struct {
	// ID is the unique identifier for this notification. Immutable.
	ID string `json:"id"`

	// RawType is the free-text source category (e.g. "maintenance_request").
	// May be empty.
	RawType string `json:"notification_type"`

	// Title is an optional human-readable summary.
	Title string `json:"title"`

	// Message is the notification body text.
	Message string `json:"message"`

	// Priority is one of "general", "low", "medium", "high". Values outside
	// that set are treated as "general" at display time.
	Priority string `json:"priority"`

	// CreatedAt is the server-side creation timestamp, kept as the raw
	// string the service returns.
	CreatedAt string `json:"created_at"`

	// IsRead indicates whether the viewer has seen this notification.
	// Mutated only through the lifecycle manager.
	IsRead bool `json:"is_read"`

	// Sender holds optional metadata about the originating account.
	Sender *SenderProfile `json:"sender,omitempty"`
}

// DisplayCreatedAt returns the creation timestamp formatted for display.
// The service emits timestamps with a trailing ".0" microsecond artifact
// which is stripped here.
func (n Notification) DisplayCreatedAt() string {
	return strings.TrimSuffix(n.CreatedAt, ".0")
}
