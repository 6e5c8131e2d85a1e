package state

import "time"

// NotificationType classifies a notification for display purposes
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// Notification is an ephemeral feed entry. It lives in memory only and is
// removed from the feed automatically after the configured TTL.
type Notification struct {
	ID        int64            `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
}

// DisplayHook is the optional callback the view layer registers to surface
// notifications as they are posted.
type DisplayHook func(message string, kind NotificationType)
