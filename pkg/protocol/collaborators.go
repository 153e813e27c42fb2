package protocol

import "context"

// NotificationType is the severity surfaced to the user.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is the payload handed to the notification collaborator.
// Delivery is fire-and-forget: failures must not crash action execution.
type Notification struct {
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Category  string           `json:"category"` // "system" or "task"
	Priority  string           `json:"priority"` // low, normal, high, critical
	RelatedID string           `json:"related_id,omitempty"`
}

// Notifier is the notification collaborator port. The engine core has no
// delivery mechanism of its own.
type Notifier interface {
	CreateNotification(ctx context.Context, notification Notification) error
}

// User is the minimal shape the engine needs from the host's user store.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
}

// UserDirectory is the user-directory collaborator port. Role matching is
// case-insensitive string equality.
type UserDirectory interface {
	Users(ctx context.Context) ([]User, error)
	UsersByRole(ctx context.Context, role string) ([]User, error)
}
