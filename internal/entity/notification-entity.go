package entity

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type NotificationEntity struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	UserID     string           `json:"user_id"`
	EntityType string           `json:"entity_type"`
	EntityID   string           `json:"entity_id"`
	Type       NotificationType `json:"type"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Entity-Typen für Benachrichtigungen.
const (
	EntityCase      = "case"
	EntityTask      = "task"
	EntityApproval  = "approval_request"
	EntityQuotation = "quotation"
)
