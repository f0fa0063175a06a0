package model

import (
	"fmt"
	"time"
)

// NotificationType defines the type of notification.
type NotificationType string

// Notification types.
const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
)

// ParseNotificationType parses a notification type name.
func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(s); t {
	case NotifyInfo, NotifySuccess, NotifyWarning:
		return t, nil
	}
	return "", fmt.Errorf("invalid notification type: %q", s)
}

// Notification is one entry of the notification history.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
}

// Icon returns a short marker for the notification type.
func (n Notification) Icon() string {
	switch n.Type {
	case NotifySuccess:
		return "✓"
	case NotifyWarning:
		return "!"
	default:
		return "i"
	}
}
