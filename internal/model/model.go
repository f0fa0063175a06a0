// Package model defines the domain models for Chronos.
package model

// Namespace names a durable record in the record store.
type Namespace string

// Namespaces exposed by the record store.
const (
	NSSettings      Namespace = "settings"
	NSMilestones    Namespace = "milestones"
	NSLogs          Namespace = "logs"
	NSDailyTasks    Namespace = "daily_tasks"
	NSDailyHistory  Namespace = "daily_history"
	NSUserProfile   Namespace = "user_profile"
	NSFutureLetter  Namespace = "future_letter"
	NSUsers         Namespace = "users"
	NSAttributes    Namespace = "core_attributes"
	NSAttributeSync Namespace = "attributes_sync"
	NSNotifications Namespace = "notification_history"
)

// AllNamespaces lists every namespace known to the store.
var AllNamespaces = []Namespace{
	NSSettings,
	NSMilestones,
	NSLogs,
	NSDailyTasks,
	NSDailyHistory,
	NSUserProfile,
	NSFutureLetter,
	NSUsers,
	NSAttributes,
	NSAttributeSync,
	NSNotifications,
}

// PublicNamespaces are the namespaces the HTTP façade serves directly.
// The letter, users and attribute records are only reachable through their engines.
var PublicNamespaces = []Namespace{
	NSSettings,
	NSMilestones,
	NSLogs,
	NSDailyTasks,
	NSDailyHistory,
	NSUserProfile,
}

// Valid reports whether ns is a known namespace.
func (ns Namespace) Valid() bool {
	for _, known := range AllNamespaces {
		if ns == known {
			return true
		}
	}
	return false
}

// Public reports whether ns may be read and written through the façade.
func (ns Namespace) Public() bool {
	for _, known := range PublicNamespaces {
		if ns == known {
			return true
		}
	}
	return false
}

// Key returns the store key for the namespace.
func (ns Namespace) Key() string {
	return "chronos:v3:" + string(ns)
}
