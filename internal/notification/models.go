// Package notification provides operator notification emission and management.
//
// Notifications are append-only informational records: there is no
// deduplication, so repeated identical alerts produce repeated rows. The
// residue and collection point links are weak references used for display;
// the storage layer restricts deletion of referenced entities instead of
// cascading.
package notification

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Well-known notification types. The type field is free text; these are the
// values the system itself emits.
const (
	TypeCollectionAlert     = "CollectionAlert"
	TypeScheduledCollection = "ScheduledCollection"
	TypeCompletedCollection = "CompletedCollection"
)

// Notification represents a single notification record.
type Notification struct {
	ID               string
	Title            string
	Message          string
	NotificationType string
	IsRead           bool
	CreatedAt        time.Time

	// Optional weak references.
	ResidueID         *string
	CollectionPointID *string

	// Denormalized referent names, populated on read paths.
	ResidueName         *string
	CollectionPointName *string
}
