// Package collection provides the scheduled collection workflow: the
// Pending/Completed/Cancelled lifecycle and the stock-adjustment and
// notification side effects fired on completion.
package collection

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a scheduled collection. The set is closed
// in business logic: Pending is the initial state, Completed and Cancelled
// are terminal. Cancelled is reached only through a status update, there is
// no dedicated cancel operation.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Repository errors.
var (
	ErrCollectionNotFound = errors.New("scheduled collection not found")

	// ErrAlreadyCompleted is returned by the storage layer when a completion
	// write finds the record already completed. It backs the conditional
	// update that keeps two concurrent completions from both committing.
	ErrAlreadyCompleted = errors.New("collection already completed")
)

// InvalidTransitionError reports an operation that is not legal in the
// collection's current lifecycle state.
type InvalidTransitionError struct {
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return e.Reason
}

// CategoryRejectedError reports a residue category the target collection
// point does not accept.
type CategoryRejectedError struct {
	Category string
}

func (e *CategoryRejectedError) Error() string {
	return fmt.Sprintf("collection point does not accept residues of category %q", e.Category)
}

// ScheduledCollection represents a planned pickup linking one residue and
// one collection point. Both references are immutable once created.
type ScheduledCollection struct {
	ID                string
	ResidueID         string
	CollectionPointID string
	ScheduledDate     time.Time
	Status            Status
	EstimatedQuantity float64
	ActualQuantity    *float64
	CreatedAt         time.Time
	CompletedAt       *time.Time
	Notes             *string
}
