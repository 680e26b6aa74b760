// Package residue provides waste stock tracking and the alert threshold
// lifecycle.
package residue

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrResidueNotFound = errors.New("residue not found")

	// ErrResidueInUse is returned when deleting a residue that notifications
	// still reference. The storage layer restricts the delete instead of
	// cascading so notification links never dangle.
	ErrResidueInUse = errors.New("residue is referenced by notifications")
)

// Residue represents a tracked category of waste material with a current
// stock quantity and an alert threshold. AlertActive is derived from the
// quantity/threshold comparison but persisted, and must be recomputed after
// every write path.
type Residue struct {
	ID                 string
	Name               string
	Description        string
	Category           string
	CurrentQuantity    float64
	AlertThreshold     float64
	AlertActive        bool
	CreatedAt          time.Time
	LastCollectionDate *time.Time
}
