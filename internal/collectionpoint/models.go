// Package collectionpoint provides collection point management and the
// category acceptance gate for scheduled collections.
package collectionpoint

import (
	"errors"
	"strings"
	"time"
)

// Repository errors.
var (
	ErrPointNotFound = errors.New("collection point not found")

	// ErrPointInUse is returned when deleting a collection point that
	// notifications still reference.
	ErrPointInUse = errors.New("collection point is referenced by notifications")
)

// CollectionPoint represents a physical site that accepts waste drop-offs.
// AcceptedCategories is a comma-separated list of category labels; an empty
// list means the point accepts every category.
type CollectionPoint struct {
	ID                 string
	Name               string
	Location           string
	Latitude           float64
	Longitude          float64
	ResponsiblePerson  string
	Contact            string
	IsActive           bool
	AcceptedCategories string
	CreatedAt          time.Time
}

// Accepts reports whether the point accepts residues of the given category.
// The accepted-categories field is split on commas with empty segments
// discarded and no whitespace trimming; matching is verbatim and
// case-sensitive. An empty set means no restriction, not "accepts nothing".
func (p *CollectionPoint) Accepts(category string) bool {
	var accepted []string
	for _, c := range strings.Split(p.AcceptedCategories, ",") {
		if c != "" {
			accepted = append(accepted, c)
		}
	}

	if len(accepted) == 0 {
		return true
	}

	for _, c := range accepted {
		if c == category {
			return true
		}
	}
	return false
}
