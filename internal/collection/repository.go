package collection

import "context"

// ListOptions controls pagination for List.
type ListOptions struct {
	Offset int
	Limit  int
}

// Repository defines the interface for scheduled collection persistence.
type Repository interface {
	// Get retrieves a scheduled collection by ID.
	Get(ctx context.Context, id string) (*ScheduledCollection, error)

	// List retrieves scheduled collections ordered by scheduled date
	// descending, along with the total count.
	List(ctx context.Context, opts ListOptions) ([]*ScheduledCollection, int, error)

	// Create inserts a new scheduled collection.
	Create(ctx context.Context, c *ScheduledCollection) error

	// Update updates an existing scheduled collection's mutable fields.
	Update(ctx context.Context, c *ScheduledCollection) error

	// Complete persists a completion: the write is conditional on the stored
	// status not already being Completed, so two concurrent completions
	// cannot both commit. Returns ErrAlreadyCompleted when the guard fails.
	Complete(ctx context.Context, c *ScheduledCollection) error

	// Delete deletes a scheduled collection by ID.
	Delete(ctx context.Context, id string) error
}
