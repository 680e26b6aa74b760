package collectionpoint

import "context"

// ListOptions controls pagination for List.
type ListOptions struct {
	Offset int
	Limit  int
}

// Bounds is a latitude/longitude bounding box for nearby queries.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Repository defines the interface for collection point persistence.
type Repository interface {
	// Get retrieves a collection point by ID.
	Get(ctx context.Context, id string) (*CollectionPoint, error)

	// List retrieves collection points ordered by name, along with the
	// total count.
	List(ctx context.Context, opts ListOptions) ([]*CollectionPoint, int, error)

	// ListWithinBounds retrieves active collection points inside the box.
	ListWithinBounds(ctx context.Context, b Bounds) ([]*CollectionPoint, error)

	// Create inserts a new collection point.
	Create(ctx context.Context, p *CollectionPoint) error

	// Update updates an existing collection point.
	Update(ctx context.Context, p *CollectionPoint) error

	// Delete deletes a collection point by ID. Returns ErrPointInUse when
	// notifications still reference it.
	Delete(ctx context.Context, id string) error
}
