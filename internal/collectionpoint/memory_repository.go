package collectionpoint

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	points map[string]*CollectionPoint

	// Referenced mirrors the schema's restrict-on-delete foreign keys: when
	// set and it reports true for an ID, Delete fails with ErrPointInUse.
	Referenced func(id string) bool
}

// NewInMemoryRepository creates a new in-memory collection point repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		points: make(map[string]*CollectionPoint),
	}
}

// Get retrieves a collection point by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*CollectionPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.points[id]
	if !ok {
		return nil, ErrPointNotFound
	}

	cpy := *p
	return &cpy, nil
}

// List retrieves collection points ordered by name.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*CollectionPoint, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*CollectionPoint, 0, len(r.points))
	for _, p := range r.points {
		cpy := *p
		all = append(all, &cpy)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})

	total := len(all)
	if opts.Offset >= total {
		return nil, total, nil
	}

	end := opts.Offset + opts.Limit
	if opts.Limit <= 0 || end > total {
		end = total
	}

	return all[opts.Offset:end], total, nil
}

// ListWithinBounds retrieves active collection points inside the box.
func (r *InMemoryRepository) ListWithinBounds(_ context.Context, b Bounds) ([]*CollectionPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*CollectionPoint
	for _, p := range r.points {
		if !p.IsActive {
			continue
		}
		if p.Latitude < b.MinLat || p.Latitude > b.MaxLat {
			continue
		}
		if p.Longitude < b.MinLon || p.Longitude > b.MaxLon {
			continue
		}
		cpy := *p
		out = append(out, &cpy)
	}
	return out, nil
}

// Create inserts a new collection point.
func (r *InMemoryRepository) Create(_ context.Context, p *CollectionPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *p
	r.points[p.ID] = &cpy
	return nil
}

// Update updates an existing collection point.
func (r *InMemoryRepository) Update(_ context.Context, p *CollectionPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.points[p.ID]; !ok {
		return ErrPointNotFound
	}

	cpy := *p
	r.points[p.ID] = &cpy
	return nil
}

// Delete deletes a collection point by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.points[id]; !ok {
		return ErrPointNotFound
	}

	if r.Referenced != nil && r.Referenced(id) {
		return ErrPointInUse
	}

	delete(r.points, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
