package collection

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu          sync.RWMutex
	collections map[string]*ScheduledCollection
}

// NewInMemoryRepository creates a new in-memory scheduled collection repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		collections: make(map[string]*ScheduledCollection),
	}
}

// Get retrieves a scheduled collection by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*ScheduledCollection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[id]
	if !ok {
		return nil, ErrCollectionNotFound
	}

	cpy := *c
	return &cpy, nil
}

// List retrieves scheduled collections ordered by scheduled date descending.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*ScheduledCollection, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*ScheduledCollection, 0, len(r.collections))
	for _, c := range r.collections {
		cpy := *c
		all = append(all, &cpy)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ScheduledDate.After(all[j].ScheduledDate)
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

// Create inserts a new scheduled collection.
func (r *InMemoryRepository) Create(_ context.Context, c *ScheduledCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *c
	r.collections[c.ID] = &cpy
	return nil
}

// Update updates an existing scheduled collection.
func (r *InMemoryRepository) Update(_ context.Context, c *ScheduledCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.collections[c.ID]; !ok {
		return ErrCollectionNotFound
	}

	cpy := *c
	r.collections[c.ID] = &cpy
	return nil
}

// Complete persists a completion, guarded against the stored record already
// being completed.
func (r *InMemoryRepository) Complete(_ context.Context, c *ScheduledCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.collections[c.ID]
	if !ok {
		return ErrCollectionNotFound
	}
	if stored.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}

	cpy := *c
	r.collections[c.ID] = &cpy
	return nil
}

// Delete deletes a scheduled collection by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.collections[id]; !ok {
		return ErrCollectionNotFound
	}

	delete(r.collections, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
