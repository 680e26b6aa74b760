package notification

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
}

// NewInMemoryRepository creates a new in-memory notification repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		notifications: make(map[string]*Notification),
	}
}

// Get retrieves a notification by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}

	cpy := *n
	return &cpy, nil
}

// List retrieves notifications ordered by creation date descending.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*Notification, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		cpy := *n
		all = append(all, &cpy)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
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

// Create inserts a new notification.
func (r *InMemoryRepository) Create(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *n
	r.notifications[n.ID] = &cpy
	return nil
}

// Update updates an existing notification.
func (r *InMemoryRepository) Update(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[n.ID]; !ok {
		return ErrNotificationNotFound
	}

	cpy := *n
	r.notifications[n.ID] = &cpy
	return nil
}

// Delete deletes a notification by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return ErrNotificationNotFound
	}

	delete(r.notifications, id)
	return nil
}

// UnreadCount returns the number of unread notifications.
func (r *InMemoryRepository) UnreadCount(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// References reports whether any notification links to the given residue or
// collection point ID. It backs the restrict-on-delete contract in tests the
// way the Postgres schema's RESTRICT foreign keys do in production.
func (r *InMemoryRepository) References(entityID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notifications {
		if n.ResidueID != nil && *n.ResidueID == entityID {
			return true
		}
		if n.CollectionPointID != nil && *n.CollectionPointID == entityID {
			return true
		}
	}
	return false
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
