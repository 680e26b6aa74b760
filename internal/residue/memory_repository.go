package residue

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	residues map[string]*Residue

	// Referenced mirrors the schema's restrict-on-delete foreign keys: when
	// set and it reports true for an ID, Delete fails with ErrResidueInUse.
	Referenced func(id string) bool
}

// NewInMemoryRepository creates a new in-memory residue repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		residues: make(map[string]*Residue),
	}
}

// Get retrieves a residue by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Residue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.residues[id]
	if !ok {
		return nil, ErrResidueNotFound
	}

	cpy := *res
	return &cpy, nil
}

// List retrieves residues ordered by name.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*Residue, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Residue, 0, len(r.residues))
	for _, res := range r.residues {
		cpy := *res
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

// ListAlertInconsistent retrieves residues whose persisted alert flag
// disagrees with the live comparison.
func (r *InMemoryRepository) ListAlertInconsistent(_ context.Context) ([]*Residue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Residue
	for _, res := range r.residues {
		live := res.CurrentQuantity >= res.AlertThreshold
		if live != res.AlertActive {
			cpy := *res
			out = append(out, &cpy)
		}
	}
	return out, nil
}

// Create inserts a new residue.
func (r *InMemoryRepository) Create(_ context.Context, res *Residue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *res
	r.residues[res.ID] = &cpy
	return nil
}

// Update updates an existing residue.
func (r *InMemoryRepository) Update(_ context.Context, res *Residue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.residues[res.ID]; !ok {
		return ErrResidueNotFound
	}

	cpy := *res
	r.residues[res.ID] = &cpy
	return nil
}

// Delete deletes a residue by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.residues[id]; !ok {
		return ErrResidueNotFound
	}

	if r.Referenced != nil && r.Referenced(id) {
		return ErrResidueInUse
	}

	delete(r.residues, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
