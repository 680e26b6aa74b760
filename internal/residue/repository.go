package residue

import "context"

// ListOptions controls pagination for List.
type ListOptions struct {
	Offset int
	Limit  int
}

// Repository defines the interface for residue persistence.
type Repository interface {
	// Get retrieves a residue by ID.
	Get(ctx context.Context, id string) (*Residue, error)

	// List retrieves residues ordered by name, along with the total count.
	List(ctx context.Context, opts ListOptions) ([]*Residue, int, error)

	// ListAlertInconsistent retrieves residues whose persisted alert flag
	// disagrees with the live quantity/threshold comparison.
	ListAlertInconsistent(ctx context.Context) ([]*Residue, error)

	// Create inserts a new residue.
	Create(ctx context.Context, r *Residue) error

	// Update updates an existing residue.
	Update(ctx context.Context, r *Residue) error

	// Delete deletes a residue by ID. Returns ErrResidueInUse when
	// notifications still reference it.
	Delete(ctx context.Context, id string) error
}
