package residue

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreignKeyViolation is the SQLSTATE raised when a RESTRICT foreign key
// blocks a delete.
const foreignKeyViolation = "23503"

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL residue repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const residueColumns = `
	id, name, description, category,
	current_quantity, alert_threshold, alert_active,
	created_at, last_collection_date
`

// Get retrieves a residue by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Residue, error) {
	query := `SELECT ` + residueColumns + ` FROM residues WHERE id = $1`

	var res Residue
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.Name,
		&res.Description,
		&res.Category,
		&res.CurrentQuantity,
		&res.AlertThreshold,
		&res.AlertActive,
		&res.CreatedAt,
		&res.LastCollectionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResidueNotFound
		}
		return nil, err
	}

	return &res, nil
}

// List retrieves residues ordered by name.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*Residue, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM residues`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + residueColumns + `
		FROM residues
		ORDER BY name
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, opts.Offset, opts.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	residues, err := scanResidues(rows)
	if err != nil {
		return nil, 0, err
	}

	return residues, total, nil
}

// ListAlertInconsistent retrieves residues whose persisted alert flag
// disagrees with the live quantity/threshold comparison.
func (r *PostgresRepository) ListAlertInconsistent(ctx context.Context) ([]*Residue, error) {
	query := `
		SELECT ` + residueColumns + `
		FROM residues
		WHERE (current_quantity >= alert_threshold) <> alert_active
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResidues(rows)
}

// Create inserts a new residue.
func (r *PostgresRepository) Create(ctx context.Context, res *Residue) error {
	query := `
		INSERT INTO residues (
			id, name, description, category,
			current_quantity, alert_threshold, alert_active,
			created_at, last_collection_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		res.ID,
		res.Name,
		res.Description,
		res.Category,
		res.CurrentQuantity,
		res.AlertThreshold,
		res.AlertActive,
		res.CreatedAt,
		res.LastCollectionDate,
	)
	return err
}

// Update updates an existing residue.
func (r *PostgresRepository) Update(ctx context.Context, res *Residue) error {
	query := `
		UPDATE residues
		SET name = $2, description = $3, category = $4,
			current_quantity = $5, alert_threshold = $6, alert_active = $7,
			last_collection_date = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		res.ID,
		res.Name,
		res.Description,
		res.Category,
		res.CurrentQuantity,
		res.AlertThreshold,
		res.AlertActive,
		res.LastCollectionDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrResidueNotFound
	}
	return nil
}

// Delete deletes a residue by ID. A RESTRICT foreign key violation from
// referencing notifications is surfaced as ErrResidueInUse.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM residues WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrResidueInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrResidueNotFound
	}
	return nil
}

func scanResidues(rows pgx.Rows) ([]*Residue, error) {
	var residues []*Residue
	for rows.Next() {
		var res Residue
		err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Description,
			&res.Category,
			&res.CurrentQuantity,
			&res.AlertThreshold,
			&res.AlertActive,
			&res.CreatedAt,
			&res.LastCollectionDate,
		)
		if err != nil {
			return nil, err
		}
		residues = append(residues, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return residues, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
