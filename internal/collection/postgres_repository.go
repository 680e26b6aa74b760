package collection

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL scheduled collection repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const collectionColumns = `
	id, residue_id, collection_point_id, scheduled_date, status,
	estimated_quantity, actual_quantity, created_at, completed_at, notes
`

// Get retrieves a scheduled collection by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*ScheduledCollection, error) {
	query := `SELECT ` + collectionColumns + ` FROM scheduled_collections WHERE id = $1`

	var c ScheduledCollection
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ResidueID,
		&c.CollectionPointID,
		&c.ScheduledDate,
		&c.Status,
		&c.EstimatedQuantity,
		&c.ActualQuantity,
		&c.CreatedAt,
		&c.CompletedAt,
		&c.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	return &c, nil
}

// List retrieves scheduled collections ordered by scheduled date descending.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*ScheduledCollection, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM scheduled_collections`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + collectionColumns + `
		FROM scheduled_collections
		ORDER BY scheduled_date DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, opts.Offset, opts.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var collections []*ScheduledCollection
	for rows.Next() {
		var c ScheduledCollection
		err := rows.Scan(
			&c.ID,
			&c.ResidueID,
			&c.CollectionPointID,
			&c.ScheduledDate,
			&c.Status,
			&c.EstimatedQuantity,
			&c.ActualQuantity,
			&c.CreatedAt,
			&c.CompletedAt,
			&c.Notes,
		)
		if err != nil {
			return nil, 0, err
		}
		collections = append(collections, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return collections, total, nil
}

// Create inserts a new scheduled collection.
func (r *PostgresRepository) Create(ctx context.Context, c *ScheduledCollection) error {
	query := `
		INSERT INTO scheduled_collections (
			id, residue_id, collection_point_id, scheduled_date, status,
			estimated_quantity, actual_quantity, created_at, completed_at, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.ResidueID,
		c.CollectionPointID,
		c.ScheduledDate,
		c.Status,
		c.EstimatedQuantity,
		c.ActualQuantity,
		c.CreatedAt,
		c.CompletedAt,
		c.Notes,
	)
	return err
}

// Update updates a scheduled collection's mutable fields. The residue and
// collection point references are immutable and never written here.
func (r *PostgresRepository) Update(ctx context.Context, c *ScheduledCollection) error {
	query := `
		UPDATE scheduled_collections
		SET scheduled_date = $2, status = $3, estimated_quantity = $4,
			actual_quantity = $5, completed_at = $6, notes = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		c.ID,
		c.ScheduledDate,
		c.Status,
		c.EstimatedQuantity,
		c.ActualQuantity,
		c.CompletedAt,
		c.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// Complete persists a completion. The write is conditional on the stored
// status not already being Completed so concurrent completions serialize at
// the database rather than in this process.
func (r *PostgresRepository) Complete(ctx context.Context, c *ScheduledCollection) error {
	query := `
		UPDATE scheduled_collections
		SET scheduled_date = $2, status = $3, estimated_quantity = $4,
			actual_quantity = $5, completed_at = $6, notes = $7
		WHERE id = $1 AND status <> $8
	`

	tag, err := r.pool.Exec(ctx, query,
		c.ID,
		c.ScheduledDate,
		c.Status,
		c.EstimatedQuantity,
		c.ActualQuantity,
		c.CompletedAt,
		c.Notes,
		StatusCompleted,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the id is unknown or the guard failed; distinguish them.
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM scheduled_collections WHERE id = $1)`, c.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrCollectionNotFound
		}
		return ErrAlreadyCompleted
	}
	return nil
}

// Delete deletes a scheduled collection by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scheduled_collections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
