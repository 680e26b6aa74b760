package collectionpoint

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL collection point repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const pointColumns = `
	id, name, location, latitude, longitude,
	responsible_person, contact, is_active, accepted_categories, created_at
`

// Get retrieves a collection point by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*CollectionPoint, error) {
	query := `SELECT ` + pointColumns + ` FROM collection_points WHERE id = $1`

	var p CollectionPoint
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Location,
		&p.Latitude,
		&p.Longitude,
		&p.ResponsiblePerson,
		&p.Contact,
		&p.IsActive,
		&p.AcceptedCategories,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPointNotFound
		}
		return nil, err
	}

	return &p, nil
}

// List retrieves collection points ordered by name.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*CollectionPoint, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM collection_points`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + pointColumns + `
		FROM collection_points
		ORDER BY name
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, opts.Offset, opts.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, 0, err
	}

	return points, total, nil
}

// ListWithinBounds retrieves active collection points inside the box.
func (r *PostgresRepository) ListWithinBounds(ctx context.Context, b Bounds) ([]*CollectionPoint, error) {
	query := `
		SELECT ` + pointColumns + `
		FROM collection_points
		WHERE is_active
			AND latitude BETWEEN $1 AND $2
			AND longitude BETWEEN $3 AND $4
	`

	rows, err := r.pool.Query(ctx, query, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPoints(rows)
}

// Create inserts a new collection point.
func (r *PostgresRepository) Create(ctx context.Context, p *CollectionPoint) error {
	query := `
		INSERT INTO collection_points (
			id, name, location, latitude, longitude,
			responsible_person, contact, is_active, accepted_categories, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Location,
		p.Latitude,
		p.Longitude,
		p.ResponsiblePerson,
		p.Contact,
		p.IsActive,
		p.AcceptedCategories,
		p.CreatedAt,
	)
	return err
}

// Update updates an existing collection point.
func (r *PostgresRepository) Update(ctx context.Context, p *CollectionPoint) error {
	query := `
		UPDATE collection_points
		SET name = $2, location = $3, latitude = $4, longitude = $5,
			responsible_person = $6, contact = $7, is_active = $8,
			accepted_categories = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Location,
		p.Latitude,
		p.Longitude,
		p.ResponsiblePerson,
		p.Contact,
		p.IsActive,
		p.AcceptedCategories,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPointNotFound
	}
	return nil
}

// Delete deletes a collection point by ID. A RESTRICT foreign key violation
// from referencing notifications is surfaced as ErrPointInUse.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM collection_points WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrPointInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPointNotFound
	}
	return nil
}

func scanPoints(rows pgx.Rows) ([]*CollectionPoint, error) {
	var points []*CollectionPoint
	for rows.Next() {
		var p CollectionPoint
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Location,
			&p.Latitude,
			&p.Longitude,
			&p.ResponsiblePerson,
			&p.Contact,
			&p.IsActive,
			&p.AcceptedCategories,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
