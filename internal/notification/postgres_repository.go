package notification

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

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const notificationColumns = `
	n.id, n.title, n.message, n.notification_type, n.is_read, n.created_at,
	n.residue_id, n.collection_point_id,
	r.name AS residue_name, cp.name AS collection_point_name
`

// Get retrieves a notification by ID with denormalized referent names.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications n
		LEFT JOIN residues r ON r.id = n.residue_id
		LEFT JOIN collection_points cp ON cp.id = n.collection_point_id
		WHERE n.id = $1
	`

	var n Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.Title,
		&n.Message,
		&n.NotificationType,
		&n.IsRead,
		&n.CreatedAt,
		&n.ResidueID,
		&n.CollectionPointID,
		&n.ResidueName,
		&n.CollectionPointName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	return &n, nil
}

// List retrieves notifications ordered by creation date descending.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*Notification, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications n
		LEFT JOIN residues r ON r.id = n.residue_id
		LEFT JOIN collection_points cp ON cp.id = n.collection_point_id
		ORDER BY n.created_at DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, opts.Offset, opts.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(
			&n.ID,
			&n.Title,
			&n.Message,
			&n.NotificationType,
			&n.IsRead,
			&n.CreatedAt,
			&n.ResidueID,
			&n.CollectionPointID,
			&n.ResidueName,
			&n.CollectionPointName,
		)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// Create inserts a new notification.
func (r *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (
			id, title, message, notification_type, is_read, created_at,
			residue_id, collection_point_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Message,
		n.NotificationType,
		n.IsRead,
		n.CreatedAt,
		n.ResidueID,
		n.CollectionPointID,
	)
	return err
}

// Update updates an existing notification.
func (r *PostgresRepository) Update(ctx context.Context, n *Notification) error {
	query := `
		UPDATE notifications
		SET is_read = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, n.ID, n.IsRead)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// Delete deletes a notification by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// UnreadCount returns the number of unread notifications.
func (r *PostgresRepository) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&count)
	return count, err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
