package notification

import "context"

// ListOptions controls pagination for List.
type ListOptions struct {
	Offset int
	Limit  int
}

// Repository defines the interface for notification persistence.
type Repository interface {
	// Get retrieves a notification by ID.
	Get(ctx context.Context, id string) (*Notification, error)

	// List retrieves notifications ordered by creation date descending,
	// along with the total record count.
	List(ctx context.Context, opts ListOptions) ([]*Notification, int, error)

	// Create inserts a new notification.
	Create(ctx context.Context, n *Notification) error

	// Update updates an existing notification.
	Update(ctx context.Context, n *Notification) error

	// Delete deletes a notification by ID.
	Delete(ctx context.Context, id string) error

	// UnreadCount returns the number of unread notifications.
	UnreadCount(ctx context.Context) (int, error)
}
