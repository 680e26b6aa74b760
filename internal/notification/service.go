package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/models"
)

// Notifier is the contract consumed by other services that emit
// notifications as side effects (alert flips, scheduling, completion).
type Notifier interface {
	Emit(ctx context.Context, input EmitInput) (*Notification, error)
}

// EmitInput describes a notification to emit.
type EmitInput struct {
	Title             string
	Message           string
	NotificationType  string
	ResidueID         *string
	CollectionPointID *string
}

// ServiceConfig holds configuration for the notification service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger

	// Now supplies timestamps; defaults to time.Now. Injectable for tests.
	Now func() time.Time
}

// Service provides notification operations.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new notification service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		now:    now,
	}
}

// Emit creates a notification record. Read state always starts false and the
// creation timestamp is taken from the injected clock. The type is stored
// verbatim and repeated identical notifications are not deduplicated.
func (s *Service) Emit(ctx context.Context, input EmitInput) (*Notification, error) {
	n := &Notification{
		ID:                "ntf_" + uuid.New().String()[:22],
		Title:             input.Title,
		Message:           input.Message,
		NotificationType:  input.NotificationType,
		IsRead:            false,
		CreatedAt:         s.now(),
		ResidueID:         input.ResidueID,
		CollectionPointID: input.CollectionPointID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("notification_id", n.ID).
		Str("type", n.NotificationType).
		Msg("notification emitted")

	return n, nil
}

// Create creates a notification from an API request.
func (s *Service) Create(ctx context.Context, input *models.NotificationCreateRequest) (*models.Notification, error) {
	n, err := s.Emit(ctx, EmitInput{
		Title:             input.Title,
		Message:           input.Message,
		NotificationType:  input.NotificationType,
		ResidueID:         input.ResidueID,
		CollectionPointID: input.CollectionPointID,
	})
	if err != nil {
		return nil, err
	}

	// Re-read to pick up denormalized referent names.
	stored, err := s.repo.Get(ctx, n.ID)
	if err != nil {
		return nil, err
	}

	result := toAPINotification(stored)
	return &result, nil
}

// Get retrieves a notification by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toAPINotification(n)
	return &result, nil
}

// List retrieves notifications ordered by creation date descending.
func (s *Service) List(ctx context.Context, page, pageSize int) (*models.PagedNotifications, error) {
	page, pageSize = models.ClampPage(page, pageSize)

	notifications, total, err := s.repo.List(ctx, ListOptions{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, toAPINotification(n))
	}

	return &models.PagedNotifications{
		Items: items,
		Meta:  models.NewPageMeta(page, pageSize, total),
	}, nil
}

// Update applies a partial update (read state only) to a notification.
func (s *Service) Update(ctx context.Context, id string, input *models.NotificationUpdateRequest) (*models.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsRead != nil {
		n.IsRead = *input.IsRead
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}

	result := toAPINotification(n)
	return &result, nil
}

// MarkRead marks a notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	n.IsRead = true
	return s.repo.Update(ctx, n)
}

// Delete deletes a notification by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.UnreadCount(ctx)
}

// toAPINotification converts a domain Notification to an API Notification.
func toAPINotification(n *Notification) models.Notification {
	return models.Notification{
		ID:                  n.ID,
		Title:               n.Title,
		Message:             n.Message,
		NotificationType:    n.NotificationType,
		IsRead:              n.IsRead,
		CreatedAt:           models.Timestamp(n.CreatedAt),
		ResidueID:           n.ResidueID,
		ResidueName:         n.ResidueName,
		CollectionPointID:   n.CollectionPointID,
		CollectionPointName: n.CollectionPointName,
	}
}
