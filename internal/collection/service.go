package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/collectionpoint"
	"github.com/wastetrack/wastetrack/internal/notification"
	"github.com/wastetrack/wastetrack/internal/residue"
)

// scheduledDateFormat is the display format used in notification messages.
const scheduledDateFormat = "02/01/2006 15:04"

// ServiceConfig holds configuration for the scheduled collection service.
type ServiceConfig struct {
	Repository Repository
	Residues   residue.Repository
	Points     collectionpoint.Repository
	Notifier   notification.Notifier
	Logger     zerolog.Logger

	// Now supplies timestamps; defaults to time.Now. Injectable for tests.
	Now func() time.Time
}

// Service provides scheduled collection workflow operations.
type Service struct {
	repo     Repository
	residues residue.Repository
	points   collectionpoint.Repository
	notifier notification.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a new scheduled collection service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:     cfg.Repository,
		residues: cfg.Residues,
		points:   cfg.Points,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Get retrieves a scheduled collection by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.ScheduledCollection, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toAPICollection(ctx, c)
}

// List retrieves scheduled collections ordered by scheduled date descending.
func (s *Service) List(ctx context.Context, page, pageSize int) (*models.PagedScheduledCollections, error) {
	page, pageSize = models.ClampPage(page, pageSize)

	collections, total, err := s.repo.List(ctx, ListOptions{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.ScheduledCollection, 0, len(collections))
	for _, c := range collections {
		item, err := s.toAPICollection(ctx, c)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return &models.PagedScheduledCollections{
		Items: items,
		Meta:  models.NewPageMeta(page, pageSize, total),
	}, nil
}

// Create schedules a new collection. Both referenced entities must exist and
// the collection point must accept the residue's category; on rejection
// nothing is persisted. A ScheduledCollection notification referencing both
// entities is emitted on success.
func (s *Service) Create(ctx context.Context, input *models.ScheduledCollectionCreateRequest) (*models.ScheduledCollection, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	res, err := s.residues.Get(ctx, input.ResidueID)
	if err != nil {
		return nil, err
	}

	point, err := s.points.Get(ctx, input.CollectionPointID)
	if err != nil {
		return nil, err
	}

	if !point.Accepts(res.Category) {
		return nil, &CategoryRejectedError{Category: res.Category}
	}

	c := &ScheduledCollection{
		ID:                "col_" + uuid.New().String()[:22],
		ResidueID:         input.ResidueID,
		CollectionPointID: input.CollectionPointID,
		ScheduledDate:     input.ScheduledDate.Time(),
		Status:            StatusPending,
		EstimatedQuantity: input.EstimatedQuantity,
		CreatedAt:         s.now(),
		Notes:             input.Notes,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	_, err = s.notifier.Emit(ctx, notification.EmitInput{
		Title: "New Collection Scheduled",
		Message: fmt.Sprintf("A new collection for residue %s has been scheduled for %s.",
			res.Name, c.ScheduledDate.Format(scheduledDateFormat)),
		NotificationType:  notification.TypeScheduledCollection,
		ResidueID:         &c.ResidueID,
		CollectionPointID: &c.CollectionPointID,
	})
	if err != nil {
		return nil, err
	}

	return s.projection(c, res, point), nil
}

// Update applies a partial update to a scheduled collection. Completed
// collections are immutable. Setting the status field to Completed performs
// the full completion side effects, exactly as Complete does.
func (s *Service) Update(ctx context.Context, id string, input *models.ScheduledCollectionUpdateRequest) (*models.ScheduledCollection, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Status == StatusCompleted {
		return nil, &InvalidTransitionError{Reason: "cannot update a completed collection"}
	}

	if fieldErrors := validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.ScheduledDate != nil {
		c.ScheduledDate = input.ScheduledDate.Time()
	}
	if input.EstimatedQuantity != nil {
		c.EstimatedQuantity = *input.EstimatedQuantity
	}
	if input.ActualQuantity != nil {
		c.ActualQuantity = input.ActualQuantity
	}
	if input.Notes != nil {
		c.Notes = input.Notes
	}

	if input.Status != nil && Status(*input.Status) == StatusCompleted {
		// Completion through the update side channel.
		c.Status = StatusCompleted
		completedAt := s.now()
		c.CompletedAt = &completedAt

		if err := s.finishCompletion(ctx, c); err != nil {
			return nil, err
		}
	} else {
		if input.Status != nil {
			c.Status = Status(*input.Status)
		}
		if err := s.repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	return s.toAPICollection(ctx, c)
}

// Complete marks a collection as completed, adjusts the residue's stock and
// emits a CompletedCollection notification. Completion happens exactly once;
// completing a completed or cancelled collection is an invalid transition.
func (s *Service) Complete(ctx context.Context, id string, input *models.CompleteCollectionRequest) (*models.ScheduledCollection, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch c.Status {
	case StatusCompleted:
		return nil, &InvalidTransitionError{Reason: "collection is already completed"}
	case StatusCancelled:
		return nil, &InvalidTransitionError{Reason: "cannot complete a cancelled collection"}
	}

	if input.ActualQuantity < 0 {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "actualQuantity", Message: "must be non-negative"},
		}}
	}

	c.Status = StatusCompleted
	c.ActualQuantity = &input.ActualQuantity
	completedAt := s.now()
	c.CompletedAt = &completedAt
	if input.Notes != nil {
		c.Notes = input.Notes
	}

	if err := s.finishCompletion(ctx, c); err != nil {
		return nil, err
	}

	return s.toAPICollection(ctx, c)
}

// Delete deletes a scheduled collection. Completed collections cannot be
// deleted; deleting a pending or cancelled collection performs no stock
// reversal since stock only moves at completion.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if c.Status == StatusCompleted {
		return &InvalidTransitionError{Reason: "cannot delete a completed collection"}
	}

	return s.repo.Delete(ctx, id)
}

// finishCompletion persists the completion write, adjusts the residue's
// stock and emits the CompletedCollection notification. The caller has
// already set status, actual quantity, completion timestamp and notes.
func (s *Service) finishCompletion(ctx context.Context, c *ScheduledCollection) error {
	if err := s.repo.Complete(ctx, c); err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			// Lost a race with a concurrent completion.
			return &InvalidTransitionError{Reason: "collection is already completed"}
		}
		return err
	}

	res, err := s.adjustStock(ctx, c)
	if err != nil {
		return err
	}

	_, err = s.notifier.Emit(ctx, notification.EmitInput{
		Title:             "Collection Completed",
		Message:           fmt.Sprintf("Collection of residue %s was completed successfully.", res.Name),
		NotificationType:  notification.TypeCompletedCollection,
		ResidueID:         &c.ResidueID,
		CollectionPointID: &c.CollectionPointID,
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("collection_id", c.ID).
		Str("residue_id", c.ResidueID).
		Float64("new_quantity", res.CurrentQuantity).
		Msg("collection completed")

	return nil
}

// adjustStock removes the collected amount from the residue's stock. The
// actual quantity is preferred over the estimate, the result is floored at
// zero, and the alert flag is recomputed and persisted. No notification is
// emitted here even when the alert flips to active; only the residue
// service's own call sites notify on flips.
func (s *Service) adjustStock(ctx context.Context, c *ScheduledCollection) (*residue.Residue, error) {
	res, err := s.residues.Get(ctx, c.ResidueID)
	if err != nil {
		return nil, err
	}

	removed := c.EstimatedQuantity
	if c.ActualQuantity != nil {
		removed = *c.ActualQuantity
	}

	res.CurrentQuantity -= removed
	if res.CurrentQuantity < 0 {
		res.CurrentQuantity = 0
	}

	lastCollection := s.now()
	res.LastCollectionDate = &lastCollection

	res.AlertActive, _ = residue.EvaluateAlert(res.CurrentQuantity, res.AlertThreshold, res.AlertActive)

	if err := s.residues.Update(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

// validateCreateInput validates the create scheduled collection input.
func validateCreateInput(input *models.ScheduledCollectionCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.ResidueID == "" {
		errs = append(errs, models.FieldError{Field: "residueId", Message: "is required"})
	}
	if input.CollectionPointID == "" {
		errs = append(errs, models.FieldError{Field: "collectionPointId", Message: "is required"})
	}
	if input.EstimatedQuantity < 0 {
		errs = append(errs, models.FieldError{Field: "estimatedQuantity", Message: "must be non-negative"})
	}
	if input.ScheduledDate.Time().IsZero() {
		errs = append(errs, models.FieldError{Field: "scheduledDate", Message: "is required"})
	}

	return errs
}

// validateUpdateInput validates the update scheduled collection input.
func validateUpdateInput(input *models.ScheduledCollectionUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Status != nil && !Status(*input.Status).Valid() {
		errs = append(errs, models.FieldError{
			Field:   "status",
			Message: "must be one of Pending, Completed, Cancelled",
		})
	}
	if input.EstimatedQuantity != nil && *input.EstimatedQuantity < 0 {
		errs = append(errs, models.FieldError{Field: "estimatedQuantity", Message: "must be non-negative"})
	}
	if input.ActualQuantity != nil && *input.ActualQuantity < 0 {
		errs = append(errs, models.FieldError{Field: "actualQuantity", Message: "must be non-negative"})
	}

	return errs
}

// toAPICollection builds the denormalized projection for a collection,
// joining in the referenced residue and collection point names.
func (s *Service) toAPICollection(ctx context.Context, c *ScheduledCollection) (*models.ScheduledCollection, error) {
	res, err := s.residues.Get(ctx, c.ResidueID)
	if err != nil {
		return nil, err
	}

	point, err := s.points.Get(ctx, c.CollectionPointID)
	if err != nil {
		return nil, err
	}

	return s.projection(c, res, point), nil
}

func (s *Service) projection(c *ScheduledCollection, res *residue.Residue, point *collectionpoint.CollectionPoint) *models.ScheduledCollection {
	return &models.ScheduledCollection{
		ID:                      c.ID,
		ResidueID:               c.ResidueID,
		ResidueName:             res.Name,
		CollectionPointID:       c.CollectionPointID,
		CollectionPointName:     point.Name,
		CollectionPointLocation: point.Location,
		ScheduledDate:           models.Timestamp(c.ScheduledDate),
		Status:                  string(c.Status),
		EstimatedQuantity:       c.EstimatedQuantity,
		ActualQuantity:          c.ActualQuantity,
		CreatedAt:               models.Timestamp(c.CreatedAt),
		CompletedAt:             models.TimestampPtr(c.CompletedAt),
		Notes:                   c.Notes,
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
