package residue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/models"
	"github.com/wastetrack/wastetrack/internal/notification"
)

// ServiceConfig holds configuration for the residue service.
type ServiceConfig struct {
	Repository Repository
	Notifier   notification.Notifier
	Logger     zerolog.Logger

	// Now supplies timestamps; defaults to time.Now. Injectable for tests.
	Now func() time.Time
}

// Service provides residue operations.
type Service struct {
	repo     Repository
	notifier notification.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a new residue service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:     cfg.Repository,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Get retrieves a residue by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Residue, error) {
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toAPIResidue(res)
	return &result, nil
}

// List retrieves residues ordered by name.
func (s *Service) List(ctx context.Context, page, pageSize int) (*models.PagedResidues, error) {
	page, pageSize = models.ClampPage(page, pageSize)

	residues, total, err := s.repo.List(ctx, ListOptions{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.Residue, 0, len(residues))
	for _, res := range residues {
		items = append(items, toAPIResidue(res))
	}

	return &models.PagedResidues{
		Items: items,
		Meta:  models.NewPageMeta(page, pageSize, total),
	}, nil
}

// Create creates a new residue. The alert flag is derived from the initial
// quantity, and an alert notification is emitted when the new record is
// already at or over its threshold.
func (s *Service) Create(ctx context.Context, input *models.ResidueCreateRequest) (*models.Residue, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	active, _ := EvaluateAlert(input.CurrentQuantity, input.AlertThreshold, false)

	res := &Residue{
		ID:              "res_" + uuid.New().String()[:22],
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		CurrentQuantity: input.CurrentQuantity,
		AlertThreshold:  input.AlertThreshold,
		AlertActive:     active,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	if res.AlertActive {
		if err := s.emitAlert(ctx, res); err != nil {
			return nil, err
		}
	}

	result := toAPIResidue(res)
	return &result, nil
}

// Update applies a partial update to a residue. The alert flag is recomputed
// after the mutation, and an alert notification is emitted only on an
// inactive-to-active transition.
func (s *Service) Update(ctx context.Context, id string, input *models.ResidueUpdateRequest) (*models.Residue, error) {
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fieldErrors := validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.Name != nil {
		res.Name = *input.Name
	}
	if input.Description != nil {
		res.Description = *input.Description
	}
	if input.Category != nil {
		res.Category = *input.Category
	}
	if input.CurrentQuantity != nil {
		res.CurrentQuantity = *input.CurrentQuantity
	}
	if input.AlertThreshold != nil {
		res.AlertThreshold = *input.AlertThreshold
	}

	active, transitioned := EvaluateAlert(res.CurrentQuantity, res.AlertThreshold, res.AlertActive)
	res.AlertActive = active

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	if transitioned {
		if err := s.emitAlert(ctx, res); err != nil {
			return nil, err
		}
	}

	result := toAPIResidue(res)
	return &result, nil
}

// Delete deletes a residue by ID. Deletion is restricted while notifications
// reference the residue.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ReconcileAlerts scans all residues for records whose persisted alert flag
// disagrees with the live quantity/threshold comparison and corrects them,
// emitting a notification for each inactive-to-active flip. It reports
// whether any record was corrected. Running it twice with no intervening
// mutation corrects nothing the second time.
func (s *Service) ReconcileAlerts(ctx context.Context) (bool, error) {
	inconsistent, err := s.repo.ListAlertInconsistent(ctx)
	if err != nil {
		return false, err
	}

	if len(inconsistent) == 0 {
		return false, nil
	}

	for _, res := range inconsistent {
		active, transitioned := EvaluateAlert(res.CurrentQuantity, res.AlertThreshold, res.AlertActive)
		res.AlertActive = active

		if err := s.repo.Update(ctx, res); err != nil {
			return false, err
		}

		if transitioned {
			if err := s.emitAlert(ctx, res); err != nil {
				return false, err
			}
		}

		s.logger.Info().
			Str("residue_id", res.ID).
			Bool("alert_active", res.AlertActive).
			Msg("corrected drifted alert flag")
	}

	return true, nil
}

// emitAlert emits a collection alert notification for a residue.
func (s *Service) emitAlert(ctx context.Context, res *Residue) error {
	_, err := s.notifier.Emit(ctx, notification.EmitInput{
		Title:            "Waste Collection Alert",
		Message:          fmt.Sprintf("Residue %s has reached its collection threshold.", res.Name),
		NotificationType: notification.TypeCollectionAlert,
		ResidueID:        &res.ID,
	})
	return err
}

// validateCreateInput validates the create residue input.
func validateCreateInput(input *models.ResidueCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	}
	if input.Category == "" {
		errs = append(errs, models.FieldError{Field: "category", Message: "is required"})
	}
	if input.CurrentQuantity < 0 {
		errs = append(errs, models.FieldError{Field: "currentQuantity", Message: "must be non-negative"})
	}
	if input.AlertThreshold < 0 {
		errs = append(errs, models.FieldError{Field: "alertThreshold", Message: "must be non-negative"})
	}

	return errs
}

// validateUpdateInput validates the update residue input.
func validateUpdateInput(input *models.ResidueUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil && *input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "cannot be empty"})
	}
	if input.Category != nil && *input.Category == "" {
		errs = append(errs, models.FieldError{Field: "category", Message: "cannot be empty"})
	}
	if input.CurrentQuantity != nil && *input.CurrentQuantity < 0 {
		errs = append(errs, models.FieldError{Field: "currentQuantity", Message: "must be non-negative"})
	}
	if input.AlertThreshold != nil && *input.AlertThreshold < 0 {
		errs = append(errs, models.FieldError{Field: "alertThreshold", Message: "must be non-negative"})
	}

	return errs
}

// toAPIResidue converts a domain Residue to an API Residue.
func toAPIResidue(res *Residue) models.Residue {
	return models.Residue{
		ID:                 res.ID,
		Name:               res.Name,
		Description:        res.Description,
		Category:           res.Category,
		CurrentQuantity:    res.CurrentQuantity,
		AlertThreshold:     res.AlertThreshold,
		AlertActive:        res.AlertActive,
		CreatedAt:          models.Timestamp(res.CreatedAt),
		LastCollectionDate: models.TimestampPtr(res.LastCollectionDate),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
