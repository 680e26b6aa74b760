package collectionpoint

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/models"
)

// kmPerDegreeLat is the approximate distance covered by one degree of
// latitude. Longitude shrinks with the cosine of the latitude.
const kmPerDegreeLat = 111.0

// ServiceConfig holds configuration for the collection point service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger

	// Now supplies timestamps; defaults to time.Now. Injectable for tests.
	Now func() time.Time
}

// Service provides collection point operations.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new collection point service.
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

// Get retrieves a collection point by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.CollectionPoint, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toAPIPoint(p)
	return &result, nil
}

// List retrieves collection points ordered by name.
func (s *Service) List(ctx context.Context, page, pageSize int) (*models.PagedCollectionPoints, error) {
	page, pageSize = models.ClampPage(page, pageSize)

	points, total, err := s.repo.List(ctx, ListOptions{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.CollectionPoint, 0, len(points))
	for _, p := range points {
		items = append(items, toAPIPoint(p))
	}

	return &models.PagedCollectionPoints{
		Items: items,
		Meta:  models.NewPageMeta(page, pageSize, total),
	}, nil
}

// Create creates a new collection point. New points start active.
func (s *Service) Create(ctx context.Context, input *models.CollectionPointCreateRequest) (*models.CollectionPoint, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	p := &CollectionPoint{
		ID:                 "cpt_" + uuid.New().String()[:22],
		Name:               input.Name,
		Location:           input.Location,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		ResponsiblePerson:  input.ResponsiblePerson,
		Contact:            input.Contact,
		IsActive:           true,
		AcceptedCategories: input.AcceptedCategories,
		CreatedAt:          s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPoint(p)
	return &result, nil
}

// Update applies a partial update to a collection point.
func (s *Service) Update(ctx context.Context, id string, input *models.CollectionPointUpdateRequest) (*models.CollectionPoint, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fieldErrors := validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Location != nil {
		p.Location = *input.Location
	}
	if input.Latitude != nil {
		p.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		p.Longitude = *input.Longitude
	}
	if input.ResponsiblePerson != nil {
		p.ResponsiblePerson = *input.ResponsiblePerson
	}
	if input.Contact != nil {
		p.Contact = *input.Contact
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.AcceptedCategories != nil {
		p.AcceptedCategories = *input.AcceptedCategories
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPoint(p)
	return &result, nil
}

// Delete deletes a collection point by ID. Deletion is restricted while
// notifications reference the point.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// FindNearby retrieves active collection points within radiusKm of the given
// coordinate. The search is a bounding-box approximation, not a true
// great-circle distance; it is adequate for the small radii operators use.
func (s *Service) FindNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]models.CollectionPoint, error) {
	if fieldErrors := validateCoordinates(latitude, longitude); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	latDiff := radiusKm / kmPerDegreeLat
	lonDiff := radiusKm / (kmPerDegreeLat * math.Cos(latitude*(math.Pi/180)))

	points, err := s.repo.ListWithinBounds(ctx, Bounds{
		MinLat: latitude - latDiff,
		MaxLat: latitude + latDiff,
		MinLon: longitude - lonDiff,
		MaxLon: longitude + lonDiff,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.CollectionPoint, 0, len(points))
	for _, p := range points {
		items = append(items, toAPIPoint(p))
	}
	return items, nil
}

// validateCreateInput validates the create collection point input.
func validateCreateInput(input *models.CollectionPointCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	}

	errs = append(errs, validateCoordinates(input.Latitude, input.Longitude)...)

	return errs
}

// validateUpdateInput validates the update collection point input.
func validateUpdateInput(input *models.CollectionPointUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil && *input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "cannot be empty"})
	}
	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		errs = append(errs, models.FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		errs = append(errs, models.FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}

	return errs
}

// validateCoordinates validates a latitude/longitude pair.
func validateCoordinates(latitude, longitude float64) []models.FieldError {
	var errs []models.FieldError

	if latitude < -90 || latitude > 90 {
		errs = append(errs, models.FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if longitude < -180 || longitude > 180 {
		errs = append(errs, models.FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}

	return errs
}

// toAPIPoint converts a domain CollectionPoint to an API CollectionPoint.
func toAPIPoint(p *CollectionPoint) models.CollectionPoint {
	return models.CollectionPoint{
		ID:                 p.ID,
		Name:               p.Name,
		Location:           p.Location,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		ResponsiblePerson:  p.ResponsiblePerson,
		Contact:            p.Contact,
		IsActive:           p.IsActive,
		AcceptedCategories: p.AcceptedCategories,
		CreatedAt:          models.Timestamp(p.CreatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
