package service

import (
	"context"
	"errors"
	propertieserrors "roost/internal/properties/errors"
	"roost/internal/properties/repository"
	"roost/internal/properties/validator"
	"roost/pkg/config"
	apperrors "roost/pkg/errors"
	"roost/pkg/model"
	"roost/pkg/sanitizer"
	"sync"
)

type PropertyService interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error)
	GetByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Property, int64, error)
	Update(ctx context.Context, id string, hostID string, updates *model.PropertyUpdate) error
	SetActive(ctx context.Context, id string, hostID string, active bool) error
	Delete(ctx context.Context, id string, hostID string) error
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	validator *validator.PropertyValidator,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *propertyService) Create(ctx context.Context, property *model.Property) error {
	s.sanitize(property)
	s.applyDefaultsForNewProperty(property)

	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed",
			"title", property.Title,
			"host_id", property.HostID,
			"error", err,
		)
		return apperrors.Validation("Property validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property",
			"title", property.Title,
			"host_id", property.HostID,
			"error", err,
		)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created successfully",
		"id", property.ID,
		"title", property.Title,
		"host_id", property.HostID,
		"pricing_type", property.Pricing.PricingType,
	)

	return nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		s.cfg.Log.Error("Failed to get property by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	return property, nil
}

func (s *propertyService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	skip := config.NormalizeOffset(offset)

	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count properties", "error", err)
			errCount = apperrors.Internal("Failed to count properties", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		properties, err = s.repo.FindAll(ctx, limit, skip)
		if err != nil {
			s.cfg.Log.Error("Failed to get all properties",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve properties", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return properties, count, nil
}

func (s *propertyService) GetByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Property, int64, error) {
	if hostID == "" {
		return nil, 0, apperrors.InvalidInput("Host ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	skip := config.NormalizeOffset(offset)

	properties, err := s.repo.FindByHost(ctx, hostID, limit, skip)
	if err != nil {
		s.cfg.Log.Error("Failed to get properties by host",
			"host_id", hostID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve host properties", err)
	}

	count, err := s.repo.CountByHost(ctx, hostID)
	if err != nil {
		s.cfg.Log.Error("Failed to count properties by host",
			"host_id", hostID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to count host properties", err)
	}

	return properties, count, nil
}

func (s *propertyService) Update(ctx context.Context, id string, hostID string, updates *model.PropertyUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		return apperrors.Internal("Failed to check property existence", err)
	}

	if existing.HostID != hostID {
		return apperrors.Forbidden("Only the property's host can update it")
	}

	s.sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Property update validation failed",
			"id", id,
			"error", err,
		)
		return apperrors.Validation("Property validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, updates); err != nil {
		s.cfg.Log.Error("Failed to update property",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update property", err)
	}

	s.cfg.Log.Info("Property updated successfully", "id", id)

	return nil
}

func (s *propertyService) SetActive(ctx context.Context, id string, hostID string, active bool) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		return apperrors.Internal("Failed to check property existence", err)
	}

	if existing.HostID != hostID {
		return apperrors.Forbidden("Only the property's host can change its listing status")
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		s.cfg.Log.Error("Failed to set property active flag",
			"id", id,
			"active", active,
			"error", err,
		)
		return apperrors.Internal("Failed to update property listing status", err)
	}

	s.cfg.Log.Info("Property listing status changed",
		"id", id,
		"active", active,
	)

	return nil
}

// Delete removes a listing permanently. Existing bookings keep their own
// records; delisting (SetActive false) is the reversible alternative.
func (s *propertyService) Delete(ctx context.Context, id string, hostID string) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		return apperrors.Internal("Failed to check property existence", err)
	}

	if existing.HostID != hostID {
		return apperrors.Forbidden("Only the property's host can delete it")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to delete property",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete property", err)
	}

	s.cfg.Log.Info("Property deleted", "id", id, "host_id", hostID)

	return nil
}

func (s *propertyService) sanitize(property *model.Property) {
	property.Title = sanitizer.NormalizeTitle(property.Title)
	property.Location.Address = sanitizer.TrimAndNormalize(property.Location.Address)
	property.Location.City = sanitizer.TrimAndNormalize(property.Location.City)
	property.Location.Country = sanitizer.TrimAndNormalize(property.Location.Country)
	for i := range property.Extras {
		property.Extras[i].Name = sanitizer.NormalizeExtraName(property.Extras[i].Name)
	}
}

func (s *propertyService) sanitizeUpdate(updates *model.PropertyUpdate) {
	if updates.Title != nil {
		normalized := sanitizer.NormalizeTitle(*updates.Title)
		updates.Title = &normalized
	}
	if updates.Location != nil {
		updates.Location.Address = sanitizer.TrimAndNormalize(updates.Location.Address)
		updates.Location.City = sanitizer.TrimAndNormalize(updates.Location.City)
		updates.Location.Country = sanitizer.TrimAndNormalize(updates.Location.Country)
	}
	if updates.Extras != nil {
		extras := *updates.Extras
		for i := range extras {
			extras[i].Name = sanitizer.NormalizeExtraName(extras[i].Name)
		}
	}
}

// New listings start active with an untouched auto-approval counter. The
// counter only ever moves through ConsumeAutoApproval.
func (s *propertyService) applyDefaultsForNewProperty(property *model.Property) {
	property.Active = true
	property.FirstFiveApproved = 0
	if property.Pricing.PricingType == model.PricingHourly && property.Pricing.MinHours == 0 {
		property.Pricing.MinHours = 1
	}
}
