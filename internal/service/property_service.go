package service

import (
	"context"
	"fmt"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PropertyServiceImpl implements ports.PropertyService.
type PropertyServiceImpl struct {
	propertyRepo ports.PropertyRepository
	log          zerolog.Logger
}

// NewPropertyService creates a new PropertyServiceImpl.
func NewPropertyService(propertyRepo ports.PropertyRepository, log zerolog.Logger) *PropertyServiceImpl {
	return &PropertyServiceImpl{propertyRepo: propertyRepo, log: log}
}

func validatePropertyInput(in ports.PropertyInput) error {
	if in.Name == "" {
		return apperror.Validation("name is required")
	}
	if in.PriceCents < 0 {
		return apperror.Validation("price must be non-negative")
	}
	if !domain.ValidPropertyStatus(in.Status) {
		return apperror.Validation(fmt.Sprintf("unknown status: %s", in.Status))
	}
	return nil
}

// Create adds a property to the portfolio.
func (s *PropertyServiceImpl) Create(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Property{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create property: %w", err))
	}

	s.log.Info().Str("property_id", p.ID.String()).Str("name", p.Name).Msg("property created")
	return p, nil
}

// Get returns one property by id.
func (s *PropertyServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find property: %w", err))
	}
	if p == nil {
		return nil, apperror.ErrPropertyNotFound()
	}
	return p, nil
}

// List returns the portfolio, optionally filtered by status.
func (s *PropertyServiceImpl) List(ctx context.Context, status *domain.PropertyStatus) ([]domain.Property, error) {
	if status != nil && !domain.ValidPropertyStatus(*status) {
		return nil, apperror.Validation(fmt.Sprintf("unknown status: %s", *status))
	}
	properties, err := s.propertyRepo.List(ctx, status)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list properties: %w", err))
	}
	return properties, nil
}

// Update replaces the editable fields of a property.
func (s *PropertyServiceImpl) Update(ctx context.Context, id uuid.UUID, in ports.PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find property: %w", err))
	}
	if p == nil {
		return nil, apperror.ErrPropertyNotFound()
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Location = in.Location
	p.PriceCents = in.PriceCents
	p.ImageURL = in.ImageURL
	p.Status = in.Status
	p.UpdatedAt = time.Now().UTC()

	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update property: %w", err))
	}

	s.log.Info().Str("property_id", p.ID.String()).Msg("property updated")
	return p, nil
}

// Delete removes a property from the portfolio.
func (s *PropertyServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("find property: %w", err))
	}
	if p == nil {
		return apperror.ErrPropertyNotFound()
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("delete property: %w", err))
	}

	s.log.Info().Str("property_id", id.String()).Msg("property deleted")
	return nil
}
