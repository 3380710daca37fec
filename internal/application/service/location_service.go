package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// LocationService manages pickup and drop-off points
type LocationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// LocationInput carries a location create or update. Nil coordinates are missing.
type LocationInput struct {
	Name      string
	Latitude  *decimal.Decimal
	Longitude *decimal.Decimal
}

func coordinateError(field string, value *decimal.Decimal, limit decimal.Decimal) *apperror.FieldError {
	label := strings.ReplaceAll(field, "_", " ")
	if value == nil {
		return &apperror.FieldError{Field: field, Message: "The " + label + " field is required."}
	}
	if value.Abs().GreaterThan(limit) {
		return &apperror.FieldError{Field: field, Message: "The " + label + " field must be between -" + limit.String() + " and " + limit.String() + "."}
	}
	return nil
}

func validateLocation(in *LocationInput) error {
	var fieldErrors []apperror.FieldError
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 255 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "The name field is required and may not be greater than 255 characters."})
	}
	if fe := coordinateError("latitude", in.Latitude, maxLatitude); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if fe := coordinateError("longitude", in.Longitude, maxLongitude); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateLocation adds a location
func (s *LocationService) CreateLocation(ctx context.Context, input *LocationInput) (*entity.Location, error) {
	if err := validateLocation(input); err != nil {
		return nil, err
	}
	location := &entity.Location{
		Name:      input.Name,
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetLocation retrieves a location by ID
func (s *LocationService) GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperror.NewNotFoundError("Location")
	}
	return location, nil
}

// ListLocations returns every location ordered by name
func (s *LocationService) ListLocations(ctx context.Context) ([]entity.Location, error) {
	return s.locationRepo.List(ctx)
}

// UpdateLocation replaces the name and coordinates of a location
func (s *LocationService) UpdateLocation(ctx context.Context, id uuid.UUID, input *LocationInput) (*entity.Location, error) {
	if err := validateLocation(input); err != nil {
		return nil, err
	}
	location, err := s.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Name = input.Name
	location.Latitude = *input.Latitude
	location.Longitude = *input.Longitude
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation removes a location
func (s *LocationService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetLocation(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}
