package service

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

// maxSalesTax is the highest accepted sales tax percentage
var maxSalesTax = decimal.NewFromInt(100)

// ConfigurationService manages the shop's pricing configuration
type ConfigurationService struct {
	configRepo repository.ConfigurationRepository
}

// NewConfigurationService creates a new configuration service
func NewConfigurationService(configRepo repository.ConfigurationRepository) *ConfigurationService {
	return &ConfigurationService{configRepo: configRepo}
}

// ConfigurationInput represents the full set of pricing parameters
type ConfigurationInput struct {
	SalesTax                decimal.Decimal
	NumberOfDaysForNormal   int
	NumberOfDaysForUrgent   int
	ChargesForNormalUrgent  decimal.Decimal
	ChargesForSameDayUrgent decimal.Decimal
	Hangers                 decimal.Decimal
	NTNNumber               string
}

// GetConfiguration returns the configuration or a not-found error carrying
// the same message booking creation reports
func (s *ConfigurationService) GetConfiguration(ctx context.Context) (*entity.Configuration, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.NewAppError(http.StatusNotFound, apperror.ErrConfigurationMissing.Message)
	}
	return cfg, nil
}

func validateConfiguration(in *ConfigurationInput) error {
	var fieldErrors []apperror.FieldError
	nonNegative := func(field string, d decimal.Decimal) {
		if d.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "The " + strings.ReplaceAll(field, "_", " ") + " must be at least 0."})
		}
	}
	nonNegative("sales_tax", in.SalesTax)
	if in.SalesTax.GreaterThan(maxSalesTax) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sales_tax", Message: "The sales tax may not be greater than 100."})
	}
	nonNegative("charges_for_normal_urgent", in.ChargesForNormalUrgent)
	nonNegative("charges_for_same_day_urgent", in.ChargesForSameDayUrgent)
	nonNegative("hangers", in.Hangers)
	if in.NumberOfDaysForNormal < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "number_of_days_for_normal", Message: "The number of days for normal must be at least 0."})
	}
	if in.NumberOfDaysForUrgent < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "number_of_days_for_urgent", Message: "The number of days for urgent must be at least 0."})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// SaveConfiguration creates the configuration or overwrites the existing row
func (s *ConfigurationService) SaveConfiguration(ctx context.Context, input *ConfigurationInput) (*entity.Configuration, error) {
	if err := validateConfiguration(input); err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &entity.Configuration{}
	}

	cfg.SalesTax = input.SalesTax.Round(2)
	cfg.NumberOfDaysForNormal = input.NumberOfDaysForNormal
	cfg.NumberOfDaysForUrgent = input.NumberOfDaysForUrgent
	cfg.ChargesForNormalUrgent = input.ChargesForNormalUrgent.Round(2)
	cfg.ChargesForSameDayUrgent = input.ChargesForSameDayUrgent.Round(2)
	cfg.Hangers = input.Hangers.Round(2)
	cfg.NTNNumber = strings.TrimSpace(input.NTNNumber)

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	log.Printf("Configuration saved: tax %s%%, normal %d day(s), urgent %d day(s)", cfg.SalesTax.StringFixed(2), cfg.NumberOfDaysForNormal, cfg.NumberOfDaysForUrgent)
	return cfg, nil
}

// DeleteConfiguration removes the configuration; booking creation is blocked until it is saved again
func (s *ConfigurationService) DeleteConfiguration(ctx context.Context) error {
	if _, err := s.GetConfiguration(ctx); err != nil {
		return err
	}
	return s.configRepo.Delete(ctx)
}
