package service

import (
	"context"
	"strings"

	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

// SettingService manages the branding shown by the counter front end
type SettingService struct {
	settingRepo repository.SettingRepository
	defaultName string
}

// NewSettingService creates a new setting service. defaultName seeds app_name
// the first time the settings are read.
func NewSettingService(settingRepo repository.SettingRepository, defaultName string) *SettingService {
	return &SettingService{settingRepo: settingRepo, defaultName: defaultName}
}

// SettingInput replaces every branding field
type SettingInput struct {
	AppName     string
	Description string
	Color       string
	Logo        *string
	Favicon     *string
}

// GetSettings returns the settings row, creating it with defaults on first use
func (s *SettingService) GetSettings(ctx context.Context) (*entity.AppSetting, error) {
	return s.settingRepo.FirstOrCreate(ctx, &entity.AppSetting{
		AppName: s.defaultName,
		Color:   entity.DefaultAppColor,
	})
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateSettings(in *SettingInput) error {
	var fieldErrors []apperror.FieldError
	if err := validate.Var(in.AppName, "required,max=255"); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "app_name", Message: "The app name field is required and may not be greater than 255 characters."})
	}
	if err := validate.Var(in.Color, "required,max=7,hexcolor"); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "color", Message: "The color must be a hex color such as #3b82f6."})
	}
	if in.Logo != nil {
		if err := validate.Var(*in.Logo, "max=255,url"); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "logo", Message: "The logo must be a valid URL."})
		}
	}
	if in.Favicon != nil {
		if err := validate.Var(*in.Favicon, "max=255,url"); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "favicon", Message: "The favicon must be a valid URL."})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// SaveSettings overwrites the branding row
func (s *SettingService) SaveSettings(ctx context.Context, input *SettingInput) (*entity.AppSetting, error) {
	input.AppName = strings.TrimSpace(input.AppName)
	input.Color = strings.TrimSpace(input.Color)
	input.Logo = trimOptional(input.Logo)
	input.Favicon = trimOptional(input.Favicon)
	if err := validateSettings(input); err != nil {
		return nil, err
	}

	setting, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	setting.AppName = input.AppName
	setting.Description = strings.TrimSpace(input.Description)
	setting.Color = strings.ToLower(input.Color)
	setting.Logo = input.Logo
	setting.Favicon = input.Favicon

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}
