package repository

import (
	"context"

	"github.com/zaylabs/dryclean-api/internal/domain/entity"
)

// SettingRepository reads and writes the single branding row
type SettingRepository interface {
	// FirstOrCreate returns the settings row, inserting defaults when none exists
	FirstOrCreate(ctx context.Context, defaults *entity.AppSetting) (*entity.AppSetting, error)
	Save(ctx context.Context, setting *entity.AppSetting) error
}
