package repository

import (
	"context"

	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new branding settings repository
func NewSettingRepository(db *gorm.DB) domainRepo.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FirstOrCreate(ctx context.Context, defaults *entity.AppSetting) (*entity.AppSetting, error) {
	var setting entity.AppSetting
	err := conn(ctx, r.db).
		Order("created_at ASC").
		Attrs(*defaults).
		FirstOrCreate(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Save(ctx context.Context, setting *entity.AppSetting) error {
	return conn(ctx, r.db).Save(setting).Error
}
