package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"gorm.io/gorm"
)

type configurationRepository struct {
	db *gorm.DB
}

// NewConfigurationRepository creates a new pricing configuration repository
func NewConfigurationRepository(db *gorm.DB) domainRepo.ConfigurationRepository {
	return &configurationRepository{db: db}
}

func (r *configurationRepository) Get(ctx context.Context) (*entity.Configuration, error) {
	var cfg entity.Configuration
	err := conn(ctx, r.db).Order("created_at ASC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cfg, err
}

func (r *configurationRepository) Save(ctx context.Context, cfg *entity.Configuration) error {
	if cfg.ID == uuid.Nil {
		return conn(ctx, r.db).Create(cfg).Error
	}
	return conn(ctx, r.db).Save(cfg).Error
}

func (r *configurationRepository) Delete(ctx context.Context) error {
	return conn(ctx, r.db).Where("1 = 1").Delete(&entity.Configuration{}).Error
}
