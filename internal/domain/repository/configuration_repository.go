package repository

import (
	"context"

	"github.com/zaylabs/dryclean-api/internal/domain/entity"
)

// ConfigurationRepository reads and writes the single pricing configuration row
type ConfigurationRepository interface {
	// Get returns the configuration, or nil when none has been saved
	Get(ctx context.Context) (*entity.Configuration, error)
	Save(ctx context.Context, cfg *entity.Configuration) error
	Delete(ctx context.Context) error
}
