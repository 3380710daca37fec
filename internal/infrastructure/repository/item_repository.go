package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new catalog item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return translate(conn(ctx, r.db).Create(item).Error)
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDs retrieves multiple items by their IDs in a single query
func (r *itemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	if len(ids) == 0 {
		return []entity.Item{}, nil
	}
	var items []entity.Item
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *itemRepository) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var item entity.Item
	err := conn(ctx, r.db).First(&item, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return translate(conn(ctx, r.db).Save(item).Error)
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Item{}, "id = ?", id).Error
}

func (r *itemRepository) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := conn(ctx, r.db).Model(&entity.Item{})
	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", likePattern(params.Search), likePattern(params.Search))
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("code ASC").
		Find(&items).Error

	return items, total, err
}

func (r *itemRepository) ListActive(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := conn(ctx, r.db).
		Where("status = ?", enum.ItemStatusActive).
		Order("name ASC").
		Find(&items).Error
	return items, err
}
