package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return translate(conn(ctx, r.db).Create(branch).Error)
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := conn(ctx, r.db).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) GetByCode(ctx context.Context, code string) (*entity.Branch, error) {
	var branch entity.Branch
	err := conn(ctx, r.db).First(&branch, "branch_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return translate(conn(ctx, r.db).Save(branch).Error)
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Branch{}, "id = ?", id).Error
}

func (r *branchRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	var branches []entity.Branch
	var total int64

	query := conn(ctx, r.db).Model(&entity.Branch{})
	if search != "" {
		query = query.Where("branch_name ILIKE ? OR branch_code ILIKE ?", likePattern(search), likePattern(search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("branch_code ASC").
		Find(&branches).Error

	return branches, total, err
}
