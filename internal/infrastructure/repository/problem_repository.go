package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"gorm.io/gorm"
)

type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(db *gorm.DB) domainRepo.ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) Create(ctx context.Context, problem *entity.Problem) error {
	return conn(ctx, r.db).Create(problem).Error
}

func (r *problemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Problem, error) {
	var problem entity.Problem
	err := conn(ctx, r.db).First(&problem, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &problem, err
}

func (r *problemRepository) Update(ctx context.Context, problem *entity.Problem) error {
	return conn(ctx, r.db).Save(problem).Error
}

func (r *problemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Problem{}, "id = ?", id).Error
}

func (r *problemRepository) List(ctx context.Context) ([]entity.Problem, error) {
	var problems []entity.Problem
	err := conn(ctx, r.db).Order("label ASC").Find(&problems).Error
	return problems, err
}
