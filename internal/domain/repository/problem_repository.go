package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
)

// ProblemRepository defines the interface for issue label data operations
type ProblemRepository interface {
	Create(ctx context.Context, problem *entity.Problem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Problem, error)
	Update(ctx context.Context, problem *entity.Problem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Problem, error)
}
