package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

// ProblemService manages the issue labels offered at the counter
type ProblemService struct {
	problemRepo repository.ProblemRepository
}

// NewProblemService creates a new problem service
func NewProblemService(problemRepo repository.ProblemRepository) *ProblemService {
	return &ProblemService{problemRepo: problemRepo}
}

func cleanLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", apperror.NewFieldError("label", "The label field is required.")
	}
	return label, nil
}

// CreateProblem adds an issue label
func (s *ProblemService) CreateProblem(ctx context.Context, label string) (*entity.Problem, error) {
	label, err := cleanLabel(label)
	if err != nil {
		return nil, err
	}
	problem := &entity.Problem{Label: label}
	if err := s.problemRepo.Create(ctx, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// GetProblem retrieves an issue label by ID
func (s *ProblemService) GetProblem(ctx context.Context, id uuid.UUID) (*entity.Problem, error) {
	problem, err := s.problemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, apperror.NewNotFoundError("Problem")
	}
	return problem, nil
}

// ListProblems returns every issue label
func (s *ProblemService) ListProblems(ctx context.Context) ([]entity.Problem, error) {
	return s.problemRepo.List(ctx)
}

// UpdateProblem renames an issue label
func (s *ProblemService) UpdateProblem(ctx context.Context, id uuid.UUID, label string) (*entity.Problem, error) {
	label, err := cleanLabel(label)
	if err != nil {
		return nil, err
	}
	problem, err := s.GetProblem(ctx, id)
	if err != nil {
		return nil, err
	}
	problem.Label = label
	if err := s.problemRepo.Update(ctx, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// DeleteProblem deletes an issue label. Bookings keep the text they were saved with.
func (s *ProblemService) DeleteProblem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProblem(ctx, id); err != nil {
		return err
	}
	return s.problemRepo.Delete(ctx, id)
}
