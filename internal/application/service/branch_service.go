package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

// BranchService handles shop locations
type BranchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// BranchInput represents the create/update branch input
type BranchInput struct {
	BranchName string
	BranchCode string
	Address    *string
	Mobile     *string
}

func validateBranch(b *entity.Branch) error {
	var fieldErrors []apperror.FieldError
	if b.BranchName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "branch_name", Message: "The branch name field is required."})
	}
	if b.BranchCode == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "branch_code", Message: "The branch code field is required."})
	} else if strings.ContainsAny(b.BranchCode, " -%_") {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "branch_code", Message: "The branch code may only contain letters and digits."})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateBranch registers a new shop location
func (s *BranchService) CreateBranch(ctx context.Context, input *BranchInput) (*entity.Branch, error) {
	branch := &entity.Branch{
		BranchName: strings.TrimSpace(input.BranchName),
		BranchCode: utils.NormalizeBranchCode(input.BranchCode),
		Address:    input.Address,
		Mobile:     input.Mobile,
	}
	if err := validateBranch(branch); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A branch with this code already exists")
		}
		return nil, err
	}

	log.Printf("Branch %s created", branch.BranchCode)
	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// GetBranchByCode retrieves a branch by its code
func (s *BranchService) GetBranchByCode(ctx context.Context, code string) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByCode(ctx, utils.NormalizeBranchCode(code))
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// ListBranches lists branches matching search on name or code
func (s *BranchService) ListBranches(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Branch], error) {
	params.Validate()
	branches, total, err := s.branchRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(branches, pag), nil
}

// UpdateBranch replaces a branch's details
func (s *BranchService) UpdateBranch(ctx context.Context, id uuid.UUID, input *BranchInput) (*entity.Branch, error) {
	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	branch.BranchName = strings.TrimSpace(input.BranchName)
	branch.BranchCode = utils.NormalizeBranchCode(input.BranchCode)
	branch.Address = input.Address
	branch.Mobile = input.Mobile
	if err := validateBranch(branch); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A branch with this code already exists")
		}
		return nil, err
	}
	return branch, nil
}

// DeleteBranch deletes a branch
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBranch(ctx, id); err != nil {
		return err
	}
	return s.branchRepo.Delete(ctx, id)
}
