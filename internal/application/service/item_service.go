package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
)

const itemCodeLength = 4

// ItemService manages the garment price list
type ItemService struct {
	itemRepo repository.ItemRepository
	clock    func() time.Time
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, clock func() time.Time) *ItemService {
	if clock == nil {
		clock = time.Now
	}
	return &ItemService{itemRepo: itemRepo, clock: clock}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Code          string
	Name          string
	UnitsPerPiece int
	UnitPrice     decimal.Decimal
	Status        enum.ItemStatus
	Image         *string
	DateAdded     *time.Time
}

// UpdateItemInput represents the update item input; nil fields are left unchanged
type UpdateItemInput struct {
	ID            uuid.UUID
	Code          *string
	Name          *string
	UnitsPerPiece *int
	UnitPrice     *decimal.Decimal
	Status        *enum.ItemStatus
	Image         *string
	DateAdded     *time.Time
}

func validateItem(item *entity.Item) error {
	var fieldErrors []apperror.FieldError
	if len([]rune(item.Code)) != itemCodeLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "code", Message: "The code must be exactly 4 characters."})
	}
	if item.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "The name field is required."})
	}
	if item.UnitsPerPiece < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "units_per_piece", Message: "The units per piece must be at least 0."})
	}
	if item.UnitPrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "The unit price must be at least 0."})
	}
	if !item.Status.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "The selected status is invalid."})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateItem adds an item to the price list
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	item := &entity.Item{
		Code:          strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:          strings.TrimSpace(input.Name),
		UnitsPerPiece: input.UnitsPerPiece,
		UnitPrice:     input.UnitPrice.Round(2),
		Status:        input.Status,
		Image:         input.Image,
		DateAdded:     now.New(s.clock()).BeginningOfDay(),
	}
	if item.Status == "" {
		item.Status = enum.ItemStatusActive
	}
	if input.DateAdded != nil {
		item.DateAdded = *input.DateAdded
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("An item with this code already exists")
		}
		return nil, err
	}

	log.Printf("Item %s (%s) added at %s", item.Code, item.Name, item.UnitPrice.StringFixed(2))
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems returns a page of items filtered by status and name/code search
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateItem updates an item. Existing bookings keep the price they were taken at.
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		item.Code = strings.ToUpper(strings.TrimSpace(*input.Code))
	}
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.UnitsPerPiece != nil {
		item.UnitsPerPiece = *input.UnitsPerPiece
	}
	if input.UnitPrice != nil {
		item.UnitPrice = input.UnitPrice.Round(2)
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.Image != nil {
		item.Image = input.Image
	}
	if input.DateAdded != nil {
		item.DateAdded = *input.DateAdded
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("An item with this code already exists")
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the price list
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}
