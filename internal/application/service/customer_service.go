package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Phone        string
	CustomerType string
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID               uuid.UUID
	Phone            *string
	CustomerType     *string
	NumberOfBookings *int
}

func validateCustomer(c *entity.Customer) error {
	var fieldErrors []apperror.FieldError
	if c.Phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "The phone field is required."})
	}
	if c.NumberOfBookings < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "number_of_bookings", Message: "The number of bookings must be at least 0."})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Phone:        utils.NormalizePhone(input.Phone),
		CustomerType: strings.TrimSpace(input.CustomerType),
	}
	if customer.CustomerType == "" {
		customer.CustomerType = entity.DefaultCustomerType
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A customer with this phone already exists")
		}
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// FindByPhone looks a customer up at the counter
func (s *CustomerService) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers whose phone contains search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, utils.NormalizePhone(search))
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		customer.Phone = utils.NormalizePhone(*input.Phone)
	}
	if input.CustomerType != nil {
		customer.CustomerType = strings.TrimSpace(*input.CustomerType)
	}
	if input.NumberOfBookings != nil {
		customer.NumberOfBookings = *input.NumberOfBookings
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A customer with this phone already exists")
		}
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
