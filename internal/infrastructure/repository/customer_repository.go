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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translate(conn(ctx, r.db).Create(customer).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) FirstOrCreateByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).
		Where(entity.Customer{Phone: phone}).
		Attrs(entity.Customer{CustomerType: entity.DefaultCustomerType}).
		FirstOrCreate(&customer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepository) IncrementBookings(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("number_of_bookings", gorm.Expr("number_of_bookings + 1")).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translate(conn(ctx, r.db).Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Customer{})
	if search != "" {
		query = query.Where("phone ILIKE ? OR customer_type ILIKE ?", likePattern(search), likePattern(search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&customers).Error

	return customers, total, err
}
