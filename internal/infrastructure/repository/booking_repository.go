package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/utils"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return translate(conn(ctx, r.db).Omit("Customer", "User").Create(booking).Error)
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := conn(ctx, r.db).
		Scopes(BranchScope(ctx)).
		Preload("Items").Preload("Customer").
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Booking, error) {
	var booking entity.Booking
	err := conn(ctx, r.db).
		Scopes(BranchScope(ctx)).
		Preload("Items").Preload("Customer").
		First(&booking, "receipt_number = ?", receiptNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) List(ctx context.Context, params *domainRepo.BookingFilterParams) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	query := conn(ctx, r.db).Model(&entity.Booking{}).Scopes(BranchScope(ctx))

	if params.Search != "" {
		query = query.Where("receipt_number ILIKE ? OR customer_phone ILIKE ?",
			likePattern(params.Search), likePattern(params.Search))
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.DeliveryType != nil {
		query = query.Where("delivery_type = ?", *params.DeliveryType)
	}
	if params.StartDate != nil {
		query = query.Where("booking_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("booking_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("booking_date DESC").
		Find(&bookings).Error

	return bookings, total, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	return conn(ctx, r.db).Model(&entity.Booking{}).
		Scopes(BranchScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

// ReceiptNumbers is not branch scoped: receipt numbers are unique across the shop.
func (r *bookingRepository) ReceiptNumbers(ctx context.Context, branchCode string) ([]string, error) {
	var numbers []string
	err := conn(ctx, r.db).Model(&entity.Booking{}).
		Where("receipt_number LIKE ?", utils.EscapeLike(branchCode)+"-%").
		Pluck("receipt_number", &numbers).Error
	return numbers, err
}

func (r *bookingRepository) Summarize(ctx context.Context, from, to time.Time) ([]domainRepo.BookingSummaryRow, error) {
	var rows []domainRepo.BookingSummaryRow
	err := conn(ctx, r.db).Model(&entity.Booking{}).
		Scopes(BranchScope(ctx)).
		Select(`delivery_type,
			COUNT(*) AS bookings,
			COALESCE(SUM(number_of_units), 0) AS units,
			COALESCE(SUM(amount_total), 0) AS amount_total,
			COALESCE(SUM(sales_tax_amount), 0) AS sales_tax_amount,
			COALESCE(SUM(hanger_amount), 0) AS hanger_amount,
			COALESCE(SUM(total_amount), 0) AS total_amount`).
		Where("booking_date BETWEEN ? AND ?", from, to).
		Where("status <> ?", enum.BookingStatusCancelled).
		Group("delivery_type").
		Order("delivery_type").
		Scan(&rows).Error
	return rows, err
}
