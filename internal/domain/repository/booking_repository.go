package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
)

// BookingRepository defines the interface for booking data operations.
// Reads are limited to the branch carried in the context unless the context
// skips branch scope.
type BookingRepository interface {
	// Create inserts the booking together with its items
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Booking, error)
	List(ctx context.Context, params *BookingFilterParams) ([]entity.Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error
	// ReceiptNumbers returns every receipt number issued under the branch prefix
	ReceiptNumbers(ctx context.Context, branchCode string) ([]string, error)
	// Summarize aggregates bookings per delivery type between from and to
	Summarize(ctx context.Context, from, to time.Time) ([]BookingSummaryRow, error)
}

// BookingFilterParams contains filtering parameters for booking queries
type BookingFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.BookingStatus
	DeliveryType *enum.DeliveryType
	StartDate    *time.Time
	EndDate      *time.Time
}

// BookingSummaryRow is one delivery type's aggregate in a report
type BookingSummaryRow struct {
	DeliveryType   enum.DeliveryType
	Bookings       int64
	Units          int64
	AmountTotal    decimal.Decimal
	SalesTaxAmount decimal.Decimal
	HangerAmount   decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ReceiptSequenceRepository hands out per-branch receipt sequence numbers
type ReceiptSequenceRepository interface {
	// Next locks the branch counter, increments it and returns the new value.
	// A missing counter is seeded from highest before incrementing. Must be
	// called inside a transaction so the lock is held until commit.
	Next(ctx context.Context, branchCode string, highest func(ctx context.Context) (int, error)) (int, error)
}
