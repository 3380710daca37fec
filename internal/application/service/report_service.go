package service

import (
	"context"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

// ReportService aggregates bookings for the back office
type ReportService struct {
	bookingRepo repository.BookingRepository
	clock       func() time.Time
}

// NewReportService creates a new report service
func NewReportService(bookingRepo repository.BookingRepository, clock func() time.Time) *ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportService{bookingRepo: bookingRepo, clock: clock}
}

// BookingReportInput bounds the report; nil dates default to the current month
type BookingReportInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// BookingReport is the per delivery type breakdown plus grand totals
type BookingReport struct {
	From   time.Time
	To     time.Time
	Rows   []repository.BookingSummaryRow
	Totals repository.BookingSummaryRow
}

// BookingReport summarises non-cancelled bookings taken between the given days inclusive
func (s *ReportService) BookingReport(ctx context.Context, input *BookingReportInput) (*BookingReport, error) {
	current := now.New(s.clock())
	from := current.BeginningOfMonth()
	to := current.EndOfMonth()

	if input.StartDate != nil {
		from = dayIn(*input.StartDate, from.Location())
	}
	if input.EndDate != nil {
		to = now.New(dayIn(*input.EndDate, to.Location())).EndOfDay()
	}
	if to.Before(from) {
		return nil, apperror.NewFieldError("end_date", "The end date must be a date after or equal to start date.")
	}

	rows, err := s.bookingRepo.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.BookingSummaryRow{}
	}

	totals := repository.BookingSummaryRow{
		AmountTotal:    decimal.Zero,
		SalesTaxAmount: decimal.Zero,
		HangerAmount:   decimal.Zero,
		TotalAmount:    decimal.Zero,
	}
	for _, row := range rows {
		totals.Bookings += row.Bookings
		totals.Units += row.Units
		totals.AmountTotal = totals.AmountTotal.Add(row.AmountTotal)
		totals.SalesTaxAmount = totals.SalesTaxAmount.Add(row.SalesTaxAmount)
		totals.HangerAmount = totals.HangerAmount.Add(row.HangerAmount)
		totals.TotalAmount = totals.TotalAmount.Add(row.TotalAmount)
	}

	return &BookingReport{From: from, To: to, Rows: rows, Totals: totals}, nil
}

// dayIn returns midnight in loc of the calendar day written on t
func dayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
