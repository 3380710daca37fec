package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
)

// BookingLineRequest is one garment line of a booking
type BookingLineRequest struct {
	ID    uuid.UUID `json:"id"`
	Units int       `json:"units"`
}

// QuoteRequest prices a booking without saving it. Field level checks
// (item ids, units, delivery type) are reported by the pricing rules so
// the messages name the offending line.
type QuoteRequest struct {
	Items        []BookingLineRequest `json:"items"`
	DeliveryType enum.DeliveryType    `json:"delivery_type"`
	HangerUnits  int                  `json:"hanger_units"`
}

// CreateBookingRequest represents a booking creation request
type CreateBookingRequest struct {
	QuoteRequest
	CustomerPhone string   `json:"customer_phone" binding:"required,max=20"`
	Notes         *string  `json:"notes" binding:"omitempty,max=1000"`
	Issues        []string `json:"issues" binding:"omitempty,max=50,dive,max=255"`
}

// UpdateBookingStatusRequest moves a booking to its next status
type UpdateBookingStatusRequest struct {
	Status enum.BookingStatus `json:"status" binding:"required"`
}

// BookingFilterRequest represents booking list filters
type BookingFilterRequest struct {
	Search       string             `form:"search"`
	Status       enum.BookingStatus `form:"status"`
	DeliveryType enum.DeliveryType  `form:"delivery_type"`
	StartDate    *time.Time         `form:"start_date" time_format:"2006-01-02"`
	EndDate      *time.Time         `form:"end_date" time_format:"2006-01-02"`
	Page         int                `form:"page"`
	PerPage      int                `form:"per_page"`
}

// ReportRequest bounds a report by calendar day
type ReportRequest struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}
