package response

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
)

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// QuoteLine is one priced line of a quote
type QuoteLine struct {
	ItemID    uuid.UUID   `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Units     int         `json:"units"`
	UnitPrice json.Number `json:"unit_price"`
	LineTotal json.Number `json:"line_total"`
}

// QuoteResponse is the price breakdown shown before a booking is saved
type QuoteResponse struct {
	Lines                  []QuoteLine       `json:"items"`
	SubTotal               json.Number       `json:"sub_total"`
	Surcharge              json.Number       `json:"surcharge"`
	AmountTotal            json.Number       `json:"amount_total"`
	SalesTaxPercentage     json.Number       `json:"sales_tax_percentage"`
	SalesTaxAmount         json.Number       `json:"sales_tax_amount"`
	HangerUnits            int               `json:"hanger_units"`
	HangerAmount           json.Number       `json:"hanger_amount"`
	TotalAmount            json.Number       `json:"total_amount"`
	NumberOfUnits          int               `json:"number_of_units"`
	DeliveryType           enum.DeliveryType `json:"delivery_type"`
	BookingDate            time.Time         `json:"booking_date"`
	DeliveryDate           *time.Time        `json:"delivery_date"`
	SameDayUrgentAvailable bool              `json:"same_day_urgent_available"`
}

// NewQuoteResponse converts a service quote for the wire
func NewQuoteResponse(out *service.QuoteOutput) *QuoteResponse {
	q := out.Quote
	resp := &QuoteResponse{
		Lines:                  make([]QuoteLine, 0, len(q.Lines)),
		SubTotal:               money(q.SubTotal),
		Surcharge:              money(q.Surcharge),
		AmountTotal:            money(q.AmountTotal),
		SalesTaxPercentage:     money(q.SalesTaxPercentage),
		SalesTaxAmount:         money(q.SalesTaxAmount),
		HangerUnits:            q.HangerUnits,
		HangerAmount:           money(q.HangerAmount),
		TotalAmount:            money(q.TotalAmount),
		NumberOfUnits:          q.NumberOfUnits,
		DeliveryType:           q.DeliveryType,
		BookingDate:            out.BookingDate,
		DeliveryDate:           out.DeliveryDate,
		SameDayUrgentAvailable: out.SameDayUrgentAvailable,
	}
	for _, line := range q.Lines {
		resp.Lines = append(resp.Lines, QuoteLine{
			ItemID:    line.Item.ID,
			Code:      line.Item.Code,
			Name:      line.Item.Name,
			Units:     line.Units,
			UnitPrice: money(line.UnitPrice),
			LineTotal: money(line.LineTotal),
		})
	}
	return resp
}

// DeliveryOption is one delivery type as offered at the counter right now
type DeliveryOption struct {
	Type         enum.DeliveryType `json:"type"`
	Label        string            `json:"label"`
	DeliveryDate *time.Time        `json:"delivery_date"`
	Available    bool              `json:"available"`
}

// POSResponse is everything the counter screen loads before taking a booking
type POSResponse struct {
	Items                  []entity.Item         `json:"items"`
	Configuration          *entity.Configuration `json:"configuration"`
	Problems               []entity.Problem      `json:"problems"`
	BookingDate            time.Time             `json:"booking_date"`
	SameDayUrgentAvailable bool                  `json:"same_day_urgent_available"`
	DeliveryOptions        []DeliveryOption      `json:"delivery_options"`
}

// NewPOSResponse converts the counter context for the wire
func NewPOSResponse(pos *service.POSContext) *POSResponse {
	resp := &POSResponse{
		Items:                  pos.Items,
		Configuration:          pos.Configuration,
		Problems:               pos.Problems,
		BookingDate:            pos.Schedule.BookingDate,
		SameDayUrgentAvailable: pos.Schedule.SameDayUrgentAvailable,
		DeliveryOptions:        make([]DeliveryOption, 0, len(enum.DeliveryTypes)),
	}
	if resp.Items == nil {
		resp.Items = []entity.Item{}
	}
	if resp.Problems == nil {
		resp.Problems = []entity.Problem{}
	}
	for _, dt := range enum.DeliveryTypes {
		date := pos.Schedule.DeliveryDates[dt]
		resp.DeliveryOptions = append(resp.DeliveryOptions, DeliveryOption{
			Type:         dt,
			Label:        dt.Label(),
			DeliveryDate: date,
			Available:    date != nil,
		})
	}
	return resp
}

// ReportRow is one delivery type's totals
type ReportRow struct {
	DeliveryType   enum.DeliveryType `json:"delivery_type,omitempty"`
	Bookings       int64             `json:"bookings"`
	Units          int64             `json:"units"`
	AmountTotal    json.Number       `json:"amount_total"`
	SalesTaxAmount json.Number       `json:"sales_tax_amount"`
	HangerAmount   json.Number       `json:"hanger_amount"`
	TotalAmount    json.Number       `json:"total_amount"`
}

// ReportResponse is the booking report
type ReportResponse struct {
	From   time.Time   `json:"from"`
	To     time.Time   `json:"to"`
	Rows   []ReportRow `json:"rows"`
	Totals ReportRow   `json:"totals"`
}

func newReportRow(r repository.BookingSummaryRow) ReportRow {
	return ReportRow{
		DeliveryType:   r.DeliveryType,
		Bookings:       r.Bookings,
		Units:          r.Units,
		AmountTotal:    money(r.AmountTotal),
		SalesTaxAmount: money(r.SalesTaxAmount),
		HangerAmount:   money(r.HangerAmount),
		TotalAmount:    money(r.TotalAmount),
	}
}

// NewReportResponse converts a booking report for the wire
func NewReportResponse(r *service.BookingReport) *ReportResponse {
	resp := &ReportResponse{
		From:   r.From,
		To:     r.To,
		Rows:   make([]ReportRow, 0, len(r.Rows)),
		Totals: newReportRow(r.Totals),
	}
	for _, row := range r.Rows {
		resp.Rows = append(resp.Rows, newReportRow(row))
	}
	return resp
}

// LoginResponse carries the access token issued at login
type LoginResponse struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
}

// NewLoginResponse converts a login result for the wire
func NewLoginResponse(out *service.LoginOutput) *LoginResponse {
	return &LoginResponse{
		User:        out.User,
		AccessToken: out.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(out.ExpiresIn.Seconds()),
	}
}
