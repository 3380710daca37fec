package calculator

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Line is one requested catalog item and its quantity
type Line struct {
	ItemID uuid.UUID
	Units  int
}

// QuoteRequest is the priced part of a booking submission
type QuoteRequest struct {
	Lines        []Line
	DeliveryType enum.DeliveryType
	HangerUnits  int
}

// QuotedLine is a request line with the catalog price applied
type QuotedLine struct {
	Item      *entity.Item
	Units     int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is the price breakdown of a booking. AmountTotal already includes the
// delivery surcharge and excludes tax and hangers.
type Quote struct {
	Lines              []QuotedLine
	SubTotal           decimal.Decimal
	Surcharge          decimal.Decimal
	AmountTotal        decimal.Decimal
	SalesTaxPercentage decimal.Decimal
	SalesTaxAmount     decimal.Decimal
	HangerUnits        int
	HangerAmount       decimal.Decimal
	TotalAmount        decimal.Decimal
	NumberOfUnits      int
	DeliveryType       enum.DeliveryType
}

// SurchargeRate returns the multiplier applied to the whole amount for a delivery type
func SurchargeRate(deliveryType enum.DeliveryType, cfg *entity.Configuration) decimal.Decimal {
	switch deliveryType {
	case enum.DeliveryUrgent:
		return decimal.NewFromInt(1).Add(cfg.ChargesForNormalUrgent.Div(hundred))
	case enum.DeliverySameDayUrgent:
		return decimal.NewFromInt(1).Add(cfg.ChargesForSameDayUrgent.Div(hundred))
	}
	return decimal.NewFromInt(1)
}

// ValidateQuoteRequest checks the request against the catalog and returns a
// validation error listing every offending field
func ValidateQuoteRequest(req QuoteRequest, items map[uuid.UUID]*entity.Item) error {
	var fieldErrors []apperror.FieldError

	if len(req.Lines) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required."})
	}
	for i, line := range req.Lines {
		item, ok := items[line.ItemID]
		if !ok || item == nil {
			field := fmt.Sprintf("items.%d.id", i)
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: fmt.Sprintf("The selected %s is invalid.", field)})
		} else if !item.IsActive() {
			field := fmt.Sprintf("items.%d.id", i)
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: fmt.Sprintf("%s is not available for booking.", item.Name)})
		}
		if line.Units < 1 {
			field := fmt.Sprintf("items.%d.units", i)
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: fmt.Sprintf("The %s must be at least 1.", field)})
		}
	}
	if !req.DeliveryType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "delivery_type", Message: "The selected delivery type is invalid."})
	}
	if req.HangerUnits < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hanger_units", Message: "The hanger units must be at least 0."})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// BuildQuote prices a booking request. items must contain every referenced
// catalog item keyed by id. A nil cfg fails with ErrConfigurationMissing.
func BuildQuote(req QuoteRequest, items map[uuid.UUID]*entity.Item, cfg *entity.Configuration) (*Quote, error) {
	if err := ValidateQuoteRequest(req, items); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.ErrConfigurationMissing
	}

	q := &Quote{
		Lines:              make([]QuotedLine, 0, len(req.Lines)),
		SubTotal:           decimal.Zero,
		SalesTaxPercentage: cfg.SalesTax,
		HangerUnits:        req.HangerUnits,
		DeliveryType:       req.DeliveryType,
	}

	for _, line := range req.Lines {
		item := items[line.ItemID]
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Units)))
		q.Lines = append(q.Lines, QuotedLine{
			Item:      item,
			Units:     line.Units,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal.Round(moneyPlaces),
		})
		q.SubTotal = q.SubTotal.Add(lineTotal)
		q.NumberOfUnits += line.Units * item.UnitsPerPiece
	}
	q.SubTotal = q.SubTotal.Round(moneyPlaces)

	q.AmountTotal = q.SubTotal.Mul(SurchargeRate(req.DeliveryType, cfg)).Round(moneyPlaces)
	q.Surcharge = q.AmountTotal.Sub(q.SubTotal)
	q.SalesTaxAmount = q.AmountTotal.Mul(cfg.SalesTax).Div(hundred).Round(moneyPlaces)
	q.HangerAmount = cfg.Hangers.Mul(decimal.NewFromInt(int64(req.HangerUnits))).Round(moneyPlaces)
	q.TotalAmount = q.AmountTotal.Add(q.SalesTaxAmount).Add(q.HangerAmount)

	return q, nil
}
