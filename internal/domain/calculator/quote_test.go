package calculator

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/pkg/apperror"
)

func pricingConfig() *entity.Configuration {
	return &entity.Configuration{
		SalesTax:                decimal.NewFromInt(5),
		ChargesForNormalUrgent:  decimal.NewFromInt(50),
		ChargesForSameDayUrgent: decimal.NewFromInt(100),
		Hangers:                 decimal.NewFromInt(10),
		NumberOfDaysForNormal:   3,
		NumberOfDaysForUrgent:   1,
	}
}

func catalogItem(price string, unitsPerPiece int) *entity.Item {
	return &entity.Item{
		ID:            uuid.New(),
		Code:          "SH01",
		Name:          "Shirt",
		UnitsPerPiece: unitsPerPiece,
		UnitPrice:     decimal.RequireFromString(price),
		Status:        enum.ItemStatusActive,
	}
}

func catalog(items ...*entity.Item) map[uuid.UUID]*entity.Item {
	m := make(map[uuid.UUID]*entity.Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func TestBuildQuoteUrgentScenario(t *testing.T) {
	item := catalogItem("100.00", 3)

	q, err := BuildQuote(QuoteRequest{
		Lines:        []Line{{ItemID: item.ID, Units: 2}},
		DeliveryType: enum.DeliveryUrgent,
		HangerUnits:  1,
	}, catalog(item), pricingConfig())
	require.NoError(t, err)

	assertMoney(t, "200.00", q.SubTotal)
	assertMoney(t, "100.00", q.Surcharge)
	assertMoney(t, "300.00", q.AmountTotal)
	assertMoney(t, "15.00", q.SalesTaxAmount)
	assertMoney(t, "10.00", q.HangerAmount)
	assertMoney(t, "325.00", q.TotalAmount)
	assert.Equal(t, 6, q.NumberOfUnits)
	assertMoney(t, "5.00", q.SalesTaxPercentage)
}

func TestBuildQuoteSurchargeByDeliveryType(t *testing.T) {
	item := catalogItem("40.00", 1)

	tests := []struct {
		deliveryType enum.DeliveryType
		amount       string
		total        string
	}{
		{enum.DeliveryNormal, "80.00", "84.00"},
		{enum.DeliveryUrgent, "120.00", "126.00"},
		{enum.DeliverySameDayUrgent, "160.00", "168.00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.deliveryType), func(t *testing.T) {
			q, err := BuildQuote(QuoteRequest{
				Lines:        []Line{{ItemID: item.ID, Units: 2}},
				DeliveryType: tt.deliveryType,
			}, catalog(item), pricingConfig())
			require.NoError(t, err)

			assertMoney(t, tt.amount, q.AmountTotal)
			assertMoney(t, tt.total, q.TotalAmount)
			assert.True(t, q.HangerAmount.IsZero())
		})
	}
}

func TestBuildQuoteRoundsEachComponent(t *testing.T) {
	shirt := catalogItem("10.01", 1)
	coat := catalogItem("0.33", 2)

	q, err := BuildQuote(QuoteRequest{
		Lines: []Line{
			{ItemID: shirt.ID, Units: 3},
			{ItemID: coat.ID, Units: 1},
		},
		DeliveryType: enum.DeliveryUrgent,
		HangerUnits:  2,
	}, catalog(shirt, coat), pricingConfig())
	require.NoError(t, err)

	// 30.36 * 1.5 = 45.54, tax 2.277
	assertMoney(t, "30.36", q.SubTotal)
	assertMoney(t, "45.54", q.AmountTotal)
	assertMoney(t, "2.28", q.SalesTaxAmount)
	assertMoney(t, "20.00", q.HangerAmount)
	assertMoney(t, "67.82", q.TotalAmount)
	assert.True(t, q.TotalAmount.Equal(q.AmountTotal.Add(q.SalesTaxAmount).Add(q.HangerAmount)))
	assert.Equal(t, 5, q.NumberOfUnits)
	require.Len(t, q.Lines, 2)
	assertMoney(t, "30.03", q.Lines[0].LineTotal)
}

func TestBuildQuoteValidation(t *testing.T) {
	item := catalogItem("10.00", 1)
	disabled := catalogItem("10.00", 1)
	disabled.Status = enum.ItemStatusDisable

	_, err := BuildQuote(QuoteRequest{
		Lines: []Line{
			{ItemID: item.ID, Units: 0},
			{ItemID: uuid.New(), Units: 1},
			{ItemID: disabled.ID, Units: 1},
		},
		DeliveryType: "express",
		HangerUnits:  -1,
	}, catalog(item, disabled), pricingConfig())
	require.Error(t, err)
	require.True(t, apperror.IsValidation(err))

	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"items.0.units", "items.1.id", "items.2.id", "delivery_type", "hanger_units"}, fields)
}

func TestBuildQuoteRequiresItems(t *testing.T) {
	_, err := BuildQuote(QuoteRequest{DeliveryType: enum.DeliveryNormal}, catalog(), pricingConfig())
	require.True(t, apperror.IsValidation(err))
	assert.Equal(t, "items", apperror.GetAppError(err).Errors[0].Field)
}

func TestBuildQuoteWithoutConfiguration(t *testing.T) {
	item := catalogItem("10.00", 1)

	_, err := BuildQuote(QuoteRequest{
		Lines:        []Line{{ItemID: item.ID, Units: 1}},
		DeliveryType: enum.DeliveryNormal,
	}, catalog(item), nil)
	assert.True(t, errors.Is(err, apperror.ErrConfigurationMissing))
}
