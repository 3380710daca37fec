package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/pkg/printer"
	"gorm.io/datatypes"
)

type recordingPrinter struct {
	printed [][]byte
	err     error
}

func (p *recordingPrinter) Print(data []byte) error {
	p.printed = append(p.printed, data)
	return p.err
}

func (p *recordingPrinter) IsConnected() bool { return p.err == nil }
func (p *recordingPrinter) Kind() string      { return "network" }

func ticketBooking() *entity.Booking {
	delivery := time.Date(2025, time.August, 5, 23, 59, 59, 0, karachi)
	notes := "Handle with care"
	return &entity.Booking{
		ID:             uuid.New(),
		BranchCode:     "JR",
		CustomerPhone:  "03001234567",
		ReceiptNumber:  "JR-0001",
		AmountTotal:    decimal.NewFromInt(300),
		SalesTaxAmount: decimal.NewFromInt(15),
		HangerAmount:   decimal.NewFromInt(10),
		TotalAmount:    decimal.NewFromInt(325),
		NumberOfUnits:  6,
		DeliveryType:   enum.DeliveryUrgent,
		BookingDate:    time.Date(2025, time.August, 4, 9, 15, 0, 0, karachi),
		DeliveryDate:   &delivery,
		Notes:          &notes,
		Issues:         datatypes.JSONSlice[string]{"Stain"},
		Items: []entity.BookingItem{
			{ItemName: "Three piece", Units: 2, UnitPrice: decimal.NewFromInt(100), LineTotal: decimal.NewFromInt(200)},
		},
	}
}

func TestBuildReceipt(t *testing.T) {
	address := "Main Boulevard"
	branch := &entity.Branch{BranchName: "Johar Town", BranchCode: "JR", Address: &address}
	cfg := &entity.Configuration{NTNNumber: "1234567-8"}

	r := BuildReceipt("Zay Dry Cleaners", ticketBooking(), branch, cfg)

	assert.Equal(t, "Johar Town", r.Header.BranchName)
	assert.Equal(t, "Main Boulevard", r.Header.Address)
	assert.Equal(t, "1234567-8", r.Header.NTNNumber)
	assert.Equal(t, "200.00", r.SubTotal)
	assert.Equal(t, "100.00", r.Surcharge)
	assert.Equal(t, "325.00", r.Total)
	assert.Equal(t, "Urgent", r.DeliveryType)
	assert.Equal(t, "05-Aug-2025 11:59 PM", r.DeliveryDate)
	require.Len(t, r.Lines, 1)
	assert.Equal(t, "100.00", r.Lines[0].UnitPrice)
}

func TestBuildReceiptWithoutBranchRow(t *testing.T) {
	r := BuildReceipt("Shop", ticketBooking(), nil, nil)
	assert.Equal(t, "JR", r.Header.BranchName)
	assert.Empty(t, r.Header.NTNNumber)
}

func TestFormatReceipt(t *testing.T) {
	data := FormatReceipt(BuildReceipt("Zay Dry Cleaners", ticketBooking(), nil, nil), 32)

	for _, want := range []string{"Zay Dry Cleaners", "JR-0001", "325.00", "Urgent charges:", "Issues: Stain", "Notes: Handle with care"} {
		assert.True(t, bytes.Contains(data, []byte(want)), want)
	}
	assert.True(t, bytes.HasSuffix(data, []byte{printer.GS, 'V', 1}))
}

func TestPrintBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := branchCtx("JR")
	booking, err := f.svc.CreateBooking(ctx, f.input(enum.DeliveryUrgent))
	require.NoError(t, err)

	p := &recordingPrinter{}
	svc := NewPrinterService(p, f.svc, newFakeBranchRepo(&entity.Branch{BranchName: "Johar Town", BranchCode: "JR"}), f.config, "Zay Dry Cleaners", 48)

	receipt, err := svc.PrintBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Johar Town", receipt.Header.BranchName)
	require.Len(t, p.printed, 1)

	p.err = errors.New("paper out")
	receipt, err = svc.PrintBooking(ctx, booking.ID)
	assert.Error(t, err)
	assert.NotNil(t, receipt)

	_, err = svc.PrintBooking(branchCtx("DHA"), booking.ID)
	assert.Error(t, err)

	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.Equal(t, "network", status.Type)
}
