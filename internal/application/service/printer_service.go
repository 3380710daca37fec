package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/pkg/printer"
)

const ticketDateLayout = "02-Jan-2006 03:04 PM"

// PrinterService handles booking ticket formatting and thermal printing.
type PrinterService struct {
	printer    printer.Printer
	bookings   *BookingService
	branchRepo repository.BranchRepository
	configRepo repository.ConfigurationRepository
	shopName   string
	paperWidth int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	bookings *BookingService,
	branchRepo repository.BranchRepository,
	configRepo repository.ConfigurationRepository,
	shopName string,
	paperWidth int,
) *PrinterService {
	return &PrinterService{
		printer:    p,
		bookings:   bookings,
		branchRepo: branchRepo,
		configRepo: configRepo,
		shopName:   shopName,
		paperWidth: paperWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(),
		Type:       kind,
	}
}

// TestPrint sends a sample ticket to the printer and returns it.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:        entity.ReceiptHeader{ShopName: s.shopName, BranchName: "PRINTER TEST"},
		ReceiptNumber: "TEST-0001",
		BookingDate:   "Test Date",
		DeliveryType:  "Normal",
		Customer:      "00000000000",
		Lines: []entity.ReceiptLine{
			{Name: "Shirt", Units: 2, UnitPrice: "100.00", Total: "200.00"},
		},
		SubTotal:  "200.00",
		Surcharge: "0.00",
		SalesTax:  "0.00",
		Hangers:   "0.00",
		Total:     "200.00",
		Units:     2,
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.paperWidth)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintBooking prints the ticket of a booking visible to the caller.
// The receipt is returned even when printing fails so the counter can show it.
func (s *PrinterService) PrintBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Receipt, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.GetByCode(ctx, booking.BranchCode)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(s.shopName, booking, branch, cfg)
	if err := s.printer.Print(FormatReceipt(receipt, s.paperWidth)); err != nil {
		log.Printf("Printer error (booking %s): %v", booking.ReceiptNumber, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// BuildReceipt composes the printable view of a booking. branch and cfg may be nil.
func BuildReceipt(shopName string, b *entity.Booking, branch *entity.Branch, cfg *entity.Configuration) *entity.Receipt {
	r := &entity.Receipt{
		Header:        entity.ReceiptHeader{ShopName: shopName, BranchName: b.BranchCode},
		ReceiptNumber: b.ReceiptNumber,
		BookingDate:   b.BookingDate.Format(ticketDateLayout),
		DeliveryType:  b.DeliveryType.Label(),
		Customer:      b.CustomerPhone,
		SubTotal:      b.AmountTotal.StringFixed(2),
		SalesTax:      b.SalesTaxAmount.StringFixed(2),
		Hangers:       b.HangerAmount.StringFixed(2),
		Total:         b.TotalAmount.StringFixed(2),
		Units:         b.NumberOfUnits,
		Issues:        []string(b.Issues),
	}

	if branch != nil {
		r.Header.BranchName = branch.BranchName
		if branch.Address != nil {
			r.Header.Address = *branch.Address
		}
		if branch.Mobile != nil {
			r.Header.Phone = *branch.Mobile
		}
	}
	if cfg != nil {
		r.Header.NTNNumber = cfg.NTNNumber
	}
	if b.DeliveryDate != nil {
		r.DeliveryDate = b.DeliveryDate.Format(ticketDateLayout)
	}
	if b.Notes != nil {
		r.Notes = *b.Notes
	}
	if b.User != nil {
		r.Cashier = b.User.Name
	}

	lineSum := decimal.Zero
	for _, item := range b.Items {
		r.Lines = append(r.Lines, entity.ReceiptLine{
			Name:      item.ItemName,
			Units:     item.Units,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Total:     item.LineTotal.StringFixed(2),
		})
		lineSum = lineSum.Add(item.LineTotal)
	}
	// AmountTotal includes the surcharge, so the surcharge is whatever the lines do not cover.
	if len(b.Items) > 0 {
		r.SubTotal = lineSum.StringFixed(2)
		r.Surcharge = b.AmountTotal.Sub(lineSum).StringFixed(2)
	} else {
		r.Surcharge = "0.00"
	}

	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper of width characters.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		Text(r.Header.BranchName).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Wrap(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.NTNNumber != "" {
		doc.TextF("NTN: %s", r.Header.NTNNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.SetBold(true).
		KeyValue("Receipt:", r.ReceiptNumber).
		SetBold(false).
		KeyValue("Booked:", r.BookingDate)
	if r.DeliveryDate != "" {
		doc.KeyValue("Delivery:", r.DeliveryDate)
	}
	doc.KeyValue("Service:", r.DeliveryType).
		KeyValue("Customer:", r.Customer)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}

	doc.Separator('-')

	for _, line := range r.Lines {
		doc.ItemLine(line.Units, line.Name, line.Total)
		if line.Units > 1 {
			doc.TextF("  @ %s each", line.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", r.SubTotal)
	if r.Surcharge != "0.00" {
		doc.KeyValue("Urgent charges:", r.Surcharge)
	}
	doc.KeyValue("Sales tax:", r.SalesTax)
	if r.Hangers != "0.00" {
		doc.KeyValue("Hangers:", r.Hangers)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false).
		KeyValue("Units:", fmt.Sprintf("%d", r.Units))

	if len(r.Issues) > 0 || r.Notes != "" {
		doc.Separator('-')
		if len(r.Issues) > 0 {
			doc.Wrap("Issues: " + strings.Join(r.Issues, ", "))
		}
		if r.Notes != "" {
			doc.Wrap("Notes: " + r.Notes)
		}
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Wrap("Please bring this receipt at collection").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
