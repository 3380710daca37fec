package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking is a priced garment ticket. Amounts are captured at booking time and
// never recomputed from the catalog afterwards.
type Booking struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	BranchCode         string                      `gorm:"size:20;not null;index" json:"branch_code"`
	CustomerID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"customer_id"`
	UserID             uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerPhone      string                      `gorm:"size:20;not null;index" json:"customer_phone"`
	ReceiptNumber      string                      `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	AmountTotal        decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"amount_total"`
	SalesTaxPercentage decimal.Decimal             `gorm:"type:decimal(8,2);not null;default:0" json:"sales_tax_percentage"`
	SalesTaxAmount     decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"sales_tax_amount"`
	NumberOfUnits      int                         `gorm:"not null;default:0" json:"number_of_units"`
	HangerUnits        int                         `gorm:"not null;default:0" json:"hanger_units"`
	HangerAmount       decimal.Decimal             `gorm:"type:decimal(10,2);not null;default:0" json:"hanger_amount"`
	TotalAmount        decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DeliveryType       enum.DeliveryType           `gorm:"size:20;not null;default:'normal';index" json:"delivery_type"`
	Status             enum.BookingStatus          `gorm:"size:20;not null;default:'booked';index" json:"status"`
	BookingDate        time.Time                   `gorm:"not null;index" json:"booking_date"`
	DeliveryDate       *time.Time                  `json:"delivery_date"`
	Notes              *string                     `gorm:"type:text" json:"notes,omitempty"`
	Issues             datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"issues"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	User     *User         `gorm:"foreignKey:UserID" json:"-"`
	Items    []BookingItem `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = enum.BookingStatusBooked
	}
	if b.Issues == nil {
		b.Issues = datatypes.JSONSlice[string]{}
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// MarshalJSON renders monetary columns with two decimals
func (b Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	return json.Marshal(&struct {
		Alias
		AmountTotal        json.Number `json:"amount_total"`
		SalesTaxPercentage json.Number `json:"sales_tax_percentage"`
		SalesTaxAmount     json.Number `json:"sales_tax_amount"`
		HangerAmount       json.Number `json:"hanger_amount"`
		TotalAmount        json.Number `json:"total_amount"`
	}{
		Alias:              Alias(b),
		AmountTotal:        money(b.AmountTotal),
		SalesTaxPercentage: money(b.SalesTaxPercentage),
		SalesTaxAmount:     money(b.SalesTaxAmount),
		HangerAmount:       money(b.HangerAmount),
		TotalAmount:        money(b.TotalAmount),
	})
}

// BookingItem is one catalog line of a booking with the price captured when booked
type BookingItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string          `gorm:"size:255;not null" json:"item_name"`
	Units     int             `gorm:"not null" json:"units"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`
	CreatedAt time.Time       `json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new booking item
func (bi *BookingItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BookingItem model
func (BookingItem) TableName() string {
	return "booking_items"
}

// MarshalJSON renders captured prices with two decimals
func (bi BookingItem) MarshalJSON() ([]byte, error) {
	type Alias BookingItem
	return json.Marshal(&struct {
		Alias
		UnitPrice json.Number `json:"unit_price"`
		LineTotal json.Number `json:"line_total"`
	}{
		Alias:     Alias(bi),
		UnitPrice: money(bi.UnitPrice),
		LineTotal: money(bi.LineTotal),
	})
}

// ReceiptSequence is the per-branch receipt counter. The row is locked for the
// length of the booking transaction so two counters never hand out the same number.
type ReceiptSequence struct {
	BranchCode string    `gorm:"size:20;primaryKey" json:"branch_code"`
	LastNumber int       `gorm:"not null;default:0" json:"last_number"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the ReceiptSequence model
func (ReceiptSequence) TableName() string {
	return "receipt_sequences"
}
