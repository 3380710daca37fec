package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Item is a garment type in the price list
type Item struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code          string          `gorm:"size:4;uniqueIndex;not null" json:"code"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	UnitsPerPiece int             `gorm:"not null;default:0" json:"units_per_piece"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"unit_price"`
	Status        enum.ItemStatus `gorm:"size:10;not null;default:'Active';index" json:"status"`
	Image         *string         `gorm:"size:255" json:"image,omitempty"`
	DateAdded     time.Time       `gorm:"type:date;not null" json:"date_added"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = enum.ItemStatusActive
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// IsActive reports whether the item may be booked
func (i *Item) IsActive() bool {
	return i.Status == enum.ItemStatusActive
}

// MarshalJSON renders the unit price with two decimals
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		UnitPrice json.Number `json:"unit_price"`
		DateAdded string      `json:"date_added"`
	}{
		Alias:     Alias(i),
		UnitPrice: money(i.UnitPrice),
		DateAdded: i.DateAdded.Format("2006-01-02"),
	})
}
