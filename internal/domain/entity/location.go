package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location is a named pickup or drop-off point used by the delivery app
type Location struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Latitude  decimal.Decimal `gorm:"type:decimal(10,7);not null" json:"latitude"`
	Longitude decimal.Decimal `gorm:"type:decimal(10,7);not null" json:"longitude"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new location
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
