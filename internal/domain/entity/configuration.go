package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Configuration holds the shop-wide pricing and scheduling parameters.
// Only one row is kept; percentages are stored as whole numbers (5 means 5%).
type Configuration struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SalesTax                decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"sales_tax"`
	NumberOfDaysForNormal   int             `gorm:"not null;default:0" json:"number_of_days_for_normal"`
	NumberOfDaysForUrgent   int             `gorm:"not null;default:0" json:"number_of_days_for_urgent"`
	ChargesForNormalUrgent  decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"charges_for_normal_urgent"`
	ChargesForSameDayUrgent decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"charges_for_same_day_urgent"`
	Hangers                 decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"hangers"`
	NTNNumber               string          `gorm:"column:ntn_number;size:255" json:"ntn_number"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the configuration row
func (c *Configuration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Configuration model
func (Configuration) TableName() string {
	return "configurations"
}

// MarshalJSON renders rates and charges with two decimals
func (c Configuration) MarshalJSON() ([]byte, error) {
	type Alias Configuration
	return json.Marshal(&struct {
		Alias
		SalesTax                json.Number `json:"sales_tax"`
		ChargesForNormalUrgent  json.Number `json:"charges_for_normal_urgent"`
		ChargesForSameDayUrgent json.Number `json:"charges_for_same_day_urgent"`
		Hangers                 json.Number `json:"hangers"`
	}{
		Alias:                   Alias(c),
		SalesTax:                money(c.SalesTax),
		ChargesForNormalUrgent:  money(c.ChargesForNormalUrgent),
		ChargesForSameDayUrgent: money(c.ChargesForSameDayUrgent),
		Hangers:                 money(c.Hangers),
	})
}
