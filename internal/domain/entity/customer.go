package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCustomerType is assigned to customers created at the counter
const DefaultCustomerType = "normal"

// Customer is identified by phone number and counts the bookings made under it
type Customer struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Phone            string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	CustomerType     string    `gorm:"size:50;default:'normal'" json:"customer_type"`
	NumberOfBookings int       `gorm:"default:0" json:"number_of_bookings"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CustomerType == "" {
		c.CustomerType = DefaultCustomerType
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
