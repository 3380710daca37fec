package request

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
)

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	Code          string          `json:"code" binding:"required,len=4"`
	Name          string          `json:"name" binding:"required,max=255"`
	UnitsPerPiece int             `json:"units_per_piece" binding:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Status        enum.ItemStatus `json:"status" binding:"omitempty,oneof=Active Disable"`
	Image         *string         `json:"image" binding:"omitempty,url,max=255"`
	DateAdded     *Date           `json:"date_added"`
}

// UpdateItemRequest represents an item update request
type UpdateItemRequest struct {
	Code          *string          `json:"code" binding:"omitempty,len=4"`
	Name          *string          `json:"name" binding:"omitempty,max=255"`
	UnitsPerPiece *int             `json:"units_per_piece" binding:"omitempty,min=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Status        *enum.ItemStatus `json:"status" binding:"omitempty,oneof=Active Disable"`
	Image         *string          `json:"image" binding:"omitempty,url,max=255"`
	DateAdded     *Date            `json:"date_added"`
}

// BranchRequest represents a branch create/update request
type BranchRequest struct {
	BranchName string  `json:"branch_name" binding:"required,max=100"`
	BranchCode string  `json:"branch_code" binding:"required,max=20"`
	Address    *string `json:"address" binding:"omitempty,max=255"`
	Mobile     *string `json:"mobile" binding:"omitempty,max=20"`
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Phone        string `json:"phone" binding:"required,max=20"`
	CustomerType string `json:"customer_type" binding:"omitempty,max=50"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Phone            *string `json:"phone" binding:"omitempty,max=20"`
	CustomerType     *string `json:"customer_type" binding:"omitempty,max=50"`
	NumberOfBookings *int    `json:"number_of_bookings" binding:"omitempty,min=0"`
}

// ConfigurationRequest replaces the pricing configuration
type ConfigurationRequest struct {
	SalesTax                decimal.Decimal `json:"sales_tax"`
	NumberOfDaysForNormal   int             `json:"number_of_days_for_normal" binding:"min=0"`
	NumberOfDaysForUrgent   int             `json:"number_of_days_for_urgent" binding:"min=0"`
	ChargesForNormalUrgent  decimal.Decimal `json:"charges_for_normal_urgent"`
	ChargesForSameDayUrgent decimal.Decimal `json:"charges_for_same_day_urgent"`
	Hangers                 decimal.Decimal `json:"hangers"`
	NTNNumber               string          `json:"ntn_number" binding:"max=255"`
}

// ProblemRequest represents an issue label create/update request
type ProblemRequest struct {
	Label string `json:"label" binding:"required,max=255"`
}

// SettingRequest replaces the branding settings
type SettingRequest struct {
	AppName     string  `json:"app_name" binding:"required,max=255"`
	Description string  `json:"description"`
	Color       string  `json:"color" binding:"required,max=7"`
	Logo        *string `json:"logo"`
	Favicon     *string `json:"favicon"`
}

// LocationRequest represents a location create/update request.
// Coordinate ranges are checked by the service.
type LocationRequest struct {
	Name      string           `json:"name" binding:"required,max=255"`
	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`
}

// Date is a calendar day sent as "2006-01-02"
type Date struct {
	time.Time
}

// UnmarshalJSON parses a "2006-01-02" string
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
