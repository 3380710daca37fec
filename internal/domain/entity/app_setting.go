package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branding defaults used when the settings row is first created
const (
	DefaultAppColor = "#3b82f6"
)

// AppSetting is the single row of branding shown by the counter front end.
// Logo and Favicon hold URLs of assets hosted elsewhere.
type AppSetting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppName     string    `gorm:"size:255;not null" json:"app_name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:7;not null" json:"color"`
	Logo        *string   `gorm:"size:255" json:"logo"`
	Favicon     *string   `gorm:"size:255" json:"favicon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *AppSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AppSetting model
func (AppSetting) TableName() string {
	return "app_settings"
}
