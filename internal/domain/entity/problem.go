package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Problem is a predefined issue label offered when a garment is booked in
type Problem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new problem
func (p *Problem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Problem model
func (Problem) TableName() string {
	return "problems"
}
