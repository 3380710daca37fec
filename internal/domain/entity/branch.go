package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is a shop location; its code prefixes every receipt number issued there
type Branch struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchName string         `gorm:"size:100;not null" json:"branch_name"`
	BranchCode string         `gorm:"size:20;uniqueIndex;not null" json:"branch_code"`
	Address    *string        `gorm:"size:255" json:"address,omitempty"`
	Mobile     *string        `gorm:"size:20" json:"mobile,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
