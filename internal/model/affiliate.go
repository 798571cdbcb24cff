package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Affiliate struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Handle    string    `gorm:"not null;uniqueIndex" json:"handle"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Affiliate) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
