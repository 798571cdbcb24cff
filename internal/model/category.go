package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is one quiz vertical ("brain", "behavior"...) run off the shared codebase.
type Category struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"not null;uniqueIndex" json:"slug"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	PricingLow  int       `json:"pricing_low"`  // mini report price, cents
	PricingHigh int       `json:"pricing_high"` // full assessment price, cents
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
