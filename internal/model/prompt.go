package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prompt is an AI template for one (category, product) pair. The worker fills
// in {{archetype_name}} and {{answers_json}} before calling the generator.
type Prompt struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID string    `gorm:"type:uuid;not null;index:idx_prompts_category_type,unique" json:"category_id"`
	Type       string    `gorm:"not null;index:idx_prompts_category_type,unique" json:"type"` // product tag
	Template   string    `gorm:"type:text;not null" json:"template"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
