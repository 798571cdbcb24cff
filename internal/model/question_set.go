package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindfunnel/mindfunnel-api/internal/scoring"
	"gorm.io/gorm"
)

// SchemaDocument stores a scoring.Schema as a jsonb column.
type SchemaDocument struct {
	scoring.Schema
}

func (d SchemaDocument) Value() (driver.Value, error) {
	return json.Marshal(d.Schema)
}

func (d *SchemaDocument) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &d.Schema)
	case string:
		return json.Unmarshal([]byte(v), &d.Schema)
	case nil:
		d.Schema = scoring.Schema{}
		return nil
	default:
		return fmt.Errorf("unsupported schema column type %T", value)
	}
}

// QuestionSet is one versioned question schema for a category. The quiz always
// runs against the highest version.
type QuestionSet struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID string         `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   Category       `json:"-"`
	Version    int            `gorm:"not null;default:1" json:"version"`
	Schema     SchemaDocument `gorm:"type:jsonb" json:"schema"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (q *QuestionSet) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
