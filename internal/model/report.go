package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is the finished artifact the client polls for. Created exactly once
// per (attempt, product) when a job reaches done; immutable afterwards.
type Report struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizAttemptID string    `gorm:"type:uuid;not null;index:idx_reports_attempt_type,unique" json:"quiz_attempt_id"`
	Type          string    `gorm:"not null;index:idx_reports_attempt_type,unique" json:"type"` // product tag
	HTML          string    `gorm:"type:text;not null" json:"html"`
	PDFURL        *string   `json:"pdf_url,omitempty"`
	AudioURL      *string   `json:"audio_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
