package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job statuses. pending -> processing -> done | error, strictly forward.
// error is terminal: there is no automatic retry, an operator requeues by hand.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusError      = "error"
)

// ReportJob is one unit of report-generation work, enqueued by the webhook
// ingestor and consumed by the single generation worker. The jobs table is the
// only synchronization point between the two processes.
type ReportJob struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizAttemptID string      `gorm:"type:uuid;not null;index" json:"quiz_attempt_id"`
	QuizAttempt   QuizAttempt `json:"-"`
	Product       string      `gorm:"not null" json:"product"`
	Status        string      `gorm:"not null;default:'pending';index" json:"status"`
	Error         *string     `gorm:"type:text" json:"error,omitempty"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (j *ReportJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
