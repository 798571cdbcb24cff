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

// Attempt status tracks the highest payment tier confirmed for the attempt,
// not report progress. It only ever moves forward.
const (
	AttemptStatusTeaserShown = "teaser_shown"
	AttemptStatusMiniPaid    = "mini_paid"
	AttemptStatusFullPaid    = "full_paid"
)

// AttemptStatusRank orders the status ladder; unknown statuses rank lowest so
// they can never block an upgrade.
func AttemptStatusRank(status string) int {
	switch status {
	case AttemptStatusTeaserShown:
		return 0
	case AttemptStatusMiniPaid:
		return 1
	case AttemptStatusFullPaid:
		return 2
	default:
		return -1
	}
}

// AnswerList stores the submitted (question, choice) pairs as a jsonb column.
type AnswerList []scoring.Answer

func (l AnswerList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]scoring.Answer{})
	}
	return json.Marshal([]scoring.Answer(l))
}

func (l *AnswerList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]scoring.Answer)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]scoring.Answer)(l))
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported answers column type %T", value)
	}
}

// QuizAttempt is one completed quiz response. Answers and archetype are
// immutable after creation; only Status is mutated later, by the webhook
// ingestor. Attempts are never deleted, so there is no soft-delete column.
type QuizAttempt struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User          User       `json:"-"`
	CategoryID    string     `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      Category   `json:"-"`
	AffiliateID   *string    `gorm:"type:uuid" json:"affiliate_id,omitempty"`
	QuestionSetID string     `gorm:"type:uuid;not null" json:"question_set_id"`
	Answers       AnswerList `gorm:"type:jsonb" json:"answers"`
	Archetype     string     `gorm:"not null" json:"archetype"`
	TeaserHTML    string     `gorm:"type:text" json:"teaser_html,omitempty"`
	Status        string     `gorm:"not null;default:'teaser_shown'" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
