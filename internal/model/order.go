package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product tags: which report tier an order/job refers to.
const (
	ProductMiniReport     = "mini_report"
	ProductFullAssessment = "full_assessment"
)

// Default prices in cents, used when the provider omits the amount.
const (
	DefaultMiniAmountCents = 700
	DefaultFullAmountCents = 2900
)

// NormalizeProduct coerces unrecognized product tags to the mini tier, the
// same default the checkout links carry.
func NormalizeProduct(product string) string {
	if product == ProductFullAssessment {
		return ProductFullAssessment
	}
	return ProductMiniReport
}

// StatusForProduct maps a paid product tag onto the attempt status it confirms.
func StatusForProduct(product string) string {
	if NormalizeProduct(product) == ProductFullAssessment {
		return AttemptStatusFullPaid
	}
	return AttemptStatusMiniPaid
}

// DefaultAmountForProduct returns the price to record when the provider event
// carries no amount.
func DefaultAmountForProduct(product string) int {
	if NormalizeProduct(product) == ProductFullAssessment {
		return DefaultFullAmountCents
	}
	return DefaultMiniAmountCents
}

// Order is one confirmed payment. ProviderOrderID is the provider's receipt id
// and the sole duplicate-delivery guard: it is unique across all orders.
// Orders are created exactly once and never mutated or deleted.
type Order struct {
	ID              string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string      `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID      string      `gorm:"type:uuid;not null" json:"category_id"`
	AffiliateID     *string     `gorm:"type:uuid" json:"affiliate_id,omitempty"`
	QuizAttemptID   string      `gorm:"type:uuid;not null;index" json:"quiz_attempt_id"`
	QuizAttempt     QuizAttempt `json:"-"`
	Product         string      `gorm:"not null" json:"product"`
	Amount          int         `gorm:"not null" json:"amount"` // cents
	Provider        string      `gorm:"not null" json:"provider"`
	ProviderOrderID string      `gorm:"not null;uniqueIndex" json:"provider_order_id"`
	PayoutStatus    string      `gorm:"not null;default:'pending'" json:"payout_status"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
