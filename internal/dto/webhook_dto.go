package dto

// Payment-provider event types that denote a completed purchase. Everything
// else is acknowledged without action so the provider does not retry.
const (
	EventOrderCompleted   = "order.completed"
	EventPaymentSucceeded = "payment.succeeded"
)

// PaymentMetadata is the checkout metadata the funnel attaches to every
// provider checkout link.
type PaymentMetadata struct {
	QuizAttemptID string `json:"quiz_attempt_id"`
	Product       string `json:"product"`
}

// PaymentEventData is the order payload inside a provider event.
type PaymentEventData struct {
	ID          string          `json:"id"` // provider order id
	AmountCents int             `json:"amount_cents"`
	FinalAmount int             `json:"final_amount"`
	UserEmail   string          `json:"user_email"`
	Metadata    PaymentMetadata `json:"metadata"`
}

// PaymentEvent is the typed webhook envelope. Providers tag events under
// different keys depending on API version; Kind() folds them together.
// A body with no tag at all is an unrecognized shape and is rejected.
type PaymentEvent struct {
	Type   string           `json:"type"`
	Event  string           `json:"event"`
	Action string           `json:"action"`
	Data   PaymentEventData `json:"data"`
}

// Kind returns the event tag, preferring type over event over action.
func (e PaymentEvent) Kind() string {
	if e.Type != "" {
		return e.Type
	}
	if e.Event != "" {
		return e.Event
	}
	return e.Action
}

// Amount returns the order amount in cents, falling back through the
// provider's two amount fields. Zero means "not supplied".
func (e PaymentEvent) Amount() int {
	if e.Data.AmountCents > 0 {
		return e.Data.AmountCents
	}
	return e.Data.FinalAmount
}

// WebhookAck is the 200 body for the payment webhook. JobID is the enqueue
// boundary handed to the job queue; it is empty for no-op acknowledgements.
type WebhookAck struct {
	OK        bool   `json:"ok"`
	JobID     string `json:"job_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}
