package dto

// Where the attempt id for a thank-you page was recovered from.
const (
	ResolveSourceQuery  = "query"
	ResolveSourceOrder  = "order"
	ResolveSourceCookie = "cookie"
)

// ResolveResponse is the result of the attempt-identifier recovery endpoint.
type ResolveResponse struct {
	AttemptID    string `json:"attempt_id"`
	Product      string `json:"product"`
	Source       string `json:"source"`
	OrderCreated bool   `json:"order_created"`
}
