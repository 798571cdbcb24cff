package service

import "errors"

// Sentinel errors the controllers map onto HTTP status codes. Malformed input
// and resolution failures are never retried server-side; persistence failures
// surface as 5xx so the caller retries.
var (
	ErrUnrecognizedEvent   = errors.New("unrecognized payment event shape")
	ErrMissingIdentifiers  = errors.New("missing quiz attempt id or provider order id")
	ErrAttemptNotFound     = errors.New("quiz attempt not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrNoAttemptResolvable = errors.New("no attempt resolvable for this receipt")
)
