package dto

// Report generation states surfaced to the polling client. "none" means no
// job was ever enqueued for the attempt.
const (
	ReportStateNone       = "none"
	ReportStatePending    = "pending"
	ReportStateProcessing = "processing"
	ReportStateError      = "error"
	ReportStateReady      = "ready"
)

type ReportDTO struct {
	ID            string  `json:"id"`
	QuizAttemptID string  `json:"quiz_attempt_id"`
	Type          string  `json:"type"`
	HTML          string  `json:"html"`
	PDFURL        *string `json:"pdf_url,omitempty"`
	AudioURL      *string `json:"audio_url,omitempty"`
}

// ReportStatusResponse is the poller contract: Ready with the report once it
// exists, otherwise the job state so the client can distinguish "still
// working" from "failed" from "nothing enqueued".
type ReportStatusResponse struct {
	Ready  bool       `json:"ready"`
	Status string     `json:"status"`
	Error  *string    `json:"error,omitempty"`
	Report *ReportDTO `json:"report,omitempty"`
}
