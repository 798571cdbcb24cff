package dto

// AnswerDTO mirrors one submitted (question, choice) pair.
type AnswerDTO struct {
	ID     string `json:"id" binding:"required"`
	Choice string `json:"choice" binding:"required"`
}

// QuizSubmitRequest is the body for POST /quiz/:category_slug/submit.
type QuizSubmitRequest struct {
	Email           string      `json:"email" binding:"required,email"`
	AffiliateHandle string      `json:"affiliate_handle"`
	Answers         []AnswerDTO `json:"answers"`
}

// QuizSubmitResponse returns the created attempt and its teaser.
type QuizSubmitResponse struct {
	AttemptID     string `json:"attempt_id"`
	ArchetypeKey  string `json:"archetype_key"`
	ArchetypeName string `json:"archetype_name"`
	TeaserHTML    string `json:"teaser_html"`
}
