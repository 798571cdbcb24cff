package dto

import "github.com/mindfunnel/mindfunnel-api/internal/scoring"

// PromptDTO is one AI template for a product tier within a category.
type PromptDTO struct {
	Type     string `json:"type" binding:"required"`
	Template string `json:"template" binding:"required"`
}

// CategoryCreateRequest creates a category together with its first question
// set and prompt templates.
type CategoryCreateRequest struct {
	Slug        string         `json:"slug" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	PricingLow  int            `json:"pricing_low"`
	PricingHigh int            `json:"pricing_high"`
	Schema      scoring.Schema `json:"schema" binding:"required"`
	Prompts     []PromptDTO    `json:"prompts" binding:"dive"`
}

// CategoryCreateResponse echoes back the created identifiers.
type CategoryCreateResponse struct {
	CategoryID    string `json:"category_id"`
	QuestionSetID string `json:"question_set_id"`
	PromptCount   int    `json:"prompt_count"`
}
