package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mindfunnel/mindfunnel-api/config"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const generatorSystemPreamble = "You are a neuroscience-savvy report generator. Respond with the complete report as standalone HTML."

// ReportGenerator produces the report body for a paid attempt. The caller owns
// the context deadline; a stuck generation call must not hold the worker forever.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, template string, archetype string, answers model.AnswerList) (string, error)
}

type geminiGenerator struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiGenerator(cfg *config.Config) (ReportGenerator, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Report generation will be non-functional.")
		return &geminiGenerator{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiGenerator{client: client.GenerativeModel(cfg.GeminiModel), cfg: cfg}, nil
}

// FillTemplate substitutes the archetype and answers into a prompt template.
// Placeholders follow the seeded prompt convention: {{archetype_name}} and
// {{answers_json}}.
func FillTemplate(template, archetype string, answers model.AnswerList) (string, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	filled := strings.ReplaceAll(template, "{{archetype_name}}", archetype)
	filled = strings.ReplaceAll(filled, "{{answers_json}}", string(answersJSON))
	return filled, nil
}

func (g *geminiGenerator) GenerateReport(ctx context.Context, template string, archetype string, answers model.AnswerList) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	prompt, err := FillTemplate(template, archetype, answers)
	if err != nil {
		return "", err
	}

	resp, err := g.client.GenerateContent(ctx, genai.Text(generatorSystemPreamble+"\n\n"+prompt))
	if err != nil {
		log.Error().Err(err).Str("archetype", archetype).Msg("Gemini API error during report generation")
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	// Anything without text content counts as a generation failure.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("generation returned no content")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			builder.WriteString(string(txt))
		}
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("generation returned no text content")
	}
	return builder.String(), nil
}
