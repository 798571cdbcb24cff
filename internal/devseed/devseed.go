package devseed

import (
	"errors"

	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/scoring"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const miniReportTemplate = `You are a neuroscience-savvy coach writing a 3-page web report.

Archetype: {{archetype_name}}
User answers: {{answers_json}}

Format in HTML with <h2> section headings and <p> paragraphs.
Sections:
1. What this means
2. Under Stress
3. Strengths to Lean On
4. Friction to Watch
5. 3 Immediate Protocols (bullets)

Target ~900 words. Practical, clear, no medical claims.`

const fullAssessmentTemplate = `You are generating a comprehensive 10-page brain profile.

Archetype: {{archetype_name}}
Answers: {{answers_json}}

Format in HTML with <h2> and <h3> headings.
Sections:
1. Overview
2. Stress Triggers
3. 7 Brain Dimensions
4. Daily Protocols
5. Habit Stacks
6. Relapse Prevention

Target ~3000 words, deeply structured but simple language.`

// Seed provisions the brain category with its first question set and prompt
// templates. Idempotent: it does nothing when the category already exists.
// Only wired up when DEV_SEED is set; production categories come through the
// admin API.
func Seed(categories repository.CategoryRepository, adminService service.AdminService) error {
	if _, err := categories.FindBySlug("brain"); err == nil {
		log.Debug().Msg("Dev seed: brain category already present, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	resp, err := adminService.CreateCategory(dto.CategoryCreateRequest{
		Slug:        "brain",
		Name:        "Brain Type Test",
		Description: "Discover how your brain responds under stress and decision-making. Quick free test with upsells to a full report and deep 30-question assessment.",
		PricingLow:  model.DefaultMiniAmountCents,
		PricingHigh: model.DefaultFullAmountCents,
		Schema:      brainSchema(),
		Prompts: []dto.PromptDTO{
			{Type: model.ProductMiniReport, Template: miniReportTemplate},
			{Type: model.ProductFullAssessment, Template: fullAssessmentTemplate},
		},
	})
	if err != nil {
		return err
	}
	log.Info().Str("categoryID", resp.CategoryID).Msg("Dev seed: brain category provisioned")
	return nil
}

func brainSchema() scoring.Schema {
	return scoring.Schema{
		Title: "Brain Type - Quick Test",
		Questions: []scoring.Question{
			{ID: "q1", Text: "Under pressure, I usually...", Options: []string{
				"A) Plan calmly", "B) Act fast", "C) Analyze every angle", "D) Go quiet",
			}},
			{ID: "q2", Text: "When tasks pile up...", Options: []string{
				"A) I adapt priorities", "B) I make a spreadsheet", "C) I focus on the highest leverage", "D) I stall until clarity",
			}},
			{ID: "q3", Text: "In conversations...", Options: []string{
				"A) I speak first", "B) I steer with questions", "C) I mirror their energy", "D) I listen and think",
			}},
			{ID: "q4", Text: "Before big decisions...", Options: []string{
				"A) I freeze briefly", "B) I set constraints", "C) I collect data", "D) I phone a trusted peer",
			}},
			{ID: "q5", Text: "My best days feel...", Options: []string{
				"A) Organized deep work", "B) Adaptive and social", "C) Fast, lots of wins", "D) Calm, focused, strategic",
			}},
		},
		Archetypes: []scoring.Archetype{
			{Key: "calm_strategist", Name: "Calm Strategist"},
			{Key: "stress_freezer", Name: "Stress Freezer"},
			{Key: "reactive_sprinter", Name: "Reactive Sprinter"},
			{Key: "over_analyzer", Name: "Over-Analyzer"},
			{Key: "adaptive_operator", Name: "Adaptive Operator"},
		},
		Scoring: scoring.Rules{
			Method: "plurality",
			Map: map[string]map[string]string{
				"q1": {"A": "calm_strategist", "B": "reactive_sprinter", "C": "over_analyzer", "D": "stress_freezer"},
				"q2": {"A": "adaptive_operator", "B": "over_analyzer", "C": "calm_strategist", "D": "stress_freezer"},
				"q3": {"A": "reactive_sprinter", "B": "calm_strategist", "C": "adaptive_operator", "D": "over_analyzer"},
				"q4": {"A": "stress_freezer", "B": "calm_strategist", "C": "over_analyzer", "D": "adaptive_operator"},
				"q5": {"A": "over_analyzer", "B": "adaptive_operator", "C": "reactive_sprinter", "D": "calm_strategist"},
			},
		},
	}
}
