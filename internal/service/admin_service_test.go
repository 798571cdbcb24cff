package service

import (
	"testing"

	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/scoring"
	"github.com/mindfunnel/mindfunnel-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRequest(slug string) dto.CategoryCreateRequest {
	return dto.CategoryCreateRequest{
		Slug:        slug,
		Name:        "Brain Type Test",
		PricingLow:  700,
		PricingHigh: 2900,
		Schema: scoring.Schema{
			Title:      "Brain Type - Quick Test",
			Archetypes: []scoring.Archetype{{Key: "calm_strategist", Name: "Calm Strategist"}},
			Scoring: scoring.Rules{
				Method: "plurality",
				Map:    map[string]map[string]string{"q1": {"A": "calm_strategist"}},
			},
		},
		Prompts: []dto.PromptDTO{
			{Type: model.ProductMiniReport, Template: "Archetype: {{archetype_name}}"},
			{Type: model.ProductFullAssessment, Template: "Answers: {{answers_json}}"},
		},
	}
}

func TestCreateCategoryProvisionsEverything(t *testing.T) {
	db := testutil.NewDB(t)
	categories := repository.NewCategoryRepository(db)
	questionSets := repository.NewQuestionSetRepository(db)
	prompts := repository.NewPromptRepository(db)
	svc := NewAdminService(categories, questionSets, prompts)

	resp, err := svc.CreateCategory(categoryRequest("brain"))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.PromptCount)

	category, err := categories.FindBySlug("brain")
	require.NoError(t, err)
	assert.Equal(t, resp.CategoryID, category.ID)
	assert.Equal(t, 700, category.PricingLow)

	questionSet, err := questionSets.FindLatestByCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, questionSet.Version)
	assert.Equal(t, "Brain Type - Quick Test", questionSet.Schema.Title)
	assert.Equal(t, "calm_strategist", questionSet.Schema.Scoring.Map["q1"]["A"])

	prompt, err := prompts.FindByCategoryAndType(category.ID, model.ProductMiniReport)
	require.NoError(t, err)
	assert.Contains(t, prompt.Template, "{{archetype_name}}")
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(
		repository.NewCategoryRepository(db),
		repository.NewQuestionSetRepository(db),
		repository.NewPromptRepository(db),
	)

	_, err := svc.CreateCategory(categoryRequest("brain"))
	require.NoError(t, err)
	_, err = svc.CreateCategory(categoryRequest("brain"))
	assert.Error(t, err)
}
