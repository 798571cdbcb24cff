package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func brainSchema() Schema {
	return Schema{
		Title: "Brain Type - Quick Test",
		Questions: []Question{
			{ID: "q1"}, {ID: "q2"}, {ID: "q3"}, {ID: "q4"}, {ID: "q5"},
		},
		Archetypes: []Archetype{
			{Key: "calm_strategist", Name: "Calm Strategist"},
			{Key: "stress_freezer", Name: "Stress Freezer"},
			{Key: "reactive_sprinter", Name: "Reactive Sprinter"},
			{Key: "over_analyzer", Name: "Over-Analyzer"},
			{Key: "adaptive_operator", Name: "Adaptive Operator"},
		},
		Scoring: Rules{
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

func TestPickArchetypePlurality(t *testing.T) {
	// 3 answers vote calm_strategist, 2 vote stress_freezer.
	answers := []Answer{
		{ID: "q1", Choice: "A"}, // calm_strategist
		{ID: "q3", Choice: "B"}, // calm_strategist
		{ID: "q5", Choice: "D"}, // calm_strategist
		{ID: "q2", Choice: "D"}, // stress_freezer
		{ID: "q4", Choice: "A"}, // stress_freezer
	}
	key, name := PickArchetype(brainSchema(), answers)
	assert.Equal(t, "calm_strategist", key)
	assert.Equal(t, "Calm Strategist", name)
}

func TestPickArchetypeDuplicateQuestionUsesFirstAnswer(t *testing.T) {
	answers := []Answer{
		{ID: "q1", Choice: "A"}, // calm_strategist
		{ID: "q1", Choice: "D"}, // duplicate question id, ignored
		{ID: "q3", Choice: "B"}, // calm_strategist
	}
	key, _ := PickArchetype(brainSchema(), answers)
	assert.Equal(t, "calm_strategist", key)
}

func TestPickArchetypeDeterministic(t *testing.T) {
	answers := []Answer{
		{ID: "q1", Choice: "B"},
		{ID: "q3", Choice: "A"},
		{ID: "q4", Choice: "D"},
	}
	first, _ := PickArchetype(brainSchema(), answers)
	for i := 0; i < 50; i++ {
		key, _ := PickArchetype(brainSchema(), answers)
		assert.Equal(t, first, key, "scoring must be deterministic across runs")
	}
}

func TestPickArchetypeTieBreaksByDeclaredOrder(t *testing.T) {
	// One vote each for calm_strategist (q1=A) and stress_freezer (q4=A).
	answers := []Answer{
		{ID: "q1", Choice: "A"},
		{ID: "q4", Choice: "A"},
	}
	key, _ := PickArchetype(brainSchema(), answers)
	assert.Equal(t, "calm_strategist", key, "first-declared archetype wins ties")
}

func TestPickArchetypeNoAnswersFallsBackToFirstDeclared(t *testing.T) {
	key, name := PickArchetype(brainSchema(), nil)
	assert.Equal(t, "calm_strategist", key)
	assert.Equal(t, "Calm Strategist", name)
}

func TestPickArchetypeUnmappedAnswersAreSkipped(t *testing.T) {
	answers := []Answer{
		{ID: "q1", Choice: "Z"},    // choice not in map
		{ID: "q99", Choice: "A"},   // question not in schema
		{ID: "q2", Choice: "A"},    // adaptive_operator
	}
	key, _ := PickArchetype(brainSchema(), answers)
	assert.Equal(t, "adaptive_operator", key)
}

func TestPickArchetypeEmptySchema(t *testing.T) {
	key, name := PickArchetype(Schema{}, []Answer{{ID: "q1", Choice: "A"}})
	assert.Equal(t, FallbackKey, key)
	assert.Equal(t, FallbackKey, name)
}

func TestPickArchetypeUndeclaredMappedKeyStillCounts(t *testing.T) {
	schema := Schema{
		Questions:  []Question{{ID: "q1"}},
		Archetypes: []Archetype{{Key: "listed", Name: "Listed"}},
		Scoring: Rules{Map: map[string]map[string]string{
			"q1": {"A": "ghost"},
		}},
	}
	key, name := PickArchetype(schema, []Answer{{ID: "q1", Choice: "A"}})
	assert.Equal(t, "ghost", key)
	assert.Equal(t, "ghost", name, "undeclared keys fall back to the key as display name")
}
