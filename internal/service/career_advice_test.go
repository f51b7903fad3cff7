package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adviceArgs builds tool-call arguments for CareerCount valid careers, then
// lets a test mutate them before parsing.
func adviceArgs(t *testing.T, mutate func(careers []map[string]any)) map[string]any {
	t.Helper()
	careers := make([]map[string]any, 0, CareerCount)
	for i := 0; i < CareerCount; i++ {
		careers = append(careers, map[string]any{
			"career_title":     "Data Analyst",
			"description":      "Analyzes datasets to answer business questions",
			"confidence_score": 80.0,
			"required_skills":  []any{"SQL", "Statistics"},
			"salary_range":     "$60,000 - $95,000",
			"growth_potential": "High",
			"skill_gaps": []any{map[string]any{
				"skill_name":     "SQL",
				"current_level":  4,
				"required_level": 7,
				"priority":       "high",
			}},
			"learning_paths": []any{map[string]any{
				"resource_title":     "SQL for Data Analysis",
				"resource_type":      "course",
				"resource_url":       "https://example.com/sql",
				"estimated_duration": "6 weeks",
				"provider":           "Coursera",
				"difficulty":         "beginner",
			}},
		})
	}
	if mutate != nil {
		mutate(careers)
	}
	// Round-trip through JSON so nested values carry the types a real
	// tool-call payload would have.
	raw, err := json.Marshal(map[string]any{"careers": careers})
	require.NoError(t, err)
	var args map[string]any
	require.NoError(t, json.Unmarshal(raw, &args))
	return args
}

func TestParseCareerAdvice_Valid(t *testing.T) {
	advice, err := parseCareerAdvice(adviceArgs(t, nil))
	require.NoError(t, err)
	require.Len(t, advice.Careers, CareerCount)

	career := advice.Careers[0]
	assert.Equal(t, "Data Analyst", career.CareerTitle)
	assert.Equal(t, 80.0, career.ConfidenceScore)
	assert.Equal(t, []string{"SQL", "Statistics"}, career.RequiredSkills)
	require.Len(t, career.SkillGaps, 1)
	assert.Equal(t, "high", career.SkillGaps[0].Priority)
	require.Len(t, career.LearningPaths, 1)
	assert.Equal(t, "Coursera", career.LearningPaths[0].Provider)
}

func TestParseCareerAdvice_WrongCareerCount(t *testing.T) {
	args := adviceArgs(t, nil)
	args["careers"] = args["careers"].([]any)[:3]

	_, err := parseCareerAdvice(args)
	assert.Error(t, err)
}

func TestParseCareerAdvice_MissingTitle(t *testing.T) {
	args := adviceArgs(t, func(careers []map[string]any) {
		careers[2]["career_title"] = ""
	})
	_, err := parseCareerAdvice(args)
	assert.Error(t, err)
}

func TestParseCareerAdvice_InvalidGrowthPotential(t *testing.T) {
	args := adviceArgs(t, func(careers []map[string]any) {
		careers[0]["growth_potential"] = "Explosive"
	})
	_, err := parseCareerAdvice(args)
	assert.Error(t, err)
}

func TestParseCareerAdvice_InvalidGapPriority(t *testing.T) {
	args := adviceArgs(t, func(careers []map[string]any) {
		careers[0]["skill_gaps"] = []any{map[string]any{
			"skill_name":     "SQL",
			"current_level":  4,
			"required_level": 7,
			"priority":       "urgent",
		}}
	})
	_, err := parseCareerAdvice(args)
	assert.Error(t, err)
}

func TestParseCareerAdvice_ClampsOutOfRangeNumbers(t *testing.T) {
	args := adviceArgs(t, func(careers []map[string]any) {
		careers[0]["confidence_score"] = 150.0
		careers[1]["confidence_score"] = -10.0
		careers[0]["skill_gaps"] = []any{map[string]any{
			"skill_name":     "SQL",
			"current_level":  0,
			"required_level": 15,
			"priority":       "low",
		}}
	})

	advice, err := parseCareerAdvice(args)
	require.NoError(t, err)
	assert.Equal(t, 100.0, advice.Careers[0].ConfidenceScore)
	assert.Equal(t, 0.0, advice.Careers[1].ConfidenceScore)
	assert.Equal(t, 1, advice.Careers[0].SkillGaps[0].CurrentLevel)
	assert.Equal(t, 10, advice.Careers[0].SkillGaps[0].RequiredLevel)
}

func TestParseCareerAdvice_MalformedShape(t *testing.T) {
	_, err := parseCareerAdvice(map[string]any{"careers": "not a list"})
	assert.Error(t, err)
}
