package service

import (
	"encoding/json"
	"fmt"

	"github.com/careercompass/backend/internal/model"
)

// CareerCount is the number of distinct career paths the advisor must
// return.
const CareerCount = 5

// CareerAdvice is the validated structured output of the career advisor.
type CareerAdvice struct {
	Careers []RecommendedCareer `json:"careers"`
}

type RecommendedCareer struct {
	CareerTitle     string                `json:"career_title"`
	Description     string                `json:"description"`
	ConfidenceScore float64               `json:"confidence_score"`
	RequiredSkills  []string              `json:"required_skills"`
	SalaryRange     string                `json:"salary_range"`
	GrowthPotential string                `json:"growth_potential"`
	SkillGaps       []RecommendedSkillGap `json:"skill_gaps"`
	LearningPaths   []RecommendedResource `json:"learning_paths"`
}

type RecommendedSkillGap struct {
	SkillName     string `json:"skill_name"`
	CurrentLevel  int    `json:"current_level"`
	RequiredLevel int    `json:"required_level"`
	Priority      string `json:"priority"`
}

type RecommendedResource struct {
	ResourceTitle     string `json:"resource_title"`
	ResourceType      string `json:"resource_type"`
	ResourceURL       string `json:"resource_url"`
	EstimatedDuration string `json:"estimated_duration"`
	Provider          string `json:"provider"`
	Difficulty        string `json:"difficulty"`
}

var growthPotentials = map[string]bool{
	model.GrowthLow:      true,
	model.GrowthMedium:   true,
	model.GrowthHigh:     true,
	model.GrowthVeryHigh: true,
}

var gapPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// parseCareerAdvice converts the raw tool-call arguments into validated
// advice. The model is never trusted blindly: required fields must be
// present, enumerations must hold, and numeric fields are clamped to their
// declared bounds. Any violation fails the whole parse; partial advice is
// never returned.
func parseCareerAdvice(args map[string]any) (*CareerAdvice, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("re-encoding tool arguments: %w", err)
	}

	var advice CareerAdvice
	if err := json.Unmarshal(raw, &advice); err != nil {
		return nil, fmt.Errorf("tool arguments do not match the expected shape: %w", err)
	}

	if len(advice.Careers) != CareerCount {
		return nil, fmt.Errorf("expected %d careers, got %d", CareerCount, len(advice.Careers))
	}

	for i := range advice.Careers {
		career := &advice.Careers[i]
		if career.CareerTitle == "" {
			return nil, fmt.Errorf("career %d is missing a title", i+1)
		}
		if !growthPotentials[career.GrowthPotential] {
			return nil, fmt.Errorf("career %q has invalid growth potential %q", career.CareerTitle, career.GrowthPotential)
		}
		career.ConfidenceScore = clampFloat(career.ConfidenceScore, 0, 100)

		for j := range career.SkillGaps {
			gap := &career.SkillGaps[j]
			if gap.SkillName == "" {
				return nil, fmt.Errorf("career %q has a skill gap without a name", career.CareerTitle)
			}
			if !gapPriorities[gap.Priority] {
				return nil, fmt.Errorf("skill gap %q has invalid priority %q", gap.SkillName, gap.Priority)
			}
			gap.CurrentLevel = clampInt(gap.CurrentLevel, 1, 10)
			gap.RequiredLevel = clampInt(gap.RequiredLevel, 1, 10)
		}
		for j := range career.LearningPaths {
			if career.LearningPaths[j].ResourceTitle == "" {
				return nil, fmt.Errorf("career %q has a learning resource without a title", career.CareerTitle)
			}
		}
	}

	return &advice, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
