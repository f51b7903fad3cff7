package dto

import "time"

// GenerateRecommendationsDTO triggers recommendation generation for a user.
type GenerateRecommendationsDTO struct {
	UserID uint `json:"user_id" binding:"required"`
}

// GenerateResultDTO signals the outcome; the client re-fetches the three
// record sets rather than receiving them inline.
type GenerateResultDTO struct {
	Success           bool `json:"success"`
	CareersGenerated  int  `json:"careers_generated"`
	SkillGapsFound    int  `json:"skill_gaps_found"`
	LearningResources int  `json:"learning_resources"`
}

type CareerRecommendationDTO struct {
	ID              uint      `json:"id"`
	CareerTitle     string    `json:"career_title"`
	Description     string    `json:"description,omitempty"`
	ConfidenceScore float64   `json:"confidence_score"`
	RequiredSkills  []string  `json:"required_skills,omitempty"`
	SalaryRange     string    `json:"salary_range,omitempty"`
	GrowthPotential string    `json:"growth_potential,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SkillGapDTO struct {
	ID               uint   `json:"id"`
	RecommendationID *uint  `json:"recommendation_id,omitempty"`
	SkillName        string `json:"skill_name"`
	CurrentLevel     int    `json:"current_level"`
	RequiredLevel    int    `json:"required_level"`
	Priority         string `json:"priority,omitempty"`
}

type LearningPathDTO struct {
	ID                uint   `json:"id"`
	SkillGapID        *uint  `json:"skill_gap_id,omitempty"`
	ResourceTitle     string `json:"resource_title"`
	ResourceType      string `json:"resource_type,omitempty"`
	ResourceURL       string `json:"resource_url,omitempty"`
	EstimatedDuration string `json:"estimated_duration,omitempty"`
	Provider          string `json:"provider,omitempty"`
	Difficulty        string `json:"difficulty,omitempty"`
}
