package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Growth potential categories returned by the recommendation schema.
const (
	GrowthLow      = "Low"
	GrowthMedium   = "Medium"
	GrowthHigh     = "High"
	GrowthVeryHigh = "Very High"
)

// CareerRecommendation is an append-only output of the recommendation
// generator; it is never mutated after insertion.
type CareerRecommendation struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	CareerTitle     string         `json:"career_title" gorm:"not null"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	ConfidenceScore float64        `json:"confidence_score" gorm:"not null"` // 0-100
	RequiredSkills  datatypes.JSON `json:"required_skills,omitempty"`
	SalaryRange     string         `json:"salary_range,omitempty"`
	GrowthPotential string         `json:"growth_potential,omitempty"` // "Low", "Medium", "High", "Very High"
	SkillGaps       []SkillGap     `json:"skill_gaps,omitempty" gorm:"foreignKey:RecommendationID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
