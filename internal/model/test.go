package model

import (
	"time"

	"gorm.io/gorm"
)

// Test categories, mirroring the aptitude test taxonomy.
const (
	CategoryTechnical  = "technical"
	CategoryAnalytical = "analytical"
	CategorySoftSkills = "soft_skills"
)

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null;uniqueIndex"`
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category" gorm:"not null;index"` // "technical", "analytical", "soft_skills"
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	TotalQuestions  int            `json:"total_questions" gorm:"not null"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
