package model

import (
	"time"

	"gorm.io/gorm"
)

type LearningPath struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            uint           `json:"user_id" gorm:"not null;index"`
	SkillGapID        *uint          `json:"skill_gap_id,omitempty" gorm:"index"`
	ResourceTitle     string         `json:"resource_title" gorm:"not null"`
	ResourceType      string         `json:"resource_type,omitempty"` // "course", "book", "video", "certification"
	ResourceURL       string         `json:"resource_url,omitempty"`
	EstimatedDuration string         `json:"estimated_duration,omitempty"`
	Provider          string         `json:"provider,omitempty"`
	Difficulty        string         `json:"difficulty,omitempty"` // "beginner", "intermediate", "advanced"
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
