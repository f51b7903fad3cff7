package model

import (
	"time"

	"gorm.io/gorm"
)

type SkillGap struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	RecommendationID *uint          `json:"recommendation_id,omitempty" gorm:"index"`
	SkillName        string         `json:"skill_name" gorm:"not null"`
	CurrentLevel     int            `json:"current_level"`  // 1-10
	RequiredLevel    int            `json:"required_level"` // 1-10
	Priority         string         `json:"priority,omitempty"` // "low", "medium", "high"
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
