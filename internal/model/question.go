package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options" gorm:"not null"` // ordered list of option strings
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	Points        int            `json:"points" gorm:"not null;default:1"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
