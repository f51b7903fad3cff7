package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestAttempt is the immutable result of one completed session. It is
// created exactly once per submission and never updated afterwards.
type TestAttempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	Score       int            `json:"score" gorm:"not null"`
	TotalPoints int            `json:"total_points" gorm:"not null"`
	Percentage  float64        `json:"percentage" gorm:"not null"`
	Answers     datatypes.JSON `json:"answers"` // frozen ledger snapshot, question id -> selected option
	CompletedAt time.Time      `json:"completed_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
