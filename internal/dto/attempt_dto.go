package dto

import "time"

// AttemptResultDTO is returned once a submission has been persisted.
type AttemptResultDTO struct {
	ID          uint      `json:"id"`
	TestID      uint      `json:"test_id"`
	TestTitle   string    `json:"test_title,omitempty"`
	UserID      uint      `json:"user_id"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	Percentage  float64   `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}

// AttemptSummaryDTO is one row of a user's attempt history.
type AttemptSummaryDTO struct {
	ID           uint      `json:"id"`
	TestID       uint      `json:"test_id"`
	TestTitle    string    `json:"test_title,omitempty"`
	TestCategory string    `json:"test_category,omitempty"`
	Score        int       `json:"score"`
	TotalPoints  int       `json:"total_points"`
	Percentage   float64   `json:"percentage"`
	CompletedAt  time.Time `json:"completed_at"`
}
