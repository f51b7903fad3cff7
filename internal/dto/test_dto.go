package dto

import "time"

// QuestionViewDTO is the question shape shown to a test taker. The correct
// answer is deliberately absent; scoring happens server-side.
type QuestionViewDTO struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Points       int      `json:"points"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// TestDetailDTO is the full test view, questions included.
type TestDetailDTO struct {
	ID              uint              `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Category        string            `json:"category"`
	DurationMinutes int               `json:"duration_minutes"`
	TotalQuestions  int               `json:"total_questions"`
	Questions       []QuestionViewDTO `json:"questions,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// --- Admin authoring DTOs ---

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Points        int      `json:"points" binding:"omitempty,min=1"`
}

// TestCreateDTO is for admin to create a new test with all its questions.
type TestCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category" binding:"required,oneof=technical analytical soft_skills"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,min=1"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}
