package dto

// SessionStartDTO opens a new timed session for a user on a test.
type SessionStartDTO struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AnswerSelectDTO records the option chosen for the currently displayed
// question. Any string is accepted; unrecognized options simply score zero.
type AnswerSelectDTO struct {
	Option string `json:"option" binding:"required"`
}

// SessionStateDTO is the read model the test-taking UI renders from.
type SessionStateDTO struct {
	SessionID        string           `json:"session_id"`
	TestID           uint             `json:"test_id"`
	TestTitle        string           `json:"test_title"`
	State            string           `json:"state"`
	RemainingSeconds int              `json:"remaining_seconds"`
	CurrentIndex     int              `json:"current_index"`
	TotalQuestions   int              `json:"total_questions"`
	Progress         float64          `json:"progress"` // (currentIndex+1)/totalQuestions
	AnsweredCount    int              `json:"answered_count"`
	CurrentQuestion  *QuestionViewDTO `json:"current_question,omitempty"`
	SelectedOption   string           `json:"selected_option,omitempty"`
}
