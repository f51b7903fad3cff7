package session

import "github.com/careercompass/backend/internal/model"

// ScoreResult is the outcome of scoring a ledger snapshot against a
// question list.
type ScoreResult struct {
	Score       int
	TotalPoints int
	Percentage  float64
}

// ScoreQuestions computes the raw score, the total possible points and the
// percentage. Every question contributes its point value to the total,
// answered or not; a question scores only when the selected option exactly
// string-equals its correct answer. A test with zero total points scores 0%
// rather than propagating a division by zero.
func ScoreQuestions(questions []model.Question, answers map[uint]string) ScoreResult {
	var result ScoreResult
	for _, q := range questions {
		result.TotalPoints += q.Points
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectAnswer {
			result.Score += q.Points
		}
	}
	if result.TotalPoints > 0 {
		result.Percentage = 100 * float64(result.Score) / float64(result.TotalPoints)
	}
	return result
}
