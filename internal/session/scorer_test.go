package session

import (
	"testing"

	"github.com/careercompass/backend/internal/model"
)

func twoQuestionTest() []model.Question {
	return []model.Question{
		{ID: 1, CorrectAnswer: "A", Points: 1},
		{ID: 2, CorrectAnswer: "B", Points: 1},
	}
}

func TestScoreQuestions_AllCorrect(t *testing.T) {
	result := ScoreQuestions(twoQuestionTest(), map[uint]string{1: "A", 2: "B"})

	if result.Score != 2 || result.TotalPoints != 2 {
		t.Errorf("Score/TotalPoints = %d/%d, want 2/2", result.Score, result.TotalPoints)
	}
	if result.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", result.Percentage)
	}
}

func TestScoreQuestions_OneWrong(t *testing.T) {
	result := ScoreQuestions(twoQuestionTest(), map[uint]string{1: "A", 2: "C"})

	if result.Score != 1 {
		t.Errorf("Score = %d, want 1", result.Score)
	}
	if result.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", result.Percentage)
	}
}

func TestScoreQuestions_NothingAnswered(t *testing.T) {
	result := ScoreQuestions(twoQuestionTest(), map[uint]string{})

	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	if result.TotalPoints != 2 {
		t.Errorf("TotalPoints = %d, want 2 (unanswered questions still count toward the total)", result.TotalPoints)
	}
	if result.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0", result.Percentage)
	}
}

func TestScoreQuestions_UnansweredStillInDenominator(t *testing.T) {
	result := ScoreQuestions(twoQuestionTest(), map[uint]string{1: "A"})

	if result.Score != 1 || result.TotalPoints != 2 {
		t.Errorf("Score/TotalPoints = %d/%d, want 1/2", result.Score, result.TotalPoints)
	}
	if result.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", result.Percentage)
	}
}

func TestScoreQuestions_WeightedPoints(t *testing.T) {
	questions := []model.Question{
		{ID: 1, CorrectAnswer: "A", Points: 3},
		{ID: 2, CorrectAnswer: "B", Points: 1},
	}
	result := ScoreQuestions(questions, map[uint]string{1: "A"})

	if result.Score != 3 || result.TotalPoints != 4 {
		t.Errorf("Score/TotalPoints = %d/%d, want 3/4", result.Score, result.TotalPoints)
	}
	if result.Percentage != 75 {
		t.Errorf("Percentage = %v, want 75", result.Percentage)
	}
}

func TestScoreQuestions_ZeroTotalPoints(t *testing.T) {
	questions := []model.Question{{ID: 1, CorrectAnswer: "A", Points: 0}}
	result := ScoreQuestions(questions, map[uint]string{1: "A"})

	if result.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 when no points are at stake", result.Percentage)
	}
}

func TestScoreQuestions_ExactStringMatchOnly(t *testing.T) {
	result := ScoreQuestions(twoQuestionTest(), map[uint]string{1: "a", 2: " B"})

	if result.Score != 0 {
		t.Errorf("Score = %d, want 0 (matching is exact, no normalization)", result.Score)
	}
}
