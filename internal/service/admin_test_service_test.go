package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTestRepo struct {
	created   *model.Test
	createErr error
}

func (f *fakeTestRepo) Create(test *model.Test) error {
	if f.createErr != nil {
		return f.createErr
	}
	test.ID = 1
	f.created = test
	return nil
}

func (f *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	if f.created == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.created, nil
}

func (f *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	return f.FindByID(id)
}

func (f *fakeTestRepo) FindAllWithQuestionCount() ([]struct {
	model.Test
	QuestionCount int
}, error) {
	return nil, nil
}

func createRequest() dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Title:           "Programming Fundamentals",
		Description:     "Core programming concepts",
		Category:        model.CategoryTechnical,
		DurationMinutes: 30,
		Questions: []dto.QuestionCreateDTO{
			{
				QuestionText:  "Which data structure uses LIFO ordering?",
				Options:       []string{"Queue", "Stack", "Heap", "Graph"},
				CorrectAnswer: "Stack",
				Points:        2,
			},
			{
				QuestionText:  "What does SQL stand for?",
				Options:       []string{"Structured Query Language", "Simple Query Language"},
				CorrectAnswer: "Structured Query Language",
			},
		},
	}
}

func TestCreateTest_PersistsQuestionsWithDefaults(t *testing.T) {
	repo := &fakeTestRepo{}
	svc := NewAdminTestService(repo)

	resp, err := svc.CreateTest(createRequest())
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, 2, repo.created.TotalQuestions)
	require.Len(t, repo.created.Questions, 2)
	assert.Equal(t, 2, repo.created.Questions[0].Points)
	assert.Equal(t, 1, repo.created.Questions[1].Points, "unset points default to 1")

	var options []string
	require.NoError(t, json.Unmarshal(repo.created.Questions[0].Options, &options))
	assert.Equal(t, []string{"Queue", "Stack", "Heap", "Graph"}, options)

	assert.Equal(t, "Programming Fundamentals", resp.Title)
	assert.Equal(t, 2, resp.TotalQuestions)
}

func TestCreateTest_RejectsAnswerOutsideOptions(t *testing.T) {
	repo := &fakeTestRepo{}
	svc := NewAdminTestService(repo)

	req := createRequest()
	req.Questions[0].CorrectAnswer = "Linked List"

	_, err := svc.CreateTest(req)
	assert.Error(t, err)
	assert.Nil(t, repo.created, "nothing may be persisted when validation fails")
}

func TestCreateTest_SurfacesRepositoryError(t *testing.T) {
	repo := &fakeTestRepo{createErr: errors.New("duplicate key")}
	svc := NewAdminTestService(repo)

	_, err := svc.CreateTest(createRequest())
	assert.Error(t, err)
}

func TestQuestionView_WithholdsCorrectAnswer(t *testing.T) {
	options, err := json.Marshal([]string{"Paris", "London"})
	require.NoError(t, err)

	view := QuestionView(model.Question{
		ID:            5,
		QuestionText:  "Capital of France?",
		Options:       options,
		CorrectAnswer: "Paris",
		Points:        1,
	})

	assert.Equal(t, uint(5), view.ID)
	assert.Equal(t, []string{"Paris", "London"}, view.Options)

	// The serialized view must never leak the answer key.
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct")
}
