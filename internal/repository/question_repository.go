package repository

import (
	"github.com/careercompass/backend/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository reads the question set a session runs over. Questions
// are authored through TestRepository.Create as an association of the test.
type QuestionRepository interface {
	FindByTestID(testID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByTestID(testID uint) ([]model.Question, error) {
	// Storage return order; sessions present questions in this order.
	var questions []model.Question
	if err := r.db.Where("test_id = ?", testID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
