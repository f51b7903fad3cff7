package repository

import (
	"github.com/careercompass/backend/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	FindAllByUser(userID uint) ([]model.TestAttempt, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) FindAllByUser(userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.
		Preload("Test").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}
