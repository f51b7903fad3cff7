package repository

import (
	"github.com/careercompass/backend/internal/model"
	"gorm.io/gorm"
)

type RecommendationRepository interface {
	// CreateAll persists recommendations (with their nested skill gaps) and
	// learning paths as a single logical unit: either every row commits or
	// none do. GORM's association create fills RecommendationID on the
	// nested gaps.
	CreateAll(recs []model.CareerRecommendation, paths []model.LearningPath) error
	FindRecommendationsByUser(userID uint) ([]model.CareerRecommendation, error)
	FindSkillGapsByUser(userID uint) ([]model.SkillGap, error)
	FindLearningPathsByUser(userID uint) ([]model.LearningPath, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) CreateAll(recs []model.CareerRecommendation, paths []model.LearningPath) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(recs) > 0 {
			if err := tx.Create(&recs).Error; err != nil {
				return err
			}
		}
		if len(paths) > 0 {
			if err := tx.Create(&paths).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recommendationRepository) FindRecommendationsByUser(userID uint) ([]model.CareerRecommendation, error) {
	var recs []model.CareerRecommendation
	err := r.db.Where("user_id = ?", userID).Order("confidence_score DESC").Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) FindSkillGapsByUser(userID uint) ([]model.SkillGap, error) {
	var gaps []model.SkillGap
	err := r.db.Where("user_id = ?", userID).Order("priority ASC").Find(&gaps).Error
	return gaps, err
}

func (r *recommendationRepository) FindLearningPathsByUser(userID uint) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.db.Where("user_id = ?", userID).Find(&paths).Error
	return paths, err
}
