package service

import (
	"encoding/json"
	"fmt"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/model"
	"github.com/careercompass/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestDetailDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

func (s *userTestService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	var dtos []dto.TestSummaryDTO
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:              twc.Test.ID,
			Title:           twc.Test.Title,
			Description:     twc.Test.Description,
			Category:        twc.Test.Category,
			DurationMinutes: twc.Test.DurationMinutes,
			QuestionCount:   twc.QuestionCount,
			CreatedAt:       twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *userTestService) GetTestDetails(testID uint) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	resp := dto.TestDetailDTO{
		ID:              test.ID,
		Title:           test.Title,
		Description:     test.Description,
		Category:        test.Category,
		DurationMinutes: test.DurationMinutes,
		TotalQuestions:  test.TotalQuestions,
		CreatedAt:       test.CreatedAt,
	}
	for _, q := range test.Questions {
		resp.Questions = append(resp.Questions, QuestionView(q))
	}
	return &resp, nil
}

// QuestionView maps a question to its user-facing shape, withholding the
// correct answer.
func QuestionView(q model.Question) dto.QuestionViewDTO {
	var options []string
	if len(q.Options) > 0 {
		if err := json.Unmarshal(q.Options, &options); err != nil {
			log.Warn().Err(err).Uint("questionID", q.ID).Msg("Unreadable options payload for question")
		}
	}
	return dto.QuestionViewDTO{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      options,
		Points:       q.Points,
	}
}
