package service

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/model"
	"github.com/careercompass/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestDetailDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestDetailDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		if !slices.Contains(qDto.Options, qDto.CorrectAnswer) {
			return nil, fmt.Errorf("question %d: correct answer %q is not among its options", i+1, qDto.CorrectAnswer)
		}

		points := qDto.Points
		if points <= 0 {
			points = 1
		}
		optionsJSON, err := json.Marshal(qDto.Options)
		if err != nil {
			return nil, fmt.Errorf("question %d: encoding options: %w", i+1, err)
		}

		questions = append(questions, model.Question{
			QuestionText:  qDto.QuestionText,
			Options:       optionsJSON,
			CorrectAnswer: qDto.CorrectAnswer,
			Points:        points,
		})
	}

	testModel := model.Test{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		TotalQuestions:  len(questions),
		Questions:       questions,
	}

	if err := s.testRepo.Create(&testModel); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	created, err := s.testRepo.FindByIDWithQuestions(testModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testModel.ID).Msg("Failed to reload newly created test for response")
		created = &testModel
	}

	resp := dto.TestDetailDTO{
		ID:              created.ID,
		Title:           created.Title,
		Description:     created.Description,
		Category:        created.Category,
		DurationMinutes: created.DurationMinutes,
		TotalQuestions:  created.TotalQuestions,
		CreatedAt:       created.CreatedAt,
	}
	for _, q := range created.Questions {
		resp.Questions = append(resp.Questions, QuestionView(q))
	}
	return &resp, nil
}
