package service

import (
	"fmt"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type AttemptService interface {
	GetUserAttempts(userID uint) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	attemptRepo repository.TestAttemptRepository
}

func NewAttemptService(attemptRepo repository.TestAttemptRepository) AttemptService {
	return &attemptService{attemptRepo: attemptRepo}
}

func (s *attemptService) GetUserAttempts(userID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserAttempts: repository error")
		return nil, fmt.Errorf("error fetching attempts for user %d: %w", userID, err)
	}

	dtos := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("GetUserAttempts: error copying attempt to summary DTO")
			continue
		}
		summary.TestTitle = attempt.Test.Title
		summary.TestCategory = attempt.Test.Category
		dtos = append(dtos, summary)
	}
	return dtos, nil
}
