package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/model"
	"github.com/careercompass/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInsufficientAttempts signals the <2 attempts precondition; no AI
	// call is made and no rows are written.
	ErrInsufficientAttempts = errors.New("at least 2 completed test attempts are required")

	// ErrGenerationFailed covers network errors, malformed structured
	// output and missing tool calls. No partial rows are ever committed on
	// this path.
	ErrGenerationFailed = errors.New("career recommendation generation failed")
)

type RecommendationService interface {
	Generate(ctx context.Context, userID uint) (*dto.GenerateResultDTO, error)
	GetRecommendations(userID uint) ([]dto.CareerRecommendationDTO, error)
	GetSkillGaps(userID uint) ([]dto.SkillGapDTO, error)
	GetLearningPaths(userID uint) ([]dto.LearningPathDTO, error)
}

type recommendationService struct {
	attemptRepo repository.TestAttemptRepository
	recRepo     repository.RecommendationRepository
	advisor     CareerAdvisor
	timeout     time.Duration

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

func NewRecommendationService(
	attemptRepo repository.TestAttemptRepository,
	recRepo repository.RecommendationRepository,
	advisor CareerAdvisor,
	timeout time.Duration,
) RecommendationService {
	return &recommendationService{
		attemptRepo: attemptRepo,
		recRepo:     recRepo,
		advisor:     advisor,
		timeout:     timeout,
		userLocks:   make(map[uint]*sync.Mutex),
	}
}

// userLock returns the per-user mutex guarding concurrent generation, so
// duplicate invocations cannot produce duplicate recommendation rows.
func (s *recommendationService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// Generate runs the full advisory pipeline: attempt history -> performance
// summary -> structured Gemini call -> atomic persistence of careers, skill
// gaps and learning paths.
func (s *recommendationService) Generate(ctx context.Context, userID uint) (*dto.GenerateResultDTO, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Generate: failed to load attempts")
		return nil, fmt.Errorf("error fetching attempts for user %d: %w", userID, err)
	}
	if len(attempts) < 2 {
		return nil, fmt.Errorf("%w: user %d has %d", ErrInsufficientAttempts, userID, len(attempts))
	}

	summary := summarizePerformance(attempts)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	advice, err := s.advisor.RecommendCareers(ctx, summary)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Generate: advisor call failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	recs, paths, gapCount, err := adviceToModels(userID, advice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if err := s.recRepo.CreateAll(recs, paths); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Generate: failed to persist recommendation set")
		return nil, fmt.Errorf("error saving recommendations for user %d: %w", userID, err)
	}

	log.Info().Uint("userID", userID).Int("careers", len(recs)).Int("skill_gaps", gapCount).Int("learning_paths", len(paths)).
		Msg("Career recommendations generated")

	return &dto.GenerateResultDTO{
		Success:           true,
		CareersGenerated:  len(recs),
		SkillGapsFound:    gapCount,
		LearningResources: len(paths),
	}, nil
}

// summarizePerformance builds the human-readable summary embedded in the
// prompt, one line per attempt, plus the mean percentage.
func summarizePerformance(attempts []model.TestAttempt) PerformanceSummary {
	summary := PerformanceSummary{Lines: make([]string, 0, len(attempts))}
	var total float64
	for _, a := range attempts {
		summary.Lines = append(summary.Lines, fmt.Sprintf("%s (%s): %.1f%%", a.Test.Title, a.Test.Category, a.Percentage))
		total += a.Percentage
	}
	summary.AverageScore = total / float64(len(attempts))
	return summary
}

// adviceToModels maps validated advice onto the persistence models. Skill
// gaps nest under their recommendation so the transaction wires the
// foreign keys; learning resources are user-level rows.
func adviceToModels(userID uint, advice *CareerAdvice) ([]model.CareerRecommendation, []model.LearningPath, int, error) {
	recs := make([]model.CareerRecommendation, 0, len(advice.Careers))
	var paths []model.LearningPath
	gapCount := 0

	for _, career := range advice.Careers {
		skillsJSON, err := json.Marshal(career.RequiredSkills)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encoding required skills for %q: %w", career.CareerTitle, err)
		}

		rec := model.CareerRecommendation{
			UserID:          userID,
			CareerTitle:     career.CareerTitle,
			Description:     career.Description,
			ConfidenceScore: career.ConfidenceScore,
			RequiredSkills:  skillsJSON,
			SalaryRange:     career.SalaryRange,
			GrowthPotential: career.GrowthPotential,
		}
		for _, gap := range career.SkillGaps {
			rec.SkillGaps = append(rec.SkillGaps, model.SkillGap{
				UserID:        userID,
				SkillName:     gap.SkillName,
				CurrentLevel:  gap.CurrentLevel,
				RequiredLevel: gap.RequiredLevel,
				Priority:      gap.Priority,
			})
			gapCount++
		}
		for _, res := range career.LearningPaths {
			paths = append(paths, model.LearningPath{
				UserID:            userID,
				ResourceTitle:     res.ResourceTitle,
				ResourceType:      res.ResourceType,
				ResourceURL:       res.ResourceURL,
				EstimatedDuration: res.EstimatedDuration,
				Provider:          res.Provider,
				Difficulty:        res.Difficulty,
			})
		}
		recs = append(recs, rec)
	}
	return recs, paths, gapCount, nil
}

func (s *recommendationService) GetRecommendations(userID uint) ([]dto.CareerRecommendationDTO, error) {
	recs, err := s.recRepo.FindRecommendationsByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch career recommendations")
		return nil, fmt.Errorf("error fetching recommendations: %w", err)
	}

	dtos := make([]dto.CareerRecommendationDTO, 0, len(recs))
	for _, rec := range recs {
		var skills []string
		if len(rec.RequiredSkills) > 0 {
			if err := json.Unmarshal(rec.RequiredSkills, &skills); err != nil {
				log.Warn().Err(err).Uint("recommendationID", rec.ID).Msg("Unreadable required_skills payload, omitting")
			}
		}
		dtos = append(dtos, dto.CareerRecommendationDTO{
			ID:              rec.ID,
			CareerTitle:     rec.CareerTitle,
			Description:     rec.Description,
			ConfidenceScore: rec.ConfidenceScore,
			RequiredSkills:  skills,
			SalaryRange:     rec.SalaryRange,
			GrowthPotential: rec.GrowthPotential,
			CreatedAt:       rec.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *recommendationService) GetSkillGaps(userID uint) ([]dto.SkillGapDTO, error) {
	gaps, err := s.recRepo.FindSkillGapsByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch skill gaps")
		return nil, fmt.Errorf("error fetching skill gaps: %w", err)
	}

	dtos := make([]dto.SkillGapDTO, 0, len(gaps))
	for _, gap := range gaps {
		dtos = append(dtos, dto.SkillGapDTO{
			ID:               gap.ID,
			RecommendationID: gap.RecommendationID,
			SkillName:        gap.SkillName,
			CurrentLevel:     gap.CurrentLevel,
			RequiredLevel:    gap.RequiredLevel,
			Priority:         gap.Priority,
		})
	}
	return dtos, nil
}

func (s *recommendationService) GetLearningPaths(userID uint) ([]dto.LearningPathDTO, error) {
	paths, err := s.recRepo.FindLearningPathsByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch learning paths")
		return nil, fmt.Errorf("error fetching learning paths: %w", err)
	}

	dtos := make([]dto.LearningPathDTO, 0, len(paths))
	for _, p := range paths {
		dtos = append(dtos, dto.LearningPathDTO{
			ID:                p.ID,
			SkillGapID:        p.SkillGapID,
			ResourceTitle:     p.ResourceTitle,
			ResourceType:      p.ResourceType,
			ResourceURL:       p.ResourceURL,
			EstimatedDuration: p.EstimatedDuration,
			Provider:          p.Provider,
			Difficulty:        p.Difficulty,
		})
	}
	return dtos, nil
}
