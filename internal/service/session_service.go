package service

import (
	"errors"
	"fmt"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/model"
	"github.com/careercompass/backend/internal/repository"
	"github.com/careercompass/backend/internal/session"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound signals an unknown or already-finished session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTestNotFound distinguishes a missing test from an infrastructure
	// failure while loading one.
	ErrTestNotFound = errors.New("test not found")
)

type SessionService interface {
	StartSession(testID uint, req dto.SessionStartDTO) (*dto.SessionStateDTO, error)
	GetState(sessionID string) (*dto.SessionStateDTO, error)
	SelectAnswer(sessionID string, req dto.AnswerSelectDTO) (*dto.SessionStateDTO, error)
	Next(sessionID string) (*dto.SessionStateDTO, error)
	Previous(sessionID string) (*dto.SessionStateDTO, error)
	Submit(sessionID string) (*dto.AttemptResultDTO, error)
}

type sessionService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.TestAttemptRepository
	manager      *session.Manager
}

func NewSessionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.TestAttemptRepository,
	manager *session.Manager,
) SessionService {
	return &sessionService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		manager:      manager,
	}
}

// StartSession loads the test and its questions, registers a fresh session
// for the user (discarding any previous one) and starts the countdown.
func (s *sessionService) StartSession(testID uint, req dto.SessionStartDTO) (*dto.SessionStateDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTestNotFound, testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("StartSession: failed to load test")
		return nil, fmt.Errorf("error loading test %d: %w", testID, err)
	}
	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("StartSession: failed to load questions")
		return nil, fmt.Errorf("error loading questions for test %d: %w", testID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("test %d: %w", testID, session.ErrNoQuestions)
	}

	sess := session.New(req.UserID, func(attempt *model.TestAttempt) error {
		return s.attemptRepo.Create(attempt)
	})
	s.manager.Put(sess)

	if err := sess.Begin(test, questions); err != nil {
		s.manager.Remove(sess.ID)
		return nil, fmt.Errorf("failed to begin session: %w", err)
	}

	log.Info().Str("sessionID", sess.ID).Uint("testID", testID).Uint("userID", req.UserID).
		Int("questions", len(questions)).Msg("Test session started")

	return s.stateDTO(sess), nil
}

func (s *sessionService) GetState(sessionID string) (*dto.SessionStateDTO, error) {
	sess, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.stateDTO(sess), nil
}

func (s *sessionService) SelectAnswer(sessionID string, req dto.AnswerSelectDTO) (*dto.SessionStateDTO, error) {
	sess, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := sess.SelectAnswer(req.Option); err != nil {
		return nil, err
	}
	return s.stateDTO(sess), nil
}

func (s *sessionService) Next(sessionID string) (*dto.SessionStateDTO, error) {
	sess, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := sess.Next(); err != nil {
		return nil, err
	}
	return s.stateDTO(sess), nil
}

func (s *sessionService) Previous(sessionID string) (*dto.SessionStateDTO, error) {
	sess, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := sess.Previous(); err != nil {
		return nil, err
	}
	return s.stateDTO(sess), nil
}

// Submit finalizes the session. At most one submission succeeds; the
// session removes itself from the registry once the attempt is persisted.
func (s *sessionService) Submit(sessionID string) (*dto.AttemptResultDTO, error) {
	sess, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	attempt, err := sess.Submit()
	if err != nil {
		return nil, err
	}

	var resp dto.AttemptResultDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Submit: error copying attempt to DTO")
		return nil, fmt.Errorf("error preparing submission response: %w", err)
	}
	if test := sess.Test(); test != nil {
		resp.TestTitle = test.Title
	}
	return &resp, nil
}

func (s *sessionService) stateDTO(sess *session.Session) *dto.SessionStateDTO {
	state := &dto.SessionStateDTO{
		SessionID:        sess.ID,
		State:            string(sess.State()),
		RemainingSeconds: sess.Remaining(),
		CurrentIndex:     sess.CurrentIndex(),
		TotalQuestions:   sess.QuestionCount(),
		Progress:         sess.Progress(),
		AnsweredCount:    sess.AnsweredCount(),
	}
	if test := sess.Test(); test != nil {
		state.TestID = test.ID
		state.TestTitle = test.Title
	}
	if q, ok := sess.CurrentQuestion(); ok {
		view := QuestionView(q)
		state.CurrentQuestion = &view
	}
	if selected, ok := sess.Selected(); ok {
		state.SelectedOption = selected
	}
	return state
}
