package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/careercompass/backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle phase of a test session.
type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

var (
	ErrNotInProgress      = errors.New("session is not in progress")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrAlreadyCompleted   = errors.New("session already completed")
	ErrNoQuestions        = errors.New("session has no questions")
)

// AttemptSink persists a completed attempt. A failing sink leaves the
// session recoverable: the ledger is untouched and submission may be
// retried.
type AttemptSink func(attempt *model.TestAttempt) error

// Option configures a Session at construction.
type Option func(*Session)

// WithTickInterval overrides the timer tick interval. Tests use this to
// compress the countdown; the default is one second.
func WithTickInterval(interval time.Duration) Option {
	return func(s *Session) {
		s.timer = NewTimerWithInterval(interval)
	}
}

// Session drives one user's pass through a timed test: bounded navigation
// over the ordered question list, answer selection into the ledger, and
// scoring plus persistence on manual submit or timer expiry. All methods
// are safe for concurrent use; user actions and timer expiry may arrive on
// different goroutines.
type Session struct {
	ID     string
	UserID uint

	mu        sync.Mutex
	state     State
	test      *model.Test
	questions []model.Question
	current   int
	ledger    *Ledger
	timer     *Timer
	sink      AttemptSink
	onDone    func(*Session)
	startedAt time.Time
}

// New creates a session in the Loading state.
func New(userID uint, sink AttemptSink, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		state:  StateLoading,
		ledger: NewLedger(),
		timer:  NewTimer(),
		sink:   sink,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin transitions Loading -> InProgress with the loaded test and its
// questions, starting the countdown at duration_minutes * 60 seconds.
// Expiry triggers automatic submission.
func (s *Session) Begin(test *model.Test, questions []model.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return fmt.Errorf("cannot begin session in state %q", s.state)
	}
	s.test = test
	s.questions = questions
	s.state = StateInProgress
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.timer.Start(test.DurationMinutes*60, nil, func() {
		if _, err := s.Submit(); err != nil {
			// First caller wins: a concurrent manual submit makes this a no-op.
			if errors.Is(err, ErrSubmissionInFlight) || errors.Is(err, ErrAlreadyCompleted) {
				return
			}
			log.Error().Err(err).Str("session_id", s.ID).Msg("Automatic submission on timer expiry failed")
		}
	})
	return nil
}

// SelectAnswer records option for the currently displayed question. Any
// string is accepted; the ledger overwrites previous selections.
func (s *Session) SelectAnswer(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	s.ledger.Select(s.questions[s.current].ID, option)
	return nil
}

// Next advances to the following question. At the last question it is a
// no-op; there is no wraparound.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if s.current < len(s.questions)-1 {
		s.current++
	}
	return nil
}

// Previous moves back one question. At the first question it is a no-op.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Submit scores the ledger and persists the attempt. At most one submission
// succeeds per session: a concurrent second call returns
// ErrSubmissionInFlight, a call after completion returns
// ErrAlreadyCompleted. On a failed persist the session returns to
// InProgress so the user can retry; no answers are lost.
func (s *Session) Submit() (*model.TestAttempt, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case StateCompleted:
		s.mu.Unlock()
		return nil, ErrAlreadyCompleted
	case StateInProgress:
	default:
		s.mu.Unlock()
		return nil, ErrNotInProgress
	}
	s.state = StateSubmitting
	test := s.test
	questions := s.questions
	s.mu.Unlock()

	snapshot := s.ledger.Snapshot()
	result := ScoreQuestions(questions, snapshot)

	answersJSON, err := json.Marshal(snapshot)
	if err != nil {
		s.fail()
		return nil, fmt.Errorf("failed to encode answers snapshot: %w", err)
	}

	attempt := &model.TestAttempt{
		TestID:      test.ID,
		UserID:      s.UserID,
		Score:       result.Score,
		TotalPoints: result.TotalPoints,
		Percentage:  result.Percentage,
		Answers:     answersJSON,
		CompletedAt: time.Now(),
	}

	if err := s.sink(attempt); err != nil {
		s.fail()
		return nil, fmt.Errorf("failed to persist attempt: %w", err)
	}

	s.timer.Cancel()
	s.mu.Lock()
	s.state = StateCompleted
	s.mu.Unlock()

	if s.onDone != nil {
		s.onDone(s)
	}
	return attempt, nil
}

// fail reverts Submitting -> InProgress after a failed submission.
func (s *Session) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		s.state = StateInProgress
	}
}

// Abandon cancels the countdown and discards the session without
// persistence. Used when the user navigates away or starts a new session.
func (s *Session) Abandon() {
	s.timer.Cancel()
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Test returns the loaded test, or nil while Loading.
func (s *Session) Test() *model.Test {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.test
}

// CurrentIndex returns the zero-based index of the displayed question.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentQuestion returns the displayed question.
func (s *Session) CurrentQuestion() (model.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading || len(s.questions) == 0 {
		return model.Question{}, false
	}
	return s.questions[s.current], true
}

// QuestionCount returns the number of questions in the session.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Progress returns the display fraction (currentIndex+1)/totalQuestions.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.current+1) / float64(len(s.questions))
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int {
	return s.timer.Remaining()
}

// Selected returns the recorded option for the displayed question, if any.
func (s *Session) Selected() (string, bool) {
	s.mu.Lock()
	questionID := uint(0)
	if s.state != StateLoading && len(s.questions) > 0 {
		questionID = s.questions[s.current].ID
	}
	s.mu.Unlock()
	if questionID == 0 {
		return "", false
	}
	return s.ledger.Get(questionID)
}

// AnsweredCount returns the number of questions answered so far.
func (s *Session) AnsweredCount() int {
	return s.ledger.AnsweredCount()
}
