package user

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/service"
	"github.com/careercompass/backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSessionService struct {
	state    *dto.SessionStateDTO
	result   *dto.AttemptResultDTO
	startErr error
	err      error
}

func (s *stubSessionService) StartSession(testID uint, req dto.SessionStartDTO) (*dto.SessionStateDTO, error) {
	return s.state, s.startErr
}

func (s *stubSessionService) GetState(sessionID string) (*dto.SessionStateDTO, error) {
	return s.state, s.err
}

func (s *stubSessionService) SelectAnswer(sessionID string, req dto.AnswerSelectDTO) (*dto.SessionStateDTO, error) {
	return s.state, s.err
}

func (s *stubSessionService) Next(sessionID string) (*dto.SessionStateDTO, error) {
	return s.state, s.err
}

func (s *stubSessionService) Previous(sessionID string) (*dto.SessionStateDTO, error) {
	return s.state, s.err
}

func (s *stubSessionService) Submit(sessionID string) (*dto.AttemptResultDTO, error) {
	return s.result, s.err
}

func startSessionRecorder(t *testing.T, svc service.SessionService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/tests/:test_id/sessions", NewSessionController(svc).StartSession)

	req := httptest.NewRequest(http.MethodPost, "/tests/7/sessions", strings.NewReader(`{"user_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStartSession_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		startErr   error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"unknown test", fmt.Errorf("%w: id 7", service.ErrTestNotFound), http.StatusNotFound},
		{"empty test", fmt.Errorf("test 7: %w", session.ErrNoQuestions), http.StatusConflict},
		{"load failure", fmt.Errorf("error loading test 7: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubSessionService{startErr: tc.startErr}
			if tc.startErr == nil {
				svc.state = &dto.SessionStateDTO{SessionID: "abc", State: string(session.StateInProgress)}
			}
			w := startSessionRecorder(t, svc)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestStartSession_RejectsBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/tests/:test_id/sessions", NewSessionController(&stubSessionService{}).StartSession)

	req := httptest.NewRequest(http.MethodPost, "/tests/7/sessions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
