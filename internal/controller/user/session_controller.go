package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/service"
	"github.com/careercompass/backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(ss service.SessionService) *SessionController {
	return &SessionController{sessionService: ss}
}

// StartSession godoc
// @Summary (User) Start a timed test session
// @Description Begins a new session for the given test. The countdown starts immediately; any previous unfinished session of the same user is abandoned.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param session_data body dto.SessionStartDTO true "User starting the session"
// @Success 201 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID or request body"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Test has no questions"
// @Failure 500 {object} dto.ErrorResponse "Failed to load the test"
// @Router /tests/{test_id}/sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	testIDStr := ctx.Param("test_id")
	testID, err := strconv.ParseUint(testIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.SessionStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartSession: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state, err := c.sessionService.StartSession(uint(testID), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, session.ErrNoQuestions):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint64("testID", testID).Msg("StartSession: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to start session", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

// GetSessionState godoc
// @Summary (User) Get the current state of a session
// @Description Returns timer, current question and progress for an active session.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSessionState(ctx *gin.Context) {
	state, err := c.sessionService.GetState(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SelectAnswer godoc
// @Summary (User) Select an answer for the current question
// @Description Records the option for the question the session currently points at. Re-selecting overwrites the earlier choice.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body dto.AnswerSelectDTO true "Chosen option"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not accepting answers"
// @Router /sessions/{session_id}/answer [put]
func (c *SessionController) SelectAnswer(ctx *gin.Context) {
	var req dto.AnswerSelectDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state, err := c.sessionService.SelectAnswer(ctx.Param("session_id"), req)
	if err != nil {
		c.renderSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// NextQuestion godoc
// @Summary (User) Move to the next question
// @Description Advances the session cursor. At the last question the cursor stays put.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{session_id}/next [post]
func (c *SessionController) NextQuestion(ctx *gin.Context) {
	state, err := c.sessionService.Next(ctx.Param("session_id"))
	if err != nil {
		c.renderSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// PreviousQuestion godoc
// @Summary (User) Move to the previous question
// @Description Moves the session cursor back. At the first question the cursor stays put.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{session_id}/previous [post]
func (c *SessionController) PreviousQuestion(ctx *gin.Context) {
	state, err := c.sessionService.Previous(ctx.Param("session_id"))
	if err != nil {
		c.renderSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SubmitSession godoc
// @Summary (User) Submit the session for scoring
// @Description Scores the recorded answers and persists the attempt. A session can be submitted at most once; the timer does this automatically on expiry.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Submission already in flight or session completed"
// @Failure 500 {object} dto.ErrorResponse "Failed to persist the attempt"
// @Router /sessions/{session_id}/submit [post]
func (c *SessionController) SubmitSession(ctx *gin.Context) {
	result, err := c.sessionService.Submit(ctx.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		if errors.Is(err, session.ErrSubmissionInFlight) || errors.Is(err, session.ErrAlreadyCompleted) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("sessionID", ctx.Param("session_id")).Msg("SubmitSession: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit session", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *SessionController) renderSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, session.ErrNotInProgress),
		errors.Is(err, session.ErrSubmissionInFlight),
		errors.Is(err, session.ErrAlreadyCompleted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
	}
}
