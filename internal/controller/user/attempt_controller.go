package user

import (
	"net/http"
	"strconv"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(as service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: as}
}

// GetMyAttempts godoc
// @Summary (User) Get the user's completed test attempts
// @Description Retrieve all completed attempts for a user, most recent first.
// @Tags User - Attempts
// @Produce json
// @Param user_id query int true "User ID (temporary, will come from auth token)"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /my-attempts [get]
func (c *AttemptController) GetMyAttempts(ctx *gin.Context) {
	userIDStr := ctx.Query("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid User ID format in query"})
		return
	}

	attempts, err := c.attemptService.GetUserAttempts(uint(userID))
	if err != nil {
		log.Error().Err(err).Uint64("userID", userID).Msg("GetMyAttempts: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
