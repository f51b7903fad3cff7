package user

import (
	"net/http"
	"strconv"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService service.UserTestService
}

func NewUserTestController(uts service.UserTestService) *UserTestController {
	return &UserTestController{userTestService: uts}
}

// GetAllTests godoc
// @Summary (User) List all available aptitude tests
// @Description Get a list of aptitude tests with their category, duration and question count.
// @Tags User - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests()
	if err != nil {
		log.Error().Err(err).Msg("User GetAllTests: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (User) Get details of a specific aptitude test
// @Description Get full details of a test, including all its questions (correct answers withheld).
// @Tags User - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testIDStr := ctx.Param("test_id")
	testID, err := strconv.ParseUint(testIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}
	testDetails, err := c.userTestService.GetTestDetails(uint(testID))
	if err != nil {
		log.Warn().Err(err).Uint64("testID", testID).Msg("User GetTestDetails: Test not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, testDetails)
}
