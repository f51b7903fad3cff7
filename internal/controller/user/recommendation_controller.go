package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/careercompass/backend/internal/dto"
	"github.com/careercompass/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RecommendationController struct {
	recommendationService service.RecommendationService
}

func NewRecommendationController(rs service.RecommendationService) *RecommendationController {
	return &RecommendationController{recommendationService: rs}
}

// GenerateRecommendations godoc
// @Summary (User) Generate AI career recommendations
// @Description Analyzes the user's test history and generates career recommendations, skill gaps and learning resources. Requires at least 2 completed attempts.
// @Tags User - Recommendations
// @Accept json
// @Produce json
// @Param generation_data body dto.GenerateRecommendationsDTO true "User to generate recommendations for"
// @Success 200 {object} dto.GenerateResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 412 {object} dto.ErrorResponse "Fewer than 2 completed attempts"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recommendations/generate [post]
func (c *RecommendationController) GenerateRecommendations(ctx *gin.Context) {
	var req dto.GenerateRecommendationsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GenerateRecommendations: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.recommendationService.Generate(ctx.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientAttempts):
			ctx.JSON(http.StatusPreconditionFailed, dto.ErrorResponse{Message: "Please complete at least 2 tests before generating recommendations"})
		case errors.Is(err, service.ErrGenerationFailed):
			log.Error().Err(err).Uint("userID", req.UserID).Msg("GenerateRecommendations: AI generation failed")
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Failed to generate recommendations", Details: []string{err.Error()}})
		default:
			log.Error().Err(err).Uint("userID", req.UserID).Msg("GenerateRecommendations: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate recommendations", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetRecommendations godoc
// @Summary (User) List stored career recommendations
// @Description Retrieve the user's career recommendations, highest confidence first.
// @Tags User - Recommendations
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.CareerRecommendationDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	userID, ok := c.parseUserID(ctx)
	if !ok {
		return
	}
	recs, err := c.recommendationService.GetRecommendations(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetRecommendations: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve recommendations", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, recs)
}

// GetSkillGaps godoc
// @Summary (User) List identified skill gaps
// @Description Retrieve the user's skill gaps ordered by priority.
// @Tags User - Recommendations
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.SkillGapDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /skill-gaps [get]
func (c *RecommendationController) GetSkillGaps(ctx *gin.Context) {
	userID, ok := c.parseUserID(ctx)
	if !ok {
		return
	}
	gaps, err := c.recommendationService.GetSkillGaps(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetSkillGaps: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve skill gaps", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gaps)
}

// GetLearningPaths godoc
// @Summary (User) List recommended learning resources
// @Description Retrieve the learning resources generated alongside the user's recommendations.
// @Tags User - Recommendations
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.LearningPathDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learning-paths [get]
func (c *RecommendationController) GetLearningPaths(ctx *gin.Context) {
	userID, ok := c.parseUserID(ctx)
	if !ok {
		return
	}
	paths, err := c.recommendationService.GetLearningPaths(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetLearningPaths: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve learning paths", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, paths)
}

func (c *RecommendationController) parseUserID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid User ID format in query"})
		return 0, false
	}
	return uint(val), true
}
