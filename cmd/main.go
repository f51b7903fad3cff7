package main

import (
	"context"
	"net/http"
	"time"

	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/database"
	adminctrl "github.com/careercompass/backend/internal/controller/admin"
	userctrl "github.com/careercompass/backend/internal/controller/user"
	"github.com/careercompass/backend/internal/logger"
	"github.com/careercompass/backend/internal/model"
	"github.com/careercompass/backend/internal/repository"
	"github.com/careercompass/backend/internal/service"
	"github.com/careercompass/backend/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Career Compass API
// @version 1.0
// @description API for timed aptitude tests and AI-driven career recommendations.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			session.NewManager,
		),

		// Repositories layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewRecommendationRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAdminTestService,
			service.NewUserTestService,
			service.NewSessionService,
			service.NewAttemptService,
			service.NewGeminiAdvisor,
			func(
				attemptRepo repository.TestAttemptRepository,
				recRepo repository.RecommendationRepository,
				advisor service.CareerAdvisor,
				cfg *config.Config,
			) service.RecommendationService {
				timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
				return service.NewRecommendationService(attemptRepo, recRepo, advisor, timeout)
			},
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
			userctrl.NewSessionController,
			userctrl.NewAttemptController,
			userctrl.NewRecommendationController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
	sessionCtrl *userctrl.SessionController,
	attemptCtrl *userctrl.AttemptController,
	recommendationCtrl *userctrl.RecommendationController,
) {
	// Admin routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		testsAdminGroup := adminAPIGroup.Group("/tests")
		testsAdminGroup.POST("", adminTestCtrl.CreateTest)
	}

	// User routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Test catalog
		userAPIGroup.GET("/tests", userTestCtrl.GetAllTests)
		userAPIGroup.GET("/tests/:test_id", userTestCtrl.GetTestDetails)

		// Timed test sessions
		userAPIGroup.POST("/tests/:test_id/sessions", sessionCtrl.StartSession)
		userAPIGroup.GET("/sessions/:session_id", sessionCtrl.GetSessionState)
		userAPIGroup.PUT("/sessions/:session_id/answer", sessionCtrl.SelectAnswer)
		userAPIGroup.POST("/sessions/:session_id/next", sessionCtrl.NextQuestion)
		userAPIGroup.POST("/sessions/:session_id/previous", sessionCtrl.PreviousQuestion)
		userAPIGroup.POST("/sessions/:session_id/submit", sessionCtrl.SubmitSession)

		// Completed attempts
		userAPIGroup.GET("/my-attempts", attemptCtrl.GetMyAttempts)

		// AI career guidance
		userAPIGroup.POST("/recommendations/generate", recommendationCtrl.GenerateRecommendations)
		userAPIGroup.GET("/recommendations", recommendationCtrl.GetRecommendations)
		userAPIGroup.GET("/skill-gaps", recommendationCtrl.GetSkillGaps)
		userAPIGroup.GET("/learning-paths", recommendationCtrl.GetLearningPaths)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Career Compass API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.TestAttempt{},
		&model.CareerRecommendation{},
		&model.SkillGap{},
		&model.LearningPath{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
