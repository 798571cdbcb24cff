package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mindfunnel/mindfunnel-api/config"
	"github.com/mindfunnel/mindfunnel-api/database"
	adminctrl "github.com/mindfunnel/mindfunnel-api/internal/controller/admin"
	userctrl "github.com/mindfunnel/mindfunnel-api/internal/controller/user"
	webhookctrl "github.com/mindfunnel/mindfunnel-api/internal/controller/webhook"
	"github.com/mindfunnel/mindfunnel-api/internal/devseed"
	"github.com/mindfunnel/mindfunnel-api/internal/logger"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title MindFunnel API
// @version 1.0
// @description Quiz funnel backend: scoring, payment ingestion and AI report generation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewCategoryRepository,
			repository.NewQuestionSetRepository,
			repository.NewAffiliateRepository,
			repository.NewQuizAttemptRepository,
			repository.NewOrderRepository,
			repository.NewReportJobRepository,
			repository.NewReportRepository,
			repository.NewPromptRepository,
		),

		fx.Provide(
			service.NewQuizSubmissionService,
			service.NewWebhookService,
			service.NewReportService,
			service.NewReconcileService,
			service.NewAdminService,
		),

		fx.Provide(
			userctrl.NewQuizController,
			userctrl.NewReportController,
			userctrl.NewResolveController,
			webhookctrl.NewPaymentWebhookController,
			adminctrl.NewAdminCategoryController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedDevData),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *userctrl.QuizController,
	reportCtrl *userctrl.ReportController,
	resolveCtrl *userctrl.ResolveController,
	paymentCtrl *webhookctrl.PaymentWebhookController,
	adminCategoryCtrl *adminctrl.AdminCategoryController,
) {
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/quiz/:category_slug/submit", quizCtrl.SubmitQuiz)
		apiV1.GET("/reports/:attempt_id", reportCtrl.GetReportStatus)
		apiV1.GET("/attempts/resolve", resolveCtrl.ResolveAttempt)
		apiV1.POST("/webhooks/payment", paymentCtrl.HandlePaymentEvent)
	}

	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/categories", adminCategoryCtrl.CreateCategory)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("MindFunnel API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Category{},
		&model.Affiliate{},
		&model.QuestionSet{},
		&model.Prompt{},
		&model.QuizAttempt{},
		&model.Order{},
		&model.ReportJob{},
		&model.Report{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedDevData(cfg *config.Config, categories repository.CategoryRepository, adminService service.AdminService) error {
	if !cfg.DevSeed {
		return nil
	}
	return devseed.Seed(categories, adminService)
}
