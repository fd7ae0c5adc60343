package router

import (
	"fmt"

	"github.com/anonto42/community-engine/internal/handlers"
	"github.com/anonto42/community-engine/internal/middleware"
	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/anonto42/community-engine/internal/services"
	"github.com/anonto42/community-engine/internal/validators"
	"github.com/anonto42/community-engine/pkg/config"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes migrates the schema, wires repositories into the content
// service and registers every route. mgClient may be nil.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, authenticator middleware.Authenticator, cfg *config.Config, log *zap.Logger) error {
	if err := repositories.Migrate(pgdb); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)

	var moderationRepo repositories.ModerationLogRepository
	if mgClient != nil {
		moderationRepo = repositories.NewMongoModerationLogRepository(mgClient.Database(cfg.MongoDatabase))
	}

	// Request validation runs in the content service, not through echo
	categories := validators.NewStaticCategoryRegistry(cfg.Categories)

	contentService := services.NewContentService(
		postRepo,
		commentRepo,
		reactionRepo,
		reportRepo,
		moderationRepo,
		categories,
		log,
		services.Settings{
			ReportThreshold: cfg.ReportThreshold,
			MaxRetries:      cfg.TxMaxRetries,
		},
	)

	api := e.Group("/api/v1")
	auth := middleware.RequireAuth(authenticator)

	handlers.NewPostHandler(contentService).RegisterPostRoutes(api, auth)
	handlers.NewCommentHandler(contentService).RegisterCommentRoutes(api, auth)
	handlers.NewReactionHandler(contentService).RegisterReactionRoutes(api, auth)
	handlers.NewModerationHandler(contentService).RegisterModerationRoutes(api, auth)

	log.Info("all routes configured", zap.Int("routes", len(e.Routes())))
	return nil
}
