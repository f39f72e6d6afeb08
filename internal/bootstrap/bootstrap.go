package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ctecscope/ctecscope/docs" // Import generated swagger docs
	appControllers "github.com/ctecscope/ctecscope/internal/app/controllers"
	appMigrations "github.com/ctecscope/ctecscope/internal/app/migrations"
	appRepos "github.com/ctecscope/ctecscope/internal/app/repositories"
	appRoutes "github.com/ctecscope/ctecscope/internal/app/routes"
	appServices "github.com/ctecscope/ctecscope/internal/app/services"
	"github.com/ctecscope/ctecscope/internal/config"
	"github.com/ctecscope/ctecscope/internal/db"
	appMiddleware "github.com/ctecscope/ctecscope/internal/middleware"
	"github.com/ctecscope/ctecscope/internal/pkg/cache"
	"github.com/ctecscope/ctecscope/internal/pkg/logger"
	"github.com/ctecscope/ctecscope/internal/pkg/metrics"
	"github.com/ctecscope/ctecscope/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	SearchService         appServices.SearchService
	OfferingService       appServices.OfferingService
	CourseService         appServices.CourseService
	InstructorService     appServices.InstructorService
	RequirementService    appServices.RequirementService
	IngestService         appServices.IngestService
	SearchController      *appControllers.SearchController
	OfferingController    *appControllers.OfferingController
	CourseController      *appControllers.CourseController
	InstructorController  *appControllers.InstructorController
	RequirementController *appControllers.RequirementController
	Repos                 *appRepos.Repositories
	Store                 *appRepos.Store
	Cache                 *cache.Client // nil when caching is disabled
	Metrics               *metrics.Metrics
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding is best-effort; ingest recreates the taxonomy anyway.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Store = appRepos.NewStore(deps.Repos)
	deps.Metrics = metrics.New()

	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cacheClient, err := cache.New(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.RedisCacheTTL(),
		})
		if err != nil {
			// The cache is an accelerator, not a dependency.
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, continuing without cache")
		} else {
			deps.Cache = cacheClient
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
		}
	}

	deps.SearchService = appServices.NewSearchService(deps.Store, cfg.Search.MinQueryLength, cfg.Search.SuggestionLimit)
	deps.OfferingService = appServices.NewOfferingService(deps.Store)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.OfferingRepository)
	deps.InstructorService = appServices.NewInstructorService(deps.Store, deps.Cache)
	deps.RequirementService = appServices.NewRequirementService(deps.Repos.RequirementRepository)
	deps.IngestService = appServices.NewIngestService(database, deps.Repos, deps.Cache)

	deps.SearchController = appControllers.NewSearchController(deps.SearchService, deps.Metrics)
	deps.OfferingController = appControllers.NewOfferingController(deps.OfferingService, deps.IngestService, deps.Metrics)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.InstructorController = appControllers.NewInstructorController(deps.InstructorService)
	deps.RequirementController = appControllers.NewRequirementController(deps.RequirementService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(appMiddleware.Instrument(deps.Metrics))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	appRoutes.SetupRouter(router,
		deps.SearchController,
		deps.OfferingController,
		deps.CourseController,
		deps.InstructorController,
		deps.RequirementController,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
