// Package bootstrap wires configuration, storage, services, and controllers
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/assignhub/assignhub/internal/app/controllers"
	"github.com/assignhub/assignhub/internal/app/policy"
	appRepos "github.com/assignhub/assignhub/internal/app/repositories"
	appRoutes "github.com/assignhub/assignhub/internal/app/routes"
	appServices "github.com/assignhub/assignhub/internal/app/services"
	"github.com/assignhub/assignhub/internal/config"
	"github.com/assignhub/assignhub/internal/db"
	appMiddleware "github.com/assignhub/assignhub/internal/middleware"
	pkgAuth "github.com/assignhub/assignhub/internal/pkg/auth"
	"github.com/assignhub/assignhub/internal/pkg/logger"
	"github.com/assignhub/assignhub/internal/pkg/metrics"
	"github.com/assignhub/assignhub/internal/pkg/notification"
	"github.com/assignhub/assignhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	AssignmentService    appServices.AssignmentService
	SubmissionService    appServices.SubmissionService
	AuthController       *appControllers.AuthController
	AssignmentController *appControllers.AssignmentController
	SubmissionController *appControllers.SubmissionController
	HealthController     *appControllers.HealthController
	Repos                *appRepos.Repositories
	DBPool               *pgxpool.Pool
	Engine               *policy.Engine
	JWTService           *pkgAuth.JWTService
	Metrics              metrics.Client
	Publisher            notification.Publisher
	Logger               zerolog.Logger
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

// SetupDatabase establishes the database connection, applies the schema, and
// seeds user accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := db.EnsureSchema(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Failed to apply database schema")
		dbPool.Close()
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSeed()
	if err := seed.LoadUsers(seedCtx, cfg.Seed.UserCSVPath, appRepos.NewUserRepository(dbPool), lgr); err != nil {
		// Seeding failures leave the service up with whatever accounts exist.
		lgr.Error().Err(err).Msg("Failed to seed user accounts, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, DBPool: dbPool}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Engine = policy.NewEngine(deps.Repos.Users)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.JWTSecret,
		TokenExp:    cfg.TokenExpiration(),
		TokenIssuer: cfg.Auth.Issuer,
	})

	metricsClient, err := metrics.NewStatsdClient(cfg.Statsd.Address, cfg.Statsd.Prefix, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize statsd client, counters disabled")
		metricsClient = metrics.NoopClient{}
	}
	deps.Metrics = metricsClient

	deps.Publisher = setupPublisher(cfg, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.JWTService, lgr)
	deps.AssignmentService = appServices.NewAssignmentService(deps.Repos.Assignments, deps.Engine, lgr)
	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.Assignments,
		deps.Repos.Submissions,
		deps.Engine,
		deps.Publisher,
		lgr,
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, deps.Metrics, lgr)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService, deps.Metrics, lgr)
	deps.HealthController = appControllers.NewHealthController(dbPool, deps.Metrics, lgr)

	return deps, nil
}

// setupPublisher returns the SNS publisher when a topic is configured and the
// logging fallback otherwise.
func setupPublisher(cfg *config.Config, lgr zerolog.Logger) notification.Publisher {
	if cfg.AWS.SNSTopicARN == "" {
		lgr.Info().Msg("No SNS topic configured, submission notifications go to the log")
		return notification.LogPublisher{Logger: lgr}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := notification.NewSNSPublisher(ctx, cfg.AWS.Region, cfg.AWS.SNSTopicARN)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize SNS publisher, falling back to log sink")
		return notification.LogPublisher{Logger: lgr}
	}

	lgr.Info().Str("topicARN", cfg.AWS.SNSTopicARN).Msg("SNS publisher configured")
	return publisher
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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AssignmentController,
		deps.SubmissionController,
		deps.HealthController,
		appMiddleware.RequireStore(deps.DBPool),
	)

	return router
}
