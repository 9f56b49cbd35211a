package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/prepsphere/backend/internal/app/controllers"
	appMigrations "github.com/prepsphere/backend/internal/app/migrations"
	appRepos "github.com/prepsphere/backend/internal/app/repositories"
	appRoutes "github.com/prepsphere/backend/internal/app/routes"
	appServices "github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/config"
	"github.com/prepsphere/backend/internal/db"
	appMiddleware "github.com/prepsphere/backend/internal/middleware"
	"github.com/prepsphere/backend/internal/pkg/ai"
	pkgAuth "github.com/prepsphere/backend/internal/pkg/auth"
	"github.com/prepsphere/backend/internal/pkg/filestorage"
	"github.com/prepsphere/backend/internal/pkg/helpers"
	"github.com/prepsphere/backend/internal/pkg/logger"
	"github.com/prepsphere/backend/internal/pkg/metrics"
	"github.com/prepsphere/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Stores       appRepos.Stores
	UnitOfWork   appRepos.UnitOfWork
	JWTService   *pkgAuth.JWTService
	FileStorage  filestorage.Storage
	AIClient     ai.Client
	Controllers  appRoutes.Controllers
	AuthMw       *appMiddleware.AuthMiddleware
	Logger       zerolog.Logger
	AuthService  appServices.AuthService
	UserService  appServices.UserService
	ProfileSvc   appServices.ProfileService
	FileSvc      appServices.FileService
	JobSvc       appServices.JobService
	EventSvc     appServices.EventService
	NotifySvc    appServices.NotificationService
	AdminSvc     appServices.AdminService
	InterviewSvc appServices.InterviewService
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

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

// SetupDatabase establishes the connection pool and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// setupStorage selects the S3 backend when configured, local disk otherwise
func setupStorage(cfg *config.Config, lgr zerolog.Logger) (filestorage.Storage, error) {
	s3cfg := filestorage.S3Config{
		Endpoint:  cfg.Storage.S3.Endpoint,
		AccessKey: cfg.Storage.S3.AccessKey,
		SecretKey: cfg.Storage.S3.SecretKey,
		Bucket:    cfg.Storage.S3.Bucket,
		UseSSL:    cfg.Storage.S3.UseSSL,
		PublicURL: cfg.Storage.S3.PublicURL,
		KeyPrefix: cfg.Storage.S3.KeyPrefix,
	}
	if s3cfg.IsConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		storage, err := filestorage.NewS3Storage(ctx, s3cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		lgr.Info().Str("endpoint", s3cfg.Endpoint).Str("bucket", s3cfg.Bucket).Msg("S3 file storage configured")
		return storage, nil
	}

	baseURL := cfg.Storage.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port + "/uploads"
	}
	storage, err := filestorage.NewLocalStorage(cfg.Storage.LocalPath, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}
	lgr.Info().Str("path", cfg.Storage.LocalPath).Msg("Local file storage configured")
	return storage, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	metrics.Register()

	deps.Stores = appRepos.NewStores(database.Pool)
	deps.UnitOfWork = appRepos.NewUnitOfWork(database)

	var err error
	deps.FileStorage, err = setupStorage(cfg, lgr)
	if err != nil {
		return nil, err
	}

	aiClient, err := ai.NewOpenRouterClient(ai.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
	})
	switch {
	case err == nil:
		deps.AIClient = aiClient
		lgr.Info().Str("model", cfg.AI.Model).Msg("Interview feedback model configured")
	case errors.Is(err, ai.ErrNotConfigured):
		lgr.Warn().Msg("No AI credentials configured, interview feedback will use canned responses")
	default:
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Stores, deps.JWTService)
	deps.UserService = appServices.NewUserService(deps.Stores, deps.UnitOfWork)
	deps.ProfileSvc = appServices.NewProfileService(deps.Stores, deps.UnitOfWork)
	deps.FileSvc = appServices.NewFileService(deps.Stores, deps.UnitOfWork, deps.FileStorage, cfg.Storage.MaxFileSize)
	deps.JobSvc = appServices.NewJobService(deps.Stores, deps.UnitOfWork)
	deps.EventSvc = appServices.NewEventService(deps.Stores, deps.UnitOfWork)
	deps.NotifySvc = appServices.NewNotificationService(deps.Stores, deps.UnitOfWork)
	deps.AdminSvc = appServices.NewAdminService(deps.Stores)
	deps.InterviewSvc = appServices.NewInterviewService(deps.AIClient)

	deps.AuthMw = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		User:         appControllers.NewUserController(deps.UserService, lgr),
		Profile:      appControllers.NewProfileController(deps.ProfileSvc, lgr),
		File:         appControllers.NewFileController(deps.FileSvc, lgr),
		Job:          appControllers.NewJobController(deps.JobSvc, lgr),
		Event:        appControllers.NewEventController(deps.EventSvc, lgr),
		Notification: appControllers.NewNotificationController(deps.NotifySvc, lgr),
		Admin:        appControllers.NewAdminController(deps.AdminSvc, lgr),
		Webhook:      appControllers.NewWebhookController(deps.UserService, cfg.Webhook.Secret, lgr),
		Interview:    appControllers.NewInterviewController(deps.InterviewSvc, lgr),
	}

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
	router.Use(appMiddleware.RequestLogger(), appMiddleware.ClientIP(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMw)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
