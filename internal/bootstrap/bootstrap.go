package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/controllers"
	"github.com/nursingassoc/website/internal/app/migrations"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/app/routes"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/config"
	"github.com/nursingassoc/website/internal/db"
	"github.com/nursingassoc/website/internal/middleware"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/nursingassoc/website/internal/pkg/email"
	"github.com/nursingassoc/website/internal/pkg/filestorage"
	"github.com/nursingassoc/website/internal/pkg/helpers"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"github.com/nursingassoc/website/internal/seed"
	"github.com/nursingassoc/website/internal/web"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB             *gorm.DB
	Repos          *repositories.Repositories
	Services       *services.Services
	Controllers    *routes.Controllers
	JWTService     *auth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *middleware.Metrics
	FileStorage    filestorage.FileStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env and configuration, then configures the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	config.LoadDotEnv()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the database and applies migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*gorm.DB, error) {
	lgr.Info().Msg("Establishing database connection...")
	gormDB, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	if err := migrations.NewMigrator(gormDB).Migrate(ctx); err != nil {
		_ = db.Close(gormDB)
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return gormDB, nil
}

// NewFileStorage builds the storage backend selected by storage.driver
func NewFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, error) {
	switch cfg.Storage.Driver {
	case "gcs":
		return filestorage.NewGCSStorage(ctx, filestorage.GCSConfig{
			Bucket:          cfg.Storage.GCSBucket,
			CredentialsFile: cfg.Storage.GCSCredentialsFile,
			Prefix:          cfg.Storage.Prefix,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
	default:
		return filestorage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.PublicBaseURL, cfg.Storage.Prefix)
	}
}

// NewJWTService builds the token service from the jwt config section
func NewJWTService(cfg *config.Config) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: gormDB, Logger: lgr}

	deps.Repos = repositories.NewRepositories(gormDB)

	storage, err := NewFileStorage(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.JWTService = NewJWTService(cfg)

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   strings.TrimRight(cfg.Server.BaseURL, "/"),
	}, lgr.With().Str("component", "email").Logger())

	deps.Services = services.NewServices(services.Deps{
		DB:            gormDB,
		Repos:         deps.Repos,
		JWT:           deps.JWTService,
		Storage:       storage,
		Notifier:      notifier,
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		Logger:        lgr,
	})

	if _, err := seed.CreateDefaultAdmin(ctx, deps.Repos.UserRepository, deps.Services.Auth, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)
	if cfg.Metrics.Enabled {
		deps.Metrics = middleware.NewMetrics()
	}

	svc := deps.Services
	deps.Controllers = &routes.Controllers{
		Auth:         controllers.NewAuthController(svc.Auth, cfg.IsProduction(), lgr),
		News:         controllers.NewNewsController(svc.Event, lgr),
		Event:        controllers.NewEventController(svc.Event),
		Member:       controllers.NewMemberController(svc.Member),
		Registration: controllers.NewRegistrationController(svc.Registration),
		Nomination:   controllers.NewNominationController(svc.Nomination),
		Document:     controllers.NewDocumentController(svc.Document),
		Luminance:    controllers.NewLuminanceController(svc.Luminance),
		Upload:       controllers.NewUploadController(svc.Upload),
		Page:         controllers.NewPageController(cfg.Server.SiteName, svc, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := middleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(lgr))

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET(cfg.Metrics.Path, deps.Metrics.Handler())
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("failed to load static assets: %w", err)
	}
	router.StaticFS("/static", http.FS(static))

	if local, ok := deps.FileStorage.(*filestorage.LocalStorage); ok {
		router.Static(cfg.Storage.PublicBaseURL, local.BasePath())
		lgr.Info().Str("path", local.BasePath()).Msg("Static file serving configured for uploads directory")
	}

	if cfg.Docs.Enabled {
		routes.SetupSwagger(router)
	}

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, cfg.Storage.MaxUploadSize)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
