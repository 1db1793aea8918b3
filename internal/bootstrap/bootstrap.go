package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appControllers "github.com/yigit/collegesocial/internal/app/controllers"
	appMigrations "github.com/yigit/collegesocial/internal/app/migrations"
	appRepos "github.com/yigit/collegesocial/internal/app/repositories"
	appRoutes "github.com/yigit/collegesocial/internal/app/routes"
	appServices "github.com/yigit/collegesocial/internal/app/services"
	"github.com/yigit/collegesocial/internal/config"
	"github.com/yigit/collegesocial/internal/db"
	appMiddleware "github.com/yigit/collegesocial/internal/middleware"
	pkgAuth "github.com/yigit/collegesocial/internal/pkg/auth"
	"github.com/yigit/collegesocial/internal/pkg/email"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/logger"
	"github.com/yigit/collegesocial/internal/pkg/metrics"
	"github.com/yigit/collegesocial/internal/pkg/websocket"
	"github.com/yigit/collegesocial/internal/seed"
)

// Stores holds the long-lived connections to the roster and content stores.
type Stores struct {
	Postgres *db.PostgresDB
	Mongo    *db.MongoDB
}

// Close releases both stores.
func (s *Stores) Close(ctx context.Context) {
	if s.Postgres != nil {
		s.Postgres.Close()
	}
	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to disconnect content store")
		}
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Metrics        *metrics.Metrics
	Storage        filestorage.ObjectStore
	Notifier       email.Notifier
	Hub            *websocket.Hub
	// Bridge and Redis are nil unless redis.addr is configured.
	Bridge *websocket.RedisBridge
	Redis  *redis.Client
	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
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

// SetupDatabase connects both stores, applies migrations and seeds the interest catalog.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Stores, error) {
	lgr.Info().Msg("Establishing roster store connection...")
	pg, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to roster store")
		return nil, err
	}
	lgr.Info().Msg("Roster store connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		pg.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(pg.Pool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		pg.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Establishing content store connection...")
	mongo, err := db.NewMongoDB(ctx, cfg)
	if err != nil {
		pg.Close()
		lgr.Error().Err(err).Msg("Failed to connect to content store")
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		stores := &Stores{Postgres: pg, Mongo: mongo}
		stores.Close(ctx)
		return nil, err
	}

	return &Stores{Postgres: pg, Mongo: mongo}, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, stores *Stores, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Metrics: metrics.New()}

	deps.Repos = appRepos.NewRepositories(stores.Postgres, stores.Mongo)

	var err error
	deps.Storage, err = newObjectStore(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.Notifier = newNotifier(cfg, lgr)

	deps.Hub = websocket.NewHub(logger.Component("hub"))
	var publisher websocket.Publisher = deps.Hub
	if cfg.RedisEnabled() {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			_ = deps.Redis.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.Bridge = websocket.NewRedisBridge(deps.Redis, cfg.Redis.Channel, deps.Hub, logger.Component("redis_bridge"))
		publisher = deps.Bridge
		lgr.Info().Str("addr", cfg.Redis.Addr).Str("channel", cfg.Redis.Channel).Msg("Push fan-out through redis enabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repositories:  deps.Repos,
		JWT:           deps.JWTService,
		Hasher:        pkgAuth.NewPasswordHasher(bcrypt.DefaultCost),
		Storage:       deps.Storage,
		Notifier:      deps.Notifier,
		Publisher:     publisher,
		Metrics:       deps.Metrics,
		UploadTimeout: cfg.UploadTimeoutDuration(),
		Logger:        lgr,
	})

	if err := seed.CreateDefaultData(ctx, deps.Services.Interests, lgr); err != nil {
		// The catalog only backs profile interests, startup continues without it.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Admin.Token)

	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(svc.Auth, cfg.IsProduction(), lgr),
		Posts:    appControllers.NewPostController(svc.Posts, cfg.Feed.PageSize, lgr),
		Uploads:  appControllers.NewUploadController(svc.Uploads, svc.Onboarding, lgr),
		Profiles: appControllers.NewProfileController(svc.Profiles, svc.Interests),
		Messages: appControllers.NewMessageController(svc.Messaging, websocket.NewUpgrader(deps.Hub, nil, lgr), lgr),
		Health: appControllers.NewHealthController(map[string]appControllers.Pinger{
			"postgres": stores.Postgres,
			"mongodb":  stores.Mongo,
		}),
	}

	return deps, nil
}

func newObjectStore(cfg *config.Config, lgr zerolog.Logger) (filestorage.ObjectStore, error) {
	storageLogger := lgr.With().Str("component", "storage").Str("driver", cfg.Storage.Driver).Logger()
	if cfg.Storage.Driver == config.StorageCloudinary {
		return filestorage.NewCloudinaryStorage(filestorage.CloudinaryConfig{
			CloudName: cfg.Storage.CloudinaryCloudName,
			APIKey:    cfg.Storage.CloudinaryAPIKey,
			APISecret: cfg.Storage.CloudinaryAPISecret,
			ChunkSize: int64(cfg.Storage.ChunkSizeMB) << 20,
			Timeout:   cfg.UploadTimeoutDuration(),
		}, storageLogger)
	}
	// Must match the static route registered in SetupRouter.
	baseURL := strings.TrimRight(cfg.Server.PublicURL, "/") + "/uploads"
	return filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL, storageLogger)
}

func newNotifier(cfg *config.Config, lgr zerolog.Logger) email.Notifier {
	emailLogger := lgr.With().Str("component", "email").Str("driver", cfg.Email.Driver).Logger()
	branding := email.Branding{
		FromName:    cfg.Email.FromName,
		FromEmail:   cfg.Email.FromEmail,
		CollegeName: cfg.Email.CollegeName,
		LoginURL:    cfg.Email.LoginURL,
	}

	switch cfg.Email.Driver {
	case config.EmailSMTP:
		return email.NewSMTPNotifier(email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUser,
			Password: cfg.Email.SMTPPassword,
			UseTLS:   cfg.Email.SMTPTLS,
		}, branding, emailLogger)
	case config.EmailSendGrid:
		return email.NewSendGridNotifier(cfg.Email.SendGridAPIKey, branding, emailLogger)
	default:
		return email.NewLogNotifier(emailLogger)
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	appMiddleware.SetDebugErrors(!cfg.IsProduction())

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Metrics(deps.Metrics),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupMetrics(router, deps.Metrics.Handler())

	if cfg.Storage.Driver == config.StorageLocal {
		setupStaticFileServing(router, cfg, lgr)
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, int64(cfg.Server.MaxUploadMB)<<20)

	return router
}

// setupStaticFileServing serves locally stored uploads under /uploads.
func setupStaticFileServing(router *gin.Engine, cfg *config.Config, lgr zerolog.Logger) {
	uploadPath := cfg.Server.StoragePath

	if _, err := os.Stat(uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
			lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create uploads directory")
			return
		}
	}

	router.Static("/uploads", uploadPath)
	lgr.Info().Str("path", uploadPath).Msg("Static file serving configured for uploads directory")
}
