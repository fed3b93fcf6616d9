package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAudit "github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/catalog"
	appControllers "github.com/yigit/degreeplan/internal/app/controllers"
	"github.com/yigit/degreeplan/internal/app/gened"
	appMigrations "github.com/yigit/degreeplan/internal/app/migrations"
	"github.com/yigit/degreeplan/internal/app/planner"
	"github.com/yigit/degreeplan/internal/app/recommend"
	appRepos "github.com/yigit/degreeplan/internal/app/repositories"
	appRoutes "github.com/yigit/degreeplan/internal/app/routes"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	appServices "github.com/yigit/degreeplan/internal/app/services"
	"github.com/yigit/degreeplan/internal/config"
	"github.com/yigit/degreeplan/internal/db"
	appMiddleware "github.com/yigit/degreeplan/internal/middleware"
	pkgAuth "github.com/yigit/degreeplan/internal/pkg/auth"
	"github.com/yigit/degreeplan/internal/pkg/logger"
	"github.com/yigit/degreeplan/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Catalog            *catalog.Catalog
	Router             *appAudit.Router
	Engine             *scheduling.Engine
	Planner            *planner.Planner
	Services           *appServices.Services
	AuditController    *appControllers.AuditController
	ScheduleController *appControllers.ScheduleController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Cache              *recommend.RedisCache // nil unless Redis is enabled
	Logger             zerolog.Logger
}

// Close releases connections held by the dependencies
func (d *Dependencies) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
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

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// LoadCatalog reads the catalog file named in the config, or the embedded catalog when none is set
func LoadCatalog(cfg *config.Config, lgr zerolog.Logger) (*catalog.Catalog, error) {
	if cfg.Planner.CatalogPath == "" {
		lgr.Info().Msg("Using embedded catalog")
		return catalog.Default()
	}
	lgr.Info().Str("path", cfg.Planner.CatalogPath).Msg("Loading catalog")
	return catalog.LoadFile(cfg.Planner.CatalogPath)
}

// BuildRecommender creates the recommendation client. It is disabled unless configured, and
// rankings are cached in Redis when Redis is enabled. A Redis outage at startup leaves the
// client uncached rather than failing.
func BuildRecommender(cfg *config.Config, lgr zerolog.Logger) (*recommend.Client, *recommend.RedisCache) {
	if !cfg.Recommendation.Enabled {
		lgr.Info().Msg("Recommendation service disabled")
		return recommend.Disabled(), nil
	}

	timeout := cfg.RecommendationTimeout()
	var source recommend.Source = recommend.NewHTTPClient(cfg.Recommendation.BaseURL, timeout)
	var cache *recommend.RedisCache

	if cfg.Redis.Enabled {
		c, err := recommend.NewRedisCache(context.Background(), recommend.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, recommendations will not be cached")
		} else {
			cache = c
			source = recommend.NewCachedClient(source, cache, cfg.RedisCacheTTL(), lgr)
			lgr.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.RedisCacheTTL()).Msg("Recommendation cache enabled")
		}
	}

	lgr.Info().Str("baseURL", cfg.Recommendation.BaseURL).Dur("timeout", timeout).Msg("Recommendation service enabled")
	return recommend.NewClient(source, timeout, lgr), cache
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var err error
	deps.Catalog, err = LoadCatalog(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to load catalog")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	solver := gened.NewSolver(deps.Catalog.GenEd)
	deps.Router, err = appAudit.NewRouter(deps.Catalog, solver)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build program router")
		return nil, fmt.Errorf("failed to build program router: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(database)

	deps.Engine = scheduling.NewEngine(
		deps.Repos.OfferingRepository,
		deps.Repos.EnrollmentRepository,
		scheduling.WithMaxCredits(cfg.Planner.MaxCredits),
		scheduling.WithLogger(lgr),
	)

	recommender, cache := BuildRecommender(cfg, lgr)
	deps.Cache = cache

	deps.Planner = planner.New(
		deps.Router,
		solver,
		deps.Engine,
		deps.Repos.OfferingRepository,
		deps.Repos.CourseRepository,
		planner.WithRecommender(recommender),
		planner.WithMaxCoreCourses(cfg.Planner.MaxCoreCourses),
		planner.WithLogger(lgr),
	)

	deps.Services = &appServices.Services{
		AuditService: appServices.NewAuditService(
			deps.Router,
			deps.Engine,
			deps.Repos.StudentRepository,
			deps.Repos.CourseRepository,
			lgr,
		),
		ScheduleService: appServices.NewScheduleService(
			deps.Planner,
			deps.Engine,
			deps.Repos.StudentRepository,
			deps.Repos.ScheduleRepository,
			lgr,
		),
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuditController = appControllers.NewAuditController(deps.Services.AuditService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.Services.ScheduleService)

	if _, err := seed.CreateCatalogDepartments(context.Background(), deps.Repos.DepartmentRepository, deps.Catalog, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create catalog departments, proceeding anyway...")
	}
	CheckDepartmentPrograms(context.Background(), deps.Repos.DepartmentRepository, deps.Router, lgr)

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
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuditController,
		deps.ScheduleController,
		deps.AuthMiddleware,
	)

	return router
}
