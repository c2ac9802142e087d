package app

import (
	"context"
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/controller"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/pkg/database"
	"lingua_edu_backend/pkg/logger"
	"lingua_edu_backend/pkg/monitoring"
	"lingua_edu_backend/pkg/security"
	"lingua_edu_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	stopRetention chan struct{}
}

type repositories struct {
	user      *repository.UserRepository
	school    *repository.SchoolRepository
	challenge *repository.ChallengeRepository
	question  *repository.QuestionRepository
	answer    *repository.StudentAnswerRepository
	media     *repository.MediaRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	media     *service.MediaService
	question  *service.QuestionService
	challenge *service.ChallengeService
	school    *service.SchoolService
	export    *service.ExportService
}

type controllers struct {
	auth      *controller.AuthController
	question  *controller.QuestionController
	challenge *controller.ChallengeController
	school    *controller.SchoolController
	media     *controller.MediaController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		school:    repository.NewSchoolRepository(db),
		challenge: repository.NewChallengeRepository(db),
		question:  repository.NewQuestionRepository(db),
		answer:    repository.NewStudentAnswerRepository(db),
		media:     repository.NewMediaRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.media = service.NewMediaService(repos.media, s.storage, db)
	s.question = service.NewQuestionService(
		repos.question,
		repos.challenge,
		repos.answer,
		repos.school,
		repos.media,
		s.media,
		rdb,
		db,
	)
	s.challenge = service.NewChallengeService(repos.challenge, s.question, repos.school, repos.answer, db)
	s.school = service.NewSchoolService(repos.school, repos.user)
	s.export = service.NewExportService(s.question)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		question:  controller.NewQuestionController(s.question),
		challenge: controller.NewChallengeController(s.challenge, s.export),
		school:    controller.NewSchoolController(s.school, s.export),
		media:     controller.NewMediaController(s.media),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ApplyConfig takes over the hot-reloadable settings from a freshly
// loaded config. The retention sweep reads these on every tick, so a
// new purge window takes effect without a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Retention = cfg.Retention
	a.Config.RateLimit = cfg.RateLimit
	logger.Log.Info("configuration reloaded",
		zap.Int("purgeAfterDays", cfg.Retention.PurgeAfterDays),
		zap.Int("sweepIntervalMins", cfg.Retention.SweepIntervalMins),
	)
}

// startBackgroundTasks runs the retention sweep that purges
// soft-deleted questions past the configured window.
func (a *App) startBackgroundTasks(s *services) {
	a.stopRetention = make(chan struct{})
	interval := time.Duration(a.Config.Retention.SweepIntervalMins) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.question.PurgeExpired(context.Background(), a.Config.Retention.PurgeAfterDays); err != nil {
					logger.Log.Error("retention sweep error", zap.Error(err))
				}
			case <-a.stopRetention:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lingua-edu-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopRetention != nil {
		close(a.stopRetention)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
