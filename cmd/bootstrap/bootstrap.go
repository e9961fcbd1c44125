package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-clinic-api/config"
	deliveryHttp "campus-clinic-api/internal/delivery/http"
	"campus-clinic-api/internal/delivery/http/handler"
	"campus-clinic-api/internal/delivery/http/middleware"
	"campus-clinic-api/internal/infrastructure/cache"
	"campus-clinic-api/internal/infrastructure/database"
	"campus-clinic-api/internal/repository"
	"campus-clinic-api/internal/service"
	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/jwt"
	"campus-clinic-api/pkg/throttle"
	"campus-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	studentRepo := repository.NewStudentRepository()
	guardianRepo := repository.NewGuardianRepository()
	healthRecordRepo := repository.NewHealthRecordRepository()
	consultationRepo := repository.NewConsultationRepository()
	activityLogRepo := repository.NewActivityLogRepository()
	medicineRepo := repository.NewMedicineRepository()
	dashboardRepo := repository.NewDashboardRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	activityService := service.NewActivityService(log, activityLogRepo)
	loginThrottle := throttle.NewLoginThrottle(throttle.NewRedisStore(redisClient))

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, activityService, jwtService, redisClient, loginThrottle, cfg.OAuth)
	userAdminUsecase := usecase.NewUserAdminUsecase(db, log, userRepo, roleRepo, activityService)
	healthRecordUsecase := usecase.NewHealthRecordUsecase(db, log, healthRecordRepo, studentRepo, guardianRepo, activityService)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, consultationRepo, studentRepo, activityService)
	activityLogUsecase := usecase.NewActivityLogUsecase(db, log, activityLogRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, dashboardRepo, studentRepo, consultationRepo, healthRecordRepo)
	medicineUsecase := usecase.NewMedicineUsecase(db, log, medicineRepo, activityService)

	// Initialize handlers
	pageHandler := handler.NewPageHandler()
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	userHandler := handler.NewUserHandler(userAdminUsecase, customValidator)
	healthRecordHandler := handler.NewHealthRecordHandler(healthRecordUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	activityLogHandler := handler.NewActivityLogHandler(activityLogUsecase)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	medicineHandler := handler.NewMedicineHandler(medicineUsecase, customValidator)
	webhookHandler := handler.NewWebhookHandler(authUsecase, customValidator, cfg.App.WebhookSecret)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	guardMiddleware := middleware.NewGuardMiddleware(jwtService, func(ctx context.Context, userID uuid.UUID) (int, error) {
		user, err := userRepo.FindByID(db.WithContext(ctx), userID)
		if err != nil {
			return 0, err
		}
		if user == nil || (user.IsActive != nil && !*user.IsActive) {
			return 0, fmt.Errorf("user %s not available", userID)
		}
		return user.RoleID, nil
	})
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		pageHandler,
		authHandler,
		userHandler,
		healthRecordHandler,
		consultationHandler,
		activityLogHandler,
		dashboardHandler,
		medicineHandler,
		webhookHandler,
		authMiddleware,
		guardMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			logrus.Errorf("Failed to close Redis client: %v", err)
		}
	}

	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("Failed to close database connection: %v", err)
			}
		}
	}

	logrus.Info("Server exited")
}
