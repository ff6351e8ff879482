package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"denticare-server/config"
	deliveryHttp "denticare-server/internal/delivery/http"
	"denticare-server/internal/delivery/http/handler"
	"denticare-server/internal/delivery/http/middleware"
	"denticare-server/internal/infrastructure/cache"
	"denticare-server/internal/infrastructure/database"
	"denticare-server/internal/repository"
	"denticare-server/internal/service"
	"denticare-server/internal/usecase"
	"denticare-server/pkg/jwt"
	"denticare-server/pkg/validator"

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

	// Clinic timezone governs all appointment date/time arithmetic.
	loc, err := time.LoadLocation(cfg.Clinic.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic timezone %q: %w", cfg.Clinic.Timezone, err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, loc)

	return app, nil
}

// Migrate applies pending SQL migrations and exits.
func Migrate() error {
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return database.RunMigrations(cfg.DB)
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, loc *time.Location) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	dentistRepo := repository.NewDentistProfileRepository()
	patientRepo := repository.NewPatientRepository()
	scheduleRepo := repository.NewDentistScheduleRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	captchaService := service.NewCaptchaService(redisClient, log)
	notificationService := service.NewNotificationService(cfg.SMTP, log)
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, patientRepo, dentistRepo, jwtService, redisClient)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, loc, dentistRepo, scheduleRepo, appointmentRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, loc, patientRepo, dentistRepo, scheduleRepo, appointmentRepo, captchaService, notificationService, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, loc, appointmentRepo, patientRepo, dentistRepo, scheduleRepo, notificationService, auditService)
	scheduleUsecase := usecase.NewDentistScheduleUsecase(db, log, loc, scheduleRepo, dentistRepo, appointmentRepo, auditService)
	dentistUsecase := usecase.NewDentistProfileUsecase(db, log, dentistRepo, userRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo)
	treatmentUsecase := usecase.NewTreatmentUsecase(db, log, treatmentRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, captchaService, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	dentistHandler := handler.NewDentistHandler(dentistUsecase, customValidator)
	scheduleHandler := handler.NewDentistScheduleHandler(scheduleUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase)
	treatmentHandler := handler.NewTreatmentHandler(treatmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		bookingHandler,
		availabilityHandler,
		appointmentHandler,
		dentistHandler,
		scheduleHandler,
		patientHandler,
		treatmentHandler,
		auditLogHandler,
		authMiddleware,
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

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
