package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-accounts/config"
	deliveryHttp "clinic-accounts/internal/delivery/http"
	"clinic-accounts/internal/delivery/http/handler"
	"clinic-accounts/internal/delivery/http/middleware"
	"clinic-accounts/internal/infrastructure/cache"
	"clinic-accounts/internal/infrastructure/database"
	"clinic-accounts/internal/infrastructure/messaging"
	"clinic-accounts/internal/repository"
	"clinic-accounts/internal/service"
	"clinic-accounts/internal/usecase"
	"clinic-accounts/pkg/hasher"
	"clinic-accounts/pkg/jwt"
	"clinic-accounts/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	KafkaWriter *kafka.Writer
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logrus.Info("Database migrations applied")
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize Kafka (optional)
	app.KafkaWriter = messaging.NewKafkaWriter(cfg.Kafka)
	if app.KafkaWriter != nil {
		logrus.Infof("Publishing account events to Kafka topic %s", cfg.Kafka.Topic)
	} else {
		logrus.Info("KAFKA_BROKERS not set, account events are logged only")
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, app.KafkaWriter)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, kafkaWriter *kafka.Writer) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	tx := repository.NewTransactor(db)
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	pharmacistRepo := repository.NewPharmacistRepository()
	specializationRepo := repository.NewSpecializationRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	pharmacistProfileRepo := repository.NewPharmacistProfileRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	passwordHasher := hasher.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokenStore := service.NewRedisTokenStore(redisClient)
	events := service.NewEventPublisher(log, kafkaWriter)
	auditService := service.NewAuditService(log, auditLogRepo)
	profileService := service.NewProfileService(log, patientProfileRepo, doctorProfileRepo, pharmacistProfileRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(tx, log, patientRepo, doctorRepo, pharmacistRepo, specializationRepo,
		profileService, auditService, events, passwordHasher, jwtService, tokenStore)
	patientUsecase := usecase.NewPatientUsecase(tx, log, patientRepo, auditService, events, passwordHasher, tokenStore)
	doctorUsecase := usecase.NewDoctorUsecase(tx, log, doctorRepo, specializationRepo, profileService, auditService, events, passwordHasher, tokenStore)
	pharmacistUsecase := usecase.NewPharmacistUsecase(tx, log, pharmacistRepo, profileService, auditService, events, passwordHasher, tokenStore)
	specializationUsecase := usecase.NewSpecializationUsecase(tx, log, specializationRepo, doctorRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(tx, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	pharmacistHandler := handler.NewPharmacistHandler(pharmacistUsecase, customValidator)
	specializationHandler := handler.NewSpecializationHandler(specializationUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware()

	if cfg.Auth.AdminAPIKey == "" {
		log.Warn("ADMIN_API_KEY not set, admin endpoints will reject every request")
	}

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, patientHandler, doctorHandler, pharmacistHandler,
		specializationHandler, auditLogHandler, authMiddleware, corsMiddleware, cfg.Auth.AdminAPIKey)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

// Close closes all connections (database, redis, kafka)
func (app *App) Close() {
	// Flush pending events before the stores go away
	if app.KafkaWriter != nil {
		if err := app.KafkaWriter.Close(); err != nil {
			logrus.Warnf("Failed to close kafka writer: %+v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
