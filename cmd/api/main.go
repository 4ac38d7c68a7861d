// @title           Egg Hunt API
// @version         1.0
// @description     Real-time easter egg hunt: registration, code submissions and a live leaderboard.

// @host      localhost:8080
// @BasePath  /api/hunt

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"egg-hunt-api/internal/config"
	"egg-hunt-api/internal/database"
	"egg-hunt-api/internal/events"
	"egg-hunt-api/internal/handler"
	"egg-hunt-api/internal/job"
	"egg-hunt-api/internal/metrics"
	"egg-hunt-api/internal/repository"
	"egg-hunt-api/internal/router"
	"egg-hunt-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Egg Hunt API",
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.SafeAutoMigrate(db, logger); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	} else {
		logger.Info("Database migrations completed")
	}

	// Initialize metrics and attach DB query instrumentation
	m := metrics.New()
	database.RegisterMetricsCallbacks(db, m)
	logger.Info("Metrics initialized")

	// Change broker: Redis when reachable, in-process otherwise. The game
	// stays playable without Redis, only cross-instance fan-out is lost.
	var publisher events.Publisher
	var subscriber events.Subscriber

	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-process change broker", zap.Error(err))
		broker := events.NewMemoryBroker(m)
		publisher = broker
		subscriber = broker
		redisClient = nil
	} else {
		broker := events.NewRedisBroker(redisClient, m, logger)
		publisher = broker
		subscriber = broker
		logger.Info("Redis change broker initialized")
	}

	// Repositories
	participantRepo := repository.NewParticipantRepository(db)
	codeRepo := repository.NewSecretCodeRepository(db)
	recordRepo := repository.NewFoundRecordRepository(db)

	// Services
	registryService := service.NewRegistryService(participantRepo, m, logger)
	gameService := service.NewGameService(participantRepo, codeRepo, recordRepo, publisher, m, logger)
	adminService := service.NewAdminService(participantRepo, codeRepo, recordRepo, publisher, cfg.Admin, logger)

	// Periodic refresh hints for observers that missed a notification
	scheduler := cron.New()
	if _, err := scheduler.AddJob("@every 1m", job.NewRefreshJob(publisher, logger)); err != nil {
		logger.Warn("Failed to schedule refresh job", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router with all dependencies
	r := router.Setup(cfg, router.Handlers{
		Health:      handler.NewHealthHandler(db, redisClient),
		Participant: handler.NewParticipantHandler(registryService, gameService),
		Game:        handler.NewGameHandler(gameService),
		Admin:       handler.NewAdminHandler(adminService, gameService),
		Feed:        handler.NewFeedHandler(subscriber, m, logger),
	}, m, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Egg Hunt API started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		redisClient.Close()
	}
	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database connection", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
