package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/msc-labs/evaluate-backend/internal/database"
	"github.com/msc-labs/evaluate-backend/internal/grading"
	"github.com/msc-labs/evaluate-backend/internal/handler"
	"github.com/msc-labs/evaluate-backend/internal/logger"
	"github.com/msc-labs/evaluate-backend/internal/repository"
	"github.com/msc-labs/evaluate-backend/internal/router"
	"github.com/msc-labs/evaluate-backend/internal/service"
	"github.com/msc-labs/evaluate-backend/internal/validator"
	"github.com/msc-labs/evaluate-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Evaluate Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories.
	userRepo := repository.NewUserRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	adminLogRepo := repository.NewAdminLogRepository(pool)

	// Services.
	oracle := grading.NewOracleClient(cfg, log)
	authService := service.NewAuthService(cfg, userRepo, rdb)
	templateService := service.NewTemplateService(templateRepo, rdb, log)
	submissionService := service.NewSubmissionService(templateRepo, resultRepo, oracle, log)
	resultService := service.NewResultService(resultRepo, templateRepo, log)
	reportService := service.NewReportService(resultRepo, templateRepo, userRepo, cfg.PassThreshold, log)
	auditService := service.NewAuditService(adminLogRepo, rdb, log)

	// Handlers.
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Template: handler.NewTemplateHandler(templateService, auditService),
		Quiz:     handler.NewQuizHandler(templateService, submissionService),
		Result:   handler.NewResultHandler(resultService, auditService),
		Report:   handler.NewReportHandler(reportService),
		Admin:    handler.NewAdminHandler(auditService),
	}

	// Background workers.
	workerCtx, workerCancel := context.WithCancel(context.Background())

	adminLogWorker := worker.NewAdminLogWorker(adminLogRepo, rdb, log)
	go adminLogWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
