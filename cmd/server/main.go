package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/database"
	"github.com/edumind/elearn-backend/internal/handler"
	"github.com/edumind/elearn-backend/internal/logger"
	"github.com/edumind/elearn-backend/internal/mailer"
	"github.com/edumind/elearn-backend/internal/payment"
	"github.com/edumind/elearn-backend/internal/repository"
	"github.com/edumind/elearn-backend/internal/router"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/edumind/elearn-backend/internal/validator"
	"github.com/edumind/elearn-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduMind Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	lectureRepo := repository.NewLectureRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	mail := mailer.New(cfg, log)
	provider := payment.NewStripeProvider(cfg.StripeSecretKey)

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService, mail, log)
	courseService := service.NewCourseService(courseRepo, lectureRepo, rdb, log)
	lectureService := service.NewLectureService(lectureRepo, courseRepo, rdb, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, log)
	paymentService := service.NewPaymentService(cfg, provider, courseRepo, userRepo, paymentRepo, enrollmentService, log)
	progressService := service.NewProgressService(progressRepo, lectureRepo, log)
	mediaService := service.NewMediaService(cfg)
	statsService := service.NewStatsService(userRepo, courseRepo, lectureRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(userService),
		Course:   handler.NewCourseHandler(courseService, lectureService, enrollmentService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Progress: handler.NewProgressHandler(progressService),
		Admin:    handler.NewAdminHandler(courseService, lectureService, mediaService, userService, statsService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	janitor := worker.NewJanitor(cfg, rdb, log)
	go janitor.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
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

	// 2. Stop the janitor and wait for its queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
