package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"github.com/nardos-mesfin/exam-grader-api/internal/database"
	"github.com/nardos-mesfin/exam-grader-api/internal/gemini"
	"github.com/nardos-mesfin/exam-grader-api/internal/handler"
	"github.com/nardos-mesfin/exam-grader-api/internal/logger"
	"github.com/nardos-mesfin/exam-grader-api/internal/repository"
	"github.com/nardos-mesfin/exam-grader-api/internal/router"
	"github.com/nardos-mesfin/exam-grader-api/internal/service"
	"github.com/nardos-mesfin/exam-grader-api/internal/validator"
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
		Msg("Starting Exam Grader API")

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; AI endpoints will refuse requests")
	}

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
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	visionClient := gemini.New(cfg.GeminiAPIKey, log)
	authService := service.NewAuthService(cfg, rdb)
	examService := service.NewExamService(pool, examRepo, questionRepo, log)
	submissionService := service.NewSubmissionService(pool, submissionRepo, examService, log)
	answerKeyService := service.NewAnswerKeyService(visionClient, cfg, log)
	gradingService := service.NewGradingService(visionClient, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userRepo),
		AnswerKey:  handler.NewAnswerKeyHandler(answerKeyService, cfg),
		Exam:       handler.NewExamHandler(examService),
		Submission: handler.NewSubmissionHandler(gradingService, examService, submissionService, cfg),
	}

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

	// In-flight grading calls may be minutes long; give them a window to
	// finish before the listener is torn down.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
