package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
	"github.com/gokatarajesh/agentic-quiz/internal/config"
	"github.com/gokatarajesh/agentic-quiz/internal/dashboard"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
	"github.com/gokatarajesh/agentic-quiz/internal/logging"
	"github.com/gokatarajesh/agentic-quiz/internal/question"
	"github.com/gokatarajesh/agentic-quiz/internal/question/ai"
	"github.com/gokatarajesh/agentic-quiz/internal/quiz"
	"github.com/gokatarajesh/agentic-quiz/internal/server"
	"github.com/gokatarajesh/agentic-quiz/internal/web"
)

// Application aggregates shared infrastructure (stores, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server
}

// New bootstraps the logger, spreadsheet tables, session store and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	tables, err := OpenTables(ctx, cfg.Sheets, logger)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}

	var redisClient *redis.Client
	var store quiz.Store
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		store = quiz.NewRedisStore(redisClient, cfg.Redis.SessionTTL)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; sessions are kept in memory")
		store = quiz.NewMemoryStore()
	}

	var generator question.Generator
	if cfg.Gemini.APIKey != "" {
		generator = ai.NewGemini(ai.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			BaseURL:     cfg.Gemini.BaseURL,
			Temperature: cfg.Gemini.Temperature,
			Timeout:     cfg.Gemini.HTTPTimeout,
		}, logger)
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; every quiz uses the built-in questions")
	}

	loc := cfg.Quiz.Location()
	questionLog := audit.NewQuestionLog(tables.Questions, nil, loc)
	questionSvc := question.NewService(generator, questionLog, logger)
	responseLog := audit.NewResponseLog(tables.Responses, logger)
	leaderboardSvc := leaderboard.NewService(tables.Leaderboard, logger, leaderboard.ServiceOptions{Location: loc})
	dashboardSvc := dashboard.NewService(responseLog)
	quizSvc := quiz.NewService(questionSvc, responseLog, leaderboardSvc, logger, quiz.Options{
		Topic:         cfg.Quiz.Topic,
		QuestionCount: cfg.Quiz.QuestionCount,
		Location:      loc,
	})

	ui := web.NewHandler(web.Deps{
		Quiz:         quizSvc,
		Store:        store,
		Tokens:       quiz.NewTokenManager([]byte(cfg.Security.SessionSecret), cfg.Redis.SessionTTL),
		Leaderboard:  leaderboardSvc,
		Dashboard:    dashboardSvc,
		SecureCookie: cfg.Security.CookieSecure,
	}, logger)

	apiServer := server.NewHTTPServer(cfg, logger, redisClient, server.Routes{
		Leaderboard: leaderboard.NewHTTPHandler(leaderboardSvc, logger).HandleGet,
		Dashboard:   dashboard.NewHTTPHandler(dashboardSvc, logger).HandleGet,
		UI:          ui.Register,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
