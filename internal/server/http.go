package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/config"
	"github.com/gokatarajesh/agentic-quiz/internal/logging"
	httperrors "github.com/gokatarajesh/agentic-quiz/pkg/http/errors"
)

// Routes groups the handlers mounted by NewHTTPServer. Nil entries are skipped.
type Routes struct {
	Leaderboard http.HandlerFunc
	Dashboard   http.HandlerFunc
	// UI mounts the HTML tabs, including the "/" catch-all.
	UI func(mux *http.ServeMux)
}

// NewHTTPServer wires base routes (health, metrics, ping) and the quiz routes.
// redis may be nil when sessions are kept in memory.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, redis *redis.Client, routes Routes) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewMux(logger, redis, routes),
	}
}

// NewMux builds the request router.
func NewMux(logger zerolog.Logger, redis *redis.Client, routes Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, redis); err != nil {
			log := logging.FromContext(ctx)
			log.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondBadGateway(w, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if routes.Leaderboard != nil {
		mux.HandleFunc("/v1/leaderboard", routes.Leaderboard)
	}
	if routes.Dashboard != nil {
		mux.HandleFunc("/v1/dashboard", routes.Dashboard)
	}
	if routes.UI != nil {
		routes.UI(mux)
	}
	return mux
}

func pingDependencies(ctx context.Context, redis *redis.Client) error {
	if redis == nil {
		return nil
	}
	return redis.Ping(ctx).Err()
}
