package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/agentic-quiz/pkg/http/errors"
)

// RowReader reads a whole table, header first.
type RowReader interface {
	ReadAll(ctx context.Context) ([][]string, error)
}

// Service builds dashboard summaries from the response log.
type Service struct {
	source RowReader
}

func NewService(source RowReader) *Service {
	return &Service{source: source}
}

// Summaries returns one histogram per question.
func (s *Service) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.source.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read response log: %w", err)
	}
	return Aggregate(rows)
}

// HTTPHandler exposes summaries as JSON.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: logger.With().Str("component", "dashboard_http").Logger()}
}

// HandleGet serves GET /v1/dashboard.
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	summaries, err := h.svc.Summaries(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("dashboard fetch failed")
		msg := "failed to load dashboard data"
		if errors.Is(err, ErrMissingColumn) {
			msg = err.Error()
		}
		httperrors.RespondBadGateway(w, httperrors.ErrCodeDashboardFetchFailed, msg)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]interface{}{"questions": summaries})
}
