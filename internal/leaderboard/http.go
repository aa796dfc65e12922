package leaderboard

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/agentic-quiz/pkg/http/errors"
)

// HTTPHandler exposes the ranked leaderboard as JSON.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

type rankingResponse struct {
	Entries     []Entry `json:"entries"`
	Warning     string  `json:"warning,omitempty"`
	RetrievedAt string  `json:"retrievedAt"`
}

// HandleGet responds with the reconciled leaderboard.
// Route: GET /v1/leaderboard?limit=10
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "limit must be a non-negative integer", "limit")
			return
		}
		limit = parsed
	}

	resp := rankingResponse{
		Entries:     []Entry{},
		RetrievedAt: time.Now().UTC().Format(time.RFC3339),
	}

	entries, err := h.svc.Ranking(r.Context(), limit)
	switch {
	case err == nil:
		resp.Entries = entries
	case errors.Is(err, ErrEmpty):
		resp.Warning = "Leaderboard is empty."
	case errors.Is(err, ErrMissingColumn):
		h.logger.Warn().Err(err).Msg("leaderboard table malformed")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeLeaderboardInvalid, err.Error())
		return
	default:
		h.logger.Warn().Err(err).Msg("leaderboard fetch failed")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeLeaderboardFetchFailed, "failed to load leaderboard")
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, resp)
}
