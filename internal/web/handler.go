// Package web serves the quiz and dashboard tabs as server-rendered HTML.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
	"github.com/gokatarajesh/agentic-quiz/internal/dashboard"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
	"github.com/gokatarajesh/agentic-quiz/internal/question"
	"github.com/gokatarajesh/agentic-quiz/internal/quiz"
	"github.com/gokatarajesh/agentic-quiz/internal/sheets"
	httperrors "github.com/gokatarajesh/agentic-quiz/pkg/http/errors"
)

// CookieName holds the signed browser key.
const CookieName = "quiz_session"

const saveFailedWarning = "Your progress could not be saved. Reloading may repeat this step."

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"score": leaderboard.FormatScore,
	"stamp": sheets.FormatTime,
}).ParseFS(templateFS, "templates/*.html"))

// Deps are the services the UI renders.
type Deps struct {
	Quiz         *quiz.Service
	Store        quiz.Store
	Tokens       *quiz.TokenManager
	Leaderboard  *leaderboard.Service
	Dashboard    *dashboard.Service
	SecureCookie bool
}

// Handler renders both tabs and applies form posts to the player's session.
type Handler struct {
	deps   Deps
	logger zerolog.Logger
}

func NewHandler(deps Deps, logger zerolog.Logger) *Handler {
	return &Handler{deps: deps, logger: logger.With().Str("component", "web").Logger()}
}

// Register mounts the HTML routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.HandleQuiz)
	mux.HandleFunc("/start", h.HandleStart)
	mux.HandleFunc("/answer", h.HandleAnswer)
	mux.HandleFunc("/restart", h.HandleRestart)
	mux.HandleFunc("/dashboard", h.HandleDashboard)
}

type quizPage struct {
	Tab                string
	Session            *quiz.Session
	Question           question.Question
	Number             int
	Error              string
	Leaderboard        []leaderboard.Entry
	LeaderboardWarning string
}

type barView struct {
	dashboard.Bar
	Width int
	Class string
}

type summaryView struct {
	Question string
	Total    int
	Bars     []barView
}

type dashboardPage struct {
	Tab       string
	Questions []summaryView
	Error     string
}

// HandleQuiz serves GET /.
func (h *Handler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "page not found")
		return
	}
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	_, sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.renderQuiz(r.Context(), w, http.StatusOK, sess, "")
}

// HandleStart serves POST /start.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *quiz.Session) error {
		return h.deps.Quiz.Start(ctx, sess, r.PostFormValue("name"))
	})
}

// HandleAnswer serves POST /answer.
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *quiz.Session) error {
		return h.deps.Quiz.Answer(ctx, sess, r.PostFormValue("choice"))
	})
}

// HandleRestart serves POST /restart.
func (h *Handler) HandleRestart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *quiz.Session) error {
		return h.deps.Quiz.Restart(ctx, sess)
	})
}

// mutate loads the session, applies fn, saves and redirects back to the quiz
// tab. Input errors re-render the page with a warning instead.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(context.Context, *quiz.Session) error) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid form body")
		return
	}
	key, sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	ctx := r.Context()
	switch err := fn(ctx, sess); {
	case errors.Is(err, quiz.ErrEmptyName), errors.Is(err, quiz.ErrNoChoice):
		h.renderQuiz(ctx, w, http.StatusBadRequest, sess, capitalize(err.Error()))
		return
	case err != nil:
		// Stale or repeated posts leave the session untouched.
		h.logger.Debug().Err(err).Str("session_id", sess.ID).Str("path", r.URL.Path).Msg("ignored out-of-order action")
	default:
		if err := h.deps.Store.Save(ctx, key, sess); err != nil {
			// The action already ran (a final answer has been submitted), so
			// show its result instead of an error page.
			h.logger.Error().Err(err).Str("session_id", sess.ID).Str("path", r.URL.Path).Msg("session save failed")
			h.renderQuiz(ctx, w, http.StatusOK, sess, saveFailedWarning)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDashboard serves GET /dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	page := dashboardPage{Tab: "dashboard"}
	summaries, err := h.deps.Dashboard.Summaries(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("dashboard unavailable")
		page.Error = fmt.Sprintf("Could not load dashboard data: %v", err)
	}
	for _, s := range summaries {
		page.Questions = append(page.Questions, summarize(s))
	}
	h.render(w, http.StatusOK, "dashboard", page)
}

func summarize(s dashboard.Summary) summaryView {
	peak := 0
	for _, b := range s.Bars {
		if b.Count > peak {
			peak = b.Count
		}
	}
	view := summaryView{Question: s.Question, Total: s.Total}
	for _, b := range s.Bars {
		width := 0
		if peak > 0 {
			width = b.Count * 100 / peak
		}
		view.Bars = append(view.Bars, barView{Bar: b, Width: width, Class: barClass(b.Flag)})
	}
	return view
}

func barClass(flag string) string {
	switch flag {
	case audit.FlagCorrect:
		return "correct"
	case audit.FlagIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

func (h *Handler) renderQuiz(ctx context.Context, w http.ResponseWriter, status int, sess *quiz.Session, msg string) {
	page := quizPage{Tab: "quiz", Session: sess, Error: msg}
	if q, ok := sess.Current(); ok {
		page.Question = q
		page.Number = sess.Index + 1
	}
	if sess.State == quiz.StateFinished {
		entries, err := h.deps.Leaderboard.Ranking(ctx, 0)
		switch {
		case errors.Is(err, leaderboard.ErrEmpty):
		case err != nil:
			h.logger.Warn().Err(err).Msg("leaderboard unavailable")
			page.LeaderboardWarning = fmt.Sprintf("Could not load leaderboard: %v", err)
		default:
			page.Leaderboard = entries
		}
	}
	h.render(w, status, "quiz", page)
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("session unavailable")
	httperrors.RespondInternalError(w, "session unavailable")
}

// session resolves the browser key from the cookie, issuing a new one when
// missing or invalid, and loads or creates the session stored under it.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, *quiz.Session, error) {
	ctx := r.Context()
	key := ""
	if c, err := r.Cookie(CookieName); err == nil {
		if parsed, err := h.deps.Tokens.Parse(c.Value); err == nil {
			key = parsed
		}
	}
	if key == "" {
		key = quiz.NewBrowserKey()
		token, err := h.deps.Tokens.Issue(key)
		if err != nil {
			return "", nil, fmt.Errorf("issue session token: %w", err)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(h.deps.Tokens.TTL()),
			HttpOnly: true,
			Secure:   h.deps.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	sess, err := h.deps.Store.Get(ctx, key)
	if errors.Is(err, quiz.ErrSessionNotFound) {
		sess = h.deps.Quiz.NewSession(ctx)
		if err := h.deps.Store.Save(ctx, key, sess); err != nil {
			return "", nil, fmt.Errorf("save new session: %w", err)
		}
		return key, sess, nil
	}
	if err != nil {
		return "", nil, err
	}
	return key, sess, nil
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
