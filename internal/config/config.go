package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"agentic-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Quiz     Quiz
	Gemini   Gemini
	Sheets   Sheets
	Redis    Redis
	Security Security
}

// Quiz groups gameplay defaults.
type Quiz struct {
	Topic         string `env:"QUIZ_TOPIC" envDefault:"Agentic AI"`
	QuestionCount int    `env:"QUIZ_QUESTION_COUNT" envDefault:"3"`
	// TimeZone controls the location used for sheet timestamps.
	TimeZone string `env:"QUIZ_TIMEZONE" envDefault:"UTC"`
}

// Gemini configures the question generation service.
type Gemini struct {
	APIKey      string        `env:"GEMINI_API_KEY" envDefault:""`
	Model       string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	BaseURL     string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Temperature float64       `env:"GEMINI_TEMPERATURE" envDefault:"0.4"`
	HTTPTimeout time.Duration `env:"GEMINI_HTTP_TIMEOUT" envDefault:"12s"`
}

// Sheets holds the spreadsheet store settings. An empty CredentialsJSON
// switches the service to in-memory tables.
type Sheets struct {
	CredentialsJSON  string        `env:"GOOGLE_CREDENTIALS" envDefault:""`
	SpreadsheetID    string        `env:"SHEETS_SPREADSHEET_ID" envDefault:""`
	SpreadsheetName  string        `env:"SHEETS_SPREADSHEET_NAME" envDefault:"AgenticAI_Quiz_Leaderboard"`
	LeaderboardSheet string        `env:"SHEETS_LEADERBOARD_TAB" envDefault:"Responses"`
	ResponsesSheet   string        `env:"SHEETS_RESPONSES_TAB" envDefault:"ResponsesLog"`
	QuestionsSheet   string        `env:"SHEETS_QUESTIONS_TAB" envDefault:"QuestionsLog"`
	SheetsBaseURL    string        `env:"SHEETS_BASE_URL" envDefault:"https://sheets.googleapis.com"`
	DriveBaseURL     string        `env:"DRIVE_BASE_URL" envDefault:"https://www.googleapis.com"`
	HTTPTimeout      time.Duration `env:"SHEETS_HTTP_TIMEOUT" envDefault:"10s"`
}

// Redis holds session store configuration. An empty Addr keeps sessions in memory.
type Redis struct {
	Addr       string        `env:"REDIS_ADDR" envDefault:""`
	DB         int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize   int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// Security stores secrets for signing session cookies.
type Security struct {
	SessionSecret string `env:"SESSION_SECRET,notEmpty"`
	CookieSecure  bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Quiz.QuestionCount <= 0 {
		return nil, fmt.Errorf("QUIZ_QUESTION_COUNT must be positive, got %d", cfg.Quiz.QuestionCount)
	}
	if _, err := time.LoadLocation(cfg.Quiz.TimeZone); err != nil {
		return nil, fmt.Errorf("QUIZ_TIMEZONE: %w", err)
	}
	return cfg, nil
}

// LoadSheets parses only the spreadsheet settings, for tools that never serve
// sessions.
func LoadSheets(ctx context.Context) (*Sheets, error) {
	cfg := &Sheets{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse sheets config: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timestamp location.
func (q Quiz) Location() *time.Location {
	loc, err := time.LoadLocation(q.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
