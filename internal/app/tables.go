package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
	"github.com/gokatarajesh/agentic-quiz/internal/config"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
	"github.com/gokatarajesh/agentic-quiz/internal/sheets"
)

// Tables are the three worksheets the quiz writes to.
type Tables struct {
	Leaderboard sheets.Table
	Responses   sheets.Table
	Questions   sheets.Table
	// Remote is false when the tables live in process memory.
	Remote bool
}

// OpenTables connects to the configured spreadsheet, or falls back to
// in-memory tables when no service account is configured.
func OpenTables(ctx context.Context, cfg config.Sheets, logger zerolog.Logger) (*Tables, error) {
	if cfg.CredentialsJSON == "" {
		logger.Warn().Msg("GOOGLE_CREDENTIALS not set; leaderboard and logs are kept in memory")
		return &Tables{
			Leaderboard: sheets.NewMemoryTable(leaderboard.Header...),
			Responses:   sheets.NewMemoryTable(audit.ResponseHeader...),
			Questions:   sheets.NewMemoryTable(audit.QuestionHeader...),
		}, nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{
		CredentialsJSON: cfg.CredentialsJSON,
		SpreadsheetID:   cfg.SpreadsheetID,
		SpreadsheetName: cfg.SpreadsheetName,
		SheetsBaseURL:   cfg.SheetsBaseURL,
		DriveBaseURL:    cfg.DriveBaseURL,
		Timeout:         cfg.HTTPTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := client.Resolve(ctx); err != nil {
		return nil, fmt.Errorf("resolve spreadsheet: %w", err)
	}

	tables := &Tables{
		Leaderboard: client.Table(cfg.LeaderboardSheet),
		Responses:   client.Table(cfg.ResponsesSheet),
		Questions:   client.Table(cfg.QuestionsSheet),
		Remote:      true,
	}
	headers := []struct {
		table  sheets.Table
		header []string
		name   string
	}{
		{tables.Leaderboard, leaderboard.Header, cfg.LeaderboardSheet},
		{tables.Responses, audit.ResponseHeader, cfg.ResponsesSheet},
		{tables.Questions, audit.QuestionHeader, cfg.QuestionsSheet},
	}
	for _, h := range headers {
		if err := sheets.EnsureHeader(ctx, h.table, h.header); err != nil {
			logger.Warn().Err(err).Str("sheet", h.name).Msg("could not verify sheet header")
		}
	}
	return tables, nil
}
