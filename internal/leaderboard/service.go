package leaderboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/metrics"
	"github.com/gokatarajesh/agentic-quiz/internal/sheets"
)

// ServiceOptions configures leaderboard service behavior.
type ServiceOptions struct {
	Now      func() time.Time
	Location *time.Location
}

// Service appends final scores and reads back the ranked leaderboard.
type Service struct {
	table  sheets.Table
	logger zerolog.Logger
	now    func() time.Time
	loc    *time.Location
}

// NewService constructs a leaderboard service over table.
func NewService(table sheets.Table, logger zerolog.Logger, opts ServiceOptions) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		table:  table,
		logger: logger.With().Str("component", "leaderboard").Logger(),
		now:    now,
		loc:    loc,
	}
}

// Submit appends one (name, score, timestamp) row.
func (s *Service) Submit(ctx context.Context, name string, score int) error {
	row := []string{name, strconv.Itoa(score), sheets.FormatTime(s.now().In(s.loc))}
	err := s.table.Append(ctx, row)
	metrics.StoreWritesTotal.WithLabelValues("leaderboard", metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	s.logger.Info().Str("name", name).Int("score", score).Msg("score submitted")
	return nil
}

// Ranking reads the whole table and reconciles it. A non-positive limit returns every entry.
func (s *Service) Ranking(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	entries, err := Reconcile(rows)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
