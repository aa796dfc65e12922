// Package audit appends per-answer and per-question records to their tables.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/metrics"
	"github.com/gokatarajesh/agentic-quiz/internal/question"
	"github.com/gokatarajesh/agentic-quiz/internal/sheets"
)

// Correctness flags as stored in the "Is Correct?" column.
const (
	FlagCorrect   = "✅"
	FlagIncorrect = "❌"
)

// Column headers of the ResponsesLog and QuestionsLog tables.
var (
	ResponseHeader = []string{"Name", "Quiz ID", "Question", "Chosen Answer", "Correct Answer", "Is Correct?", "Timestamp"}
	QuestionHeader = []string{"Quiz ID", "Timestamp", "Question", "Options", "Answer"}
)

// Flag renders a correctness flag.
func Flag(correct bool) string {
	if correct {
		return FlagCorrect
	}
	return FlagIncorrect
}

// Response is one answered question.
type Response struct {
	Name      string
	SessionID string
	Question  string
	Chosen    string
	Correct   string
	IsCorrect bool
	At        time.Time
}

// Row lays the response out in ResponseHeader order.
func (r Response) Row() []string {
	return []string{r.Name, r.SessionID, r.Question, r.Chosen, r.Correct, Flag(r.IsCorrect), sheets.FormatTime(r.At)}
}

// ResponseLog appends Response rows.
type ResponseLog struct {
	table  sheets.Table
	logger zerolog.Logger
}

func NewResponseLog(table sheets.Table, logger zerolog.Logger) *ResponseLog {
	return &ResponseLog{
		table:  table,
		logger: logger.With().Str("component", "response_log").Logger(),
	}
}

// Record appends one response row.
func (l *ResponseLog) Record(ctx context.Context, r Response) error {
	err := l.table.Append(ctx, r.Row())
	metrics.StoreWritesTotal.WithLabelValues("responses", metrics.Result(err)).Inc()
	if err != nil {
		l.logger.Warn().Err(err).Str("session_id", r.SessionID).Msg("response append failed")
		return fmt.Errorf("log response: %w", err)
	}
	return nil
}

// ReadAll returns the raw table, header first.
func (l *ResponseLog) ReadAll(ctx context.Context) ([][]string, error) {
	return l.table.ReadAll(ctx)
}

// QuestionLog appends one row per generated question.
type QuestionLog struct {
	table sheets.Table
	now   func() time.Time
	loc   *time.Location
}

var _ question.QuestionLog = (*QuestionLog)(nil)

// NewQuestionLog stamps rows in loc (UTC when nil).
func NewQuestionLog(table sheets.Table, now func() time.Time, loc *time.Location) *QuestionLog {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &QuestionLog{table: table, now: now, loc: loc}
}

// LogQuestions stops at the first failed append.
func (l *QuestionLog) LogQuestions(ctx context.Context, quizID string, questions []question.Question) error {
	stamp := sheets.FormatTime(l.now().In(l.loc))
	for _, q := range questions {
		row := []string{quizID, stamp, q.Prompt, strings.Join(q.Options, "; "), q.Answer}
		err := l.table.Append(ctx, row)
		metrics.StoreWritesTotal.WithLabelValues("questions", metrics.Result(err)).Inc()
		if err != nil {
			return fmt.Errorf("log question %q: %w", q.Prompt, err)
		}
	}
	return nil
}
