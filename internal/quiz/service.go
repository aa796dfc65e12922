package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
	"github.com/gokatarajesh/agentic-quiz/internal/metrics"
	"github.com/gokatarajesh/agentic-quiz/internal/question"
)

// QuestionSource supplies a question sequence; it always returns a usable set.
type QuestionSource interface {
	Fetch(ctx context.Context, topic string, count int) question.Result
}

// ResponseRecorder appends one row per answered question.
type ResponseRecorder interface {
	Record(ctx context.Context, r audit.Response) error
}

// ScoreSubmitter appends a final score to the leaderboard.
type ScoreSubmitter interface {
	Submit(ctx context.Context, name string, score int) error
}

// Options configures gameplay.
type Options struct {
	Topic         string
	QuestionCount int
	Now           func() time.Time
	Location      *time.Location
}

// Service drives sessions through not_started -> in_progress -> finished.
type Service struct {
	source    QuestionSource
	responses ResponseRecorder
	scores    ScoreSubmitter
	logger    zerolog.Logger
	topic     string
	count     int
	now       func() time.Time
	loc       *time.Location
}

func NewService(source QuestionSource, responses ResponseRecorder, scores ScoreSubmitter, logger zerolog.Logger, opts Options) *Service {
	if opts.Topic == "" {
		opts.Topic = "Agentic AI"
	}
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = 3
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		source:    source,
		responses: responses,
		scores:    scores,
		logger:    logger.With().Str("component", "quiz").Logger(),
		topic:     opts.Topic,
		count:     opts.QuestionCount,
		now:       opts.Now,
		loc:       opts.Location,
	}
}

// NewSession fetches a question sequence and returns a not_started session.
func (s *Service) NewSession(ctx context.Context) *Session {
	now := s.now()
	sess := &Session{CreatedAt: now}
	s.assignQuestions(ctx, sess)
	return sess
}

// Start records the player's name and moves the session to in_progress.
func (s *Service) Start(ctx context.Context, sess *Session, name string) error {
	if sess.State != StateNotStarted {
		return ErrAlreadyStarted
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	sess.PlayerName = leaderboard.NormalizeName(name)
	sess.State = StateInProgress
	sess.UpdatedAt = s.now()
	s.logger.Info().Str("session_id", sess.ID).Str("player", sess.PlayerName).Bool("fallback", sess.Fallback).Msg("quiz started")
	return nil
}

// Answer scores the current question and advances. The last answer finishes
// the session and submits the score once.
func (s *Service) Answer(ctx context.Context, sess *Session, chosen string) error {
	q, ok := sess.Current()
	if !ok {
		return ErrNotInProgress
	}
	if chosen == "" {
		return ErrNoChoice
	}

	correct, feedback := Evaluate(q, chosen)
	if correct {
		sess.Score++
	}
	sess.Feedback = feedback
	sess.Index++
	sess.UpdatedAt = s.now()
	metrics.AnswersTotal.WithLabelValues(metrics.Outcome(correct)).Inc()

	sess.LogWarning = ""
	if s.responses != nil {
		err := s.responses.Record(ctx, audit.Response{
			Name:      sess.PlayerName,
			SessionID: sess.ID,
			Question:  q.Prompt,
			Chosen:    chosen,
			Correct:   q.Answer,
			IsCorrect: correct,
			At:        sess.UpdatedAt.In(s.loc),
		})
		if err != nil {
			sess.LogWarning = fmt.Sprintf("Your answer was scored but could not be logged: %v", err)
		}
	}

	if sess.Index == sess.Total() {
		s.finish(ctx, sess)
	}
	return nil
}

func (s *Service) finish(ctx context.Context, sess *Session) {
	sess.State = StateFinished
	metrics.SessionsFinishedTotal.Inc()
	if sess.ScoreSubmitted {
		return
	}
	sess.ScoreSubmitted = true
	if s.scores == nil {
		return
	}
	if err := s.scores.Submit(ctx, sess.PlayerName, sess.Score); err != nil {
		s.logger.Error().Err(err).Str("session_id", sess.ID).Msg("leaderboard append failed")
		sess.SubmitError = fmt.Sprintf("Could not save your score to the leaderboard: %v", err)
		return
	}
	s.logger.Info().Str("session_id", sess.ID).Str("player", sess.PlayerName).Int("score", sess.Score).Int("total", sess.Total()).Msg("quiz finished")
}

// Restart loads a fresh question sequence under a new session ID. The player
// name is kept so the name form can be prefilled.
func (s *Service) Restart(ctx context.Context, sess *Session) error {
	if sess.State != StateFinished {
		return ErrNotFinished
	}
	s.assignQuestions(ctx, sess)
	return nil
}

// assignQuestions replaces the sequence and resets every field tied to it.
func (s *Service) assignQuestions(ctx context.Context, sess *Session) {
	res := s.source.Fetch(ctx, s.topic, s.count)
	id := res.QuizID
	if id == "" {
		id = question.NewQuizID()
	}
	sess.ID = id
	sess.Questions = res.Questions
	sess.Fallback = res.Fallback
	sess.Index = 0
	sess.Score = 0
	sess.Feedback = ""
	sess.ScoreSubmitted = false
	sess.SubmitError = ""
	sess.LogWarning = ""
	sess.State = StateNotStarted
	sess.UpdatedAt = s.now()
}
