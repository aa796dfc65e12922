package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/agentic-quiz/internal/metrics"
)

// Generator sends a prompt to a text-generation model and returns its reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuestionLog records generated questions (the QuestionsLog table).
type QuestionLog interface {
	LogQuestions(ctx context.Context, quizID string, questions []Question) error
}

// Service fetches generated questions and falls back to the built-in set.
type Service struct {
	gen    Generator
	log    QuestionLog
	logger zerolog.Logger
}

// NewService wires the generator and question log; both may be nil.
func NewService(gen Generator, questionLog QuestionLog, logger zerolog.Logger) *Service {
	return &Service{
		gen:    gen,
		log:    questionLog,
		logger: logger.With().Str("component", "question_source").Logger(),
	}
}

// Fetch returns count generated questions about topic, or the fallback set.
// It never fails: the cause of a fallback is reported in Result.Err.
func (s *Service) Fetch(ctx context.Context, topic string, count int) Result {
	questions, err := s.generate(ctx, topic, count)
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Int("count", count).Msg("question generation failed; using fallback set")
		metrics.QuestionFetchTotal.WithLabelValues("fallback").Inc()
		return Result{Questions: Fallback(), Fallback: true, Err: err}
	}

	quizID := NewQuizID()
	metrics.QuestionFetchTotal.WithLabelValues("generated").Inc()
	if s.log != nil {
		if err := s.log.LogQuestions(ctx, quizID, questions); err != nil {
			s.logger.Warn().Err(err).Str("quiz_id", quizID).Msg("failed to log generated questions")
		}
	}
	return Result{Questions: questions, QuizID: quizID}
}

func (s *Service) generate(ctx context.Context, topic string, count int) ([]Question, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if s.gen == nil {
		return nil, ErrGeneratorUnavailable
	}
	reply, err := s.gen.Generate(ctx, BuildPrompt(topic, count))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return ParseQuestions(reply, count)
}

// NewQuizID returns a short random identifier.
func NewQuizID() string {
	return uuid.NewString()[:8]
}
