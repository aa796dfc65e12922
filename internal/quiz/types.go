// Package quiz runs a player's session from name entry to the final score.
package quiz

import (
	"errors"
	"time"

	"github.com/gokatarajesh/agentic-quiz/internal/question"
)

// State is the lifecycle position of a session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

var (
	ErrEmptyName       = errors.New("please enter your name to begin")
	ErrAlreadyStarted  = errors.New("quiz already started")
	ErrNotInProgress   = errors.New("quiz is not in progress")
	ErrNoChoice        = errors.New("please select an answer")
	ErrNotFinished     = errors.New("quiz is not finished")
	ErrSessionNotFound = errors.New("session not found")
)

// Session is one player's run through a question sequence.
// Invariant: 0 <= Score <= Index <= len(Questions).
type Session struct {
	ID             string              `json:"id"`
	PlayerName     string              `json:"player_name"`
	Questions      []question.Question `json:"questions"`
	Index          int                 `json:"index"`
	Score          int                 `json:"score"`
	Feedback       string              `json:"feedback,omitempty"`
	State          State               `json:"state"`
	Fallback       bool                `json:"fallback"`
	ScoreSubmitted bool                `json:"score_submitted"`
	SubmitError    string              `json:"submit_error,omitempty"`
	LogWarning     string              `json:"log_warning,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Total is the number of questions in the sequence.
func (s *Session) Total() int {
	return len(s.Questions)
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (question.Question, bool) {
	if s.State != StateInProgress || s.Index >= len(s.Questions) {
		return question.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Clone returns a copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	out := *s
	out.Questions = make([]question.Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	return &out
}
