package question

import (
	"errors"
	"fmt"
	"strings"
)

// Option bounds for a multiple-choice question.
const (
	MinOptions = 2
	MaxOptions = 4
)

var (
	ErrGeneratorUnavailable = errors.New("question generator not configured")
	ErrInvalidCount         = errors.New("question count must be positive")
	ErrMalformedResponse    = errors.New("malformed generator response")
)

// Question is one multiple-choice item. Answer is always one of Options.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// HasOption reports whether value is exactly one of the options.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// Validate checks the shape constraints of a question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty question text", ErrMalformedResponse)
	}
	if n := len(q.Options); n < MinOptions || n > MaxOptions {
		return fmt.Errorf("%w: %q has %d options", ErrMalformedResponse, q.Prompt, n)
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: %q has an empty option", ErrMalformedResponse, q.Prompt)
		}
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("%w: answer %q of %q is not an option", ErrMalformedResponse, q.Answer, q.Prompt)
	}
	return nil
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Result is the outcome of a fetch: either a generated set or the fallback
// set. Err explains why the fallback was used and is nil otherwise.
type Result struct {
	Questions []Question
	QuizID    string
	Fallback  bool
	Err       error
}
