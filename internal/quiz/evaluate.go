package quiz

import (
	"fmt"
	"strings"

	"github.com/gokatarajesh/agentic-quiz/internal/question"
)

const (
	correctFeedback   = "✅ Nice! That’s exactly what an agentic AI would expect you to know."
	incorrectFeedback = "🤖 Hmm, not quite. Agentic AI means %s—think autonomy and purposeful action."
)

// Evaluate compares chosen against the answer by exact string equality.
func Evaluate(q question.Question, chosen string) (bool, string) {
	if chosen == q.Answer {
		return true, correctFeedback
	}
	return false, fmt.Sprintf(incorrectFeedback, strings.ToLower(q.Answer))
}
