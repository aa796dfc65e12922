package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnswersTotal counts evaluated answers by outcome ("correct" / "incorrect").
	AnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "answers_total",
		Help:      "Answers evaluated, partitioned by outcome.",
	}, []string{"outcome"})

	// QuestionFetchTotal counts question source results ("generated" / "fallback").
	QuestionFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "question_fetch_total",
		Help:      "Question source fetches, partitioned by origin of the returned set.",
	}, []string{"origin"})

	// StoreWritesTotal counts appends to the spreadsheet tables.
	StoreWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "store_writes_total",
		Help:      "Row appends per table and result.",
	}, []string{"table", "result"})

	// SessionsFinishedTotal counts sessions that reached the finished state.
	SessionsFinishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "sessions_finished_total",
		Help:      "Quiz sessions that answered every question.",
	})
)

// Outcome maps a correctness flag onto the answers_total label.
func Outcome(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}

// Result maps an error onto the store_writes_total label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
