// Package dashboard summarizes how players answered each question.
package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
)

var ErrMissingColumn = errors.New("response log format invalid: missing column")

// Columns read from the response log.
const (
	ColQuestion = "Question"
	ColChosen   = "Chosen Answer"
	ColFlag     = "Is Correct?"
)

// Bar counts one (option, correctness flag) pair.
type Bar struct {
	Option  string `json:"option"`
	Flag    string `json:"flag"`
	Correct bool   `json:"correct"`
	Count   int    `json:"count"`
}

// Summary is the answer histogram of a single question.
type Summary struct {
	Question string `json:"question"`
	Total    int    `json:"total"`
	Bars     []Bar  `json:"bars"`
}

type barKey struct {
	option string
	flag   string
}

// Aggregate groups response rows (header first) by exact question text, in
// order of first appearance, and counts each chosen option per flag.
func Aggregate(rows [][]string) ([]Summary, error) {
	if len(rows) < 2 {
		return []Summary{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range []string{ColQuestion, ColChosen, ColFlag} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var order []string
	counts := make(map[string]map[barKey]int)
	for _, row := range rows[1:] {
		q := cell(row, cols[ColQuestion])
		if q == "" {
			continue
		}
		bucket, ok := counts[q]
		if !ok {
			bucket = make(map[barKey]int)
			counts[q] = bucket
			order = append(order, q)
		}
		bucket[barKey{option: cell(row, cols[ColChosen]), flag: strings.TrimSpace(cell(row, cols[ColFlag]))}]++
	}

	out := make([]Summary, 0, len(order))
	for _, q := range order {
		s := Summary{Question: q, Bars: make([]Bar, 0, len(counts[q]))}
		for key, n := range counts[q] {
			s.Bars = append(s.Bars, Bar{
				Option:  key.option,
				Flag:    key.flag,
				Correct: key.flag == audit.FlagCorrect,
				Count:   n,
			})
			s.Total += n
		}
		sort.Slice(s.Bars, func(i, j int) bool {
			a, b := s.Bars[i], s.Bars[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			if a.Option != b.Option {
				return a.Option < b.Option
			}
			return a.Flag < b.Flag
		})
		out = append(out, s)
	}
	return out, nil
}

// cell keeps question text exact; only missing cells collapse to "".
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
