package leaderboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// TopHighlight is the number of leading ranks flagged as top performers.
const TopHighlight = 10

var (
	ErrEmpty         = errors.New("leaderboard is empty")
	ErrMissingColumn = errors.New("leaderboard format invalid: missing column")
)

// Header is the column layout of the leaderboard table.
var Header = []string{"Name", "Score", "Timestamp"}

// Sheets re-renders USER_ENTERED dates in the spreadsheet locale, so several
// layouts can come back for the same cell.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"1/2/2006",
}

// Entry is one ranked player.
type Entry struct {
	Rank      int       `json:"rank"`
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
	Top       bool      `json:"top"`
}

// Reconcile turns raw table rows (header first) into a ranked view: rows with
// an unparseable score or timestamp are dropped, only the most recent row per
// name is kept, and the rest are ranked by score. Equal scores rank the more
// recent row first, then by name.
func Reconcile(rows [][]string) ([]Entry, error) {
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	parsed := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		score, ok := parseScore(cell(row, cols["Score"]))
		if !ok {
			continue
		}
		ts, ok := parseTimestamp(cell(row, cols["Timestamp"]))
		if !ok {
			continue
		}
		parsed = append(parsed, Entry{
			Name:      NormalizeName(cell(row, cols["Name"])),
			Score:     score,
			Timestamp: ts,
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Timestamp.After(parsed[j].Timestamp)
	})

	seen := make(map[string]struct{}, len(parsed))
	latest := parsed[:0]
	for _, e := range parsed {
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		latest = append(latest, e)
	}

	sort.SliceStable(latest, func(i, j int) bool {
		a, b := latest[i], latest[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.Name < b.Name
	})

	for i := range latest {
		latest[i].Rank = i + 1
		latest[i].Top = latest[i].Rank <= TopHighlight
	}
	return latest, nil
}

// Rows renders entries back into table rows, header first.
func Rows(entries []Entry) [][]string {
	out := make([][]string, 0, len(entries)+1)
	out = append(out, append([]string(nil), Header...))
	for _, e := range entries {
		out = append(out, []string{e.Name, FormatScore(e.Score), e.Timestamp.Format(timestampLayouts[0])})
	}
	return out
}

// FormatScore prints whole scores without a fractional part.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseScore(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// NormalizeName trims a player name and title-cases each word: the first
// letter of every run of letters is upper-cased and the rest lower-cased.
func NormalizeName(name string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}
