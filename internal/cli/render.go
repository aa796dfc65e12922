package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
	"github.com/gokatarajesh/agentic-quiz/internal/dashboard"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
	"github.com/gokatarajesh/agentic-quiz/internal/sheets"
)

const (
	maxBarWidth   = 30
	maxLabelWidth = 40
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	topStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	rowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	questionStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2F9E44"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E03131"))
)

// RenderLeaderboard lays entries out as a fixed-width table; the top ten are bold.
func RenderLeaderboard(entries []leaderboard.Entry) string {
	nameWidth := len("Name")
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	line := func(rank, name, score, stamp string) string {
		return fmt.Sprintf("%-5s %s %6s  %s", rank, runewidth.FillRight(name, nameWidth), score, stamp)
	}
	b.WriteString(headerStyle.Render(line("Rank", "Name", "Score", "Timestamp")))
	b.WriteString("\n")
	for _, e := range entries {
		style := rowStyle
		if e.Top {
			style = topStyle
		}
		b.WriteString(style.Render(line(fmt.Sprint(e.Rank), e.Name, leaderboard.FormatScore(e.Score), sheets.FormatTime(e.Timestamp))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDashboard draws one horizontal bar chart per question.
func RenderDashboard(summaries []dashboard.Summary) string {
	if len(summaries) == 0 {
		return mutedStyle.Render("No quiz responses recorded yet.") + "\n"
	}

	var b strings.Builder
	for i, s := range summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(questionStyle.Render(s.Question))
		b.WriteString("\n")

		peak, labelWidth := 0, 0
		for _, bar := range s.Bars {
			if bar.Count > peak {
				peak = bar.Count
			}
			if w := runewidth.StringWidth(bar.Option); w > labelWidth {
				labelWidth = w
			}
		}
		if labelWidth > maxLabelWidth {
			labelWidth = maxLabelWidth
		}
		for _, bar := range s.Bars {
			width := 0
			if peak > 0 {
				width = bar.Count * maxBarWidth / peak
			}
			if width == 0 && bar.Count > 0 {
				width = 1
			}
			label := runewidth.FillRight(runewidth.Truncate(bar.Option, labelWidth, "…"), labelWidth)
			fmt.Fprintf(&b, "%s %s %s %d\n", label, bar.Flag, barStyle(bar.Flag).Render(strings.Repeat("█", width)), bar.Count)
		}
	}
	return b.String()
}

func barStyle(flag string) lipgloss.Style {
	switch flag {
	case audit.FlagCorrect:
		return correctStyle
	case audit.FlagIncorrect:
		return incorrectStyle
	default:
		return mutedStyle
	}
}
