package tui

import (
	"fmt"
	"strings"

	"nextstep/internal/cli"
	"nextstep/internal/pipeline"
	"nextstep/internal/tui/components"
	"nextstep/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateSuggestKey handles keys specific to the Suggest tab. The bool result
// reports whether the key was consumed.
func (a App) updateSuggestKey(key string) (tea.Model, tea.Cmd, bool) {
	if len(a.ranked) == 0 {
		return a, nil, false
	}

	switch key {
	case "y":
		if a.suggestPick == "" {
			a.suggestPick = a.ranked[a.suggestIdx].Subject
		}
		return a, nil, true
	case "n":
		if a.suggestPick != "" {
			return a, nil, true
		}
		a.suggestIdx++
		if a.suggestIdx >= len(a.ranked) {
			// Rejected everything; fall back to the top priority.
			a.suggestIdx = 0
			a.suggestPick = a.ranked[0].Subject
			a.suggestFellBack = true
		}
		return a, nil, true
	case "e":
		a.suggestEnergy = (a.suggestEnergy + 1) % len(energyOptions)
		return a, nil, true
	case "r", "enter":
		a.suggestIdx = 0
		a.suggestPick = ""
		a.suggestFellBack = false
		return a, nil, true
	case "l":
		if a.suggestPick != "" {
			m, cmd := a.openLogForm(a.suggestPick)
			return m, cmd, true
		}
	}
	return a, nil, false
}

func (a App) renderSuggestTab(cw int) string {
	t := theme.Active
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if incomplete, ok := a.isIncompleteSetup(); ok {
		return hintStyle.Render(fmt.Sprintf(
			"\n  %v\n\n  Run `nextstep setup` to enter confidence and exam dates.", incomplete))
	}
	if a.rankErr != nil {
		return hintStyle.Render(fmt.Sprintf("\n  %v", a.rankErr))
	}
	if len(a.ranked) == 0 {
		return hintStyle.Render("\n  No subjects yet. Run `nextstep subjects add <name>` first.")
	}

	energy := energyOptions[a.suggestEnergy]
	task := pipeline.TaskForEnergy(energy)

	var b strings.Builder

	// Top card: current candidate or the accepted pick
	subjStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)

	var card strings.Builder
	if a.suggestPick != "" {
		card.WriteString(okStyle.Render("Next up: "))
		card.WriteString(subjStyle.Render(a.suggestPick))
		if a.suggestFellBack {
			card.WriteString(hintStyle.Render("  (you said no to everything, so: top priority)"))
		}
		card.WriteString("\n")
		card.WriteString(hintStyle.Render("Suggested task: "))
		card.WriteString(valueStyle.Render(task))
		card.WriteString(hintStyle.Render(fmt.Sprintf("  (energy: %s, press e to change)", energy)))
		card.WriteString("\n\n")
		card.WriteString(hintStyle.Render("[l] log this session   [r] start over"))
	} else {
		sc := a.ranked[a.suggestIdx]
		card.WriteString(hintStyle.Render(fmt.Sprintf("Suggestion %d of %d: ", a.suggestIdx+1, len(a.ranked))))
		card.WriteString(subjStyle.Render(sc.Subject))
		card.WriteString("\n")
		card.WriteString(hintStyle.Render(fmt.Sprintf("score %s, exam %s, %d recent sessions",
			cli.FormatScore(sc.Score), cli.FormatDaysLeft(sc.DaysLeft), sc.RecentSessions)))
		card.WriteString("\n\n")
		card.WriteString(hintStyle.Render("[y] revise this   [n] show next   [e] energy: "))
		card.WriteString(valueStyle.Render(string(energy)))
	}
	b.WriteString(components.ContentCard("Instant Mode", card.String(), cw))
	b.WriteString("\n")

	// Ranking table
	headStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	markStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var table strings.Builder
	table.WriteString(headStyle.Render(fmt.Sprintf("  %-3s %-16s %8s %12s %8s", "#", "Subject", "Score", "Exam", "Recent")))
	for i, sc := range a.ranked {
		table.WriteString("\n")
		marker := "  "
		if a.suggestPick == sc.Subject || (a.suggestPick == "" && i == a.suggestIdx) {
			marker = markStyle.Render("▸ ")
		}
		table.WriteString(marker)
		table.WriteString(rowStyle.Render(fmt.Sprintf("%-3d %-16s", i+1, truncStr(sc.Subject, 16))))
		table.WriteString(dimStyle.Render(fmt.Sprintf(" %8s %12s %8d",
			cli.FormatScore(sc.Score), cli.FormatDaysLeft(sc.DaysLeft), sc.RecentSessions)))
	}
	b.WriteString(components.ContentCard("Priority Ranking", table.String(), cw))

	return b.String()
}
