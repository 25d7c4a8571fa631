package tui

import (
	"fmt"
	"strings"

	"nextstep/internal/cli"
	"nextstep/internal/tui/components"
	"nextstep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSessionsTab(cw, contentH int) string {
	t := theme.Active

	if len(a.recent) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted)
		return hint.Render("\n  No sessions logged yet. Press l to log one.")
	}

	// Window the list around the cursor so it fits the content area.
	visible := contentH - 4 // card border + title
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if a.sessCursor >= visible {
		offset = a.sessCursor - visible + 1
	}
	end := offset + visible
	if end > len(a.recent) {
		end = len(a.recent)
	}

	timeStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	subjStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	taskStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	ratingStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var body strings.Builder
	for i := offset; i < end; i++ {
		rec := a.recent[i]
		if i > offset {
			body.WriteString("\n")
		}

		marker := "  "
		if i == a.sessCursor {
			marker = cursorStyle.Render("▸ ")
		}

		body.WriteString(marker)
		body.WriteString(timeStyle.Render(cli.FormatDateTime(rec.Timestamp)))
		body.WriteString("  ")
		body.WriteString(subjStyle.Render(fmt.Sprintf("%-14s", truncStr(rec.Subject, 14))))
		body.WriteString(taskStyle.Render(fmt.Sprintf("  %-18s", truncStr(rec.TaskType, 18))))
		body.WriteString(taskStyle.Render(fmt.Sprintf("  %7s", cli.FormatMinutes(rec.DurationMins))))
		body.WriteString(ratingStyle.Render(fmt.Sprintf("  %d/10", rec.Effectiveness)))
	}

	title := fmt.Sprintf("Sessions (%d of %d)", end-offset, len(a.recent))
	return components.ContentCard(title, body.String(), cw)
}
