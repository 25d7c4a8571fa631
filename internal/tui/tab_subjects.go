package tui

import (
	"fmt"
	"strings"
	"time"

	"nextstep/internal/cli"
	"nextstep/internal/tui/components"
	"nextstep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSubjectsTab(cw int) string {
	t := theme.Active

	if len(a.st.Subjects) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted)
		return hint.Render("\n  No subjects yet. Run `nextstep subjects add <name>` first.")
	}

	names := a.st.SubjectNames()
	now := time.Now()

	labelW := 0
	for _, name := range names {
		if w := len([]rune(name)); w > labelW {
			labelW = w
		}
	}
	if labelW > 18 {
		labelW = 18
	}

	barW := cw/3 - 8
	if barW < 10 {
		barW = 10
	}

	selectedStyle := lipgloss.NewStyle().Background(t.SurfaceHover)
	examStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	urgentStyle := lipgloss.NewStyle().Foreground(t.Red)

	var body strings.Builder
	for i, name := range names {
		sub := a.st.Subjects[name]
		if i > 0 {
			body.WriteString("\n")
		}

		line := components.ConfidenceMeter(truncStr(name, labelW), sub.Confidence, labelW, barW)

		exam := "  exam not set"
		if !sub.ExamDate.IsZero() {
			daysLeft := sub.DaysUntilExam(now)
			exam = fmt.Sprintf("  %s, %s", cli.FormatDate(sub.ExamDate), cli.FormatDaysLeft(daysLeft))
			if daysLeft <= 7 {
				exam = urgentStyle.Render(exam)
			} else {
				exam = examStyle.Render(exam)
			}
		} else {
			exam = examStyle.Render(exam)
		}
		line += exam

		if i == a.subjCursor {
			line = selectedStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		body.WriteString(line)
	}

	return components.ContentCard("Subjects", body.String(), cw)
}
