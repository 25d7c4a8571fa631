package tui

import (
	"fmt"
	"sort"
	"strings"

	"nextstep/internal/cli"
	"nextstep/internal/tui/components"
	"nextstep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	stats := a.stats
	var b strings.Builder

	if a.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(t.Green)
		b.WriteString(noticeStyle.Render(" " + a.notice))
		b.WriteString("\n")
	}

	// Row 1: Metric cards
	perDay := ""
	if stats.ActiveDays > 0 {
		perDay = fmt.Sprintf("%s/day over %d days", cli.FormatMinutes(int(stats.MinutesPerDay)), stats.ActiveDays)
	}
	avgSession := ""
	if stats.TotalSessions > 0 {
		avgSession = fmt.Sprintf("avg %s", cli.FormatMinutes(int(stats.AvgSessionMins)))
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Sessions", cli.FormatNumber(int64(stats.TotalSessions)), avgSession},
		{"Study Time", cli.FormatMinutes(stats.TotalMinutes), perDay},
		{"Streak", cli.FormatStreak(stats.StreakDays), ""},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Daily minutes sparkline
	if len(a.daily) > 0 {
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Daily Minutes (%dd)", sparklineDays),
			components.Sparkline(a.daily, t.Blue),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Per-subject breakdown
	if len(stats.PerSubject) > 0 {
		subjects := make([]string, 0, len(stats.PerSubject))
		for name := range stats.PerSubject {
			subjects = append(subjects, name)
		}
		sort.Strings(subjects)

		labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
		detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

		var body strings.Builder
		for i, name := range subjects {
			ss := stats.PerSubject[name]
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", truncStr(name, 16))))
			body.WriteString(detailStyle.Render(fmt.Sprintf("  %3d sessions   %8s   rated %.1f/10",
				ss.Sessions, cli.FormatMinutes(ss.TotalMinutes), ss.AvgEffectiveness)))
		}
		b.WriteString(components.ContentCard("By Subject", body.String(), cw))
	}

	return b.String()
}
