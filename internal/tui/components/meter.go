package components

import (
	"fmt"
	"strings"

	"nextstep/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForConfidence returns red/orange/yellow/green for a 1-10 rating.
func ColorForConfidence(conf int) string {
	t := theme.Active
	switch {
	case conf <= 3:
		return string(t.Red)
	case conf <= 5:
		return string(t.Orange)
	case conf <= 7:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// ConfidenceMeter renders a labeled bar for a 1-10 confidence rating.
func ConfidenceMeter(label string, conf int, labelW, barWidth int) string {
	t := theme.Active

	pct := float64(conf) / 10
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForConfidence(conf)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForConfidence(conf))).Bold(true)

	value := fmt.Sprintf("%2d/10", conf)
	if conf == 0 {
		value = "  -  "
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(pct) + " " +
		valueStyle.Render(value)
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}
