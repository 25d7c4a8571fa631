package components

import (
	"strings"
	"testing"

	"nextstep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct{ total, n int }{
		{100, 3},
		{97, 4},
		{10, 1},
		{7, 7},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) len = %d", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Fatalf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
}

func TestMetricCardRowHeightsMatch(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]struct{ Label, Value, Detail string }{
		{"Sessions", "12", "avg 30 mins"},
		{"Streak", "4 days", ""},
	}, 60)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Fatalf("row line %d width = %d, want 60", i, w)
		}
	}
}

func TestSparklinePeaks(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := Sparkline([]float64{0, 5, 10}, theme.Active.Blue)
	if !strings.Contains(out, "█") {
		t.Fatalf("sparkline missing full block for peak value: %q", out)
	}
	if !strings.Contains(out, "▁") {
		t.Fatalf("sparkline missing bottom block for zero value: %q", out)
	}
}
