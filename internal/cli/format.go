// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMinutes formats a minute count as a human-readable duration.
// e.g., 95 -> "1h 35m", 45 -> "45m"
func FormatMinutes(mins int) string {
	if mins <= 0 {
		return "0m"
	}
	hours := mins / 60
	rem := mins % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
	return fmt.Sprintf("%dm", rem)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDateTime formats a session timestamp for listings.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("Jan 02 15:04")
}

// FormatDate formats a calendar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "not set"
	}
	return t.Format("Mon Jan 02 2006")
}

// FormatDaysLeft describes the distance to an exam date in days.
func FormatDaysLeft(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// FormatConfidence renders a confidence rating, or a placeholder when unset.
func FormatConfidence(conf int) string {
	if conf == 0 {
		return "not set"
	}
	return fmt.Sprintf("%d/10", conf)
}

// FormatScore formats a priority score.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// FormatStreak renders a streak count with its unit.
func FormatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Truncate shortens a string to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
