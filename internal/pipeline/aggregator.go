// Package pipeline holds the nextstep core: priority ranking, statistics
// aggregation, and session recording. Everything here is pure computation
// over caller-owned state; persistence and prompting live elsewhere.
package pipeline

import (
	"sort"
	"time"

	"nextstep/internal/model"
)

// streakScanCap bounds the backward scan. Purely a termination guard; an
// unbroken streak this long is not a realistic input.
const streakScanCap = 1000

// Aggregate computes summary statistics from the session log. today anchors
// the streak calculation.
func Aggregate(log []model.SessionRecord, today time.Time) model.SummaryStats {
	stats := model.SummaryStats{
		PerSubject: make(map[string]model.SubjectStats),
	}

	ratings := make(map[string]int)
	for _, rec := range log {
		stats.TotalSessions++
		stats.TotalMinutes += rec.DurationMins

		ss := stats.PerSubject[rec.Subject]
		ss.Sessions++
		ss.TotalMinutes += rec.DurationMins
		stats.PerSubject[rec.Subject] = ss
		ratings[rec.Subject] += rec.Effectiveness
	}

	for subject, ss := range stats.PerSubject {
		if ss.Sessions > 0 {
			ss.AvgEffectiveness = float64(ratings[subject]) / float64(ss.Sessions)
		}
		stats.PerSubject[subject] = ss
	}

	days := studyDays(log)
	stats.ActiveDays = len(days)
	stats.StreakDays = streakFrom(days, today)

	if stats.ActiveDays > 0 {
		stats.MinutesPerDay = float64(stats.TotalMinutes) / float64(stats.ActiveDays)
	}
	if stats.TotalSessions > 0 {
		stats.AvgSessionMins = float64(stats.TotalMinutes) / float64(stats.TotalSessions)
	}

	return stats
}

// Streak returns the number of consecutive calendar days, counting back
// from today, with at least one logged session.
func Streak(log []model.SessionRecord, today time.Time) int {
	return streakFrom(studyDays(log), today)
}

func studyDays(log []model.SessionRecord) map[string]struct{} {
	days := make(map[string]struct{}, len(log))
	for _, rec := range log {
		days[rec.Timestamp.Format("2006-01-02")] = struct{}{}
	}
	return days
}

func streakFrom(days map[string]struct{}, today time.Time) int {
	streak := 0
	for offset := 0; offset < streakScanCap; offset++ {
		day := model.DateOf(today).AddDate(0, 0, -offset)
		if _, ok := days[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
	}
	return streak
}

// DailyMinutes returns total study minutes for each of the last n calendar
// days ending at today, oldest first.
func DailyMinutes(log []model.SessionRecord, today time.Time, n int) []int {
	minutes := make(map[string]int, len(log))
	for _, rec := range log {
		minutes[rec.Timestamp.Format("2006-01-02")] += rec.DurationMins
	}

	series := make([]int, n)
	for offset := 0; offset < n; offset++ {
		day := model.DateOf(today).AddDate(0, 0, -offset)
		series[n-1-offset] = minutes[day.Format("2006-01-02")]
	}
	return series
}

// FilterBySubject returns records matching the subject exactly.
func FilterBySubject(log []model.SessionRecord, subject string) []model.SessionRecord {
	if subject == "" {
		return log
	}
	var result []model.SessionRecord
	for _, rec := range log {
		if rec.Subject == subject {
			result = append(result, rec)
		}
	}
	return result
}

// FilterSince returns records with timestamps at or after cutoff.
func FilterSince(log []model.SessionRecord, cutoff time.Time) []model.SessionRecord {
	if cutoff.IsZero() {
		return log
	}
	var result []model.SessionRecord
	for _, rec := range log {
		if !rec.Timestamp.Before(cutoff) {
			result = append(result, rec)
		}
	}
	return result
}

// SortByTimeDesc returns a copy of the log sorted most recent first.
// The log itself keeps insertion order.
func SortByTimeDesc(log []model.SessionRecord) []model.SessionRecord {
	sorted := make([]model.SessionRecord, len(log))
	copy(sorted, log)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}
