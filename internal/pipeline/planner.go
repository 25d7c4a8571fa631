package pipeline

import (
	"sort"
	"time"

	"nextstep/internal/model"
)

// Scoring weights. Urgency dominates close to an exam, difficulty carries
// the middle distance, and the repetition penalty nudges toward variety.
const (
	urgencyWeight     = 1.5
	penaltyPerSession = 0.5
	decayPeriodDays   = 7
	maxDecay          = 3
	recentWindowDays  = 7
	minDaysLeft       = 0.1
)

// Rank scores every subject and returns them in descending score order.
// today drives urgency (exam distance), now drives decay and the recent
// window; both are caller-supplied so ranking is pure and repeatable.
//
// Every subject must have a confidence rating and exam date, otherwise
// an *IncompleteSetupError names the first offender.
func Rank(st *model.State, today, now time.Time) ([]model.SubjectScore, error) {
	names := st.SubjectNames()
	for _, name := range names {
		if !st.Subjects[name].Configured() {
			return nil, &IncompleteSetupError{Subject: name}
		}
	}

	ranked := make([]model.SubjectScore, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, scoreSubject(st, st.Subjects[name], today, now))
	}

	// Stable keeps the alphabetical iteration order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

func scoreSubject(st *model.State, subj *model.Subject, today, now time.Time) model.SubjectScore {
	sc := model.SubjectScore{
		Subject:          subj.Name,
		DaysLeft:         subj.DaysUntilExam(today),
		DaysSinceSession: daysSinceLastSession(st.Log, subj.Name, now),
	}

	sc.Urgency = 1 / maxFloat(float64(sc.DaysLeft), minDaysLeft)

	// Confidence decays one point per untouched week, up to three.
	adjusted := subj.Confidence
	if sc.DaysSinceSession >= 0 {
		sc.Decay = sc.DaysSinceSession / decayPeriodDays
		if sc.Decay > maxDecay {
			sc.Decay = maxDecay
		}
		if sc.Decay < 0 {
			sc.Decay = 0
		}
		adjusted -= sc.Decay
	}
	if adjusted < 1 {
		adjusted = 1
	}
	sc.Difficulty = 11 - adjusted

	sc.RecentSessions = recentSessionCount(st.Log, subj.Name, now)
	sc.RepetitionPenalty = float64(sc.RecentSessions) * penaltyPerSession

	sc.Score = sc.Urgency*urgencyWeight + float64(sc.Difficulty) - sc.RepetitionPenalty
	return sc
}

// daysSinceLastSession returns whole days since the subject's most recent
// session, or -1 if it was never studied.
func daysSinceLastSession(log []model.SessionRecord, subject string, now time.Time) int {
	var last time.Time
	for _, rec := range log {
		if rec.Subject == subject && rec.Timestamp.After(last) {
			last = rec.Timestamp
		}
	}
	if last.IsZero() {
		return -1
	}
	return int(now.Sub(last).Hours() / 24)
}

// recentSessionCount counts the subject's sessions in the trailing window.
func recentSessionCount(log []model.SessionRecord, subject string, now time.Time) int {
	cutoff := now.AddDate(0, 0, -recentWindowDays)
	count := 0
	for _, rec := range log {
		if rec.Subject == subject && !rec.Timestamp.Before(cutoff) {
			count++
		}
	}
	return count
}

// Select walks the ranking and returns the first subject the caller
// accepts. When every subject is rejected it falls back to the top-ranked
// one, matching the interactive flow. ok is false only for an empty ranking.
func Select(ranked []model.SubjectScore, accept func(model.SubjectScore) bool) (model.SubjectScore, bool) {
	if len(ranked) == 0 {
		return model.SubjectScore{}, false
	}
	for _, sc := range ranked {
		if accept(sc) {
			return sc, true
		}
	}
	return ranked[0], true
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
