// Package model defines domain types for nextstep subjects and study sessions.
package model

import "time"

// Subject holds per-subject study metadata. Confidence is 1-10 (0 = unset)
// and ExamDate is a calendar date (zero = unset).
type Subject struct {
	Name       string
	Confidence int
	ExamDate   time.Time
}

// Configured reports whether the subject has both a confidence rating
// and an exam date, which the planner requires.
func (s Subject) Configured() bool {
	return s.Confidence >= 1 && s.Confidence <= 10 && !s.ExamDate.IsZero()
}

// DaysUntilExam returns whole days between today and the exam date.
// Negative when the exam is in the past.
func (s Subject) DaysUntilExam(today time.Time) int {
	exam := DateOf(s.ExamDate)
	return int(exam.Sub(DateOf(today)).Hours() / 24)
}

// DateOf truncates a time to its calendar date, keeping the location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
