package model

// SummaryStats holds the top-level aggregate across the session log.
type SummaryStats struct {
	TotalSessions int
	TotalMinutes  int
	StreakDays    int
	ActiveDays    int

	MinutesPerDay   float64
	AvgSessionMins  float64

	PerSubject map[string]SubjectStats
}

// SubjectStats holds aggregated metrics for a single subject.
type SubjectStats struct {
	Sessions         int
	TotalMinutes     int
	AvgEffectiveness float64
}

// SubjectScore is one entry in the planner's ranking, with the score
// components kept so front ends can explain the recommendation.
type SubjectScore struct {
	Subject string
	Score   float64

	DaysLeft          int
	Urgency           float64
	Difficulty        int
	Decay             int
	DaysSinceSession  int // -1 when the subject was never studied
	RecentSessions    int
	RepetitionPenalty float64
}
