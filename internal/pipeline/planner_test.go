package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"nextstep/internal/model"
)

var testNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func testToday() time.Time {
	return model.DateOf(testNow)
}

func newTestState(t *testing.T, subjects map[string]int, examOffsetDays map[string]int) *model.State {
	t.Helper()
	st := model.NewState()
	for name, conf := range subjects {
		st.Subjects[name] = &model.Subject{
			Name:       name,
			Confidence: conf,
			ExamDate:   testToday().AddDate(0, 0, examOffsetDays[name]),
		}
	}
	return st
}

func addSession(st *model.State, subject string, at time.Time) {
	st.Log = append(st.Log, model.SessionRecord{
		Subject:       subject,
		Timestamp:     at,
		TaskType:      "Flashcards",
		DurationMins:  30,
		Effectiveness: 7,
	})
}

func TestRankWorkedExample(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 8}, map[string]int{"Maths": 5})

	ranked, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("ranked len = %d, want 1", len(ranked))
	}

	sc := ranked[0]
	if sc.DaysLeft != 5 {
		t.Fatalf("DaysLeft = %d, want 5", sc.DaysLeft)
	}
	if math.Abs(sc.Urgency-0.2) > 1e-9 {
		t.Fatalf("Urgency = %v, want 0.2", sc.Urgency)
	}
	if sc.Difficulty != 3 {
		t.Fatalf("Difficulty = %d, want 3", sc.Difficulty)
	}
	// 0.2*1.5 + 3 - 0
	if math.Abs(sc.Score-3.3) > 1e-9 {
		t.Fatalf("Score = %v, want 3.3", sc.Score)
	}
}

func TestRankUrgencyClampsWhenExamDueOrPast(t *testing.T) {
	st := newTestState(t,
		map[string]int{"Maths": 5, "Irish": 5},
		map[string]int{"Maths": 0, "Irish": -10},
	)

	ranked, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for _, sc := range ranked {
		if math.Abs(sc.Urgency-10) > 1e-9 {
			t.Fatalf("%s urgency = %v, want clamped 10", sc.Subject, sc.Urgency)
		}
	}
}

func TestRankConfidenceDecay(t *testing.T) {
	cases := []struct {
		name           string
		daysSince      int
		wantDecay      int
		wantDifficulty int
	}{
		{"studied today", 0, 0, 6},
		{"one week ago", 8, 1, 7},
		{"two weeks ago", 15, 2, 8},
		{"capped at three", 40, 3, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := newTestState(t, map[string]int{"Science": 5}, map[string]int{"Science": 30})
			addSession(st, "Science", testNow.AddDate(0, 0, -tc.daysSince))

			ranked, err := Rank(st, testToday(), testNow)
			if err != nil {
				t.Fatalf("Rank: %v", err)
			}
			if ranked[0].Decay != tc.wantDecay {
				t.Fatalf("Decay = %d, want %d", ranked[0].Decay, tc.wantDecay)
			}
			if ranked[0].Difficulty != tc.wantDifficulty {
				t.Fatalf("Difficulty = %d, want %d", ranked[0].Difficulty, tc.wantDifficulty)
			}
		})
	}
}

func TestRankNoDecayWhenNeverStudied(t *testing.T) {
	st := newTestState(t, map[string]int{"English": 4}, map[string]int{"English": 20})

	ranked, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].DaysSinceSession != -1 {
		t.Fatalf("DaysSinceSession = %d, want -1", ranked[0].DaysSinceSession)
	}
	if ranked[0].Decay != 0 {
		t.Fatalf("Decay = %d, want 0", ranked[0].Decay)
	}
	if ranked[0].Difficulty != 7 {
		t.Fatalf("Difficulty = %d, want 7", ranked[0].Difficulty)
	}
}

func TestRankDifficultyStaysInRange(t *testing.T) {
	// Lowest confidence plus maximum decay must not push difficulty past 10.
	st := newTestState(t, map[string]int{"Irish": 1}, map[string]int{"Irish": 30})
	addSession(st, "Irish", testNow.AddDate(0, 0, -60))

	ranked, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if d := ranked[0].Difficulty; d < 1 || d > 10 {
		t.Fatalf("Difficulty = %d, want within [1,10]", d)
	}
	if ranked[0].Difficulty != 10 {
		t.Fatalf("Difficulty = %d, want 10 (adjusted confidence floors at 1)", ranked[0].Difficulty)
	}
}

func TestRankRepetitionPenalty(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 8}, map[string]int{"Maths": 5})
	addSession(st, "Maths", testNow.AddDate(0, 0, -1))
	addSession(st, "Maths", testNow.AddDate(0, 0, -3))
	addSession(st, "Maths", testNow.AddDate(0, 0, -20)) // outside the window

	ranked, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].RecentSessions != 2 {
		t.Fatalf("RecentSessions = %d, want 2", ranked[0].RecentSessions)
	}
	if math.Abs(ranked[0].RepetitionPenalty-1.0) > 1e-9 {
		t.Fatalf("RepetitionPenalty = %v, want 1.0", ranked[0].RepetitionPenalty)
	}
}

func TestRankIncompleteSetup(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 8}, map[string]int{"Maths": 5})
	st.Subjects["History"] = &model.Subject{Name: "History"} // no confidence, no date

	_, err := Rank(st, testToday(), testNow)
	var incomplete *IncompleteSetupError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Rank error = %v, want *IncompleteSetupError", err)
	}
	if incomplete.Subject != "History" {
		t.Fatalf("offending subject = %q, want History", incomplete.Subject)
	}
}

func TestRankDeterministicOrdering(t *testing.T) {
	st := newTestState(t,
		map[string]int{"Science": 5, "Irish": 5, "Maths": 5, "English": 5},
		map[string]int{"Science": 10, "Irish": 10, "Maths": 10, "English": 10},
	)

	first, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Rank(st, testToday(), testNow)
		if err != nil {
			t.Fatalf("Rank: %v", err)
		}
		for j := range first {
			if again[j].Subject != first[j].Subject {
				t.Fatalf("run %d: position %d = %s, want %s", i, j, again[j].Subject, first[j].Subject)
			}
		}
	}

	// All scores equal, so the tie-break is alphabetical.
	want := []string{"English", "Irish", "Maths", "Science"}
	for i, name := range want {
		if first[i].Subject != name {
			t.Fatalf("position %d = %s, want %s", i, first[i].Subject, name)
		}
	}
}

func TestRankOrphanedLogEntriesIgnored(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 8}, map[string]int{"Maths": 5})
	addSession(st, "Latin", testNow.AddDate(0, 0, -1)) // subject deleted since

	ranked, err := Rank(st, testToday(), testNow)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Subject != "Maths" {
		t.Fatalf("ranked = %v, want only Maths", ranked)
	}
}

func TestSelectFirstAccepted(t *testing.T) {
	ranked := []model.SubjectScore{
		{Subject: "Maths", Score: 5},
		{Subject: "Irish", Score: 4},
		{Subject: "Science", Score: 3},
	}

	chosen, ok := Select(ranked, func(sc model.SubjectScore) bool {
		return sc.Subject == "Irish"
	})
	if !ok || chosen.Subject != "Irish" {
		t.Fatalf("Select = %v %v, want Irish", chosen.Subject, ok)
	}
}

func TestSelectFallsBackToTopRank(t *testing.T) {
	ranked := []model.SubjectScore{
		{Subject: "Maths", Score: 5},
		{Subject: "Irish", Score: 4},
	}

	chosen, ok := Select(ranked, func(model.SubjectScore) bool { return false })
	if !ok || chosen.Subject != "Maths" {
		t.Fatalf("Select = %v %v, want fallback to Maths", chosen.Subject, ok)
	}
}

func TestSelectEmptyRanking(t *testing.T) {
	_, ok := Select(nil, func(model.SubjectScore) bool { return true })
	if ok {
		t.Fatal("Select on empty ranking reported ok")
	}
}

func TestParseEnergy(t *testing.T) {
	if _, err := ParseEnergy("sleepy"); err == nil {
		t.Fatal("ParseEnergy accepted an invalid level")
	}
	e, err := ParseEnergy("  HIGH ")
	if err != nil {
		t.Fatalf("ParseEnergy: %v", err)
	}
	if TaskForEnergy(e) != "Essays or Full Past Paper Sections" {
		t.Fatalf("TaskForEnergy(high) = %q", TaskForEnergy(e))
	}
	if TaskForEnergy(EnergyLow) != "Flashcards or Light Revision" {
		t.Fatalf("TaskForEnergy(low) = %q", TaskForEnergy(EnergyLow))
	}
}
