package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestRecordSessionAppendsRecord(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 6}, map[string]int{"Maths": 14})

	rec, err := RecordSession(st, SessionInput{
		Subject:       "Maths",
		DurationMins:  40,
		TaskType:      "Essay",
		Effectiveness: 8,
	}, testNow)
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	if len(st.Log) != 1 {
		t.Fatalf("log len = %d, want 1", len(st.Log))
	}
	if !rec.Timestamp.Equal(testNow) {
		t.Fatalf("timestamp = %v, want %v", rec.Timestamp, testNow)
	}
	if rec.DurationMins != 40 || rec.Effectiveness != 8 || rec.TaskType != "Essay" {
		t.Fatalf("record = %+v", rec)
	}
	// No confidence update requested, so the stored value is untouched.
	if st.Subjects["Maths"].Confidence != 6 {
		t.Fatalf("confidence = %d, want 6", st.Subjects["Maths"].Confidence)
	}
}

func TestRecordSessionUpdatesConfidence(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 6}, map[string]int{"Maths": 14})

	conf := 9
	if _, err := RecordSession(st, SessionInput{
		Subject:       "Maths",
		DurationMins:  25,
		Effectiveness: 7,
		NewConfidence: &conf,
	}, testNow); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	if st.Subjects["Maths"].Confidence != 9 {
		t.Fatalf("confidence = %d, want 9", st.Subjects["Maths"].Confidence)
	}
}

func TestRecordSessionUnknownSubject(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 6}, map[string]int{"Maths": 14})

	_, err := RecordSession(st, SessionInput{
		Subject:       "History",
		DurationMins:  30,
		Effectiveness: 5,
	}, testNow)

	var unknown *UnknownSubjectError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownSubjectError", err)
	}
	if len(st.Log) != 0 {
		t.Fatalf("log len = %d, want 0 after rejection", len(st.Log))
	}
}

func TestRecordSessionValidation(t *testing.T) {
	badConf := 11
	cases := []struct {
		name string
		in   SessionInput
	}{
		{"zero duration", SessionInput{Subject: "Maths", DurationMins: 0, Effectiveness: 5}},
		{"negative duration", SessionInput{Subject: "Maths", DurationMins: -10, Effectiveness: 5}},
		{"effectiveness too low", SessionInput{Subject: "Maths", DurationMins: 30, Effectiveness: 0}},
		{"effectiveness too high", SessionInput{Subject: "Maths", DurationMins: 30, Effectiveness: 11}},
		{"confidence out of range", SessionInput{Subject: "Maths", DurationMins: 30, Effectiveness: 5, NewConfidence: &badConf}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := newTestState(t, map[string]int{"Maths": 6}, map[string]int{"Maths": 14})

			_, err := RecordSession(st, tc.in, testNow)
			var invalid *ValidationError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if len(st.Log) != 0 {
				t.Fatalf("log len = %d, want 0 after rejection", len(st.Log))
			}
			if st.Subjects["Maths"].Confidence != 6 {
				t.Fatal("rejected input mutated confidence")
			}
		})
	}
}

func TestAddSubject(t *testing.T) {
	st := newTestState(t, nil, nil)

	if _, err := AddSubject(st, "History"); err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	if _, ok := st.Subjects["History"]; !ok {
		t.Fatal("subject not added")
	}

	_, err := AddSubject(st, "History")
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("duplicate add error = %v, want *ValidationError", err)
	}
	if _, err := AddSubject(st, "   "); err == nil {
		t.Fatal("blank name accepted")
	}
}

func TestRemoveSubjectKeepsLogEntries(t *testing.T) {
	st := newTestState(t, map[string]int{"Maths": 6}, map[string]int{"Maths": 14})
	addSession(st, "Maths", testNow)

	if err := RemoveSubject(st, "Maths"); err != nil {
		t.Fatalf("RemoveSubject: %v", err)
	}
	if len(st.Log) != 1 {
		t.Fatalf("log len = %d, want 1 (orphaned entries tolerated)", len(st.Log))
	}

	var unknown *UnknownSubjectError
	if err := RemoveSubject(st, "Maths"); !errors.As(err, &unknown) {
		t.Fatalf("second remove error = %v, want *UnknownSubjectError", err)
	}
}

func TestConfigureSubject(t *testing.T) {
	st := newTestState(t, nil, nil)
	if _, err := AddSubject(st, "French"); err != nil {
		t.Fatalf("AddSubject: %v", err)
	}

	exam := testToday().AddDate(0, 0, 21)
	if err := ConfigureSubject(st, "French", 7, exam); err != nil {
		t.Fatalf("ConfigureSubject: %v", err)
	}
	subj := st.Subjects["French"]
	if !subj.Configured() {
		t.Fatalf("subject not configured: %+v", subj)
	}
	if !subj.ExamDate.Equal(exam) {
		t.Fatalf("exam date = %v, want %v", subj.ExamDate, exam)
	}

	if err := ConfigureSubject(st, "French", 0, exam); err == nil {
		t.Fatal("confidence 0 accepted")
	}
	if err := ConfigureSubject(st, "French", 5, time.Time{}); err == nil {
		t.Fatal("zero exam date accepted")
	}
	if err := ConfigureSubject(st, "German", 5, exam); err == nil {
		t.Fatal("unknown subject accepted")
	}
}
