package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nextstep/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nextstep.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	exam := time.Date(2025, 6, 4, 0, 0, 0, 0, time.Local)
	if err := s.UpsertSubject(model.Subject{Name: "Maths", Confidence: 7, ExamDate: exam}); err != nil {
		t.Fatalf("UpsertSubject: %v", err)
	}
	if err := s.UpsertSubject(model.Subject{Name: "History"}); err != nil {
		t.Fatalf("UpsertSubject unconfigured: %v", err)
	}

	when := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	rec := model.SessionRecord{
		Subject:       "Maths",
		Timestamp:     when,
		TaskType:      "Past Paper",
		DurationMins:  55,
		Effectiveness: 8,
	}
	if err := s.AppendSession(rec); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	st, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	maths, ok := st.Subjects["Maths"]
	if !ok {
		t.Fatal("Maths missing after reload")
	}
	if maths.Confidence != 7 || !maths.ExamDate.Equal(exam) {
		t.Fatalf("Maths = %+v", maths)
	}
	if hist := st.Subjects["History"]; hist == nil || hist.Configured() {
		t.Fatalf("History should reload as unconfigured, got %+v", hist)
	}

	if len(st.Log) != 1 {
		t.Fatalf("log len = %d, want 1", len(st.Log))
	}
	got := st.Log[0]
	if !got.Timestamp.Equal(when) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, when)
	}
	if got.TaskType != "Past Paper" || got.DurationMins != 55 || got.Effectiveness != 8 {
		t.Fatalf("record = %+v", got)
	}
}

func TestStoreLogKeepsInsertionOrder(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	// Insert out of chronological order; the log must come back in
	// insertion order regardless.
	for i, offset := range []int{2, 0, 1} {
		if err := s.AppendSession(model.SessionRecord{
			Subject:       "Irish",
			Timestamp:     base.AddDate(0, 0, offset),
			TaskType:      "Flashcards",
			DurationMins:  10 + i,
			Effectiveness: 5,
		}); err != nil {
			t.Fatalf("AppendSession: %v", err)
		}
	}

	st, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	for i, wantMins := range []int{10, 11, 12} {
		if st.Log[i].DurationMins != wantMins {
			t.Fatalf("log[%d].DurationMins = %d, want %d", i, st.Log[i].DurationMins, wantMins)
		}
	}
}

func TestStoreDeleteSubjectKeepsSessions(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertSubject(model.Subject{Name: "Science", Confidence: 5}); err != nil {
		t.Fatalf("UpsertSubject: %v", err)
	}
	if err := s.AppendSession(model.SessionRecord{
		Subject: "Science", Timestamp: time.Now(), DurationMins: 30, Effectiveness: 6,
	}); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	if err := s.DeleteSubject("Science"); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}

	st, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if _, ok := st.Subjects["Science"]; ok {
		t.Fatal("Science still present after delete")
	}
	if len(st.Log) != 1 {
		t.Fatalf("log len = %d, want 1 (orphaned entry kept)", len(st.Log))
	}
}

func TestImportLegacyJSON(t *testing.T) {
	dir := t.TempDir()
	subjectsPath := filepath.Join(dir, "subjects.json")
	logPath := filepath.Join(dir, "log.json")

	subjectsJSON := `{
    "Maths": {"confidence": 8, "exam_date": "2025-06-04"},
    "Irish": {"confidence": null, "exam_date": null}
}`
	// Mixed timestamp styles, as written by different versions of the app.
	logJSON := `[
    {"subject": "Maths", "timestamp": "2025-03-09T19:15:00", "task_type": "Essay", "duration_mins": 45, "effectiveness": 7},
    {"subject": "Maths", "timestamp": "2025-03-10 08:30:12.123456", "task_type": "Flashcards", "duration_mins": 20, "effectiveness": 6}
]`
	if err := os.WriteFile(subjectsPath, []byte(subjectsJSON), 0o600); err != nil {
		t.Fatalf("write subjects: %v", err)
	}
	if err := os.WriteFile(logPath, []byte(logJSON), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}

	st, err := ImportJSON(subjectsPath, logPath)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if st.Subjects["Maths"].Confidence != 8 {
		t.Fatalf("Maths confidence = %d, want 8", st.Subjects["Maths"].Confidence)
	}
	if st.Subjects["Irish"].Configured() {
		t.Fatal("Irish should import as unconfigured")
	}
	if len(st.Log) != 2 {
		t.Fatalf("log len = %d, want 2", len(st.Log))
	}
	if st.Log[1].Timestamp.Hour() != 8 || st.Log[1].Timestamp.Minute() != 30 {
		t.Fatalf("second timestamp = %v", st.Log[1].Timestamp)
	}
}

func TestImportLegacyJSONRejectsBadRecords(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.json")

	badLog := `[{"subject": "Maths", "timestamp": "2025-03-09T19:15:00", "duration_mins": 0, "effectiveness": 7}]`
	if err := os.WriteFile(logPath, []byte(badLog), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}

	if _, err := ImportJSON("", logPath); err == nil {
		t.Fatal("ImportJSON accepted a zero-duration record")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	subjectsPath := filepath.Join(dir, "subjects.json")
	logPath := filepath.Join(dir, "log.json")

	st := model.NewState()
	st.Subjects["English"] = &model.Subject{
		Name:       "English",
		Confidence: 6,
		ExamDate:   time.Date(2025, 5, 20, 0, 0, 0, 0, time.Local),
	}
	st.Log = append(st.Log, model.SessionRecord{
		Subject:       "English",
		Timestamp:     time.Date(2025, 3, 8, 17, 0, 0, 0, time.Local),
		TaskType:      "Poetry notes",
		DurationMins:  35,
		Effectiveness: 9,
	})

	if err := ExportJSON(st, subjectsPath, logPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(subjectsPath, logPath)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Subjects["English"].Confidence != 6 {
		t.Fatalf("confidence = %d, want 6", got.Subjects["English"].Confidence)
	}
	if !got.Subjects["English"].ExamDate.Equal(st.Subjects["English"].ExamDate) {
		t.Fatalf("exam date = %v", got.Subjects["English"].ExamDate)
	}
	if len(got.Log) != 1 || !got.Log[0].Timestamp.Equal(st.Log[0].Timestamp) {
		t.Fatalf("log = %+v", got.Log)
	}
}

func TestReplaceState(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertSubject(model.Subject{Name: "Old", Confidence: 3}); err != nil {
		t.Fatalf("UpsertSubject: %v", err)
	}

	st := model.NewState()
	st.Subjects["New"] = &model.Subject{Name: "New", Confidence: 5, ExamDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)}
	st.Log = append(st.Log, model.SessionRecord{
		Subject: "New", Timestamp: time.Now(), DurationMins: 15, Effectiveness: 4,
	})

	if err := s.ReplaceState(st); err != nil {
		t.Fatalf("ReplaceState: %v", err)
	}

	got, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if _, ok := got.Subjects["Old"]; ok {
		t.Fatal("Old subject survived ReplaceState")
	}
	if _, ok := got.Subjects["New"]; !ok {
		t.Fatal("New subject missing after ReplaceState")
	}
	count, err := s.SessionCount()
	if err != nil || count != 1 {
		t.Fatalf("SessionCount = %d (%v), want 1", count, err)
	}
}
