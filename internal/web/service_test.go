package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nextstep/internal/model"
	"nextstep/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "nextstep.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	svc, err := New(Config{Addr: "127.0.0.1:0"}, st)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc, st
}

func seedSubject(t *testing.T, s *store.Store, name string, conf, examInDays int) {
	t.Helper()
	if err := s.UpsertSubject(model.Subject{
		Name:       name,
		Confidence: conf,
		ExamDate:   model.DateOf(time.Now()).AddDate(0, 0, examInDays),
	}); err != nil {
		t.Fatalf("UpsertSubject: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	svc, _ := newTestService(t)

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Fatalf("body = %q, want ok", rec.Body.String())
	}
}

func TestSummaryJSON(t *testing.T) {
	svc, st := newTestService(t)
	seedSubject(t, st, "Maths", 7, 10)
	if err := st.AppendSession(model.SessionRecord{
		Subject:       "Maths",
		Timestamp:     time.Now(),
		TaskType:      "Flashcards",
		DurationMins:  30,
		Effectiveness: 8,
	}); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload summaryPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.TotalSessions != 1 || payload.TotalMinutes != 30 {
		t.Fatalf("summary = %+v", payload)
	}
	if payload.StreakDays != 1 {
		t.Fatalf("StreakDays = %d, want 1", payload.StreakDays)
	}
	if payload.PerSubject["Maths"].AvgEffectiveness != 8 {
		t.Fatalf("Maths avg = %v, want 8", payload.PerSubject["Maths"].AvgEffectiveness)
	}
}

func TestPrioritiesJSONRequiresSetup(t *testing.T) {
	svc, st := newTestService(t)
	if err := st.UpsertSubject(model.Subject{Name: "History"}); err != nil {
		t.Fatalf("UpsertSubject: %v", err)
	}

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/priorities", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for incomplete setup", rec.Code)
	}
}

func TestPrioritiesJSONOrdering(t *testing.T) {
	svc, st := newTestService(t)
	seedSubject(t, st, "Maths", 9, 60)  // far exam, high confidence: low score
	seedSubject(t, st, "Irish", 2, 3)   // close exam, low confidence: high score

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/priorities", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload []priorityPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("len = %d, want 2", len(payload))
	}
	if payload[0].Subject != "Irish" {
		t.Fatalf("top rank = %s, want Irish", payload[0].Subject)
	}
	if payload[0].Score <= payload[1].Score {
		t.Fatalf("scores not descending: %v then %v", payload[0].Score, payload[1].Score)
	}
}

func TestLogSessionPostPersists(t *testing.T) {
	svc, st := newTestService(t)
	seedSubject(t, st, "Maths", 5, 10)

	form := url.Values{
		"subject":        {"Maths"},
		"duration_mins":  {"45"},
		"task_type":      {"Essay"},
		"effectiveness":  {"7"},
		"new_confidence": {"8"},
	}
	req := httptest.NewRequest(http.MethodPost, "/log", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}

	state, err := st.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if len(state.Log) != 1 {
		t.Fatalf("log len = %d, want 1", len(state.Log))
	}
	if state.Log[0].DurationMins != 45 || state.Log[0].TaskType != "Essay" {
		t.Fatalf("record = %+v", state.Log[0])
	}
	if state.Subjects["Maths"].Confidence != 8 {
		t.Fatalf("confidence = %d, want 8 after update", state.Subjects["Maths"].Confidence)
	}
}

func TestLogSessionPostRejectsInvalid(t *testing.T) {
	svc, st := newTestService(t)
	seedSubject(t, st, "Maths", 5, 10)

	form := url.Values{
		"subject":       {"Maths"},
		"duration_mins": {"0"},
		"effectiveness": {"7"},
	}
	req := httptest.NewRequest(http.MethodPost, "/log", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	state, err := st.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if len(state.Log) != 0 {
		t.Fatalf("log len = %d, want 0 after rejection", len(state.Log))
	}
}

func TestSubjectAddAndDelete(t *testing.T) {
	svc, st := newTestService(t)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		svc.Handler().ServeHTTP(rec, req)
		return rec
	}

	if rec := post("/subjects/add", url.Values{"name": {"Geography"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("add status = %d, want 303", rec.Code)
	}

	state, _ := st.LoadState()
	if _, ok := state.Subjects["Geography"]; !ok {
		t.Fatal("Geography not persisted")
	}

	if rec := post("/subjects/delete", url.Values{"name": {"Geography"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", rec.Code)
	}
	state, _ = st.LoadState()
	if _, ok := state.Subjects["Geography"]; ok {
		t.Fatal("Geography still present after delete")
	}
}
