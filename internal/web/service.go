// Package web provides the NextStep web dashboard and JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"nextstep/internal/cli"
	"nextstep/internal/model"
	"nextstep/internal/pipeline"
	"nextstep/internal/store"
)

// Config controls the web service runtime.
type Config struct {
	Addr               string
	DefaultSessionMins int
}

// Service serves the dashboard pages and the JSON API over one store.
// A single mutex serializes every request: the data model assumes one
// logical actor at a time, and the mutex is what enforces that here.
type Service struct {
	cfg   Config
	store *store.Store
	tmpl  *template.Template

	mu sync.Mutex
}

// New builds a service over an opened store.
func New(cfg Config, st *store.Store) (*Service, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8808"
	}
	if cfg.DefaultSessionMins < 1 {
		cfg.DefaultSessionMins = 30
	}

	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Service{cfg: cfg, store: st, tmpl: tmpl}, nil
}

// Handler returns the routed HTTP handler.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/log", s.handleLog)
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/subjects", s.handleSubjects)
	mux.HandleFunc("/subjects/add", s.handleSubjectAdd)
	mux.HandleFunc("/subjects/save", s.handleSubjectSave)
	mux.HandleFunc("/subjects/delete", s.handleSubjectDelete)
	mux.HandleFunc("/suggest", s.handleSuggest)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/summary", s.handleSummaryJSON)
	mux.HandleFunc("/v1/priorities", s.handlePrioritiesJSON)
	return mux
}

// Run serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("web server: %w", err)
	}
}

func (s *Service) loadState() (*model.State, error) {
	return s.store.LoadState()
}

// View-model types for the templates.

type subjectView struct {
	Name          string
	Confidence    int
	ConfidencePct int
	ExamSet       bool
	ExamValue     string // yyyy-mm-dd for date inputs
	ExamLabel     string
	Overdue       bool
}

type breakdownView struct {
	Name             string
	Sessions         int
	TotalTime        string
	AvgEffectiveness float64
}

type sessionView struct {
	When          string
	Subject       string
	TaskType      string
	Duration      string
	Effectiveness int
}

func subjectViews(st *model.State, today time.Time) []subjectView {
	views := make([]subjectView, 0, len(st.Subjects))
	for _, name := range st.SubjectNames() {
		subj := st.Subjects[name]
		v := subjectView{Name: name, Confidence: subj.Confidence, ConfidencePct: subj.Confidence * 10}
		if !subj.ExamDate.IsZero() {
			v.ExamSet = true
			v.ExamValue = subj.ExamDate.Format("2006-01-02")
			days := subj.DaysUntilExam(today)
			v.Overdue = days < 0
			v.ExamLabel = cli.FormatDaysLeft(days)
		}
		views = append(views, v)
	}
	return views
}

func (s *Service) render(w http.ResponseWriter, page string, data interface{}) {
	if err := s.tmpl.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}

func (s *Service) fail(w http.ResponseWriter, err error) {
	log.Printf("web: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	now := time.Now()
	stats := pipeline.Aggregate(st.Log, now)

	data := struct {
		Title     string
		Notice    string
		Error     string
		Stats     model.SummaryStats
		TotalTime string
		Breakdown []breakdownView
		Subjects  []subjectView
		Ranked    []model.SubjectScore
		RankError string
	}{
		Title:     "Dashboard",
		Notice:    noticeFor(r),
		Stats:     stats,
		TotalTime: cli.FormatMinutes(stats.TotalMinutes),
		Subjects:  subjectViews(st, now),
	}

	for _, name := range st.SubjectNames() {
		ss, ok := stats.PerSubject[name]
		if !ok {
			continue
		}
		data.Breakdown = append(data.Breakdown, breakdownView{
			Name:             name,
			Sessions:         ss.Sessions,
			TotalTime:        cli.FormatMinutes(ss.TotalMinutes),
			AvgEffectiveness: ss.AvgEffectiveness,
		})
	}

	if len(st.Subjects) > 0 {
		ranked, err := pipeline.Rank(st, now, now)
		if err != nil {
			data.RankError = err.Error()
		} else {
			data.Ranked = ranked
		}
	}

	s.render(w, "dashboard", data)
}

func (s *Service) handleLog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	data := struct {
		Title       string
		Notice      string
		Error       string
		Subjects    []subjectView
		Selected    string
		TaskType    string
		DefaultMins int
	}{
		Title:       "Log a Session",
		Subjects:    subjectViews(st, time.Now()),
		DefaultMins: s.cfg.DefaultSessionMins,
	}

	if r.Method == http.MethodGet {
		data.Selected = r.URL.Query().Get("subject")
		s.render(w, "log", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in := pipeline.SessionInput{
		Subject:       r.PostFormValue("subject"),
		TaskType:      r.PostFormValue("task_type"),
		DurationMins:  formInt(r, "duration_mins"),
		Effectiveness: formInt(r, "effectiveness"),
	}
	if v := r.PostFormValue("new_confidence"); v != "" {
		conf := formInt(r, "new_confidence")
		in.NewConfidence = &conf
	}

	rec, err := pipeline.RecordSession(st, in, time.Now())
	if err != nil {
		var invalid *pipeline.ValidationError
		var unknown *pipeline.UnknownSubjectError
		if errors.As(err, &invalid) || errors.As(err, &unknown) {
			w.WriteHeader(http.StatusBadRequest)
			data.Error = err.Error()
			data.Selected = in.Subject
			data.TaskType = in.TaskType
			s.render(w, "log", data)
			return
		}
		s.fail(w, err)
		return
	}

	if err := s.store.AppendSession(rec); err != nil {
		s.fail(w, err)
		return
	}
	if in.NewConfidence != nil {
		if err := s.store.UpsertSubject(*st.Subjects[rec.Subject]); err != nil {
			s.fail(w, err)
			return
		}
	}

	redirectWithNotice(w, r, "/", "Session logged.")
}

func (s *Service) handleSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	subject := r.URL.Query().Get("subject")
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	records := pipeline.FilterBySubject(st.Log, subject)
	if days > 0 {
		records = pipeline.FilterSince(records, time.Now().AddDate(0, 0, -days))
	}
	records = pipeline.SortByTimeDesc(records)

	sessions := make([]sessionView, 0, len(records))
	for _, rec := range records {
		sessions = append(sessions, sessionView{
			When:          cli.FormatDateTime(rec.Timestamp),
			Subject:       rec.Subject,
			TaskType:      rec.TaskType,
			Duration:      cli.FormatMinutes(rec.DurationMins),
			Effectiveness: rec.Effectiveness,
		})
	}

	s.render(w, "sessions", struct {
		Title    string
		Notice   string
		Error    string
		Subjects []subjectView
		Selected string
		Days     int
		Sessions []sessionView
	}{
		Title:    "Sessions",
		Subjects: subjectViews(st, time.Now()),
		Selected: subject,
		Days:     days,
		Sessions: sessions,
	})
}

func (s *Service) handleSubjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	s.render(w, "subjects", struct {
		Title    string
		Notice   string
		Error    string
		Subjects []subjectView
	}{
		Title:    "Subjects",
		Notice:   noticeFor(r),
		Error:    r.URL.Query().Get("error"),
		Subjects: subjectViews(st, time.Now()),
	})
}

func (s *Service) handleSubjectAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	subj, err := pipeline.AddSubject(st, r.PostFormValue("name"))
	if err != nil {
		redirectWithError(w, r, "/subjects", err)
		return
	}
	if err := s.store.UpsertSubject(*subj); err != nil {
		s.fail(w, err)
		return
	}

	redirectWithNotice(w, r, "/subjects", fmt.Sprintf("Added %q.", subj.Name))
}

func (s *Service) handleSubjectSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	name := r.PostFormValue("name")
	examDate, err := time.ParseInLocation("2006-01-02", r.PostFormValue("exam_date"), time.Local)
	if err != nil {
		redirectWithError(w, r, "/subjects", fmt.Errorf("invalid exam_date: must be a calendar date"))
		return
	}

	if err := pipeline.ConfigureSubject(st, name, formInt(r, "confidence"), examDate); err != nil {
		redirectWithError(w, r, "/subjects", err)
		return
	}
	if err := s.store.UpsertSubject(*st.Subjects[name]); err != nil {
		s.fail(w, err)
		return
	}

	redirectWithNotice(w, r, "/subjects", fmt.Sprintf("Saved %q.", name))
}

func (s *Service) handleSubjectDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	name := r.PostFormValue("name")
	if err := pipeline.RemoveSubject(st, name); err != nil {
		redirectWithError(w, r, "/subjects", err)
		return
	}
	if err := s.store.DeleteSubject(name); err != nil {
		s.fail(w, err)
		return
	}

	redirectWithNotice(w, r, "/subjects", fmt.Sprintf("Deleted %q.", name))
}

func (s *Service) handleSuggest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	minutes, _ := strconv.Atoi(r.URL.Query().Get("minutes"))
	if minutes < 1 {
		minutes = s.cfg.DefaultSessionMins
	}
	energyStr := r.URL.Query().Get("energy")
	if energyStr == "" {
		energyStr = "medium"
	}

	data := struct {
		Title     string
		Notice    string
		Error     string
		Minutes   int
		Energy    string
		Chosen    string
		Task      string
		Ranked    []model.SubjectScore
		RankError string
	}{
		Title:   "Instant Mode",
		Minutes: minutes,
		Energy:  energyStr,
	}

	now := time.Now()
	ranked, err := pipeline.Rank(st, now, now)
	if err != nil {
		var incomplete *pipeline.IncompleteSetupError
		if errors.As(err, &incomplete) {
			data.RankError = err.Error()
			s.render(w, "suggest", data)
			return
		}
		s.fail(w, err)
		return
	}

	// The web flow has no per-subject confirm loop; take the top rank,
	// which is also the interactive fallback.
	if r.URL.Query().Get("minutes") != "" {
		energy, err := pipeline.ParseEnergy(energyStr)
		if err != nil {
			data.Error = err.Error()
			s.render(w, "suggest", data)
			return
		}
		if chosen, ok := pipeline.Select(ranked, func(model.SubjectScore) bool { return true }); ok {
			data.Chosen = chosen.Subject
			data.Task = pipeline.TaskForEnergy(energy)
			data.Ranked = ranked
		}
	}

	s.render(w, "suggest", data)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// summaryPayload is served at /v1/summary.
type summaryPayload struct {
	At            time.Time                 `json:"at"`
	TotalSessions int                       `json:"total_sessions"`
	TotalMinutes  int                       `json:"total_minutes"`
	StreakDays    int                       `json:"streak_days"`
	ActiveDays    int                       `json:"active_days"`
	PerSubject    map[string]subjectPayload `json:"per_subject"`
}

type subjectPayload struct {
	Count            int     `json:"count"`
	TotalMinutes     int     `json:"total_minutes"`
	AvgEffectiveness float64 `json:"avg_effectiveness"`
}

func (s *Service) handleSummaryJSON(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	now := time.Now()
	stats := pipeline.Aggregate(st.Log, now)

	payload := summaryPayload{
		At:            now,
		TotalSessions: stats.TotalSessions,
		TotalMinutes:  stats.TotalMinutes,
		StreakDays:    stats.StreakDays,
		ActiveDays:    stats.ActiveDays,
		PerSubject:    make(map[string]subjectPayload, len(stats.PerSubject)),
	}
	for name, ss := range stats.PerSubject {
		payload.PerSubject[name] = subjectPayload{
			Count:            ss.Sessions,
			TotalMinutes:     ss.TotalMinutes,
			AvgEffectiveness: ss.AvgEffectiveness,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// priorityPayload is one /v1/priorities entry.
type priorityPayload struct {
	Subject           string  `json:"subject"`
	Score             float64 `json:"score"`
	DaysLeft          int     `json:"days_left"`
	Urgency           float64 `json:"urgency"`
	Difficulty        int     `json:"difficulty"`
	RecentSessions    int     `json:"recent_sessions"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

func (s *Service) handlePrioritiesJSON(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState()
	if err != nil {
		s.fail(w, err)
		return
	}

	now := time.Now()
	ranked, err := pipeline.Rank(st, now, now)
	if err != nil {
		var incomplete *pipeline.IncompleteSetupError
		if errors.As(err, &incomplete) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": incomplete.Error()})
			return
		}
		s.fail(w, err)
		return
	}

	payload := make([]priorityPayload, 0, len(ranked))
	for _, sc := range ranked {
		payload = append(payload, priorityPayload{
			Subject:           sc.Subject,
			Score:             sc.Score,
			DaysLeft:          sc.DaysLeft,
			Urgency:           sc.Urgency,
			Difficulty:        sc.Difficulty,
			RecentSessions:    sc.RecentSessions,
			RepetitionPenalty: sc.RepetitionPenalty,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(r.PostFormValue(field))
	return n
}

func noticeFor(r *http.Request) string {
	return r.URL.Query().Get("notice")
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path string, err error) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}
