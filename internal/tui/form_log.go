package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"nextstep/internal/model"
	"nextstep/internal/pipeline"
	"nextstep/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// logValues backs the huh session-log form.
type logValues struct {
	subject       string
	minutes       string
	task          string
	effectiveness string
	confidence    string
}

func (a App) openLogForm(subject string) (tea.Model, tea.Cmd) {
	names := a.st.SubjectNames()
	if len(names) == 0 {
		a.notice = "Add a subject first."
		return a, nil
	}
	if subject == "" {
		subject = names[0]
	}

	a.logVals = logValues{
		subject: subject,
		minutes: strconv.Itoa(a.defaultMins),
		task:    "revision",
	}
	a.logForm = newLogForm(names, &a.logVals)
	if a.width > 0 {
		a.logForm = a.logForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.logForm.Init()
}

func newLogForm(subjects []string, vals *logValues) *huh.Form {
	opts := make([]huh.Option[string], len(subjects))
	for i, name := range subjects {
		opts[i] = huh.NewOption(name, name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(opts...).
				Value(&vals.subject),

			huh.NewInput().
				Title("Minutes").
				Validate(requirePositiveInt).
				Value(&vals.minutes),

			huh.NewInput().
				Title("Task").
				Validate(requireNonEmpty).
				Value(&vals.task),

			huh.NewInput().
				Title("Effectiveness (1-10)").
				Validate(requireRating).
				Value(&vals.effectiveness),

			huh.NewInput().
				Title("New confidence (1-10, blank to keep)").
				Validate(optionalRating).
				Value(&vals.confidence),
		),
	).WithShowHelp(true)
}

func (a App) updateLogForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.logForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.logForm = f
	}

	if a.logForm.State == huh.StateCompleted {
		vals := a.logVals
		a.logForm = nil

		in := pipeline.SessionInput{
			Subject:       vals.subject,
			TaskType:      strings.TrimSpace(vals.task),
			DurationMins:  atoi(vals.minutes),
			Effectiveness: atoi(vals.effectiveness),
		}
		if conf := strings.TrimSpace(vals.confidence); conf != "" {
			n := atoi(conf)
			in.NewConfidence = &n
		}

		rec, err := pipeline.RecordSession(a.st, in, time.Now())
		if err != nil {
			a.notice = err.Error()
			return a, nil
		}
		a.recompute()

		var subj *model.Subject
		if in.NewConfidence != nil {
			subj = a.st.Subjects[rec.Subject]
		}
		return a, saveSessionCmd(a.store, rec, subj)
	}

	if a.logForm.State == huh.StateAborted {
		a.logForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSessionCmd persists the record (and updated subject, if any) in the
// background so the UI never blocks on the database.
func saveSessionCmd(s *store.Store, rec model.SessionRecord, subj *model.Subject) tea.Cmd {
	return func() tea.Msg {
		if err := s.AppendSession(rec); err != nil {
			return sessionSavedMsg{Err: err}
		}
		if subj != nil {
			if err := s.UpsertSubject(*subj); err != nil {
				return sessionSavedMsg{Err: err}
			}
		}
		return sessionSavedMsg{}
	}
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func requirePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func requireRating(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 10 {
		return fmt.Errorf("enter 1-10")
	}
	return nil
}

func optionalRating(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return requireRating(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
