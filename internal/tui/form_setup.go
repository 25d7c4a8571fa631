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

// setupValues backs the first-run setup form, one slot per subject in
// sorted-name order.
type setupValues struct {
	names      []string
	confidence []string
	examDate   []string
}

// newSetupForm builds one group per subject asking for confidence and exam
// date, prefilled with any values already set.
func newSetupForm(st *model.State, vals *setupValues) *huh.Form {
	names := st.SubjectNames()
	vals.names = names
	vals.confidence = make([]string, len(names))
	vals.examDate = make([]string, len(names))

	groups := make([]*huh.Group, 0, len(names))
	for i, name := range names {
		sub := st.Subjects[name]
		if sub.Confidence != 0 {
			vals.confidence[i] = strconv.Itoa(sub.Confidence)
		}
		if !sub.ExamDate.IsZero() {
			vals.examDate[i] = sub.ExamDate.Format("2006-01-02")
		}

		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s: confidence (1-10)", name)).
				Validate(requireRating).
				Value(&vals.confidence[i]),

			huh.NewInput().
				Title(fmt.Sprintf("%s: exam date (YYYY-MM-DD)", name)).
				Validate(requireDate).
				Value(&vals.examDate[i]),
		))
	}

	return huh.NewForm(groups...).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		vals := a.setupVals
		a.setupForm = nil

		changed := make([]model.Subject, 0, len(vals.names))
		for i, name := range vals.names {
			conf := atoi(vals.confidence[i])
			exam, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(vals.examDate[i]), time.Local)
			if err != nil {
				continue // validated in the form; skip rather than crash
			}
			if err := pipeline.ConfigureSubject(a.st, name, conf, exam); err != nil {
				a.notice = err.Error()
				continue
			}
			changed = append(changed, *a.st.Subjects[name])
		}
		a.recompute()
		return a, saveSubjectsCmd(a.store, changed)
	}

	if a.setupForm.State == huh.StateAborted {
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// subjectsSavedMsg is sent after setup-form changes are written to the
// database.
type subjectsSavedMsg struct {
	Err error
}

func saveSubjectsCmd(s *store.Store, subjects []model.Subject) tea.Cmd {
	return func() tea.Msg {
		for _, sub := range subjects {
			if err := s.UpsertSubject(sub); err != nil {
				return subjectsSavedMsg{Err: err}
			}
		}
		return subjectsSavedMsg{}
	}
}

func requireDate(s string) error {
	if _, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}
