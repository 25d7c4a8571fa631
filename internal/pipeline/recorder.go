package pipeline

import (
	"strings"
	"time"

	"nextstep/internal/model"
)

// SessionInput is the validated payload for recording a study session.
// NewConfidence, when non-nil, updates the subject's stored confidence.
type SessionInput struct {
	Subject       string
	DurationMins  int
	TaskType      string
	Effectiveness int
	NewConfidence *int
}

// RecordSession validates the input, appends an immutable record with
// timestamp now, and optionally updates the subject's confidence. On error
// the state is untouched: all checks run before any mutation.
func RecordSession(st *model.State, in SessionInput, now time.Time) (model.SessionRecord, error) {
	subj, ok := st.Subjects[in.Subject]
	if !ok {
		return model.SessionRecord{}, &UnknownSubjectError{Subject: in.Subject}
	}
	if in.DurationMins <= 0 {
		return model.SessionRecord{}, &ValidationError{Field: "duration_mins", Reason: "must be a positive number of minutes"}
	}
	if in.Effectiveness < 1 || in.Effectiveness > 10 {
		return model.SessionRecord{}, &ValidationError{Field: "effectiveness", Reason: "must be between 1 and 10"}
	}
	if in.NewConfidence != nil && (*in.NewConfidence < 1 || *in.NewConfidence > 10) {
		return model.SessionRecord{}, &ValidationError{Field: "confidence", Reason: "must be between 1 and 10"}
	}

	rec := model.SessionRecord{
		Subject:       in.Subject,
		Timestamp:     now,
		TaskType:      in.TaskType,
		DurationMins:  in.DurationMins,
		Effectiveness: in.Effectiveness,
	}
	st.Log = append(st.Log, rec)

	if in.NewConfidence != nil {
		subj.Confidence = *in.NewConfidence
	}

	return rec, nil
}

// AddSubject creates a new, unconfigured subject.
func AddSubject(st *model.State, name string) (*model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "subject", Reason: "name must not be empty"}
	}
	if _, exists := st.Subjects[name]; exists {
		return nil, &ValidationError{Field: "subject", Reason: "already exists"}
	}
	subj := &model.Subject{Name: name}
	st.Subjects[name] = subj
	return subj, nil
}

// RemoveSubject deletes a subject from the store. Its log entries remain;
// they still count for statistics but drop out of priority scoring.
func RemoveSubject(st *model.State, name string) error {
	if _, ok := st.Subjects[name]; !ok {
		return &UnknownSubjectError{Subject: name}
	}
	delete(st.Subjects, name)
	return nil
}

// ConfigureSubject sets a subject's confidence and exam date.
func ConfigureSubject(st *model.State, name string, confidence int, examDate time.Time) error {
	subj, ok := st.Subjects[name]
	if !ok {
		return &UnknownSubjectError{Subject: name}
	}
	if confidence < 1 || confidence > 10 {
		return &ValidationError{Field: "confidence", Reason: "must be between 1 and 10"}
	}
	if examDate.IsZero() {
		return &ValidationError{Field: "exam_date", Reason: "must be a calendar date"}
	}
	subj.Confidence = confidence
	subj.ExamDate = model.DateOf(examDate)
	return nil
}

// SetExamDate updates only the exam date.
func SetExamDate(st *model.State, name string, examDate time.Time) error {
	subj, ok := st.Subjects[name]
	if !ok {
		return &UnknownSubjectError{Subject: name}
	}
	if examDate.IsZero() {
		return &ValidationError{Field: "exam_date", Reason: "must be a calendar date"}
	}
	subj.ExamDate = model.DateOf(examDate)
	return nil
}

// SetConfidence updates only the confidence rating.
func SetConfidence(st *model.State, name string, confidence int) error {
	subj, ok := st.Subjects[name]
	if !ok {
		return &UnknownSubjectError{Subject: name}
	}
	if confidence < 1 || confidence > 10 {
		return &ValidationError{Field: "confidence", Reason: "must be between 1 and 10"}
	}
	subj.Confidence = confidence
	return nil
}
