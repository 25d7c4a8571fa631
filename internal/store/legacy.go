package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"nextstep/internal/model"
)

// Wire shapes for the original JSON files. The field names are the
// compatibility contract; do not rename them.
type legacySubject struct {
	Confidence *int    `json:"confidence"`
	ExamDate   *string `json:"exam_date"`
}

type legacySession struct {
	Subject       string `json:"subject"`
	Timestamp     string `json:"timestamp"`
	TaskType      string `json:"task_type"`
	DurationMins  int    `json:"duration_mins"`
	Effectiveness int    `json:"effectiveness"`
}

// Timestamp layouts seen in existing log files: RFC 3339, ISO 8601 without
// zone, and the space-separated variant, with or without fractional seconds.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// ImportJSON reads the original subjects.json and log.json files into a
// validated state. Either path may be empty to skip that file.
func ImportJSON(subjectsPath, logPath string) (*model.State, error) {
	st := model.NewState()

	if subjectsPath != "" {
		data, err := os.ReadFile(subjectsPath) //nolint:gosec // user-supplied import path
		if err != nil {
			return nil, fmt.Errorf("reading subjects file: %w", err)
		}
		var subjects map[string]legacySubject
		if err := json.Unmarshal(data, &subjects); err != nil {
			return nil, fmt.Errorf("parsing subjects file: %w", err)
		}

		for name, ls := range subjects {
			subj := &model.Subject{Name: name}
			if ls.Confidence != nil {
				if *ls.Confidence < 1 || *ls.Confidence > 10 {
					return nil, fmt.Errorf("subject %q: confidence %d out of range", name, *ls.Confidence)
				}
				subj.Confidence = *ls.Confidence
			}
			if ls.ExamDate != nil && *ls.ExamDate != "" {
				d, err := time.ParseInLocation(dateFormat, *ls.ExamDate, time.Local)
				if err != nil {
					return nil, fmt.Errorf("subject %q: bad exam_date %q: %w", name, *ls.ExamDate, err)
				}
				subj.ExamDate = d
			}
			st.Subjects[name] = subj
		}
	}

	if logPath != "" {
		data, err := os.ReadFile(logPath) //nolint:gosec // user-supplied import path
		if err != nil {
			return nil, fmt.Errorf("reading log file: %w", err)
		}
		var entries []legacySession
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing log file: %w", err)
		}

		for i, e := range entries {
			if e.Subject == "" {
				return nil, fmt.Errorf("log entry %d: missing subject", i)
			}
			if e.DurationMins <= 0 {
				return nil, fmt.Errorf("log entry %d: duration_mins must be positive", i)
			}
			if e.Effectiveness < 1 || e.Effectiveness > 10 {
				return nil, fmt.Errorf("log entry %d: effectiveness %d out of range", i, e.Effectiveness)
			}
			when, err := parseLegacyTime(e.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("log entry %d: %w", i, err)
			}
			st.Log = append(st.Log, model.SessionRecord{
				Subject:       e.Subject,
				Timestamp:     when,
				TaskType:      e.TaskType,
				DurationMins:  e.DurationMins,
				Effectiveness: e.Effectiveness,
			})
		}
	}

	return st, nil
}

// ExportJSON writes the state back out in the original two-file format.
func ExportJSON(st *model.State, subjectsPath, logPath string) error {
	subjects := make(map[string]legacySubject, len(st.Subjects))
	for name, subj := range st.Subjects {
		ls := legacySubject{}
		if subj.Confidence != 0 {
			conf := subj.Confidence
			ls.Confidence = &conf
		}
		if !subj.ExamDate.IsZero() {
			date := subj.ExamDate.Format(dateFormat)
			ls.ExamDate = &date
		}
		subjects[name] = ls
	}

	data, err := json.MarshalIndent(subjects, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(subjectsPath, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing subjects file: %w", err)
	}

	entries := make([]legacySession, 0, len(st.Log))
	for _, rec := range st.Log {
		entries = append(entries, legacySession{
			Subject:       rec.Subject,
			Timestamp:     rec.Timestamp.Format(time.RFC3339),
			TaskType:      rec.TaskType,
			DurationMins:  rec.DurationMins,
			Effectiveness: rec.Effectiveness,
		})
	}

	data, err = json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(logPath, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing log file: %w", err)
	}

	return nil
}

func parseLegacyTime(s string) (time.Time, error) {
	for _, layout := range legacyTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", s)
}
