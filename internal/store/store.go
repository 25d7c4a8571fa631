// Package store provides SQLite persistence for subjects and the session log.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nextstep/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	dateFormat = "2006-01-02"
)

// Store is the SQLite-backed subject store and session log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadState reads all subjects and the full session log, validating stored
// values so malformed data surfaces here rather than inside scoring.
func (s *Store) LoadState() (*model.State, error) {
	st := model.NewState()

	rows, err := s.db.Query("SELECT name, confidence, exam_date FROM subjects")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var confidence sql.NullInt64
		var examDate sql.NullString
		if err := rows.Scan(&name, &confidence, &examDate); err != nil {
			return nil, err
		}

		subj := &model.Subject{Name: name}
		if confidence.Valid {
			if confidence.Int64 < 0 || confidence.Int64 > 10 {
				return nil, fmt.Errorf("subject %q: stored confidence %d out of range", name, confidence.Int64)
			}
			subj.Confidence = int(confidence.Int64)
		}
		if examDate.Valid && examDate.String != "" {
			d, err := time.ParseInLocation(dateFormat, examDate.String, time.Local)
			if err != nil {
				return nil, fmt.Errorf("subject %q: bad exam date %q: %w", name, examDate.String, err)
			}
			subj.ExamDate = d
		}
		st.Subjects[name] = subj
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Insertion order is the canonical log order.
	sessRows, err := s.db.Query(`SELECT subject, timestamp, task_type, duration_mins, effectiveness
		FROM sessions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sessRows.Close() }()

	for sessRows.Next() {
		var rec model.SessionRecord
		var ts string
		var taskType sql.NullString
		if err := sessRows.Scan(&rec.Subject, &ts, &taskType, &rec.DurationMins, &rec.Effectiveness); err != nil {
			return nil, err
		}
		when, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("session for %q: bad timestamp %q: %w", rec.Subject, ts, err)
		}
		rec.Timestamp = when.Local()
		if taskType.Valid {
			rec.TaskType = taskType.String
		}
		if rec.DurationMins <= 0 {
			return nil, fmt.Errorf("session for %q: stored duration %d is not positive", rec.Subject, rec.DurationMins)
		}
		st.Log = append(st.Log, rec)
	}

	return st, sessRows.Err()
}

// UpsertSubject writes a subject row.
func (s *Store) UpsertSubject(subj model.Subject) error {
	var confidence interface{}
	if subj.Confidence != 0 {
		confidence = subj.Confidence
	}
	var examDate interface{}
	if !subj.ExamDate.IsZero() {
		examDate = subj.ExamDate.Format(dateFormat)
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO subjects (name, confidence, exam_date)
		VALUES (?, ?, ?)`, subj.Name, confidence, examDate)
	return err
}

// DeleteSubject removes a subject. Session rows are kept: orphaned log
// entries still count for statistics.
func (s *Store) DeleteSubject(name string) error {
	_, err := s.db.Exec("DELETE FROM subjects WHERE name = ?", name)
	return err
}

// AppendSession inserts a session record. There is no update or delete for
// sessions; the log is append-only.
func (s *Store) AppendSession(rec model.SessionRecord) error {
	_, err := s.db.Exec(`INSERT INTO sessions (subject, timestamp, task_type, duration_mins, effectiveness)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Subject, rec.Timestamp.UTC().Format(time.RFC3339), rec.TaskType,
		rec.DurationMins, rec.Effectiveness,
	)
	return err
}

// ReplaceState swaps the entire database contents for the given state in
// one transaction. Used by the legacy JSON import.
func (s *Store) ReplaceState(st *model.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM subjects"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return err
	}

	for _, name := range st.SubjectNames() {
		subj := st.Subjects[name]
		var confidence interface{}
		if subj.Confidence != 0 {
			confidence = subj.Confidence
		}
		var examDate interface{}
		if !subj.ExamDate.IsZero() {
			examDate = subj.ExamDate.Format(dateFormat)
		}
		if _, err := tx.Exec(`INSERT INTO subjects (name, confidence, exam_date) VALUES (?, ?, ?)`,
			name, confidence, examDate); err != nil {
			return err
		}
	}

	for _, rec := range st.Log {
		if _, err := tx.Exec(`INSERT INTO sessions (subject, timestamp, task_type, duration_mins, effectiveness)
			VALUES (?, ?, ?, ?, ?)`,
			rec.Subject, rec.Timestamp.UTC().Format(time.RFC3339), rec.TaskType,
			rec.DurationMins, rec.Effectiveness); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SessionCount returns the number of logged sessions.
func (s *Store) SessionCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}
