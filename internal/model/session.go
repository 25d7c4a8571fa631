package model

import (
	"sort"
	"time"
)

// SessionRecord is one logged study session. Records are immutable once
// appended; nothing in the core edits or deletes them.
type SessionRecord struct {
	Subject       string
	Timestamp     time.Time
	TaskType      string
	DurationMins  int
	Effectiveness int
}

// State bundles the subject store and the session log. It is owned by the
// caller: load at start, pass to core operations, persist mutations at end.
type State struct {
	Subjects map[string]*Subject
	Log      []SessionRecord
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Subjects: make(map[string]*Subject)}
}

// SubjectNames returns all subject names in sorted order. Core operations
// iterate this instead of the map so results are deterministic.
func (st *State) SubjectNames() []string {
	names := make([]string, 0, len(st.Subjects))
	for name := range st.Subjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configured reports whether every subject has confidence and an exam date.
// The planner refuses to run until this holds.
func (st *State) Configured() bool {
	for _, s := range st.Subjects {
		if !s.Configured() {
			return false
		}
	}
	return true
}
