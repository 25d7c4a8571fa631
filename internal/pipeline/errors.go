package pipeline

import "fmt"

// IncompleteSetupError is returned when the planner runs before every
// subject has a confidence rating and an exam date.
type IncompleteSetupError struct {
	Subject string
}

func (e *IncompleteSetupError) Error() string {
	return fmt.Sprintf("subject %q is missing a confidence rating or exam date; finish setup first", e.Subject)
}

// UnknownSubjectError is returned when an operation references a subject
// that is not in the store.
type UnknownSubjectError struct {
	Subject string
}

func (e *UnknownSubjectError) Error() string {
	return fmt.Sprintf("unknown subject %q", e.Subject)
}

// ValidationError is returned for out-of-range or malformed input. The
// operation that returns it has not mutated any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
