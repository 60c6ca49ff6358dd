package ingest

import "fmt"

// ValidationError rejects a submission before timestamping or persistence.
// Nothing is written when one is returned.
type ValidationError struct {
	// Message is the client-facing error string, e.g. "moduleId is required".
	Message string

	// Details optionally elaborates on the offending value.
	Details string

	// Allowed carries the active allowed set for enum-like fields.
	Allowed []string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// PersistenceError is a ledger-side failure. The submission is rejected and
// no identifier is considered consumed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
