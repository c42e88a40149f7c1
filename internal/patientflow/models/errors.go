package models

import "errors"

// Error taxonomy shared by the queue core. Controllers map these to HTTP
// status codes with errors.Is; callers are expected to re-poll and retry
// on the next cycle rather than rely on internal retries.
var (
	// ErrNotFound marks an unknown visit, entry or patient.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks an illegal stage edge, an action on an
	// entry in a terminal status, or the loser of a double-advance race.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidationFailed marks out-of-range or malformed input fields.
	ErrValidationFailed = errors.New("validation failed")
)
