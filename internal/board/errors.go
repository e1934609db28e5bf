package board

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Error taxonomy surfaced by the coordinator. Handlers map these to HTTP
// status codes; storage-layer detail never reaches responses.
var (
	// ErrNotFound covers a missing task, column, or project, and a caller
	// who is not a participant of the project (existence is not revealed).
	ErrNotFound = errors.New("not found")

	// ErrValidation covers missing required fields or malformed enum values.
	ErrValidation = errors.New("validation failed")

	// ErrAssignmentIndeterminate is raised when automatic assignment was
	// requested, the candidate pool is empty, and no explicit assignee was
	// given.
	ErrAssignmentIndeterminate = errors.New("no assignment candidates available")

	// ErrPersistence wraps a rejected write. No automatic retry is done
	// here; idempotent retry is a caller concern.
	ErrPersistence = errors.New("persistence failed")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// persistErr wraps a store failure. The root cause is logged here because
// it never travels to the caller: responses carry the taxonomy error only.
func persistErr(op string, cause error) error {
	log.WithFields(log.Fields{"op": op, "error": cause}).Error("store operation failed")
	return fmt.Errorf("%w: %s", ErrPersistence, op)
}
