// Package dberrors defines the sentinel error taxonomy shared by the store,
// the orchestrator, and the HTTP layer, so callers can branch with errors.Is
// instead of string matching.
package dberrors

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested spot or row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique-constraint or concurrent-write conflict.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates caller-supplied parameters violate a constraint.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransaction indicates a transaction failed to begin, commit, or roll back.
	ErrTransaction = errors.New("transaction error")

	// ErrStoreBusy indicates a conflicting write is already in flight for the
	// same (spot_id, layer) pair.
	ErrStoreBusy = errors.New("store busy")

	// ErrStoreCorrupt indicates an invariant could not be satisfied before a
	// write was committed. Fatal; surfaced to the caller without retry.
	ErrStoreCorrupt = errors.New("store corrupt")

	// ErrPrerequisiteMissing indicates a downstream step found no rows in its
	// required input layer.
	ErrPrerequisiteMissing = errors.New("prerequisite missing")

	// ErrProviderUnavailable indicates an upstream HTTP provider failed after
	// exhausting its retry schedule.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// WrapNotFound converts sql.ErrNoRows to ErrNotFound, leaving other errors untouched.
func WrapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// IsNotFound reports whether err represents a not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// IsConflict reports whether err represents a conflict condition.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsBusy reports whether err represents store write contention.
func IsBusy(err error) bool {
	return errors.Is(err, ErrStoreBusy)
}
