package database

import "github.com/lbrouwer/surfcast/internal/dberrors"

// Re-export the dberrors sentinels this package's callers actually branch
// on, so a file that only imports internal/database doesn't also need
// internal/dberrors for a not-found check.
var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = dberrors.ErrNotFound

	// ErrTransaction indicates that a transaction error occurred.
	ErrTransaction = dberrors.ErrTransaction
)

// WrapNotFound converts sql.ErrNoRows to ErrNotFound, leaving other errors
// untouched. Used by store.GetSpot.
func WrapNotFound(err error) error {
	return dberrors.WrapNotFound(err)
}

// IsNotFound reports whether err represents a not-found condition.
func IsNotFound(err error) bool {
	return dberrors.IsNotFound(err)
}
