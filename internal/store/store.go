// Package store is the sqlite-backed persistence layer for all six
// forecast layers plus the freshness ledger (§4.2). Writes to a given
// (spot_id, layer) pair are serialized through a striped mutex map so
// concurrent refreshes of different spots never block each other, but
// concurrent refreshes of the same spot/layer never interleave.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lbrouwer/surfcast/internal/dberrors"
)

// stripeRetryDelay is how long withWriteLock waits before its one retry of
// a contended stripe. Short enough that a refresh cascade's own writer
// (typically microseconds to milliseconds of work per upsert) has almost
// certainly released the stripe by the second attempt.
const stripeRetryDelay = 5 * time.Millisecond

//go:embed schema.sql
var schemaSQL string

// Store wraps a sqlite connection and the stripe lock map guarding writes.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	stripes map[string]*sync.Mutex
}

// Open creates (if necessary) and opens the sqlite file at path, runs the
// schema migration, and returns a ready Store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening store: %v", dberrors.ErrStoreCorrupt, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: single writer, avoids SQLITE_BUSY under our own lock
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL: %v", dberrors.ErrStoreCorrupt, err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %v", dberrors.ErrStoreCorrupt, err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running schema migration: %v", dberrors.ErrStoreCorrupt, err)
	}

	return &Store{
		db:      db,
		stripes: make(map[string]*sync.Mutex),
	}, nil
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// stripeFor returns (creating if absent) the mutex guarding writes to
// spotID+layer. The map itself is protected by mu; the per-key mutex is
// held for the duration of the caller's write.
func (s *Store) stripeFor(spotID, layer string) *sync.Mutex {
	key := spotID + ":" + layer
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.stripes[key]
	if !ok {
		m = &sync.Mutex{}
		s.stripes[key] = m
	}
	return m
}

// withWriteLock attempts the stripe for spotID+layer with TryLock, retrying
// once after stripeRetryDelay before giving up. §4.2 defines "at most one
// writer in flight per (spot_id, layer)" as a non-blocking guarantee: a
// caller that loses the stripe gets dberrors.ErrStoreBusy back rather than
// queueing indefinitely behind another writer. Any sqlite-level busy error
// surfaced by fn itself is translated the same way.
func (s *Store) withWriteLock(spotID, layer string, fn func() error) error {
	lock := s.stripeFor(spotID, layer)

	if !lock.TryLock() {
		time.Sleep(stripeRetryDelay)
		if !lock.TryLock() {
			return fmt.Errorf("%w: stripe %s:%s busy", dberrors.ErrStoreBusy, spotID, layer)
		}
	}
	defer lock.Unlock()

	if err := fn(); err != nil {
		if isBusyErr(err) {
			return fmt.Errorf("%w: %v", dberrors.ErrStoreBusy, err)
		}
		return err
	}
	return nil
}

func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked")
}

// DB exposes the underlying connection for callers that need raw access,
// e.g. health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
