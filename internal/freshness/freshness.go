// Package freshness implements the central staleness rule: is layer L for
// spot S older than threshold T?
package freshness

import (
	"time"

	"github.com/lbrouwer/surfcast/internal/models"
)

// IsStale reports whether the ledger entry for layer is absent or older than
// threshold, relative to now. All comparisons are performed in UTC.
func IsStale(ledger models.FreshnessLedger, layer models.Layer, threshold time.Duration, now time.Time) bool {
	ts := ledger.At(layer)
	if ts.IsZero() {
		return true
	}
	return now.UTC().Sub(ts.UTC()) > threshold
}
