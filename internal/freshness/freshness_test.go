package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/lbrouwer/surfcast/internal/models"
)

func TestIsStale_AbsentEntryIsStale(t *testing.T) {
	ledger := models.FreshnessLedger{SpotID: "supertubos"}
	assert.True(t, IsStale(ledger, models.LayerWeather, 6*time.Hour, time.Now()))
}

func TestIsStale_WithinThreshold(t *testing.T) {
	now := time.Now().UTC()
	ledger := models.FreshnessLedger{SpotID: "supertubos", Weather: now.Add(-2 * time.Hour)}
	assert.False(t, IsStale(ledger, models.LayerWeather, 6*time.Hour, now))
}

func TestIsStale_BeyondThreshold(t *testing.T) {
	now := time.Now().UTC()
	ledger := models.FreshnessLedger{SpotID: "supertubos", Weather: now.Add(-7 * time.Hour)}
	assert.True(t, IsStale(ledger, models.LayerWeather, 6*time.Hour, now))
}
