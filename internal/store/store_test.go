package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr(f float64) *float64 { return &f }

func TestStore_UpsertAndGetSpot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	spot := models.Spot{
		SpotID:        "supertubos",
		DisplayName:   "Supertubos",
		Region:        "Peniche, Portugal",
		Latitude:      39.34,
		Longitude:     -9.37,
		Timezone:      "Europe/Lisbon",
		SwellDirRange: models.DirRange{Min: 270, Max: 315},
		WindDirRange:  models.DirRange{Min: 30, Max: 90},
	}
	require.NoError(t, s.UpsertSpot(ctx, spot))

	got, err := s.GetSpot(ctx, "supertubos")
	require.NoError(t, err)
	assert.Equal(t, spot.DisplayName, got.DisplayName)
	assert.Equal(t, spot.SwellDirRange, got.SwellDirRange)
}

func TestStore_GetSpot_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSpot(context.Background(), "nowhere")
	assert.Error(t, err)
}

func TestStore_UpsertHourlyWeather_TouchesLedger(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	rows := []models.HourlyWeatherRow{
		{SpotID: "supertubos", TimestampUTC: now, TemperatureC: ptr(18.0), WindSpeedKn: ptr(10.0), WindDirDeg: ptr(40.0)},
	}
	require.NoError(t, s.UpsertHourlyWeather(ctx, "supertubos", rows, now))

	got, err := s.GetHourlyWeather(ctx, "supertubos")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, now, got[0].TimestampUTC)

	ledger, err := s.GetFreshnessLedger(ctx, "supertubos")
	require.NoError(t, err)
	assert.WithinDuration(t, now, ledger.Weather, time.Second)
	assert.True(t, ledger.Marine.IsZero())
}

func TestStore_UpsertHourlyWeather_Overwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)

	first := []models.HourlyWeatherRow{{SpotID: "supertubos", TimestampUTC: ts, TemperatureC: ptr(18.0)}}
	require.NoError(t, s.UpsertHourlyWeather(ctx, "supertubos", first, ts))

	second := []models.HourlyWeatherRow{{SpotID: "supertubos", TimestampUTC: ts, TemperatureC: ptr(20.0)}}
	require.NoError(t, s.UpsertHourlyWeather(ctx, "supertubos", second, ts.Add(time.Hour)))

	got, err := s.GetHourlyWeather(ctx, "supertubos")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 20.0, *got[0].TemperatureC)
}

func TestStore_FreshnessLedger_AbsentSpotIsZeroValued(t *testing.T) {
	s := newTestStore(t)
	ledger, err := s.GetFreshnessLedger(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.True(t, ledger.Weather.IsZero())
	assert.True(t, ledger.Scored.IsZero())
}

func TestStore_UpsertScoredHourly_RejectsOutOfRangeTotalBeforeStamping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	bad := []models.ScoredHourlyRow{{SpotID: "supertubos", TimestampUTC: now, TotalPoints: 11}}
	err := s.UpsertScoredHourly(ctx, "supertubos", bad, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, dberrors.ErrStoreCorrupt)

	ledger, err := s.GetFreshnessLedger(ctx, "supertubos")
	require.NoError(t, err)
	assert.True(t, ledger.Scored.IsZero(), "ledger must not be stamped when the write was rejected")
}

func TestStore_UpsertHalfDayAggregates_RejectsUnknownHalf(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	bad := []models.HalfDayAggregateRow{{SpotID: "supertubos", DateLocal: "2026-08-01", Half: "evening", MeanScore: 5}}
	err := s.UpsertHalfDayAggregates(ctx, "supertubos", bad, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, dberrors.ErrStoreCorrupt)
}

func TestStore_WithWriteLock_BusyStripeSurfacesErrStoreBusy(t *testing.T) {
	s := newTestStore(t)
	lock := s.stripeFor("supertubos", string(models.LayerWeather))
	lock.Lock()
	defer lock.Unlock()

	err := s.withWriteLock("supertubos", string(models.LayerWeather), func() error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, dberrors.ErrStoreBusy)
}

func TestStore_GetDetailSnapshot_ReadsAllFourTables(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.UpsertDailyAggregates(ctx, "supertubos", []models.DailyAggregateRow{
		{SpotID: "supertubos", DateLocal: "2026-08-01", MeanScore: 6, ModalRating: "Good"},
	}, now))
	require.NoError(t, s.UpsertScoredHourly(ctx, "supertubos", []models.ScoredHourlyRow{
		{SpotID: "supertubos", TimestampUTC: now, TotalPoints: 6, SurfRating: "Good"},
	}, now))

	snap, err := s.GetDetailSnapshot(ctx, "supertubos")
	require.NoError(t, err)
	require.Len(t, snap.DailyAggregates, 1)
	require.Len(t, snap.ScoredHourly, 1)
	assert.Empty(t, snap.DailyWeather)
	assert.Empty(t, snap.HourlyMarine)
}

func TestStore_WithWriteLock_SucceedsOnceStripeFrees(t *testing.T) {
	s := newTestStore(t)
	lock := s.stripeFor("supertubos", string(models.LayerWeather))
	lock.Lock()
	go func() {
		time.Sleep(stripeRetryDelay / 2)
		lock.Unlock()
	}()

	called := false
	err := s.withWriteLock("supertubos", string(models.LayerWeather), func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
