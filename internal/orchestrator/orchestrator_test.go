package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbrouwer/surfcast/internal/models"
	"github.com/lbrouwer/surfcast/internal/provider"
)

// fakeStore is a minimal in-memory implementation of the Store interface
// for orchestrator-level cascade tests, avoiding a real sqlite fixture.
type fakeStore struct {
	ledger        models.FreshnessLedger
	weather       []models.HourlyWeatherRow
	dailyWeather  []models.DailyWeatherRow
	marine        []models.HourlyMarineRow
	scored        []models.ScoredHourlyRow
	halfDayCalls  int
	dailyCalls    int
	scoredCalls   int
	weatherCalls  int
	marineCalls   int
}

func (f *fakeStore) GetFreshnessLedger(ctx context.Context, spotID string) (models.FreshnessLedger, error) {
	return f.ledger, nil
}
func (f *fakeStore) UpsertHourlyWeather(ctx context.Context, spotID string, rows []models.HourlyWeatherRow, writtenAt time.Time) error {
	f.weatherCalls++
	f.weather = rows
	f.ledger.Weather = writtenAt
	return nil
}
func (f *fakeStore) GetHourlyWeather(ctx context.Context, spotID string) ([]models.HourlyWeatherRow, error) {
	return f.weather, nil
}
func (f *fakeStore) UpsertDailyWeather(ctx context.Context, spotID string, rows []models.DailyWeatherRow, writtenAt time.Time) error {
	f.dailyWeather = rows
	f.ledger.DailyWeather = writtenAt
	return nil
}
func (f *fakeStore) GetDailyWeather(ctx context.Context, spotID string) ([]models.DailyWeatherRow, error) {
	return f.dailyWeather, nil
}
func (f *fakeStore) UpsertHourlyMarine(ctx context.Context, spotID string, rows []models.HourlyMarineRow, writtenAt time.Time) error {
	f.marineCalls++
	f.marine = rows
	f.ledger.Marine = writtenAt
	return nil
}
func (f *fakeStore) GetHourlyMarine(ctx context.Context, spotID string) ([]models.HourlyMarineRow, error) {
	return f.marine, nil
}
func (f *fakeStore) UpsertScoredHourly(ctx context.Context, spotID string, rows []models.ScoredHourlyRow, writtenAt time.Time) error {
	f.scoredCalls++
	f.scored = rows
	f.ledger.Scored = writtenAt
	return nil
}
func (f *fakeStore) GetScoredHourly(ctx context.Context, spotID string) ([]models.ScoredHourlyRow, error) {
	return f.scored, nil
}
func (f *fakeStore) UpsertHalfDayAggregates(ctx context.Context, spotID string, rows []models.HalfDayAggregateRow, writtenAt time.Time) error {
	f.halfDayCalls++
	f.ledger.HalfDay = writtenAt
	return nil
}
func (f *fakeStore) UpsertDailyAggregates(ctx context.Context, spotID string, rows []models.DailyAggregateRow, writtenAt time.Time) error {
	f.dailyCalls++
	f.ledger.DailyScores = writtenAt
	return nil
}

type fakeAtmo struct{ calls int }

func (a *fakeAtmo) FetchHourlyAndDailyWeather(spotID string, lat, lon float64) (provider.HourlyWeather, provider.DailyWeather, error) {
	a.calls++
	ts := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	speed, dir := 10.0, 60.0
	return provider.HourlyWeather{
			SpotID:       spotID,
			TimestampUTC: []time.Time{ts},
			WindSpeedKn:  []*float64{&speed},
			WindDirDeg:   []*float64{&dir},
			TemperatureC: []*float64{nil},
			WindGustsKn:  []*float64{nil},
		}, provider.DailyWeather{
			SpotID:          spotID,
			DateLocal:       []string{"2026-07-31"},
			SunriseUTC:      []time.Time{ts.Add(-6 * time.Hour)},
			SunsetUTC:       []time.Time{ts.Add(6 * time.Hour)},
			DaylightSeconds: []float64{43200},
		}, nil
}

type fakeMarine struct{ calls int }

func (m *fakeMarine) FetchHourlyMarine(spotID string, lat, lon float64) (provider.HourlyMarine, error) {
	m.calls++
	return provider.HourlyMarine{}, nil
}

// TestRefreshOne_CascadeSkipsFreshMarine verifies that a stale weather layer
// with a fresh marine layer fetches weather but not marine, yet still
// re-derives scored and half-day rows downstream (§4.5).
func TestRefreshOne_CascadeSkipsFreshMarine(t *testing.T) {
	now := time.Now().UTC()
	fs := &fakeStore{
		ledger: models.FreshnessLedger{
			SpotID:       "supertubos",
			Weather:      now.Add(-10 * time.Hour), // stale
			Marine:       now.Add(-1 * time.Hour),  // fresh
			DailyWeather: now.Add(-1 * time.Hour),
			Scored:       now.Add(-10 * time.Hour),
			HalfDay:      now.Add(-10 * time.Hour),
			DailyScores:  now.Add(-10 * time.Hour),
		},
		marine: []models.HourlyMarineRow{
			{SpotID: "supertubos", TimestampUTC: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC), WaveHeightM: f(1.5), WaveDirDeg: f(300), WavePeriodS: f(12)},
		},
	}
	atmo := &fakeAtmo{}
	marine := &fakeMarine{}

	o := New(fs, atmo, marine, 6*time.Hour, 1, nil)
	outcome := o.refreshOne(context.Background(), "supertubos", false)

	assert.Equal(t, 1, atmo.calls)
	assert.Equal(t, 0, marine.calls, "marine layer was fresh, must not be refetched")
	assert.Equal(t, 1, fs.scoredCalls)
	assert.Equal(t, 1, fs.halfDayCalls)
	assert.Equal(t, 1, fs.dailyCalls)

	layers := map[string]bool{}
	for _, s := range outcome.Steps {
		layers[s.Layer] = s.Updated
	}
	assert.True(t, layers[string(models.LayerWeather)])
	assert.True(t, layers[string(models.LayerScored)])
	assert.True(t, layers[string(models.LayerHalfDay)])
	assert.True(t, layers[string(models.LayerDailyScores)])
	_, marineTouched := layers[string(models.LayerMarine)]
	assert.False(t, marineTouched)
}

func TestRefreshSpots_UnknownSpotReportsInvalidInput(t *testing.T) {
	fs := &fakeStore{ledger: models.FreshnessLedger{SpotID: "nowhere"}}
	o := New(fs, &fakeAtmo{}, &fakeMarine{}, 6*time.Hour, 2, nil)
	outcomes := o.RefreshSpots(context.Background(), []string{"nowhere"}, false)
	require.Len(t, outcomes, 1)
	assert.NotEmpty(t, outcomes[0].Error)
}

func TestForceRefresh_BypassesFreshness(t *testing.T) {
	now := time.Now().UTC()
	fs := &fakeStore{
		ledger: models.FreshnessLedger{
			SpotID: "supertubos", Weather: now, Marine: now, DailyWeather: now,
			Scored: now, HalfDay: now, DailyScores: now,
		},
		marine: []models.HourlyMarineRow{
			{SpotID: "supertubos", TimestampUTC: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC), WaveHeightM: f(1.5), WaveDirDeg: f(300), WavePeriodS: f(12)},
		},
	}
	atmo := &fakeAtmo{}
	o := New(fs, atmo, &fakeMarine{}, 6*time.Hour, 1, nil)
	o.ForceRefresh(context.Background(), "supertubos")
	assert.Equal(t, 1, atmo.calls, "force must refetch even when everything is fresh")
}

func f(v float64) *float64 { return &v }
