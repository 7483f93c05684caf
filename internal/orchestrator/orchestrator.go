// Package orchestrator implements the Refresh Orchestrator: the cascade
// that decides which layers are stale, re-fetches or re-derives them in
// dependency order, and records one outcome per step (§4.5).
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lbrouwer/surfcast/internal/aggregate"
	"github.com/lbrouwer/surfcast/internal/catalog"
	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/freshness"
	"github.com/lbrouwer/surfcast/internal/metrics"
	"github.com/lbrouwer/surfcast/internal/models"
	"github.com/lbrouwer/surfcast/internal/provider"
	"github.com/lbrouwer/surfcast/internal/scoring"
	"github.com/lbrouwer/surfcast/internal/store"
)

// Store is the subset of *store.Store the Orchestrator depends on.
type Store interface {
	GetFreshnessLedger(ctx context.Context, spotID string) (models.FreshnessLedger, error)
	UpsertHourlyWeather(ctx context.Context, spotID string, rows []models.HourlyWeatherRow, writtenAt time.Time) error
	GetHourlyWeather(ctx context.Context, spotID string) ([]models.HourlyWeatherRow, error)
	UpsertDailyWeather(ctx context.Context, spotID string, rows []models.DailyWeatherRow, writtenAt time.Time) error
	GetDailyWeather(ctx context.Context, spotID string) ([]models.DailyWeatherRow, error)
	UpsertHourlyMarine(ctx context.Context, spotID string, rows []models.HourlyMarineRow, writtenAt time.Time) error
	GetHourlyMarine(ctx context.Context, spotID string) ([]models.HourlyMarineRow, error)
	UpsertScoredHourly(ctx context.Context, spotID string, rows []models.ScoredHourlyRow, writtenAt time.Time) error
	GetScoredHourly(ctx context.Context, spotID string) ([]models.ScoredHourlyRow, error)
	UpsertHalfDayAggregates(ctx context.Context, spotID string, rows []models.HalfDayAggregateRow, writtenAt time.Time) error
	UpsertDailyAggregates(ctx context.Context, spotID string, rows []models.DailyAggregateRow, writtenAt time.Time) error
}

var _ Store = (*store.Store)(nil)

// Orchestrator wires the Store, the two Provider Adapters, and the pure
// Scorer/Aggregator functions into the refresh cascade.
type Orchestrator struct {
	Store        Store
	Atmospheric  provider.AtmosphericProvider
	Marine       provider.MarineProvider
	RawThreshold time.Duration
	Fanout       int
	Logger       *slog.Logger
}

// New builds an Orchestrator. logger may be nil, in which case slog.Default
// is used.
func New(s Store, atmo provider.AtmosphericProvider, marine provider.MarineProvider, rawThreshold time.Duration, fanout int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if fanout < 1 {
		fanout = 1
	}
	return &Orchestrator{
		Store:        s,
		Atmospheric:  atmo,
		Marine:       marine,
		RawThreshold: rawThreshold,
		Fanout:       fanout,
		Logger:       logger,
	}
}

// RefreshAll refreshes every spot in the catalog, honoring per-spot
// freshness checks, up to the configured fan-out.
func (o *Orchestrator) RefreshAll(ctx context.Context) []SpotOutcome {
	return o.RefreshSpots(ctx, catalog.IDs(), false)
}

// ForceRefresh refreshes a single spot unconditionally, bypassing every
// freshness check.
func (o *Orchestrator) ForceRefresh(ctx context.Context, spotID string) SpotOutcome {
	return o.refreshOne(ctx, spotID, true)
}

// RefreshSpot refreshes a single spot, honoring freshness checks unless
// force is true.
func (o *Orchestrator) RefreshSpot(ctx context.Context, spotID string, force bool) SpotOutcome {
	return o.refreshOne(ctx, spotID, force)
}

// RefreshSpots refreshes an explicit subset of the catalog concurrently, up
// to the configured fan-out. Unknown spot IDs are reported as a per-spot
// InvalidInput outcome rather than aborting the batch (§4.5 supplement).
func (o *Orchestrator) RefreshSpots(ctx context.Context, spotIDs []string, force bool) []SpotOutcome {
	sem := make(chan struct{}, o.Fanout)
	var wg sync.WaitGroup
	outcomes := make([]SpotOutcome, len(spotIDs))

	for i, id := range spotIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, spotID string) {
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				outcomes[i] = SpotOutcome{SpotID: spotID, Error: ctx.Err().Error()}
				return
			default:
			}
			outcomes[i] = o.refreshOne(ctx, spotID, force)
		}(i, id)
	}
	wg.Wait()
	return outcomes
}

func (o *Orchestrator) refreshOne(ctx context.Context, spotID string, force bool) SpotOutcome {
	outcome := SpotOutcome{SpotID: spotID}

	spot, ok := catalog.Find(spotID)
	if !ok {
		outcome.Error = dberrors.ErrInvalidInput.Error()
		metrics.RefreshStepOutcomes.WithLabelValues("catalog", "invalid_input").Inc()
		return outcome
	}

	ledger, err := o.Store.GetFreshnessLedger(ctx, spotID)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	now := time.Now().UTC()
	needsWeather := force || freshness.IsStale(ledger, models.LayerWeather, o.RawThreshold, now)
	needsDailyWeather := force || freshness.IsStale(ledger, models.LayerDailyWeather, o.RawThreshold, now)
	needsMarine := force || freshness.IsStale(ledger, models.LayerMarine, o.RawThreshold, now)
	rawTouched := needsWeather || needsMarine

	needsScored := force || freshness.IsStale(ledger, models.LayerScored, o.RawThreshold, now) || rawTouched
	needsHalfDay := force || freshness.IsStale(ledger, models.LayerHalfDay, o.RawThreshold, now) || needsScored
	needsDailyScores := force || freshness.IsStale(ledger, models.LayerDailyScores, o.RawThreshold, now) || needsScored

	haveWeather := !needsWeather
	haveMarine := !needsMarine

	// Step 1: atmospheric fetch.
	if needsWeather || needsDailyWeather {
		hourly, daily, err := o.Atmospheric.FetchHourlyAndDailyWeather(spotID, spot.Latitude, spot.Longitude)
		if err != nil {
			outcome.record(string(models.LayerWeather), false, err)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerWeather), "failure").Inc()
		} else {
			writeErr := o.writeAtmospheric(ctx, spotID, needsWeather, needsDailyWeather, hourly, daily, now)
			outcome.record(string(models.LayerWeather), writeErr == nil, writeErr)
			if writeErr == nil {
				haveWeather = true
				metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerWeather), "updated").Inc()
			} else {
				metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerWeather), "failure").Inc()
			}
		}
	}

	// Step 2: marine fetch.
	if needsMarine {
		marine, err := o.Marine.FetchHourlyMarine(spotID, spot.Latitude, spot.Longitude)
		if err != nil {
			outcome.record(string(models.LayerMarine), false, err)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerMarine), "failure").Inc()
		} else {
			rows := marineToRows(spotID, marine)
			if err := o.Store.UpsertHourlyMarine(ctx, spotID, rows, now); err != nil {
				outcome.record(string(models.LayerMarine), false, err)
				metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerMarine), "failure").Inc()
			} else {
				outcome.record(string(models.LayerMarine), true, nil)
				haveMarine = true
				metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerMarine), "updated").Inc()
			}
		}
	}

	// Step 3: scoring, requires both weather and marine currently cached.
	var scoredUpdated bool
	if needsScored {
		if !haveWeather || !haveMarine {
			outcome.record(string(models.LayerScored), false, dberrors.ErrPrerequisiteMissing)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerScored), "prerequisite_missing").Inc()
		} else if err := o.runScoring(ctx, spotID, spot, now); err != nil {
			outcome.record(string(models.LayerScored), false, err)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerScored), "failure").Inc()
		} else {
			outcome.record(string(models.LayerScored), true, nil)
			scoredUpdated = true
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerScored), "updated").Inc()
		}
	}

	// Steps 4 & 5: aggregation, require scored rows.
	if needsHalfDay {
		if !scoredUpdated && needsScored {
			outcome.record(string(models.LayerHalfDay), false, dberrors.ErrPrerequisiteMissing)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerHalfDay), "prerequisite_missing").Inc()
		} else if err := o.runHalfDay(ctx, spotID, spot, now); err != nil {
			outcome.record(string(models.LayerHalfDay), false, err)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerHalfDay), "failure").Inc()
		} else {
			outcome.record(string(models.LayerHalfDay), true, nil)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerHalfDay), "updated").Inc()
		}
	}

	if needsDailyScores {
		if !scoredUpdated && needsScored {
			outcome.record(string(models.LayerDailyScores), false, dberrors.ErrPrerequisiteMissing)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerDailyScores), "prerequisite_missing").Inc()
		} else if err := o.runDailyScores(ctx, spotID, spot, now); err != nil {
			outcome.record(string(models.LayerDailyScores), false, err)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerDailyScores), "failure").Inc()
		} else {
			outcome.record(string(models.LayerDailyScores), true, nil)
			metrics.RefreshStepOutcomes.WithLabelValues(string(models.LayerDailyScores), "updated").Inc()
		}
	}

	return outcome
}

func (o *Orchestrator) writeAtmospheric(ctx context.Context, spotID string, needsWeather, needsDailyWeather bool, hourly provider.HourlyWeather, daily provider.DailyWeather, now time.Time) error {
	if needsWeather {
		rows := make([]models.HourlyWeatherRow, len(hourly.TimestampUTC))
		for i, ts := range hourly.TimestampUTC {
			rows[i] = models.HourlyWeatherRow{
				SpotID:       spotID,
				TimestampUTC: ts,
				TemperatureC: hourly.TemperatureC[i],
				WindSpeedKn:  hourly.WindSpeedKn[i],
				WindDirDeg:   hourly.WindDirDeg[i],
				WindGustsKn:  hourly.WindGustsKn[i],
			}
		}
		if err := o.Store.UpsertHourlyWeather(ctx, spotID, rows, now); err != nil {
			return err
		}
	}
	if needsDailyWeather {
		rows := make([]models.DailyWeatherRow, len(daily.DateLocal))
		for i, date := range daily.DateLocal {
			rows[i] = models.DailyWeatherRow{
				SpotID:          spotID,
				DateLocal:       date,
				SunriseUTC:      daily.SunriseUTC[i],
				SunsetUTC:       daily.SunsetUTC[i],
				DaylightSeconds: daily.DaylightSeconds[i],
				TempMinC:        daily.TempMinC[i],
				TempMaxC:        daily.TempMaxC[i],
			}
		}
		if err := o.Store.UpsertDailyWeather(ctx, spotID, rows, now); err != nil {
			return err
		}
	}
	return nil
}

func marineToRows(spotID string, m provider.HourlyMarine) []models.HourlyMarineRow {
	rows := make([]models.HourlyMarineRow, len(m.TimestampUTC))
	for i, ts := range m.TimestampUTC {
		rows[i] = models.HourlyMarineRow{
			SpotID:          spotID,
			TimestampUTC:    ts,
			WaveHeightM:     m.WaveHeightM[i],
			WaveDirDeg:      m.WaveDirDeg[i],
			WavePeriodS:     m.WavePeriodS[i],
			SeaLevelHeightM: m.SeaLevelHeightM[i],
		}
	}
	return rows
}

// runScoring loads the cached weather/marine layers, inner-joins on
// timestamp, applies the Scorer, and persists the result.
func (o *Orchestrator) runScoring(ctx context.Context, spotID string, spot models.Spot, now time.Time) error {
	weather, err := o.Store.GetHourlyWeather(ctx, spotID)
	if err != nil {
		return err
	}
	marine, err := o.Store.GetHourlyMarine(ctx, spotID)
	if err != nil {
		return err
	}

	byTimestamp := make(map[int64]models.HourlyMarineRow, len(marine))
	for _, m := range marine {
		byTimestamp[m.TimestampUTC.Unix()] = m
	}

	var scored []models.ScoredHourlyRow
	for _, w := range weather {
		m, ok := byTimestamp[w.TimestampUTC.Unix()]
		if !ok {
			continue
		}
		row := scoring.ScoreHour(scoring.Inputs{
			WaveHeightM: m.WaveHeightM,
			WaveDirDeg:  m.WaveDirDeg,
			WavePeriodS: m.WavePeriodS,
			WindSpeedKn: w.WindSpeedKn,
			WindDirDeg:  w.WindDirDeg,
		}, spot)
		row.SpotID = spotID
		row.TimestampUTC = w.TimestampUTC
		scored = append(scored, row)
	}

	return o.Store.UpsertScoredHourly(ctx, spotID, scored, now)
}

func (o *Orchestrator) loc(spot models.Spot) *time.Location {
	loc, err := time.LoadLocation(spot.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (o *Orchestrator) runHalfDay(ctx context.Context, spotID string, spot models.Spot, now time.Time) error {
	scored, err := o.Store.GetScoredHourly(ctx, spotID)
	if err != nil {
		return err
	}
	daily, err := o.Store.GetDailyWeather(ctx, spotID)
	if err != nil {
		return err
	}
	rows := aggregate.HalfDay(scored, daily, o.loc(spot))
	for i := range rows {
		rows[i].SpotID = spotID
	}
	return o.Store.UpsertHalfDayAggregates(ctx, spotID, rows, now)
}

func (o *Orchestrator) runDailyScores(ctx context.Context, spotID string, spot models.Spot, now time.Time) error {
	scored, err := o.Store.GetScoredHourly(ctx, spotID)
	if err != nil {
		return err
	}
	daily, err := o.Store.GetDailyWeather(ctx, spotID)
	if err != nil {
		return err
	}
	rows := aggregate.Daily(scored, daily, o.loc(spot))
	for i := range rows {
		rows[i].SpotID = spotID
	}
	return o.Store.UpsertDailyAggregates(ctx, spotID, rows, now)
}
