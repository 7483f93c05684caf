// Package forecastview composes Store reads into the two read-only views
// the Forecast Query API exposes (§4.8): a daily summary view and a
// detailed hour-by-hour view.
package forecastview

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lbrouwer/surfcast/internal/catalog"
	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/models"
	"github.com/lbrouwer/surfcast/internal/store"
)

// Store is the subset of *store.Store this package reads from.
type Store interface {
	GetDailyAggregates(ctx context.Context, spotID string) ([]models.DailyAggregateRow, error)
	GetHalfDayAggregates(ctx context.Context, spotID string) ([]models.HalfDayAggregateRow, error)
	GetDetailSnapshot(ctx context.Context, spotID string) (store.DetailSnapshot, error)
}

// HourDetail is one hour within a detailed_view response.
type HourDetail struct {
	LocalTime       time.Time
	Score           int
	Rating          string
	WaveHeightFt    float64
	PeriodS         float64
	WindSpeedKn     float64
	WindDirDeg      float64
	WindFavorable   bool
	SeaLevelHeightM *float64 // nil when the nearest marine row has no value
}

// DetailedDay is one date's detailed breakdown.
type DetailedDay struct {
	DateLocal   string
	MeanScore   float64
	ModalRating string
	SunriseUTC  time.Time
	SunsetUTC   time.Time
	TempMinC    *float64
	TempMaxC    *float64
	Hours       []HourDetail
}

// DetailedView is the full per-spot detailed response, including the
// catalog fields so a caller doesn't need a second round trip (§4.8
// supplement).
type DetailedView struct {
	SpotID          string
	DisplayName     string
	Region          string
	IdealSwellMinFt *float64
	IdealSwellMaxFt *float64
	Days            []DetailedDay
}

// DailyView returns the daily aggregate rows for spotID, sorted ascending
// by date. Fails with dberrors.ErrNotFound when the spot is unknown.
func DailyView(ctx context.Context, s Store, spotID string) ([]models.DailyAggregateRow, error) {
	if _, ok := catalog.Find(spotID); !ok {
		return nil, fmt.Errorf("spot %q: %w", spotID, dberrors.ErrNotFound)
	}
	rows, err := s.GetDailyAggregates(ctx, spotID)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DateLocal < rows[j].DateLocal })
	return rows, nil
}

// Detail returns the next `days` dates of detailed hourly breakdown for
// spotID. Fails with dberrors.ErrNotFound when the spot is unknown.
func Detail(ctx context.Context, s Store, spotID string, days int) (DetailedView, error) {
	spot, ok := catalog.Find(spotID)
	if !ok {
		return DetailedView{}, fmt.Errorf("spot %q: %w", spotID, dberrors.ErrNotFound)
	}

	snap, err := s.GetDetailSnapshot(ctx, spotID)
	if err != nil {
		return DetailedView{}, err
	}
	dailyAgg := snap.DailyAggregates
	sort.Slice(dailyAgg, func(i, j int) bool { return dailyAgg[i].DateLocal < dailyAgg[j].DateLocal })
	if days > 0 && len(dailyAgg) > days {
		dailyAgg = dailyAgg[:days]
	}

	dailyWeatherByDate := make(map[string]models.DailyWeatherRow, len(snap.DailyWeather))
	for _, d := range snap.DailyWeather {
		dailyWeatherByDate[d.DateLocal] = d
	}

	scored := snap.ScoredHourly
	marine := snap.HourlyMarine

	loc, err := time.LoadLocation(spot.Timezone)
	if err != nil {
		loc = time.UTC
	}

	view := DetailedView{
		SpotID:          spot.SpotID,
		DisplayName:     spot.DisplayName,
		Region:          spot.Region,
		IdealSwellMinFt: spot.IdealSwellMinFt,
		IdealSwellMaxFt: spot.IdealSwellMaxFt,
	}

	for _, agg := range dailyAgg {
		dw, hasDW := dailyWeatherByDate[agg.DateLocal]
		day := DetailedDay{
			DateLocal:   agg.DateLocal,
			MeanScore:   agg.MeanScore,
			ModalRating: agg.ModalRating,
		}
		if hasDW {
			day.SunriseUTC = dw.SunriseUTC
			day.SunsetUTC = dw.SunsetUTC
			day.TempMinC = dw.TempMinC
			day.TempMaxC = dw.TempMaxC
		}

		sunrise, sunset := day.SunriseUTC, day.SunsetUTC
		for _, row := range scored {
			local := row.TimestampUTC.In(loc)
			if local.Format("2006-01-02") != agg.DateLocal {
				continue
			}
			if hasDW && (row.TimestampUTC.Before(sunrise) || row.TimestampUTC.After(sunset)) {
				continue
			}
			day.Hours = append(day.Hours, HourDetail{
				LocalTime:       local,
				Score:           row.TotalPoints,
				Rating:          row.SurfRating,
				WaveHeightFt:    row.WaveHeightFt,
				PeriodS:         row.WavePeriodS,
				WindSpeedKn:     row.WindSpeedKn,
				WindDirDeg:      row.WindDirDeg,
				WindFavorable:   row.WindRelationship == "favorable",
				SeaLevelHeightM: nearestSeaLevel(marine, row.TimestampUTC),
			})
		}
		view.Days = append(view.Days, day)
	}

	return view, nil
}

// nearestSeaLevel finds the marine row closest in time to ts and returns its
// sea_level_height_m, or nil if the marine layer has no rows or that nearest
// row has no value; other rows are not consulted (§4.8: no synthetic
// substitution).
func nearestSeaLevel(marine []models.HourlyMarineRow, ts time.Time) *float64 {
	if len(marine) == 0 {
		return nil
	}
	best := marine[0]
	bestDiff := absDuration(best.TimestampUTC.Sub(ts))
	for _, m := range marine[1:] {
		d := absDuration(m.TimestampUTC.Sub(ts))
		if d < bestDiff {
			best = m
			bestDiff = d
		}
	}
	return best.SeaLevelHeightM
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
