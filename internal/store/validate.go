package store

import (
	"fmt"

	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/models"
)

// Per-row invariant checks from §3. Every Upsert* validates its whole batch
// before opening a transaction, so a bad write is rejected before the
// ledger is stamped rather than partially committed.

func validateDirDeg(name string, deg *float64) error {
	if deg == nil {
		return nil
	}
	if *deg < 0 || *deg >= 360 {
		return fmt.Errorf("%w: %s %.2f out of [0,360)", dberrors.ErrStoreCorrupt, name, *deg)
	}
	return nil
}

func validateSpot(spot models.Spot) error {
	for _, d := range []float64{spot.SwellDirRange.Min, spot.SwellDirRange.Max, spot.WindDirRange.Min, spot.WindDirRange.Max} {
		if d < 0 || d >= 360 {
			return fmt.Errorf("%w: spot %q directional range %.2f out of [0,360)", dberrors.ErrStoreCorrupt, spot.SpotID, d)
		}
	}
	return nil
}

func validateHourlyWeatherRow(r models.HourlyWeatherRow) error {
	return validateDirDeg("wind_dir_deg", r.WindDirDeg)
}

func validateHourlyMarineRow(r models.HourlyMarineRow) error {
	return validateDirDeg("wave_dir_deg", r.WaveDirDeg)
}

func validateDailyWeatherRow(r models.DailyWeatherRow) error {
	if r.DaylightSeconds < 0 {
		return fmt.Errorf("%w: %s daylight_seconds %.0f is negative", dberrors.ErrStoreCorrupt, r.DateLocal, r.DaylightSeconds)
	}
	if r.SunsetUTC.Before(r.SunriseUTC) {
		return fmt.Errorf("%w: %s sunset before sunrise", dberrors.ErrStoreCorrupt, r.DateLocal)
	}
	return nil
}

// validateScoredHourlyRow enforces §3's "1 ≤ total_points ≤ 10" invariant.
func validateScoredHourlyRow(r models.ScoredHourlyRow) error {
	if r.TotalPoints < 1 || r.TotalPoints > 10 {
		return fmt.Errorf("%w: %s total_points %d out of [1,10]", dberrors.ErrStoreCorrupt, r.TimestampUTC, r.TotalPoints)
	}
	return nil
}

// validateMeanScore enforces that an aggregate mean of total_points values,
// each themselves in [1,10], cannot fall outside that same range.
func validateMeanScore(dateLocal string, mean float64) error {
	if mean < 1 || mean > 10 {
		return fmt.Errorf("%w: %s mean_score %.2f out of [1,10]", dberrors.ErrStoreCorrupt, dateLocal, mean)
	}
	return nil
}

func validateHalfDayAggregateRow(r models.HalfDayAggregateRow) error {
	if r.Half != models.HalfMorning && r.Half != models.HalfAfternoon {
		return fmt.Errorf("%w: %s half %q is neither morning nor afternoon", dberrors.ErrStoreCorrupt, r.DateLocal, r.Half)
	}
	return validateMeanScore(r.DateLocal, r.MeanScore)
}

func validateDailyAggregateRow(r models.DailyAggregateRow) error {
	return validateMeanScore(r.DateLocal, r.MeanScore)
}
