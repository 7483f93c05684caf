// Package aggregate implements the daylight-masked half-day and daily
// groupers that turn scored hourly rows into summary rows.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/lbrouwer/surfcast/internal/models"
)

// defaultSunriseHour and defaultSunsetHour apply when no daily-weather row
// exists for a date (§4.4).
const (
	defaultSunriseHour = 6
	defaultSunsetHour  = 18
	noonHour           = 13 // half-day split: before 13:00 local -> morning
)

// daylightWindow returns the inclusive [sunrise, sunset] window in loc, for
// the given date, falling back to the default when daily is nil.
func daylightWindow(date time.Time, loc *time.Location, daily *models.DailyWeatherRow) (time.Time, time.Time) {
	year, month, day := date.Date()
	if daily == nil {
		return time.Date(year, month, day, defaultSunriseHour, 0, 0, 0, loc),
			time.Date(year, month, day, defaultSunsetHour, 0, 0, 0, loc)
	}
	return daily.SunriseUTC.In(loc), daily.SunsetUTC.In(loc)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DaylightRetained reports whether timestamp ts (UTC) falls within the
// inclusive daylight window for its local date, using daily (which may be
// nil to fall back to the default window).
func DaylightRetained(ts time.Time, loc *time.Location, daily *models.DailyWeatherRow) bool {
	local := ts.In(loc)
	sunrise, sunset := daylightWindow(local, loc, daily)
	return !local.Before(sunrise) && !local.After(sunset)
}

// HalfOf returns HalfMorning for local times before 13:00, else HalfAfternoon.
func HalfOf(localTS time.Time) models.Half {
	if localTS.Hour() < noonHour {
		return models.HalfMorning
	}
	return models.HalfAfternoon
}

// dailyWeatherByDate indexes daily weather rows by their DateLocal key.
func dailyWeatherByDate(daily []models.DailyWeatherRow) map[string]*models.DailyWeatherRow {
	idx := make(map[string]*models.DailyWeatherRow, len(daily))
	for i := range daily {
		idx[daily[i].DateLocal] = &daily[i]
	}
	return idx
}

// HalfDay groups scored hourly rows into half-day aggregate rows, retaining
// only hours within the daylight window.
func HalfDay(scored []models.ScoredHourlyRow, daily []models.DailyWeatherRow, loc *time.Location) []models.HalfDayAggregateRow {
	byDate := dailyWeatherByDate(daily)

	type key struct {
		date string
		half models.Half
	}
	buckets := make(map[key][]int)

	for _, row := range scored {
		local := row.TimestampUTC.In(loc)
		dateLocal := local.Format("2006-01-02")
		dw := byDate[dateLocal]
		if !DaylightRetained(row.TimestampUTC, loc, dw) {
			continue
		}
		k := key{date: dateLocal, half: HalfOf(local)}
		buckets[k] = append(buckets[k], row.TotalPoints)
	}

	out := make([]models.HalfDayAggregateRow, 0, len(buckets))
	for k, points := range buckets {
		if len(points) == 0 {
			continue
		}
		out = append(out, models.HalfDayAggregateRow{
			DateLocal: k.date,
			Half:      k.half,
			MeanScore: round2(mean(points)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DateLocal != out[j].DateLocal {
			return out[i].DateLocal < out[j].DateLocal
		}
		return out[i].Half < out[j].Half
	})
	return out
}

// Daily groups scored hourly rows into daily aggregate rows, retaining only
// hours within the daylight window, with modal categorical fields.
func Daily(scored []models.ScoredHourlyRow, daily []models.DailyWeatherRow, loc *time.Location) []models.DailyAggregateRow {
	byDate := dailyWeatherByDate(daily)

	buckets := make(map[string][]models.ScoredHourlyRow)
	for _, row := range scored {
		local := row.TimestampUTC.In(loc)
		dateLocal := local.Format("2006-01-02")
		dw := byDate[dateLocal]
		if !DaylightRetained(row.TimestampUTC, loc, dw) {
			continue
		}
		buckets[dateLocal] = append(buckets[dateLocal], row)
	}

	out := make([]models.DailyAggregateRow, 0, len(buckets))
	for date, rows := range buckets {
		if len(rows) == 0 {
			continue
		}
		points := make([]int, len(rows))
		ratings := make([]string, len(rows))
		relationships := make([]string, len(rows))
		summaries := make([]string, len(rows))
		for i, r := range rows {
			points[i] = r.TotalPoints
			ratings[i] = r.SurfRating
			relationships[i] = r.WindRelationship
			summaries[i] = r.ConditionsSummary
		}
		out = append(out, models.DailyAggregateRow{
			DateLocal:             date,
			MeanScore:             round2(mean(points)),
			ModalRating:           mode(ratings),
			ModalWindRelationship: mode(relationships),
			ModalSummary:          mode(summaries),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DateLocal < out[j].DateLocal })
	return out
}

func mean(points []int) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p
	}
	return float64(sum) / float64(len(points))
}

// mode returns the most frequent value, breaking ties by lexicographically
// smallest value (§4.4).
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := ""
	bestCount := -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best
}
