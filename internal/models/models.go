// Package models holds the fixed record shapes for every layer in the store.
// Each layer is an ordered sequence of these records; no per-column reflection
// is needed anywhere downstream.
package models

import "time"

// Layer names the six logical data shapes tracked by the freshness ledger.
type Layer string

const (
	LayerWeather      Layer = "weather"
	LayerMarine       Layer = "marine"
	LayerDailyWeather Layer = "daily_weather"
	LayerScored       Layer = "scored"
	LayerHalfDay      Layer = "half_day"
	LayerDailyScores  Layer = "daily_scores"
)

// DirRange is a directional preference interval in degrees, interpreted
// modulo 360. Min may exceed Max, meaning the interval wraps past 0.
type DirRange struct {
	Min float64
	Max float64
}

// Spot is a named geographic surf location with fixed directional preferences.
type Spot struct {
	SpotID        string
	DisplayName   string
	Region        string
	Latitude      float64
	Longitude     float64
	Timezone      string
	SwellDirRange DirRange
	WindDirRange  DirRange

	// IdealSwellMinFt and IdealSwellMaxFt are informational only; they do not
	// feed scoring math.
	IdealSwellMinFt *float64
	IdealSwellMaxFt *float64
}

// HourlyWeatherRow is one hour of atmospheric data for a spot.
type HourlyWeatherRow struct {
	SpotID        string
	TimestampUTC  time.Time
	TemperatureC  *float64
	WindSpeedKn   *float64
	WindDirDeg    *float64
	WindGustsKn   *float64
}

// HourlyMarineRow is one hour of oceanographic data for a spot.
type HourlyMarineRow struct {
	SpotID           string
	TimestampUTC     time.Time
	WaveHeightM      *float64
	WaveDirDeg       *float64
	WavePeriodS      *float64
	SeaLevelHeightM  *float64 // may be absent
}

// DailyWeatherRow carries sunrise/sunset and temperature extremes for one
// calendar date local to the spot.
type DailyWeatherRow struct {
	SpotID          string
	DateLocal       string // YYYY-MM-DD, local to the spot's timezone
	SunriseUTC      time.Time
	SunsetUTC       time.Time
	DaylightSeconds float64
	TempMinC        *float64
	TempMaxC        *float64
}

// ScoredHourlyRow is the output of the Scorer for one hour.
type ScoredHourlyRow struct {
	SpotID       string
	TimestampUTC time.Time

	WaveHeightM float64
	WaveDirDeg  float64
	WavePeriodS float64
	WindSpeedKn float64
	WindDirDeg  float64

	SwellDirPoints  int
	WindPoints      int
	WaveHeightPoints int
	WavePeriodPoints int
	TotalPoints     int

	SurfRating        string
	WindRelationship  string // "favorable" | "unfavorable" | "unknown"
	WaveHeightFt      float64
	ConditionsSummary string
}

// Half names the two daylight halves of a calendar day.
type Half string

const (
	HalfMorning   Half = "morning"
	HalfAfternoon Half = "afternoon"
)

// HalfDayAggregateRow is the mean total_points over daylight hours in one
// half of one calendar date.
type HalfDayAggregateRow struct {
	SpotID    string
	DateLocal string
	Half      Half
	MeanScore float64
}

// DailyAggregateRow is the mean total_points plus modal categorical fields
// over daylight hours of one calendar date.
type DailyAggregateRow struct {
	SpotID               string
	DateLocal            string
	MeanScore            float64
	ModalRating          string
	ModalWindRelationship string
	ModalSummary         string
}

// FreshnessLedger is one row per spot holding the last-successful-write
// timestamp for each layer. A zero time.Time means the layer has never
// been written.
type FreshnessLedger struct {
	SpotID       string
	Weather      time.Time
	Marine       time.Time
	DailyWeather time.Time
	Scored       time.Time
	HalfDay      time.Time
	DailyScores  time.Time
}

// At returns the ledger timestamp for the given layer.
func (f FreshnessLedger) At(layer Layer) time.Time {
	switch layer {
	case LayerWeather:
		return f.Weather
	case LayerMarine:
		return f.Marine
	case LayerDailyWeather:
		return f.DailyWeather
	case LayerScored:
		return f.Scored
	case LayerHalfDay:
		return f.HalfDay
	case LayerDailyScores:
		return f.DailyScores
	default:
		return time.Time{}
	}
}
