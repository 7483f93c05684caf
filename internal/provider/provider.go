// Package provider implements the two thin Provider Adapters: an
// atmospheric client and a marine client, each a pure translator of the
// remote wire format into normalized tabular forecasts.
package provider

import "time"

// HourlyWeather is the atmospheric provider's hourly grid.
type HourlyWeather struct {
	SpotID       string
	TimestampUTC []time.Time
	TemperatureC []*float64
	WindSpeedKn  []*float64
	WindDirDeg   []*float64
	WindGustsKn  []*float64
}

// DailyWeather is the atmospheric provider's daily grid.
type DailyWeather struct {
	SpotID          string
	DateLocal       []string
	SunriseUTC      []time.Time
	SunsetUTC       []time.Time
	DaylightSeconds []float64
	TempMinC        []*float64
	TempMaxC        []*float64
}

// HourlyMarine is the marine provider's hourly grid.
type HourlyMarine struct {
	SpotID          string
	TimestampUTC    []time.Time
	WaveHeightM     []*float64
	WaveDirDeg      []*float64
	WavePeriodS     []*float64
	SeaLevelHeightM []*float64
}

// AtmosphericProvider fetches hourly and daily weather for a location.
type AtmosphericProvider interface {
	FetchHourlyAndDailyWeather(spotID string, lat, lon float64) (HourlyWeather, DailyWeather, error)
}

// MarineProvider fetches hourly marine conditions for a location.
type MarineProvider interface {
	FetchHourlyMarine(spotID string, lat, lon float64) (HourlyMarine, error)
}
