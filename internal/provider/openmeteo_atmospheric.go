package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lbrouwer/surfcast/internal/dberrors"
)

// AtmosphericClient is the Open-Meteo forecast adapter (§6: atmospheric
// provider). It is a pure translator: no caching, no merging, no timezone
// conversion.
type AtmosphericClient struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBase      time.Duration
}

// NewAtmosphericClient builds a client against baseURL with the given
// request timeout and retry envelope.
func NewAtmosphericClient(baseURL string, timeout time.Duration, maxRetries int, retryBase time.Duration) *AtmosphericClient {
	return &AtmosphericClient{
		BaseURL:        baseURL,
		HTTPClient:     &http.Client{Timeout: timeout},
		RequestTimeout: timeout,
		MaxRetries:     maxRetries,
		RetryBase:      retryBase,
	}
}

type openMeteoForecastResponse struct {
	Hourly struct {
		Time             []string   `json:"time"`
		Temperature2m    []*float64 `json:"temperature_2m"`
		WindSpeed10m     []*float64 `json:"wind_speed_10m"`
		WindDirection10m []*float64 `json:"wind_direction_10m"`
		WindGusts10m     []*float64 `json:"wind_gusts_10m"`
	} `json:"hourly"`
	Daily struct {
		Time              []string   `json:"time"`
		Sunrise           []string   `json:"sunrise"`
		Sunset            []string   `json:"sunset"`
		DaylightDuration  []float64  `json:"daylight_duration"`
		Temperature2mMin  []*float64 `json:"temperature_2m_min"`
		Temperature2mMax  []*float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

// FetchHourlyAndDailyWeather implements AtmosphericProvider.
func (c *AtmosphericClient) FetchHourlyAndDailyWeather(spotID string, lat, lon float64) (HourlyWeather, DailyWeather, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", strings.Join([]string{
		"temperature_2m", "wind_speed_10m", "wind_direction_10m", "wind_gusts_10m",
	}, ","))
	values.Set("daily", strings.Join([]string{
		"sunset", "sunrise", "daylight_duration", "temperature_2m_min", "temperature_2m_max",
	}, ","))
	values.Set("wind_speed_unit", "kn")
	values.Set("forecast_days", "16")
	values.Set("models", "gfs_seamless")

	reqURL := c.BaseURL + "?" + values.Encode()

	resp, err := doWithRetry("atmospheric", c.MaxRetries, c.RetryBase, func() (*http.Response, error) {
		return c.HTTPClient.Get(reqURL)
	})
	if err != nil {
		return HourlyWeather{}, DailyWeather{}, err
	}
	defer resp.Body.Close()

	var parsed openMeteoForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return HourlyWeather{}, DailyWeather{}, fmt.Errorf("%w: decoding atmospheric response: %v", dberrors.ErrProviderUnavailable, err)
	}

	hourly := HourlyWeather{
		SpotID:       spotID,
		TemperatureC: parsed.Hourly.Temperature2m,
		WindSpeedKn:  parsed.Hourly.WindSpeed10m,
		WindDirDeg:   parsed.Hourly.WindDirection10m,
		WindGustsKn:  parsed.Hourly.WindGusts10m,
	}
	for _, ts := range parsed.Hourly.Time {
		t, err := parseTimestamp(ts)
		if err != nil {
			return HourlyWeather{}, DailyWeather{}, fmt.Errorf("%w: parsing hourly timestamp %q: %v", dberrors.ErrProviderUnavailable, ts, err)
		}
		hourly.TimestampUTC = append(hourly.TimestampUTC, t)
	}

	daily := DailyWeather{
		SpotID:          spotID,
		DateLocal:       parsed.Daily.Time,
		DaylightSeconds: parsed.Daily.DaylightDuration,
		TempMinC:        parsed.Daily.Temperature2mMin,
		TempMaxC:        parsed.Daily.Temperature2mMax,
	}
	for _, ts := range parsed.Daily.Sunrise {
		t, err := parseTimestamp(ts)
		if err != nil {
			return HourlyWeather{}, DailyWeather{}, fmt.Errorf("%w: parsing sunrise %q: %v", dberrors.ErrProviderUnavailable, ts, err)
		}
		daily.SunriseUTC = append(daily.SunriseUTC, t)
	}
	for _, ts := range parsed.Daily.Sunset {
		t, err := parseTimestamp(ts)
		if err != nil {
			return HourlyWeather{}, DailyWeather{}, fmt.Errorf("%w: parsing sunset %q: %v", dberrors.ErrProviderUnavailable, ts, err)
		}
		daily.SunsetUTC = append(daily.SunsetUTC, t)
	}

	return hourly, daily, nil
}

// parseTimestamp accepts Open-Meteo's RFC3339 and bare "2006-01-02T15:04" forms.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
