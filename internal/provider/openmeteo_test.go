package provider

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtmosphericClient_FetchHourlyAndDailyWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kn", r.URL.Query().Get("wind_speed_unit"))
		assert.Equal(t, "gfs_seamless", r.URL.Query().Get("models"))
		body := openMeteoForecastResponse{}
		body.Hourly.Time = []string{"2026-07-31T00:00", "2026-07-31T01:00"}
		temp := 18.5
		body.Hourly.Temperature2m = []*float64{&temp, nil}
		body.Daily.Time = []string{"2026-07-31"}
		body.Daily.Sunrise = []string{"2026-07-31T06:30"}
		body.Daily.Sunset = []string{"2026-07-31T20:45"}
		body.Daily.DaylightDuration = []float64{50700}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewAtmosphericClient(srv.URL, 5*time.Second, 3, 10*time.Millisecond)
	hourly, daily, err := c.FetchHourlyAndDailyWeather("supertubos", 39.3, -9.3)
	require.NoError(t, err)
	require.Len(t, hourly.TimestampUTC, 2)
	assert.Equal(t, "supertubos", hourly.SpotID)
	assert.NotNil(t, hourly.TemperatureC[0])
	assert.Nil(t, hourly.TemperatureC[1])
	require.Len(t, daily.SunriseUTC, 1)
	assert.Equal(t, 6, daily.SunriseUTC[0].Hour())
}

func TestAtmosphericClient_ServerErrorExhaustsRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewAtmosphericClient(srv.URL, 5*time.Second, 2, time.Millisecond)
	_, _, err := c.FetchHourlyAndDailyWeather("supertubos", 39.3, -9.3)
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}
