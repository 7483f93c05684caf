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

func TestMarineClient_FetchHourlyMarine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ncep_gfswave025", r.URL.Query().Get("models"))
		body := openMeteoMarineResponse{}
		body.Hourly.Time = []string{"2026-07-31T00:00", "2026-07-31T01:00"}
		h := 1.4
		body.Hourly.WaveHeight = []*float64{&h, nil}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewMarineClient(srv.URL, 5*time.Second, 3, 10*time.Millisecond)
	out, err := c.FetchHourlyMarine("supertubos", 39.3, -9.3)
	require.NoError(t, err)
	require.Len(t, out.TimestampUTC, 2)
	assert.NotNil(t, out.WaveHeightM[0])
	assert.Nil(t, out.WaveHeightM[1])
	require.Len(t, out.SeaLevelHeightM, 2)
	assert.Nil(t, out.SeaLevelHeightM[0])
}

func TestMarineClient_RateLimitedRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		body := openMeteoMarineResponse{}
		body.Hourly.Time = []string{"2026-07-31T00:00"}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewMarineClient(srv.URL, 5*time.Second, 3, time.Millisecond)
	out, err := c.FetchHourlyMarine("supertubos", 39.3, -9.3)
	require.NoError(t, err)
	assert.Len(t, out.TimestampUTC, 1)
	assert.Equal(t, 2, attempts)
}
