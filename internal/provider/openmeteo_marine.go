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

// MarineClient is the Open-Meteo marine adapter (§6: marine provider).
type MarineClient struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	RetryBase  time.Duration
}

// NewMarineClient builds a client against baseURL with the given request
// timeout and retry envelope.
func NewMarineClient(baseURL string, timeout time.Duration, maxRetries int, retryBase time.Duration) *MarineClient {
	return &MarineClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
		RetryBase:  retryBase,
	}
}

type openMeteoMarineResponse struct {
	Hourly struct {
		Time             []string   `json:"time"`
		WaveHeight       []*float64 `json:"wave_height"`
		WaveDirection    []*float64 `json:"wave_direction"`
		WavePeriod       []*float64 `json:"wave_period"`
		SeaLevelHeightMSL []*float64 `json:"sea_level_height_msl"`
	} `json:"hourly"`
}

// FetchHourlyMarine implements MarineProvider.
func (c *MarineClient) FetchHourlyMarine(spotID string, lat, lon float64) (HourlyMarine, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", strings.Join([]string{
		"wave_height", "wave_direction", "wave_period", "sea_level_height_msl",
	}, ","))
	values.Set("forecast_days", "16")
	values.Set("models", "ncep_gfswave025")

	reqURL := c.BaseURL + "?" + values.Encode()

	resp, err := doWithRetry("marine", c.MaxRetries, c.RetryBase, func() (*http.Response, error) {
		return c.HTTPClient.Get(reqURL)
	})
	if err != nil {
		return HourlyMarine{}, err
	}
	defer resp.Body.Close()

	var parsed openMeteoMarineResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return HourlyMarine{}, fmt.Errorf("%w: decoding marine response: %v", dberrors.ErrProviderUnavailable, err)
	}

	out := HourlyMarine{
		SpotID:          spotID,
		WaveHeightM:     parsed.Hourly.WaveHeight,
		WaveDirDeg:      parsed.Hourly.WaveDirection,
		WavePeriodS:     parsed.Hourly.WavePeriod,
		SeaLevelHeightM: parsed.Hourly.SeaLevelHeightMSL,
	}
	for _, ts := range parsed.Hourly.Time {
		t, err := parseTimestamp(ts)
		if err != nil {
			return HourlyMarine{}, fmt.Errorf("%w: parsing hourly timestamp %q: %v", dberrors.ErrProviderUnavailable, ts, err)
		}
		out.TimestampUTC = append(out.TimestampUTC, t)
	}

	// sea_level_height_msl is sometimes absent entirely from the marine
	// response (§4.1 edge case: tide height may not be returned for every
	// spot). A nil slice means "never observed" rather than "all null".
	if len(out.SeaLevelHeightM) == 0 && len(out.TimestampUTC) > 0 {
		out.SeaLevelHeightM = make([]*float64, len(out.TimestampUTC))
	}

	return out, nil
}
