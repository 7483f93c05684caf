package provider

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/metrics"
)

// doWithRetry executes do up to maxRetries times with exponential backoff
// starting at baseInterval, per §4.1/§5 (5 attempts, 0.2s base). Transport
// errors from do and 5xx/429 responses are retried; any other 4xx response
// fails fast with ErrProviderUnavailable.
func doWithRetry(providerName string, maxRetries int, baseInterval time.Duration, do func() (*http.Response, error)) (*http.Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = baseInterval
	bounded := backoff.WithMaxRetries(b, uint64(maxRetries-1))

	var resp *http.Response
	err := backoff.Retry(func() error {
		r, err := do()
		if err != nil {
			return err
		}
		if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
			r.Body.Close()
			return dberrors.ErrProviderUnavailable
		}
		if r.StatusCode >= 400 {
			r.Body.Close()
			return backoff.Permanent(dberrors.ErrProviderUnavailable)
		}
		resp = r
		return nil
	}, bounded)

	if err != nil {
		metrics.ProviderCalls.WithLabelValues(providerName, "failure").Inc()
		return nil, dberrors.ErrProviderUnavailable
	}
	metrics.ProviderCalls.WithLabelValues(providerName, "success").Inc()
	return resp, nil
}
