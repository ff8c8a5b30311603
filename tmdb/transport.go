package tmdb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// newHTTPClient returns the transport the client uses when the caller does
// not supply one. Redirects are returned to the caller instead of being
// followed (a redirect to another host would drop the api_key), there is no
// cookie jar, and gzip responses are decompressed transparently.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = false

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// breakerDoer fails fast while the service is unreachable. Only transport
// faults count as failures; any HTTP response, including 4xx/5xx, is a
// successful exchange from the breaker's point of view.
type breakerDoer struct {
	next HTTPDoer
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerDoer(next HTTPDoer, failures uint32, openTimeout time.Duration, logger *slog.Logger) *breakerDoer {
	settings := gobreaker.Settings{
		Name:    "tmdb",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &breakerDoer{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

func (b *breakerDoer) Do(req *http.Request) (*http.Response, error) {
	return b.cb.Execute(func() (*http.Response, error) {
		return b.next.Do(req)
	})
}
