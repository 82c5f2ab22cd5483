package directions

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// retryTransport retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff while respecting the request context.
// Only body-less requests are retried; directions lookups are plain GETs.
type retryTransport struct {
	base        http.RoundTripper
	maxAttempts int
	backoff     time.Duration
}

func newRetryTransport(base http.RoundTripper) *retryTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &retryTransport{
		base:        base,
		maxAttempts: 3,
		backoff:     200 * time.Millisecond,
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil && req.Body != http.NoBody {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	backoff := t.backoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := t.base.RoundTrip(req)
		if !retryable(resp, err) || attempt >= t.maxAttempts {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}
}

func retryable(resp *http.Response, err error) bool {
	if err != nil {
		var netErr net.Error
		return errors.As(err, &netErr)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
