package directions

import (
	"net/http"

	"golang.org/x/time/rate"
)

// NewRateLimiter returns a limiter allowing rps provider requests per
// second, or nil (no limit) when rps is not positive. Share one limiter
// across resolvers to cap the whole process.
func NewRateLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), rps)
}

// limitTransport waits on a shared limiter before every round trip,
// retries included.
type limitTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func newLimitTransport(base http.RoundTripper, limiter *rate.Limiter) http.RoundTripper {
	if limiter == nil {
		return base
	}
	return &limitTransport{base: base, limiter: limiter}
}

func (t *limitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
