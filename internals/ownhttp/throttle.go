package ownhttp

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request. When the server
// responds with 429 and a retry header, all requests are held back until that time
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter

	mu          sync.Mutex
	pausedUntil time.Time
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tt.mu.Lock()
	wait := time.Until(tt.pausedUntil)
	tt.mu.Unlock()
	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}

	if err := tt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	res, err := tt.T.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusTooManyRequests {
		if after := retryAfter(res.Header); after > 0 {
			tt.mu.Lock()
			tt.pausedUntil = time.Now().Add(after)
			tt.mu.Unlock()
		}
	}
	return res, nil
}

// retryAfter reads the seconds to wait from the mod.io rate limit header or Retry-After
func retryAfter(h http.Header) time.Duration {
	for _, key := range []string{"X-RateLimit-RetryAfter", "Retry-After"} {
		if seconds, err := strconv.Atoi(h.Get(key)); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

// NewThrottleTransport wraps T (or http.DefaultTransport if nil)
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T: T, limiter: limiter}
}
