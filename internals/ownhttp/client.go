// Package ownhttp contains the http plumbing shared by the mod.io client and the
// downloader: a User-Agent transport, a rate limiting transport and a retry helper.
package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// UserAgent is sent with every request made through a client created by this package
const UserAgent = "modio-go (https://github.com/minepkg/modio)"

// AddHeaderTransport sets the User-Agent header if it was not set already
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not modify the passed request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T (or http.DefaultTransport if nil)
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled returns a new http.Client that sets the User-Agent header and
// does not send more than `perSecond` requests per second (with bursts up to `burst`)
func NewThrottled(perSecond float64, burst int) *http.Client {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return &http.Client{
		Transport: NewThrottleTransport(NewAddHeaderTransport(nil), limiter),
	}
}
