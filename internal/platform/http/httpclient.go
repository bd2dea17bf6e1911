// Package http builds the outbound HTTP clients used for external APIs.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is used when NewHTTPClient gets a non-positive timeout.
const DefaultTimeout = 30 * time.Second

// UserAgent is sent on every outbound request that does not set its own.
const UserAgent = "jobnaut-ingest/1.0"

// NewHTTPClient returns a client for calling external APIs.
//
// http.DefaultClient has no timeout, so always use this instead. The
// transport bounds dialing and TLS handshakes separately from timeout,
// which covers the whole request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: userAgent{next: t}}
}

// userAgent sets UserAgent on requests that lack one.
type userAgent struct {
	next http.RoundTripper
}

func (u userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", UserAgent)
	return u.next.RoundTrip(r)
}
