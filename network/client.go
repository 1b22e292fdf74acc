// Package network provides the HTTP client shared by every call to the stream server.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/aceplay/aceplay/constant"
	"github.com/samber/lo"
	"golang.org/x/net/publicsuffix"
)

// Client is shared across the application. Per-request deadlines are set by
// callers through the request context; Timeout only bounds runaway bodies.
var Client = New()

// New builds a client with the tuned transport, a cookie jar and the aceplay User-Agent.
func New() *http.Client {
	jar := lo.Must(cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}))
	return &http.Client{
		Timeout:   time.Minute,
		Jar:       jar,
		Transport: &userAgent{next: newTransport()},
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

type userAgent struct {
	next http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return u.next.RoundTrip(req)
}
