package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter rate-limits per hostname (www.googleapis.com, the board host,
// the feed API host, etc), so pacing against the search API does not slow
// down page fetches and vice versa.
type HostLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.r, hl.b)
	hl.m[host] = lim
	return lim
}

// WaitHost blocks until the next request to host is allowed.
func (hl *HostLimiter) WaitHost(ctx context.Context, host string) error {
	if host == "" {
		host = "_"
	}
	return hl.limiterFor(host).Wait(ctx)
}

// WaitURL is WaitHost keyed by the URL's hostname.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.WaitHost(ctx, "_")
	}
	return hl.WaitHost(ctx, u.Host)
}
