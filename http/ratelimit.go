package http

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces out requests to each wiki host with its own token
// bucket. Host names are compared case-insensitively.
type HostLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host, with bursts of up to burst requests. A burst below 1 is
// treated as 1.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	return &HostLimiter{
		rps:     rate.Limit(rps),
		burst:   max(burst, 1),
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to the host of u may proceed or ctx is done.
func (h *HostLimiter) Wait(ctx context.Context, u *url.URL) error {
	return h.bucket(hostKey(u)).Wait(ctx)
}

// Hosts returns the number of hosts seen so far.
func (h *HostLimiter) Hosts() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buckets)
}

func (h *HostLimiter) bucket(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.buckets[host]
	if !ok {
		b = rate.NewLimiter(h.rps, h.burst)
		h.buckets[host] = b
	}
	return b
}

func hostKey(u *url.URL) string {
	return strings.ToLower(u.Host)
}
