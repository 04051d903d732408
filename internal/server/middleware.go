package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements per-client rate limiting with a sliding window.
// One abusive poller shouldn't affect other rooms' players.
type RateLimiter struct {
	maxRequests int
	window      time.Duration
	requests    map[string][]time.Time // clientID -> timestamps of recent requests
	mu          sync.Mutex
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
	}
}

// Allow reports whether the client may proceed, recording the request
// when it does. Timestamps outside the window are dropped as a side
// effect, keeping memory per client bounded.
func (r *RateLimiter) Allow(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-r.window)

	timestamps := r.requests[clientID]
	valid := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= r.maxRequests {
		r.requests[clientID] = valid
		return false
	}

	valid = append(valid, now)
	r.requests[clientID] = valid
	return true
}

// Cleanup drops clients with no activity inside the window. Called
// periodically so disconnected clients don't leak map entries.
func (r *RateLimiter) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.window)
	for clientID, timestamps := range r.requests {
		active := false
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				active = true
				break
			}
		}
		if !active {
			delete(r.requests, clientID)
		}
	}
}

// rateLimitMiddleware keys the limiter by remote IP. Polling clients hit
// getState roughly once a second, so the default budget is generous.
//
// Request counters are labeled by the mux's registered pattern, never the
// raw URL path, so the label space stays fixed no matter how many rooms
// get polled.
func (s *Server) rateLimitMiddleware(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			clientID = host
		}

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}

		if !s.rateLimiter.Allow(clientID) {
			rateLimitedTotal.WithLabelValues(route).Inc()
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		requestsTotal.WithLabelValues(route).Inc()
		mux.ServeHTTP(w, r)
	})
}
