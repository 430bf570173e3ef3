package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// GitHubRateLimit is the authenticated core rate limit (5000/hour).
	// Assumed until the first response reports real numbers.
	GitHubRateLimit = 5000

	// StallThreshold is the remaining-quota floor. At or below it the
	// whole pipeline stalls until the reset time: the quota is one
	// shared budget, so per-request backoff would just burn it.
	StallThreshold = 1

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimiter implements dual-strategy rate limiting for GitHub search.
// A token bucket spaces consecutive requests, and header tracking
// stalls the pipeline once the reported quota reaches the floor.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int           // From API header
	limit     int           // From API header
	resetTime time.Time     // From API header
	bucket    *rate.Limiter // Inter-page spacing
	margin    time.Duration // Stall padding

	// Clock and sleep are swappable so tests can drive stalls without
	// waiting on real time.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a limiter spacing requests pageDelay apart and
// padding quota stalls by margin.
func NewRateLimiter(pageDelay, margin time.Duration) *RateLimiter {
	return &RateLimiter{
		remaining: GitHubRateLimit, // Assume full quota initially
		limit:     GitHubRateLimit,
		bucket:    rate.NewLimiter(rate.Every(pageDelay), 1),
		margin:    margin,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Wait blocks until it's safe to make a request: the inter-page bucket
// first, then a quota stall when the last response reported the budget
// at the floor.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining <= StallThreshold {
		return r.stall(ctx, resetTime)
	}
	return nil
}

// StallUntil suspends until resetAt plus the safety margin. The client
// uses it when a request comes back forbidden with rate headers.
func (r *RateLimiter) StallUntil(ctx context.Context, resetAt time.Time) error {
	return r.stall(ctx, resetAt)
}

// stall sleeps max(resetAt-now, 0) plus the margin, then assumes a
// fresh budget so the next Wait does not stall again before a response
// has updated the counters.
func (r *RateLimiter) stall(ctx context.Context, resetAt time.Time) error {
	wait := resetAt.Sub(r.now())
	if wait < 0 {
		wait = 0
	}
	wait += r.margin

	if err := r.sleep(ctx, wait); err != nil {
		return err
	}

	r.mu.Lock()
	r.remaining = r.limit
	r.mu.Unlock()
	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the last reported remaining quota.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the last reported quota limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the last reported quota reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

// sleepContext sleeps for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
