package github

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeClock drives limiter stalls without real waiting. Sleeps advance
// the fake time and are recorded alongside handler events so tests can
// assert that no request happened during a stall.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	events []string
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.events = append(c.events, "sleep "+d.String())
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) record(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *fakeClock) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// testLimiter builds a limiter with an unbounded bucket and the fake
// clock wired in, so only quota stalls are observable.
func testLimiter(clock *fakeClock, margin time.Duration) *RateLimiter {
	r := NewRateLimiter(time.Millisecond, margin)
	r.bucket = rate.NewLimiter(rate.Inf, 1)
	r.now = clock.Now
	r.sleep = clock.Sleep
	return r
}

func TestNewRateLimiter(t *testing.T) {
	t.Run("assumes a full quota before the first response", func(t *testing.T) {
		r := NewRateLimiter(time.Second, 10*time.Second)

		assert.Equal(t, GitHubRateLimit, r.Remaining())
		assert.Equal(t, GitHubRateLimit, r.Limit())
		assert.True(t, r.ResetTime().IsZero())
	})
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	t.Run("parses all three headers", func(t *testing.T) {
		r := NewRateLimiter(time.Second, time.Second)
		reset := time.Unix(1755900000, 0)

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "4321")
		resp.Header.Set(HeaderRateLimit, "5000")
		resp.Header.Set(HeaderRateReset, "1755900000")

		r.UpdateFromResponse(resp)

		assert.Equal(t, 4321, r.Remaining())
		assert.Equal(t, 5000, r.Limit())
		assert.True(t, r.ResetTime().Equal(reset))
	})

	t.Run("keeps previous values for absent headers", func(t *testing.T) {
		r := NewRateLimiter(time.Second, time.Second)

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "7")

		r.UpdateFromResponse(resp)

		assert.Equal(t, 7, r.Remaining())
		assert.Equal(t, GitHubRateLimit, r.Limit())
		assert.True(t, r.ResetTime().IsZero())
	})

	t.Run("ignores unparseable values", func(t *testing.T) {
		r := NewRateLimiter(time.Second, time.Second)

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "plenty")
		resp.Header.Set(HeaderRateReset, "soon")

		r.UpdateFromResponse(resp)

		assert.Equal(t, GitHubRateLimit, r.Remaining())
		assert.True(t, r.ResetTime().IsZero())
	})

	t.Run("tolerates a nil response", func(t *testing.T) {
		r := NewRateLimiter(time.Second, time.Second)

		r.UpdateFromResponse(nil)

		assert.Equal(t, GitHubRateLimit, r.Remaining())
	})
}

func TestRateLimiter_Wait(t *testing.T) {
	base := time.Unix(1755900000, 0)

	t.Run("passes through while quota is healthy", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)

		err := r.Wait(context.Background())

		require.NoError(t, err)
		assert.Empty(t, clock.Sleeps())
	})

	t.Run("stalls until reset plus margin at the remaining floor", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.remaining = StallThreshold
		r.resetTime = base.Add(30 * time.Second)

		err := r.Wait(context.Background())

		require.NoError(t, err)
		require.Len(t, clock.Sleeps(), 1)
		assert.Equal(t, 32*time.Second, clock.Sleeps()[0])
	})

	t.Run("restores the full budget after a stall", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.remaining = 0
		r.resetTime = base.Add(time.Minute)

		require.NoError(t, r.Wait(context.Background()))

		assert.Equal(t, r.Limit(), r.Remaining())
	})

	t.Run("clamps a reset already in the past to the margin alone", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.remaining = 0
		r.resetTime = base.Add(-10 * time.Second)

		require.NoError(t, r.Wait(context.Background()))

		require.Len(t, clock.Sleeps(), 1)
		assert.Equal(t, 2*time.Second, clock.Sleeps()[0])
	})

	t.Run("missing reset time still pads by the margin", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.remaining = 0

		require.NoError(t, r.Wait(context.Background()))

		require.Len(t, clock.Sleeps(), 1)
		assert.Equal(t, 2*time.Second, clock.Sleeps()[0])
	})

	t.Run("propagates an interrupted stall without restoring quota", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.remaining = 1
		r.resetTime = base.Add(time.Minute)
		r.sleep = func(context.Context, time.Duration) error {
			return context.Canceled
		}

		err := r.Wait(context.Background())

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, r.Remaining())
	})

	t.Run("spaces consecutive requests by the page delay", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.bucket = rate.NewLimiter(rate.Every(20*time.Millisecond), 1)

		start := time.Now()
		require.NoError(t, r.Wait(context.Background()))
		require.NoError(t, r.Wait(context.Background()))

		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}

func TestRateLimiter_StallUntil(t *testing.T) {
	base := time.Unix(1755900000, 0)

	t.Run("sleeps to the given reset plus margin", func(t *testing.T) {
		clock := newFakeClock(base)
		r := testLimiter(clock, 2*time.Second)
		r.remaining = 0

		err := r.StallUntil(context.Background(), base.Add(90*time.Second))

		require.NoError(t, err)
		require.Len(t, clock.Sleeps(), 1)
		assert.Equal(t, 92*time.Second, clock.Sleeps()[0])
		assert.Equal(t, r.Limit(), r.Remaining())
	})
}

func TestSleepContext(t *testing.T) {
	t.Run("returns immediately for a non-positive duration", func(t *testing.T) {
		err := sleepContext(context.Background(), 0)

		require.NoError(t, err)
	})

	t.Run("aborts when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := sleepContext(ctx, time.Hour)

		require.ErrorIs(t, err, context.Canceled)
	})
}
