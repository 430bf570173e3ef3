package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/provenlabs/repotrawl/internal/logging"
)

// Client wraps the go-github client with the rate-governed search
// executor and the repository inspector.
type Client struct {
	gh      *gh.Client
	limiter *RateLimiter
	cfg     Config
	log     *logging.Logger
}

// NewClient creates a GitHub client with a static bearer token.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	cfg = cfg.withDefaults()

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	client := gh.NewClient(tc)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("github: parse base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{
		gh:      client,
		limiter: NewRateLimiter(cfg.PageDelay, cfg.SafetyMargin),
		cfg:     cfg,
		log:     logging.Named("github"),
	}, nil
}

// RateLimiter returns the rate limiter for status reporting.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub
// response headers. Error responses carry them too.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.limiter.UpdateFromResponse(resp.Response)
}

// rateLimitedReset reports whether err is a primary or secondary rate
// limit rejection, and when the budget comes back.
func rateLimitedReset(err error, now func() time.Time) (time.Time, bool) {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr.Rate.Reset.Time, true
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return now().Add(abuseErr.GetRetryAfter()), true
	}

	return time.Time{}, false
}

// wrapError converts go-github errors to package error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// statusOf extracts the HTTP status from a response, 0 when there was
// no response at all.
func statusOf(resp *gh.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
