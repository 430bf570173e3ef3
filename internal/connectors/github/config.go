package github

import "time"

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the search page size, the API maximum.
	DefaultPerPage = 100

	// DefaultMaxResults mirrors the search API's hard cap on
	// retrievable results per query.
	DefaultMaxResults = 1000

	// DefaultPageDelay is the fixed delay between consecutive page
	// fetches of one query.
	DefaultPageDelay = time.Second

	// DefaultSafetyMargin pads rate-limit stalls past the reported
	// reset time, absorbing clock skew between here and the API.
	DefaultSafetyMargin = 10 * time.Second
)

// Config controls the client's pagination and rate behaviour.
type Config struct {
	// Token is the bearer token. Required.
	Token string

	// BaseURL overrides the API endpoint and must end with a slash.
	// Empty means the public API. Tests point this at a stub server.
	BaseURL string

	// PerPage is the search page size. Values outside [1, 100] fall
	// back to the API maximum.
	PerPage int

	// MaxResults caps accumulated items per query.
	MaxResults int

	// PageDelay is the fixed inter-page delay.
	PageDelay time.Duration

	// SafetyMargin pads rate-limit stalls.
	SafetyMargin time.Duration
}

// withDefaults fills unset or out-of-range fields.
func (c Config) withDefaults() Config {
	if c.PerPage < 1 || c.PerPage > DefaultPerPage {
		c.PerPage = DefaultPerPage
	}
	if c.MaxResults < 1 {
		c.MaxResults = DefaultMaxResults
	}
	if c.PageDelay <= 0 {
		c.PageDelay = DefaultPageDelay
	}
	if c.SafetyMargin <= 0 {
		c.SafetyMargin = DefaultSafetyMargin
	}
	return c
}
