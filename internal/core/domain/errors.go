package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingToken indicates the GitHub token is not configured.
	// The token is required before any search runs; there is no
	// unauthenticated mode.
	ErrMissingToken = errors.New("github token not set")

	// ErrNoAssistant indicates no assistant name was configured, so no
	// keywords or queries can be derived.
	ErrNoAssistant = errors.New("no assistant configured")

	// ErrNoKeywords indicates a profile has an empty keyword list.
	ErrNoKeywords = errors.New("no keywords configured")

	// ErrInvalidWindowRange indicates the window coverage start is
	// after its end.
	ErrInvalidWindowRange = errors.New("window range start after end")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedRepoURL indicates a repository URL that cannot be
	// split into owner and name. Items carrying one are skipped.
	ErrMalformedRepoURL = errors.New("malformed repository url")

	// ErrMissingName indicates a catalog row without an identity key.
	// Such rows are skipped during merges.
	ErrMissingName = errors.New("catalog row missing name")

	// ErrNoCatalogFiles indicates a merge found no catalog files to
	// combine.
	ErrNoCatalogFiles = errors.New("no catalog files found")
)
