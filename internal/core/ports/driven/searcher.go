package driven

import (
	"context"

	"github.com/provenlabs/repotrawl/internal/core/domain"
)

// RepoHit is one repository sighting extracted from a search result
// item. Hits are not deduplicated; the same repository appears once per
// matching item.
type RepoHit struct {
	// Name is the "owner/name" identity key.
	Name string

	// URL is the repository's web URL.
	URL string

	// Description is the description as reported by the search
	// surface. Empty when the surface does not expose one.
	Description string
}

// SearchResult carries everything a drained query produced.
type SearchResult struct {
	// Hits are the extracted sightings in fetch order, at most the
	// configured result cap.
	Hits []RepoHit

	// Total is the total match count reported by the surface on the
	// first page. Kept for diagnostics; may exceed len(Hits) when the
	// cap cut the query short.
	Total int
}

// RepoSearcher runs one query against the search provider, draining
// every result page before returning.
//
// A non-nil error means the query was aborted part way; the hits
// accumulated before the failure are still returned so the caller can
// keep them. Rate limiting is handled inside the implementation and is
// never surfaced as an error.
type RepoSearcher interface {
	Search(ctx context.Context, query domain.Query) (SearchResult, error)
}

// RepoStats is per-repository metadata used for catalog enrichment.
type RepoStats struct {
	// Stars is the stargazer count.
	Stars int

	// Commits is the total commit count on the default branch.
	Commits int

	// StatusCode is the HTTP status of the last metadata request.
	// Recorded even when the lookup failed, so enriched catalogs show
	// which rows hit missing or blocked repositories.
	StatusCode int
}

// RepoInspector fetches statistics for a single repository.
// On failure the returned stats still carry the observed StatusCode.
type RepoInspector interface {
	Inspect(ctx context.Context, fullName string) (RepoStats, error)
}
