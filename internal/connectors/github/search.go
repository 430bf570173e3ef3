package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
)

// Ensure Client implements the search port.
var _ driven.RepoSearcher = (*Client)(nil)

// pageResult is one fetched page after identity extraction.
type pageResult struct {
	hits  []driven.RepoHit
	count int // raw item count, drives termination
	total int
}

// Search runs one query to completion, draining every result page.
//
// Pagination starts at page 1 and stops when a page comes back empty or
// when the accumulated raw item count reaches the smaller of the
// reported total and the configured result cap. Rate limiting never
// surfaces: depleted quota stalls the call and the page is retried. Any
// other failure aborts this query only, returning the hits gathered so
// far alongside the error.
func (c *Client) Search(ctx context.Context, q domain.Query) (driven.SearchResult, error) {
	var result driven.SearchResult
	built := buildQuery(q)
	fetched := 0
	page := 1

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("rate limit wait: %w", err)
		}

		pg, resp, err := c.searchPage(ctx, q, built, page)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			if resetAt, limited := rateLimitedReset(err, c.limiter.now); limited {
				c.log.Warn().
					Str("modality", string(q.Modality)).
					Time("reset", resetAt).
					Msg("rate limited, stalling pipeline")
				if stallErr := c.limiter.StallUntil(ctx, resetAt); stallErr != nil {
					return result, stallErr
				}
				continue // retry the same page
			}
			return result, c.wrapError(err, "search "+string(q.Modality))
		}

		if page == 1 {
			result.Total = pg.total
			c.log.Debug().
				Str("query", built).
				Int("total", pg.total).
				Msg("search started")
		}

		if pg.count == 0 {
			break
		}

		fetched += pg.count
		result.Hits = append(result.Hits, pg.hits...)
		c.log.Debug().
			Int("page", page).
			Int("fetched", fetched).
			Msg("fetched page")

		if fetched >= min(result.Total, c.cfg.MaxResults) {
			break
		}
		page++
	}

	// A full final page can overshoot the cap.
	if len(result.Hits) > c.cfg.MaxResults {
		result.Hits = result.Hits[:c.cfg.MaxResults]
	}

	return result, nil
}

// searchPage fetches and extracts a single page for the query's
// modality.
func (c *Client) searchPage(ctx context.Context, q domain.Query, built string, page int) (pageResult, *gh.Response, error) {
	opts := &gh.SearchOptions{
		Sort:  q.Sort,
		Order: q.Order,
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: c.cfg.PerPage,
		},
	}

	switch q.Modality {
	case domain.ModalityCode, domain.ModalityFingerprint:
		res, resp, err := c.gh.Search.Code(ctx, built, opts)
		if err != nil {
			return pageResult{}, resp, err
		}
		pg := pageResult{count: len(res.CodeResults), total: res.GetTotal()}
		for _, item := range res.CodeResults {
			pg.hits = appendHit(pg.hits, hitFromRepository(item.GetRepository()))
		}
		return pg, resp, nil

	case domain.ModalityCommit:
		res, resp, err := c.gh.Search.Commits(ctx, built, opts)
		if err != nil {
			return pageResult{}, resp, err
		}
		pg := pageResult{count: len(res.Commits), total: res.GetTotal()}
		for _, item := range res.Commits {
			pg.hits = appendHit(pg.hits, hitFromRepository(item.GetRepository()))
		}
		return pg, resp, nil

	case domain.ModalityIssue:
		res, resp, err := c.gh.Search.Issues(ctx, built, opts)
		if err != nil {
			return pageResult{}, resp, err
		}
		pg := pageResult{count: len(res.Issues), total: res.GetTotal()}
		for _, issue := range res.Issues {
			hit, err := repoFromAPIURL(issue.GetRepositoryURL())
			if err != nil {
				c.log.Warn().
					Str("repository_url", issue.GetRepositoryURL()).
					Msg("skipping item with malformed repository url")
				continue
			}
			pg.hits = append(pg.hits, hit)
		}
		return pg, resp, nil

	case domain.ModalityDescription:
		res, resp, err := c.gh.Search.Repositories(ctx, built, opts)
		if err != nil {
			return pageResult{}, resp, err
		}
		pg := pageResult{count: len(res.Repositories), total: res.GetTotal()}
		for _, repo := range res.Repositories {
			pg.hits = appendHit(pg.hits, hitFromRepository(repo))
		}
		return pg, resp, nil
	}

	return pageResult{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedModality, q.Modality)
}

// appendHit drops hits without an identity, which happens when a search
// item somehow arrives without its repository object.
func appendHit(hits []driven.RepoHit, hit driven.RepoHit) []driven.RepoHit {
	if hit.Name == "" {
		return hits
	}
	return append(hits, hit)
}
