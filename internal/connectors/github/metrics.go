package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v68/github"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
)

// Ensure Client implements the inspector port.
var _ driven.RepoInspector = (*Client)(nil)

// Inspect fetches stargazer and commit counts for one repository.
// The returned stats carry the HTTP status of the last request made,
// even when the lookup failed, so enrichment can record which rows hit
// missing, empty, or blocked repositories.
func (c *Client) Inspect(ctx context.Context, fullName string) (driven.RepoStats, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return driven.RepoStats{}, fmt.Errorf("%w: %q", domain.ErrMalformedRepoURL, fullName)
	}

	var stats driven.RepoStats

	if err := c.limiter.Wait(ctx); err != nil {
		return stats, err
	}
	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	stats.StatusCode = statusOf(resp)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return stats, c.wrapError(err, "get repository")
	}
	stats.Stars = repo.GetStargazersCount()

	if err := c.limiter.Wait(ctx); err != nil {
		return stats, err
	}
	commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	stats.StatusCode = statusOf(resp)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return stats, c.wrapError(err, "list commits")
	}

	// With one commit per page the last page index is the commit
	// count. Repositories that fit in a single page send no Link
	// header, so fall back to what came back.
	if resp.LastPage > 0 {
		stats.Commits = resp.LastPage
	} else {
		stats.Commits = len(commits)
	}

	return stats, nil
}
