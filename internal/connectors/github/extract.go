package github

import (
	"fmt"
	"strings"

	gh "github.com/google/go-github/v68/github"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
)

// buildQuery renders the API search string for a query. Keyword phrases
// are quoted so the surface matches them verbatim; windows become
// created ranges; fingerprints search by path qualifier alone.
func buildQuery(q domain.Query) string {
	switch q.Modality {
	case domain.ModalityCode, domain.ModalityCommit:
		return `"` + q.Text + `"`
	case domain.ModalityIssue:
		return `"` + q.Text + `" created:` + q.Window.Qualifier()
	case domain.ModalityDescription:
		return q.Text + " in:description created:" + q.Window.Qualifier()
	case domain.ModalityFingerprint:
		return "path:" + q.Text
	}
	return q.Text
}

// hitFromRepository extracts a hit from a repository object, nested or
// top-level. A repository without a description gets the sentinel
// placeholder rather than failing the item.
func hitFromRepository(r *gh.Repository) driven.RepoHit {
	hit := driven.RepoHit{
		Name:        r.GetFullName(),
		URL:         r.GetHTMLURL(),
		Description: domain.NoDescription,
	}
	if r != nil && r.Description != nil {
		hit.Description = r.GetDescription()
	}
	return hit
}

// repoFromAPIURL recovers a repository identity from a repository-API
// URL such as "https://api.github.com/repos/{owner}/{name}". The last
// two path segments are the owner and name; URLs with fewer than five
// segments cannot carry both and are rejected. The web URL is
// synthesized since the item does not include one.
func repoFromAPIURL(rawURL string) (driven.RepoHit, error) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 5 {
		return driven.RepoHit{}, fmt.Errorf("%w: %q", domain.ErrMalformedRepoURL, rawURL)
	}
	owner := parts[len(parts)-2]
	name := parts[len(parts)-1]
	if owner == "" || name == "" {
		return driven.RepoHit{}, fmt.Errorf("%w: %q", domain.ErrMalformedRepoURL, rawURL)
	}
	return driven.RepoHit{
		Name: owner + "/" + name,
		URL:  "https://github.com/" + owner + "/" + name,
	}, nil
}
