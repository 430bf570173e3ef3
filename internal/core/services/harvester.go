package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
	"github.com/provenlabs/repotrawl/internal/logging"
)

// Ensure Harvester implements the interface.
var _ driving.Harvester = (*Harvester)(nil)

// Harvester drives the phased search sweep. Each phase drains its
// queries into a batch scope and the run-wide global scope, writes the
// batch to its own catalog, and moves on; the global scope becomes the
// combined catalog at the end.
type Harvester struct {
	searcher driven.RepoSearcher
	catalog  driven.CatalogWriter
	profile  domain.Profile
	log      *logging.Logger
}

// NewHarvester creates a harvester for the given profile.
func NewHarvester(searcher driven.RepoSearcher, catalog driven.CatalogWriter, profile domain.Profile) *Harvester {
	return &Harvester{
		searcher: searcher,
		catalog:  catalog,
		profile:  profile,
		log:      logging.Named("harvester"),
	}
}

// phase is one labelled batch of queries.
type phase struct {
	label   string
	queries []domain.Query
}

// Run executes every configured phase in order. Individual query
// failures are absorbed: the query's partial hits are still merged and
// the failure counted, so one bad page never aborts a multi-hour
// sweep. Only context cancellation and catalog write failures abort
// the run.
func (h *Harvester) Run(ctx context.Context) (*driving.HarvestReport, error) {
	report := &driving.HarvestReport{RunID: uuid.NewString()}
	global := domain.NewScope()
	batch := domain.NewScope()

	h.log.Info().
		Str("run_id", report.RunID).
		Str("assistant", h.profile.Assistant).
		Msg("harvest started")

	for _, p := range h.phases() {
		if len(p.queries) == 0 {
			continue
		}

		result, err := h.runPhase(ctx, p, batch, global)
		if err != nil {
			return report, err
		}
		batch.Clear()
		report.Phases = append(report.Phases, result)
		report.FailedQueries += result.FailedQueries
	}

	path, err := h.catalog.Write(ctx, domain.PhaseAll, global.Records())
	if err != nil {
		return report, fmt.Errorf("write %s catalog: %w", domain.PhaseAll, err)
	}
	report.CombinedPath = path
	report.TotalUnique = global.Len()

	h.log.Info().
		Str("run_id", report.RunID).
		Int("unique", report.TotalUnique).
		Int("failed_queries", report.FailedQueries).
		Str("path", path).
		Msg("harvest complete")

	return report, nil
}

// runPhase drains every query of a phase into the batch and global
// scopes, then snapshots the batch to its own catalog. The caller
// clears the batch scope before the next phase.
func (h *Harvester) runPhase(ctx context.Context, p phase, batch, global *domain.Scope) (driving.PhaseResult, error) {
	failed := 0

	h.log.Info().
		Str("phase", p.label).
		Int("queries", len(p.queries)).
		Msg("phase started")

	for _, q := range p.queries {
		res, err := h.searcher.Search(ctx, q)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return driving.PhaseResult{}, err
			}
			failed++
			h.log.Warn().
				Err(err).
				Str("query", q.Tag()).
				Int("hits_kept", len(res.Hits)).
				Msg("query aborted, keeping partial results")
		}

		tag := q.Tag()
		for _, hit := range res.Hits {
			batch.Merge(hit.Name, hit.URL, hit.Description, tag)
			global.Merge(hit.Name, hit.URL, hit.Description, tag)
		}

		h.log.Debug().
			Str("query", tag).
			Int("hits", len(res.Hits)).
			Int("reported_total", res.Total).
			Msg("query drained")
	}

	path, err := h.catalog.Write(ctx, p.label, batch.Records())
	if err != nil {
		return driving.PhaseResult{}, fmt.Errorf("write %s catalog: %w", p.label, err)
	}

	result := driving.PhaseResult{
		Label:         p.label,
		Unique:        batch.Len(),
		Path:          path,
		FailedQueries: failed,
	}

	h.log.Info().
		Str("phase", p.label).
		Int("unique", result.Unique).
		Int("failed_queries", failed).
		Str("path", path).
		Msg("phase complete")

	return result, nil
}

// phases expands the profile into the fixed phase plan. Phases with no
// queries (an empty fingerprint list, an inverted window range) are
// skipped by Run.
func (h *Harvester) phases() []phase {
	windows := h.profile.Windows()

	descriptions := make([]domain.Query, 0, len(windows))
	for _, w := range windows {
		descriptions = append(descriptions, domain.DescriptionQuery(h.profile.Assistant, w))
	}

	// Each keyword runs once per sort direction, reaching both ends of
	// result sets the cap would otherwise truncate.
	code := make([]domain.Query, 0, len(h.profile.Keywords)*2)
	for _, kw := range h.profile.Keywords {
		code = append(code,
			domain.CodeQuery(kw, "indexed", "desc"),
			domain.CodeQuery(kw, "indexed", "asc"),
		)
	}

	commits := make([]domain.Query, 0, len(h.profile.Keywords))
	for _, kw := range h.profile.Keywords {
		commits = append(commits, domain.CommitQuery(kw))
	}

	issues := make([]domain.Query, 0, len(h.profile.Keywords)*len(windows))
	for _, kw := range h.profile.Keywords {
		for _, w := range windows {
			issues = append(issues, domain.IssueQuery(kw, w))
		}
	}

	fingerprints := make([]domain.Query, 0, len(h.profile.Fingerprints))
	for _, p := range h.profile.Fingerprints {
		fingerprints = append(fingerprints, domain.FingerprintQuery(p))
	}

	return []phase{
		{label: domain.PhaseDescriptions, queries: descriptions},
		{label: domain.PhaseCodeKeywords, queries: code},
		{label: domain.PhaseCommits, queries: commits},
		{label: domain.PhaseIssues, queries: issues},
		{label: domain.PhaseFingerprints, queries: fingerprints},
	}
}
