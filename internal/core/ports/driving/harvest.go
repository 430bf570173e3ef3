package driving

import "context"

// Harvester drives a complete harvest run: every configured phase in
// order, batch catalogs after each phase, the combined catalog at the
// end.
type Harvester interface {
	// Run executes the harvest and reports what was collected. The
	// returned error covers failures that prevented the run from
	// producing output; individual query failures are absorbed and
	// counted instead.
	Run(ctx context.Context) (*HarvestReport, error)
}

// HarvestReport summarises a finished run.
type HarvestReport struct {
	// RunID is the unique identifier stamped on the run's log lines.
	RunID string

	// Phases holds one entry per executed phase, in execution order.
	Phases []PhaseResult

	// TotalUnique is the number of unique repositories in the
	// combined catalog.
	TotalUnique int

	// CombinedPath is where the combined catalog was written.
	CombinedPath string

	// FailedQueries counts queries that aborted part way, across all
	// phases. A failed query contributes whatever it fetched before
	// failing.
	FailedQueries int
}

// PhaseResult summarises one harvest phase.
type PhaseResult struct {
	// Label names the phase, e.g. "code_keywords".
	Label string

	// Unique is the number of unique repositories the phase found.
	Unique int

	// Path is where the phase catalog was written.
	Path string

	// FailedQueries counts this phase's aborted queries.
	FailedQueries int
}
