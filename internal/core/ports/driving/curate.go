package driving

import "context"

// Curator post-processes harvested catalogs: keyword filtering,
// cross-catalog merging, and statistics enrichment.
type Curator interface {
	// Filter keeps rows whose description matches the profile's
	// include terms and none of its exclude terms.
	Filter(ctx context.Context, path string) (*FilterReport, error)

	// Merge combines every catalog in a directory into one
	// deduplicated catalog.
	Merge(ctx context.Context, dir string) (*MergeReport, error)

	// Enrich appends per-repository statistics to a catalog and
	// computes their distributions.
	Enrich(ctx context.Context, path string) (*EnrichReport, error)
}

// FilterReport summarises a filter pass.
type FilterReport struct {
	// InputPath and OutputPath are the catalog read and written.
	InputPath  string
	OutputPath string

	// Original and Kept are the row counts before and after.
	Original int
	Kept     int
}

// MergeReport summarises a merge pass.
type MergeReport struct {
	// Inputs is the number of catalog files combined.
	Inputs int

	// OutputPath is the merged catalog location.
	OutputPath string

	// Unique is the number of deduplicated rows written.
	Unique int

	// Skipped counts rows dropped for missing an identity.
	Skipped int
}

// EnrichReport summarises a stats enrichment pass.
type EnrichReport struct {
	// InputPath and OutputPath are the catalog read and written.
	InputPath  string
	OutputPath string

	// Rows is the number of catalog rows processed.
	Rows int

	// Failed counts rows whose statistics lookup failed.
	Failed int

	// Stars and Commits are the distributions over the fetched
	// statistics.
	Stars   Distribution
	Commits Distribution
}

// Distribution describes one statistic across an enriched catalog.
type Distribution struct {
	// Count is how many rows carried a value.
	Count int

	// Mean, Min, and Max summarise the values.
	Mean float64
	Min  int
	Max  int

	// Buckets are fixed range counts, smallest range first.
	Buckets []BucketCount
}

// BucketCount is one range bucket of a distribution.
type BucketCount struct {
	// Label names the range, e.g. "11-100".
	Label string

	// Count is how many values fell inside it.
	Count int
}
