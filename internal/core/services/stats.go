package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
)

// statBuckets are the fixed ranges reported for each statistic. Upper
// bounds are inclusive; -1 marks the unbounded top bucket.
var statBuckets = []struct {
	label string
	max   int
}{
	{"0-10", 10},
	{"11-100", 100},
	{"101-1000", 1000},
	{"1001-10000", 10000},
	{"10000+", -1},
}

// Enrich appends stars, commit_count, and status_code columns to a
// catalog, writing "enriched_<basename>" next to the input, and
// summarises the fetched statistics.
//
// A failed lookup keeps its row: whatever statistics were fetched
// before the failure are recorded along with the observed HTTP status,
// and the row is excluded from the distributions. Failures never abort
// the sweep.
func (c *Curator) Enrich(ctx context.Context, path string) (*driving.EnrichReport, error) {
	if c.inspector == nil {
		return nil, fmt.Errorf("enrich %s: no repository inspector configured", filepath.Base(path))
	}

	table, err := c.catalogs.ReadTable(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	enriched := driven.Table{
		Columns: appendColumns(table.Columns, "stars", "commit_count", "status_code"),
	}

	var stars, commits []int
	failed := 0

	for _, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := row["name"]
		stats, err := c.inspector.Inspect(ctx, name)
		if err != nil {
			failed++
			c.log.Warn().
				Err(err).
				Str("repo", name).
				Int("status", stats.StatusCode).
				Msg("stats lookup failed, keeping row")
		} else {
			stars = append(stars, stats.Stars)
			commits = append(commits, stats.Commits)
		}

		row["stars"] = strconv.Itoa(stats.Stars)
		row["commit_count"] = strconv.Itoa(stats.Commits)
		row["status_code"] = strconv.Itoa(stats.StatusCode)
		enriched.Rows = append(enriched.Rows, row)
	}

	out := siblingPath(path, "enriched_")
	if err := c.tables.WriteTable(ctx, out, enriched); err != nil {
		return nil, fmt.Errorf("write enriched catalog: %w", err)
	}

	report := &driving.EnrichReport{
		InputPath:  path,
		OutputPath: out,
		Rows:       len(table.Rows),
		Failed:     failed,
		Stars:      distribution(stars),
		Commits:    distribution(commits),
	}

	c.log.Info().
		Int("rows", report.Rows).
		Int("failed", report.Failed).
		Str("path", out).
		Msg("catalog enriched")

	return report, nil
}

// appendColumns adds names not already present in the header.
func appendColumns(header []string, names ...string) []string {
	out := append([]string(nil), header...)
	for _, name := range names {
		if !containsColumn(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func containsColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}

// distribution summarises values as count, mean, min, max, and the
// fixed range buckets. Bucket labels are always present, zeroed when
// there are no values.
func distribution(values []int) driving.Distribution {
	dist := driving.Distribution{Count: len(values)}
	for _, b := range statBuckets {
		dist.Buckets = append(dist.Buckets, driving.BucketCount{Label: b.label})
	}
	if len(values) == 0 {
		return dist
	}

	dist.Min = values[0]
	dist.Max = values[0]
	sum := 0
	for _, v := range values {
		sum += v
		if v < dist.Min {
			dist.Min = v
		}
		if v > dist.Max {
			dist.Max = v
		}
		for i, b := range statBuckets {
			if b.max < 0 || v <= b.max {
				dist.Buckets[i].Count++
				break
			}
		}
	}
	dist.Mean = float64(sum) / float64(len(values))

	return dist
}
