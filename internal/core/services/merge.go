package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
)

// Merge combines every catalog in a directory into one deduplicated
// catalog, "merged_repos_<timestamp>.csv" in the same directory.
//
// The column set is the first catalog's header minus the per-run
// columns; rows are deduplicated by name, keeping first-seen order.
// A repository appearing in several catalogs keeps the union of its
// provenance tags, while its other fields take the value from the
// last catalog that carries the column. Rows without a name are
// counted and skipped.
func (c *Curator) Merge(ctx context.Context, dir string) (*driving.MergeReport, error) {
	paths, err := c.catalogs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, domain.ErrNoCatalogFiles)
	}

	var columns []string
	merged := make(map[string]map[string]string)
	var order []string
	skipped := 0

	for _, path := range paths {
		table, err := c.catalogs.ReadTable(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		if columns == nil {
			columns = mergeColumns(table.Columns)
		}

		for _, row := range table.Rows {
			name := row["name"]
			if name == "" {
				skipped++
				c.log.Warn().
					Str("file", filepath.Base(path)).
					Msg("skipping row without a name")
				continue
			}

			existing, ok := merged[name]
			if !ok {
				fresh := make(map[string]string, len(columns))
				for _, col := range columns {
					fresh[col] = row[col]
				}
				merged[name] = fresh
				order = append(order, name)
				continue
			}

			for _, col := range columns {
				value, present := row[col]
				if !present {
					continue // this catalog lacks the column
				}
				if col == "found_by" {
					existing[col] = unionFoundBy(existing[col], value)
					continue
				}
				existing[col] = value
			}
		}
	}

	out := filepath.Join(dir, fmt.Sprintf("merged_repos_%s.csv", c.now().Format(domain.TimestampLayout)))
	outTable := driven.Table{Columns: columns}
	for _, name := range order {
		outTable.Rows = append(outTable.Rows, merged[name])
	}
	if err := c.tables.WriteTable(ctx, out, outTable); err != nil {
		return nil, fmt.Errorf("write merged catalog: %w", err)
	}

	report := &driving.MergeReport{
		Inputs:     len(paths),
		OutputPath: out,
		Unique:     len(order),
		Skipped:    skipped,
	}

	c.log.Info().
		Int("inputs", report.Inputs).
		Int("unique", report.Unique).
		Int("skipped", report.Skipped).
		Str("path", out).
		Msg("catalogs merged")

	return report, nil
}

// mergeColumns drops the per-run columns that do not survive a merge.
func mergeColumns(header []string) []string {
	out := make([]string, 0, len(header))
	for _, col := range header {
		if col == "match_location" || col == "stars" {
			continue
		}
		out = append(out, col)
	}
	return out
}

// unionFoundBy merges two joined provenance strings by exact tag,
// keeping first-seen order.
func unionFoundBy(a, b string) string {
	seen := make(map[string]bool)
	var tags []string
	for _, joined := range []string{a, b} {
		rec := domain.Repository{FoundBy: joined}
		for _, tag := range rec.FoundByTags() {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, domain.FoundBySeparator)
}
