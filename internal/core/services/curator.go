package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
	"github.com/provenlabs/repotrawl/internal/logging"
)

// Ensure Curator implements the interface.
var _ driving.Curator = (*Curator)(nil)

// Curator post-processes written catalogs: description filtering,
// cross-catalog merging, and statistics enrichment. Outputs are new
// files next to their inputs; inputs are never modified.
type Curator struct {
	catalogs  driven.CatalogReader
	tables    driven.TableWriter
	inspector driven.RepoInspector
	profile   domain.Profile
	log       *logging.Logger

	// Swappable clock for stable merge output names.
	now func() time.Time
}

// NewCurator creates a curator. The inspector may be nil when
// enrichment is not needed.
func NewCurator(catalogs driven.CatalogReader, tables driven.TableWriter, inspector driven.RepoInspector, profile domain.Profile) *Curator {
	return &Curator{
		catalogs:  catalogs,
		tables:    tables,
		inspector: inspector,
		profile:   profile,
		log:       logging.Named("curator"),
		now:       time.Now,
	}
}

// Filter keeps rows whose description contains at least one include
// term and none of the exclude terms, case-insensitively, and writes
// them to "filtered_<basename>" next to the input. Columns pass
// through untouched.
func (c *Curator) Filter(ctx context.Context, path string) (*driving.FilterReport, error) {
	table, err := c.catalogs.ReadTable(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	kept := driven.Table{Columns: table.Columns}
	for _, row := range table.Rows {
		if c.keepRow(row["description"]) {
			kept.Rows = append(kept.Rows, row)
		}
	}

	out := siblingPath(path, "filtered_")
	if err := c.tables.WriteTable(ctx, out, kept); err != nil {
		return nil, fmt.Errorf("write filtered catalog: %w", err)
	}

	report := &driving.FilterReport{
		InputPath:  path,
		OutputPath: out,
		Original:   len(table.Rows),
		Kept:       len(kept.Rows),
	}

	c.log.Info().
		Int("original", report.Original).
		Int("kept", report.Kept).
		Str("path", out).
		Msg("catalog filtered")

	return report, nil
}

// keepRow applies the include list, then the exclude list.
func (c *Curator) keepRow(description string) bool {
	desc := strings.ToLower(description)

	included := false
	for _, term := range c.profile.IncludeTerms {
		if strings.Contains(desc, strings.ToLower(term)) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, term := range c.profile.ExcludeTerms {
		if strings.Contains(desc, strings.ToLower(term)) {
			return false
		}
	}
	return true
}

// siblingPath prefixes the file name, keeping the directory.
func siblingPath(path, prefix string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, prefix+base)
}
