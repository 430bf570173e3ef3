package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.CatalogWriter = (*Writer)(nil)

// Header is the catalog column set, in file order.
var Header = []string{"name", "url", "description", "found_by"}

// Writer persists catalog snapshots as CSV files in one output
// directory. File names follow "<slug>_<label>_<timestamp>.csv" so
// catalogs from different assistants and phases can share a directory.
type Writer struct {
	dir  string
	slug string

	// Swappable clock so tests get stable file names.
	now func() time.Time
}

// NewWriter creates a catalog writer rooted at dir, creating it if
// needed. An empty dir means the current directory.
func NewWriter(dir, slug string) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir, slug: slug, now: time.Now}, nil
}

// Write writes records to a fresh timestamped catalog file under the
// given phase label and returns its path. Records are written in the
// order given; domain.Scope.Records provides the canonical ordering.
func (w *Writer) Write(_ context.Context, label string, records []domain.Repository) (string, error) {
	name := fmt.Sprintf("%s_%s_%s.csv", w.slug, label, w.now().Format(domain.TimestampLayout))
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating catalog file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return "", fmt.Errorf("writing catalog header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Name, rec.URL, rec.Description, rec.FoundBy}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("writing catalog row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing catalog: %w", err)
	}

	return path, nil
}
