package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.CatalogReader = (*Store)(nil)
	_ driven.TableWriter   = (*Store)(nil)
)

// Store reads previously written catalogs and writes post-processing
// outputs to explicit paths.
type Store struct{}

// NewStore creates a catalog store.
func NewStore() *Store {
	return &Store{}
}

// ReadRecords loads a catalog as domain records. Columns beyond the
// standard four are dropped.
func (s *Store) ReadRecords(ctx context.Context, path string) ([]domain.Repository, error) {
	table, err := s.ReadTable(ctx, path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Repository, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, domain.Repository{
			Name:        row["name"],
			URL:         row["url"],
			Description: row["description"],
			FoundBy:     row["found_by"],
		})
	}
	return records, nil
}

// ReadTable loads a catalog with all its columns intact. Short rows
// read as empty cells for the missing columns.
func (s *Store) ReadTable(_ context.Context, path string) (driven.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return driven.Table{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return driven.Table{}, nil
	}
	if err != nil {
		return driven.Table{}, fmt.Errorf("reading catalog header: %w", err)
	}

	table := driven.Table{Columns: header}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return driven.Table{}, fmt.Errorf("reading catalog row: %w", err)
		}

		cells := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				cells[col] = row[i]
			} else {
				cells[col] = ""
			}
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

// List returns the CSV files directly under dir, sorted by name.
func (s *Store) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// WriteTable writes a raw table to path, emitting cells in column
// order. Cells for columns a row does not carry are written empty.
func (s *Store) WriteTable(_ context.Context, path string, table driven.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			cells[i] = row[col]
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	return nil
}
