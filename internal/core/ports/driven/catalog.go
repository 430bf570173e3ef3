package driven

import (
	"context"

	"github.com/provenlabs/repotrawl/internal/core/domain"
)

// CatalogWriter persists a snapshot of harvested records under a phase
// label. Write returns the location it wrote to (a file path or a
// table reference, depending on the adapter).
type CatalogWriter interface {
	Write(ctx context.Context, label string, records []domain.Repository) (string, error)
}

// Table is raw tabular catalog data. Post-processing preserves columns
// it does not understand, so enriched catalogs survive a round trip
// through filter and merge.
type Table struct {
	// Columns is the header in file order.
	Columns []string

	// Rows maps column name to cell value, one map per row. Cells for
	// missing columns read as empty strings.
	Rows []map[string]string
}

// CatalogReader loads previously written catalogs for post-processing.
type CatalogReader interface {
	// ReadRecords loads a catalog as domain records. Columns beyond
	// the standard four are dropped.
	ReadRecords(ctx context.Context, path string) ([]domain.Repository, error)

	// ReadTable loads a catalog with all its columns intact.
	ReadTable(ctx context.Context, path string) (Table, error)

	// List returns the catalog files under dir, sorted by name.
	List(ctx context.Context, dir string) ([]string, error)
}

// TableWriter persists a raw table to an explicit path.
type TableWriter interface {
	WriteTable(ctx context.Context, path string, table Table) error
}
