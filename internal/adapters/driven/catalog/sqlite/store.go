package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/provenlabs/repotrawl/internal/adapters/driven/catalog/sqlite/migrations"
	"github.com/provenlabs/repotrawl/internal/core/domain"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogWriter = (*Store)(nil)

// Store is a SQLite-backed catalog sink.
type Store struct {
	db   *sql.DB
	path string

	// Swappable clock for stable harvested_at stamps in tests.
	now func() time.Time
}

// NewStore opens (or creates) the catalog database under dataDir.
// An empty dataDir means the current directory.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL mode so a reader can inspect the catalog mid-run
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Write upserts records under the given phase label and returns the
// database path. An existing (label, name) row keeps the union of its
// provenance tags; url and description take the newest values.
func (s *Store) Write(ctx context.Context, label string, records []domain.Repository) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stamp := s.now().UTC().Format(time.RFC3339)

	for _, rec := range records {
		if rec.Name == "" {
			continue
		}

		foundBy, err := mergedFoundBy(ctx, tx, label, rec)
		if err != nil {
			return "", err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO repositories (label, name, url, description, found_by, harvested_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(label, name) DO UPDATE SET
				url = excluded.url,
				description = excluded.description,
				found_by = excluded.found_by,
				harvested_at = excluded.harvested_at
		`, label, rec.Name, rec.URL, rec.Description, foundBy, stamp)
		if err != nil {
			return "", fmt.Errorf("upserting %s: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing catalog write: %w", err)
	}

	return s.path, nil
}

// mergedFoundBy folds the record's provenance tags into whatever the
// row already carries, using the same accumulation rules as the
// in-memory scope.
func mergedFoundBy(ctx context.Context, tx *sql.Tx, label string, rec domain.Repository) (string, error) {
	var existing string
	err := tx.QueryRowContext(ctx,
		"SELECT found_by FROM repositories WHERE label = ? AND name = ?",
		label, rec.Name,
	).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return rec.FoundBy, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading existing provenance for %s: %w", rec.Name, err)
	}

	merged := domain.Repository{FoundBy: existing}
	for _, tag := range rec.FoundByTags() {
		merged.AddFoundBy(tag)
	}
	return merged.FoundBy, nil
}

// migrate applies all pending migrations from the embedded FS.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
