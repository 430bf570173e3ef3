package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenlabs/repotrawl/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type catalogRow struct {
	url         string
	description string
	foundBy     string
	harvestedAt string
}

func readRow(t *testing.T, s *Store, label, name string) catalogRow {
	t.Helper()
	var row catalogRow
	err := s.db.QueryRow(
		"SELECT url, description, found_by, harvested_at FROM repositories WHERE label = ? AND name = ?",
		label, name,
	).Scan(&row.url, &row.description, &row.foundBy, &row.harvestedAt)
	require.NoError(t, err)
	return row
}

func countRows(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM repositories").Scan(&n))
	return n
}

func TestNewStore(t *testing.T) {
	t.Run("creates the database under the data directory", func(t *testing.T) {
		dir := t.TempDir()

		s, err := NewStore(dir)

		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, filepath.Join(dir, "catalog.db"), s.Path())
		_, err = os.Stat(s.Path())
		assert.NoError(t, err)
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		dir := t.TempDir()

		s1, err := NewStore(dir)
		require.NoError(t, err)
		_, err = s1.Write(context.Background(), "code_keywords", []domain.Repository{
			{Name: "acme/widget", FoundBy: "tag-a"},
		})
		require.NoError(t, err)
		require.NoError(t, s1.Close())

		s2, err := NewStore(dir)
		require.NoError(t, err)
		defer s2.Close()
		assert.Equal(t, 1, countRows(t, s2))
	})
}

func TestStore_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts records under the label", func(t *testing.T) {
		s := newTestStore(t)
		s.now = func() time.Time {
			return time.Date(2025, time.April, 30, 15, 4, 5, 0, time.UTC)
		}

		path, err := s.Write(ctx, "code_keywords", []domain.Repository{
			{Name: "acme/widget", URL: "https://github.com/acme/widget", Description: "w", FoundBy: "tag-a"},
		})

		require.NoError(t, err)
		assert.Equal(t, s.Path(), path)

		row := readRow(t, s, "code_keywords", "acme/widget")
		assert.Equal(t, "https://github.com/acme/widget", row.url)
		assert.Equal(t, "w", row.description)
		assert.Equal(t, "tag-a", row.foundBy)
		assert.Equal(t, "2025-04-30T15:04:05Z", row.harvestedAt)
	})

	t.Run("unions provenance on rewrite", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Write(ctx, "all_repositories", []domain.Repository{
			{Name: "acme/widget", URL: "u1", Description: "d1", FoundBy: "tag-a"},
		})
		require.NoError(t, err)

		_, err = s.Write(ctx, "all_repositories", []domain.Repository{
			{Name: "acme/widget", URL: "u2", Description: "d2", FoundBy: "tag-a, tag-c"},
		})
		require.NoError(t, err)

		row := readRow(t, s, "all_repositories", "acme/widget")
		assert.Equal(t, "tag-a, tag-c", row.foundBy)
		assert.Equal(t, "u2", row.url)
		assert.Equal(t, "d2", row.description)
		assert.Equal(t, 1, countRows(t, s))
	})

	t.Run("does not duplicate an existing tag", func(t *testing.T) {
		s := newTestStore(t)

		for i := 0; i < 2; i++ {
			_, err := s.Write(ctx, "commit_messages", []domain.Repository{
				{Name: "acme/widget", FoundBy: "tag-a"},
			})
			require.NoError(t, err)
		}

		row := readRow(t, s, "commit_messages", "acme/widget")
		assert.Equal(t, "tag-a", row.foundBy)
	})

	t.Run("keeps labels separate", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Write(ctx, "code_keywords", []domain.Repository{{Name: "acme/widget", FoundBy: "tag-a"}})
		require.NoError(t, err)
		_, err = s.Write(ctx, "all_repositories", []domain.Repository{{Name: "acme/widget", FoundBy: "tag-a"}})
		require.NoError(t, err)

		assert.Equal(t, 2, countRows(t, s))
	})

	t.Run("skips unnamed records", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Write(ctx, "code_keywords", []domain.Repository{{Name: "", FoundBy: "tag-a"}})

		require.NoError(t, err)
		assert.Equal(t, 0, countRows(t, s))
	})
}
