package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"booklibrary/internal/config"
)

// testConfig points every data file into a fresh temp dir and seeds the
// collections empty so tests start from a clean slate.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.New(config.EnvTesting)
	cfg.BooksFile = filepath.Join(dir, "books.json")
	cfg.AuthorsFile = filepath.Join(dir, "authors.json")
	cfg.UsersFile = filepath.Join(dir, "users.json")
	cfg.DefaultBooksFile = filepath.Join(dir, "default_books.json")
	cfg.DefaultAuthorsFile = filepath.Join(dir, "default_authors.json")
	cfg.DefaultUsersFile = filepath.Join(dir, "default_users.json")
	cfg.BackupDir = filepath.Join(dir, "backups")

	for _, path := range []string{cfg.BooksFile, cfg.AuthorsFile, cfg.UsersFile} {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}
	return cfg
}

// brokenPath returns a file path whose parent is a regular file, so any
// write through it fails.
func brokenPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	return filepath.Join(blocker, "data.json")
}
