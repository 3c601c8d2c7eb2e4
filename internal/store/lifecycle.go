package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"booklibrary/internal/apperr"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
)

// Lifecycle handles the offline data-management operations: backups,
// resets, exports and imports of the books and authors files. It works
// on the files directly and is meant for the datatool CLI, not for use
// while the API server is running.
type Lifecycle struct {
	cfg config.Config
}

func NewLifecycle(cfg config.Config) *Lifecycle {
	return &Lifecycle{cfg: cfg}
}

type BackupResult struct {
	BackupPath string    `json:"backup_path"`
	Timestamp  time.Time `json:"timestamp"`
}

type ExportDocument struct {
	ExportTimestamp time.Time       `json:"export_timestamp"`
	Books           []entity.Book   `json:"books"`
	Authors         []entity.Author `json:"authors"`
}

type ExportResult struct {
	ExportFile   string `json:"export_file"`
	BooksCount   int    `json:"books_count"`
	AuthorsCount int    `json:"authors_count"`
}

type ImportResult struct {
	BackupPath      string `json:"backup_path"`
	ImportedBooks   int    `json:"imported_books"`
	ImportedAuthors int    `json:"imported_authors"`
}

type FileStats struct {
	Count        int        `json:"count"`
	SizeBytes    int64      `json:"size_bytes"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

type Stats struct {
	Books   FileStats `json:"books"`
	Authors FileStats `json:"authors"`
}

// Backup copies the books and authors files into a named directory under
// the backup root. An empty name gets a timestamped one.
func (l *Lifecycle) Backup(name string) (BackupResult, error) {
	if name == "" {
		name = "backup_" + time.Now().Format("20060102_150405")
	}
	dir := filepath.Join(l.cfg.BackupDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BackupResult{}, apperr.Storage("Failed to create backup", err)
	}

	for src, dst := range map[string]string{
		l.cfg.BooksFile:   filepath.Join(dir, "books.json"),
		l.cfg.AuthorsFile: filepath.Join(dir, "authors.json"),
	} {
		if err := copyFile(src, dst); err != nil {
			return BackupResult{}, apperr.Storage("Failed to create backup", err)
		}
	}

	return BackupResult{BackupPath: dir, Timestamp: time.Now()}, nil
}

// ResetToDefaults backs up the live files, then copies the bundled
// default datasets over them.
func (l *Lifecycle) ResetToDefaults() (BackupResult, error) {
	backup, err := l.Backup("before_reset")
	if err != nil {
		return BackupResult{}, err
	}

	if err := copyFile(l.cfg.DefaultBooksFile, l.cfg.BooksFile); err != nil {
		return BackupResult{}, apperr.Storage("Failed to reset books", err)
	}
	if err := copyFile(l.cfg.DefaultAuthorsFile, l.cfg.AuthorsFile); err != nil {
		return BackupResult{}, apperr.Storage("Failed to reset authors", err)
	}
	return backup, nil
}

// Export writes a single document holding both collections to a
// timestamped file in the working directory.
func (l *Lifecycle) Export() (ExportResult, error) {
	doc := ExportDocument{
		ExportTimestamp: time.Now(),
		Books:           []entity.Book{},
		Authors:         []entity.Author{},
	}
	if books, err := readArray[entity.Book](l.cfg.BooksFile); err == nil {
		doc.Books = books
	}
	if authors, err := readArray[entity.Author](l.cfg.AuthorsFile); err == nil {
		doc.Authors = authors
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ExportResult{}, apperr.Storage("Failed to export data", err)
	}
	name := fmt.Sprintf("export_%s.json", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		return ExportResult{}, apperr.Storage("Failed to export data", err)
	}

	return ExportResult{
		ExportFile:   name,
		BooksCount:   len(doc.Books),
		AuthorsCount: len(doc.Authors),
	}, nil
}

// Import reads an export document and overwrites the live file for each
// collection present in it. Current data is backed up first. A missing
// key is a no-op for that collection.
func (l *Lifecycle) Import(path string) (ImportResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, apperr.Storage(fmt.Sprintf("Import file not found: %s", path), err)
	}

	// Keys absent from the document must stay absent, so decode into a
	// shape that can tell "missing" from "empty".
	var doc struct {
		Books   *[]entity.Book   `json:"books"`
		Authors *[]entity.Author `json:"authors"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ImportResult{}, apperr.Storage("Import file is not a valid export document", err)
	}

	backup, err := l.Backup("before_import")
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{BackupPath: backup.BackupPath}
	if doc.Books != nil {
		if err := writeArray(l.cfg.BooksFile, *doc.Books); err != nil {
			return ImportResult{}, apperr.Storage("Failed to import books", err)
		}
		result.ImportedBooks = len(*doc.Books)
	}
	if doc.Authors != nil {
		if err := writeArray(l.cfg.AuthorsFile, *doc.Authors); err != nil {
			return ImportResult{}, apperr.Storage("Failed to import authors", err)
		}
		result.ImportedAuthors = len(*doc.Authors)
	}
	return result, nil
}

// DataStats reports record counts, file sizes and modification times for
// the live data files.
func (l *Lifecycle) DataStats() (Stats, error) {
	var stats Stats

	books, err := fileStats[entity.Book](l.cfg.BooksFile)
	if err != nil {
		return Stats{}, err
	}
	stats.Books = books

	authors, err := fileStats[entity.Author](l.cfg.AuthorsFile)
	if err != nil {
		return Stats{}, err
	}
	stats.Authors = authors

	return stats, nil
}

func fileStats[T any](path string) (FileStats, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return FileStats{}, nil
	}
	if err != nil {
		return FileStats{}, apperr.Storage("Failed to stat data file", err)
	}

	items, err := readArray[T](path)
	if err != nil {
		return FileStats{}, apperr.Storage("Failed to read data file", err)
	}
	mtime := info.ModTime()
	return FileStats{
		Count:        len(items),
		SizeBytes:    info.Size(),
		LastModified: &mtime,
	}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if os.IsNotExist(err) {
		// Nothing to copy.
		return nil
	}
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
