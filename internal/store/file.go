// Package store holds the file-backed record stores. Each store owns one
// in-memory collection and mirrors it to a JSON-array file; every
// mutation rewrites the whole file and rolls the in-memory change back
// when the write fails.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
)

var errNotArray = errors.New("not a JSON array")

func readArray[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errNotArray
	}
	return items, nil
}

// writeArray writes through a temp file and renames it into place so a
// crash mid-write cannot leave a half-written collection behind.
func writeArray[T any](path string, items []T) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// loadOrSeed reads the collection file, self-healing instead of failing:
// an absent or malformed file is replaced with the bundled default
// dataset, or with the single fallback record when the default file is
// itself missing or corrupt. Startup never errors on bad data.
func loadOrSeed[T any](path, defaultPath string, fallback func() []T) []T {
	items, err := readArray[T](path)
	if err == nil {
		return items
	}
	if !os.IsNotExist(err) {
		log.Printf("store self-heal: file=%s error=%v, reseeding from defaults", path, err)
	}

	items, derr := readArray[T](defaultPath)
	if derr != nil {
		if !os.IsNotExist(derr) {
			log.Printf("store self-heal: default file=%s error=%v, using fallback record", defaultPath, derr)
		}
		items = fallback()
	}

	if werr := writeArray(path, items); werr != nil {
		log.Printf("store self-heal: could not write file=%s error=%v", path, werr)
	}
	return items
}
