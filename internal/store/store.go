// Package store implements the flat-file datastore behind the API: project
// directories holding one markdown file per task, markdown documents with
// frontmatter, JSON array files for members and scheduled tasks, and dated
// markdown transcripts for bot memory. Every mutation is a read-modify-write
// of a single file; there is no locking and no cross-file transaction.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store is rooted at one data directory.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	s := &Store{root: root}
	for _, dir := range []string{
		root,
		filepath.Join(root, "projects"),
		filepath.Join(root, "documents"),
		filepath.Join(root, "memory"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) projectsDir() string  { return filepath.Join(s.root, "projects") }
func (s *Store) documentsDir() string { return filepath.Join(s.root, "documents") }
func (s *Store) memoryDir() string    { return filepath.Join(s.root, "memory") }
func (s *Store) foldersPath() string  { return filepath.Join(s.root, "documents", "folders.json") }
func (s *Store) membersPath() string  { return filepath.Join(s.root, "members.json") }
func (s *Store) scheduledPath() string {
	return filepath.Join(s.root, "scheduled.json")
}
func (s *Store) favoritesPath() string {
	return filepath.Join(s.root, "memory", "favorites.json")
}

// readJSON loads a JSON file into T. A missing file yields the zero value,
// so empty collections need no seeding.
func readJSON[T any](path string) (T, error) {
	var out T
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
