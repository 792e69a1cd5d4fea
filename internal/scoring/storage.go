package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ScoreStorage defines the interface for loading and saving the ranking table.
// This allows for mocking the storage layer during tests.
type ScoreStorage interface {
	// LoadAll loads all ranking entries from the persistence layer.
	LoadAll() ([]Entry, error)
	// SaveAll saves the entries, overwriting existing data.
	SaveAll(entries []Entry) error
}

// JSONFileStorage stores the table as a single JSON array.
type JSONFileStorage struct {
	path string
}

func NewJSONFileStorage(path string) *JSONFileStorage {
	return &JSONFileStorage{path: path}
}

// LoadAll reads and decodes the ranking array.
func (jfs *JSONFileStorage) LoadAll() ([]Entry, error) {
	data, err := os.ReadFile(jfs.path)
	// If the file doesn't exist, it's not an error; return an empty slice.
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading rankings file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Entry{}, nil
	}

	var records []struct {
		Name  *string `json:"name"`
		Score *int    `json:"score"`
		Time  string  `json:"time"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error decoding rankings: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		// records without a name and score are not rankings
		if r.Name == nil || r.Score == nil {
			continue
		}
		if *r.Score < 0 {
			return nil, fmt.Errorf("entry %d has negative score %d", i, *r.Score)
		}
		entries = append(entries, Entry{Name: CleanName(*r.Name), Score: *r.Score, Time: r.Time})
	}
	return entries, nil
}

// SaveAll writes the entries as an indented JSON array, replacing the file.
func (jfs *JSONFileStorage) SaveAll(entries []Entry) error {
	// Ensure the directory exists.
	dir := filepath.Dir(jfs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating rankings directory: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding rankings: %w", err)
	}

	// write-then-rename
	tmp := jfs.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing rankings file: %w", err)
	}
	if err := os.Rename(tmp, jfs.path); err != nil {
		return fmt.Errorf("error replacing rankings file: %w", err)
	}
	return nil
}

// OpenStorage returns the backend named by kind ("json" or "sqlite") at path,
// plus a close function.
func OpenStorage(kind, path string) (ScoreStorage, func() error, error) {
	switch kind {
	case "", "json":
		return NewJSONFileStorage(path), func() error { return nil }, nil
	case "sqlite":
		s, err := OpenSQLiteStorage(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q", kind)
}
