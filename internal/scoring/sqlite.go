package scoring

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createRankingsTable = `
CREATE TABLE IF NOT EXISTS rankings (
    position INTEGER PRIMARY KEY,
    name     TEXT    NOT NULL,
    score    INTEGER NOT NULL CHECK (score >= 0),
    time     TEXT    NOT NULL
);`

// SQLiteStorage keeps the ranking table in a SQLite database, one row per
// position.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLiteStorage opens (and creates if missing) the database at path.
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createRankingsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create rankings table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) LoadAll() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT name, score, time FROM rankings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, MaxEntries)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score, &e.Time); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveAll replaces every row inside one transaction.
func (s *SQLiteStorage) SaveAll(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rankings`); err != nil {
		return fmt.Errorf("clear rankings: %w", err)
	}
	for i, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO rankings (position, name, score, time) VALUES (?, ?, ?, ?)`,
			i, e.Name, e.Score, e.Time,
		); err != nil {
			return fmt.Errorf("insert ranking %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
