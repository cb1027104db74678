package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	_ "modernc.org/sqlite"
)

const (
	// historyKey is the single key the search history lives under, matching
	// the localStorage key of the original dashboard.
	historyKey = "weatherSearchHistory"

	// maxEntries bounds the history to the five most recent cities.
	maxEntries = 5
)

// HistoryStore persists the ordered list of recently searched city names.
type HistoryStore interface {
	// Load returns the history, most-recent-first. A missing or corrupt
	// stored value loads as empty, never as an error.
	Load() ([]string, error)
	// Add moves or inserts city at the front, dedupes by exact match,
	// truncates to the cap, persists, and returns the updated list.
	Add(city string) ([]string, error)
	Close() error
}

// SQLiteHistory implements HistoryStore over a single-row key/value table
// using the pure Go sqlite driver.
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory opens (or creates) the database at path and applies the
// minimal schema.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteHistory{db: db}, nil
}

func (s *SQLiteHistory) Load() ([]string, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, historyKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var history []string
	if json.Unmarshal([]byte(raw), &history) != nil {
		// Treat an unparseable value as no history at all.
		return nil, nil
	}
	return history, nil
}

func (s *SQLiteHistory) Add(city string) ([]string, error) {
	history, err := s.Load()
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(history)+1)
	next = append(next, city)
	for _, c := range history {
		if c != city {
			next = append(next, c)
		}
	}
	if len(next) > maxEntries {
		next = next[:maxEntries]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.Exec(`INSERT OR REPLACE INTO kv(key, value) VALUES(?, ?)`, historyKey, string(raw)); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}
