package notepub

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Run is the outcome of one publish cycle.
type Run struct {
	ID        int64
	Started   time.Time
	Finished  time.Time
	Scanned   int
	Published int
	Skipped   int
	Articles  []string // slugs written this cycle
	Err       string
}

// OK reports whether the cycle completed without a cycle-fatal error.
func (r Run) OK() bool { return r.Err == "" }

// Recorder persists publish runs.
type Recorder interface {
	Record(Run) error
}

// HistoryStore wraps a SQLite database holding the publish log. It is an
// audit trail only; publishing never reads from it.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewHistoryStore(path string) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets `notepub history` read while a watcher is writing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &HistoryStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    scanned INTEGER NOT NULL,
    published INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    articles TEXT NOT NULL,
    error TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

// Record appends a run to the log.
func (s *HistoryStore) Record(r Run) error {
	_, err := s.db.Exec(`INSERT INTO runs (started_at, finished_at, scanned, published, skipped, articles, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Started.UTC().Format(time.RFC3339Nano),
		r.Finished.UTC().Format(time.RFC3339Nano),
		r.Scanned, r.Published, r.Skipped,
		strings.Join(r.Articles, ","),
		r.Err)
	return err
}

// Recent returns up to limit runs, newest first.
func (s *HistoryStore) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, started_at, finished_at, scanned, published, skipped, articles, error FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished, articles string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Scanned, &r.Published, &r.Skipped, &articles, &r.Err); err != nil {
			return nil, err
		}
		r.Started, _ = time.Parse(time.RFC3339Nano, started)
		r.Finished, _ = time.Parse(time.RFC3339Nano, finished)
		if articles != "" {
			r.Articles = strings.Split(articles, ",")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
