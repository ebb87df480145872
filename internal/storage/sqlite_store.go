package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/damiri/vetwatch/internal/logger"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the seen-set in a SQLite database. Useful when several
// monitors share one state volume or the set has grown past what a JSON
// file handles comfortably.
type SQLiteStore struct {
	db      *sql.DB
	items   map[string]SeenRecord
	pending map[string]SeenRecord
	mu      sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database and its schema. Unlike
// Load, an unusable database path is a real error here so the caller can
// fall back to the file backend.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS seen (
		fingerprint TEXT PRIMARY KEY,
		first_seen  DATETIME NOT NULL,
		source      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_seen_first_seen ON seen(first_seen);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %v", err)
	}

	return &SQLiteStore{
		db:      db,
		items:   make(map[string]SeenRecord),
		pending: make(map[string]SeenRecord),
	}, nil
}

// Load reads all fingerprints into memory. Query errors leave the store
// empty and return nil, matching the file backend's tolerance.
func (ss *SQLiteStore) Load() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	rows, err := ss.db.Query(`SELECT fingerprint, first_seen, source FROM seen`)
	if err != nil {
		logger.Warn("failed to read state database, starting empty", "error", err)
		return nil
	}
	defer rows.Close()

	for rows.Next() {
		var fp, source string
		var firstSeen time.Time
		if err := rows.Scan(&fp, &firstSeen, &source); err != nil {
			logger.Warn("skipping unreadable state row", "error", err)
			continue
		}
		ss.items[fp] = SeenRecord{FirstSeen: firstSeen, Source: source}
	}
	if err := rows.Err(); err != nil {
		logger.Warn("state database scan interrupted", "error", err)
	}
	return nil
}

// Save flushes fingerprints recorded this run in one transaction. INSERT OR
// IGNORE keeps the stored first-seen timestamp for anything already present.
func (ss *SQLiteStore) Save() error {
	ss.mu.Lock()
	pending := ss.pending
	ss.pending = make(map[string]SeenRecord)
	ss.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin state transaction: %v", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO seen (fingerprint, first_seen, source) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare state insert: %v", err)
	}
	defer stmt.Close()

	for fp, rec := range pending {
		if _, err := stmt.Exec(fp, rec.FirstSeen, rec.Source); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record fingerprint: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %v", err)
	}
	return nil
}

func (ss *SQLiteStore) IsNew(fingerprint string) bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	_, exists := ss.items[fingerprint]
	return !exists
}

func (ss *SQLiteStore) Record(fingerprint, source string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, exists := ss.items[fingerprint]; exists {
		return
	}
	rec := SeenRecord{FirstSeen: time.Now(), Source: source}
	ss.items[fingerprint] = rec
	ss.pending[fingerprint] = rec
}

func (ss *SQLiteStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.items)
}

func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
