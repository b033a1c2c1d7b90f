// Package storage provides SQLite-based persistence for the round journal:
// one row per finished round with its end reason and duration.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flapper/internal/games/flappy"
)

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// RoundRecord is one journal entry.
type RoundRecord struct {
	ID        int64
	Host      string // "terminal", "window" or "ssh:<user>"
	Reason    string // "boundary" or "collision"
	Duration  float64
	Ticks     int64
	Spawned   int
	CreatedAt time.Time
}

// ReasonCount aggregates rounds by end reason.
type ReasonCount struct {
	Reason      string
	Rounds      int
	AvgDuration float64
	MaxDuration float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			host TEXT NOT NULL,
			reason TEXT NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_reason ON rounds(reason);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound appends a round to the journal.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundRecord) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO rounds (host, reason, duration_secs, ticks, spawned) VALUES (?, ?, ?, ?, ?)",
		r.Host, r.Reason, r.Duration, r.Ticks, r.Spawned,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the latest rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, host, reason, duration_secs, ticks, spawned, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Host, &r.Reason, &r.Duration, &r.Ticks, &r.Spawned, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// CountByReason aggregates the journal by end reason, most frequent first.
func (s *Store) CountByReason() ([]ReasonCount, error) {
	rows, err := s.db.Query(
		`SELECT reason, COUNT(*), COALESCE(AVG(duration_secs), 0), COALESCE(MAX(duration_secs), 0)
		 FROM rounds
		 GROUP BY reason
		 ORDER BY COUNT(*) DESC, reason`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot aggregate rounds: %w", err)
	}
	defer rows.Close()

	var counts []ReasonCount
	for rows.Next() {
		var c ReasonCount
		if err := rows.Scan(&c.Reason, &c.Rounds, &c.AvgDuration, &c.MaxDuration); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// LongestRound returns the longest recorded round, or nil if the journal is empty.
func (s *Store) LongestRound() (*RoundRecord, error) {
	var r RoundRecord
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, host, reason, duration_secs, ticks, spawned, created_at
		 FROM rounds
		 ORDER BY duration_secs DESC, id
		 LIMIT 1`,
	).Scan(&r.ID, &r.Host, &r.Reason, &r.Duration, &r.Ticks, &r.Spawned, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query longest round: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// ClearRounds deletes the whole journal.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// Recorder returns a round-end observer that journals every round played on
// host. Failures are logged and never interrupt the game.
func (s *Store) Recorder(host string, logger *log.Logger) func(flappy.RoundSummary) {
	return func(sum flappy.RoundSummary) {
		_, err := s.SaveRound(RoundRecord{
			Host:     host,
			Reason:   string(sum.Reason),
			Duration: sum.Duration,
			Ticks:    int64(sum.Ticks),
			Spawned:  sum.Spawned,
		})
		if err != nil && logger != nil {
			logger.Warn("could not journal round", "host", host, "error", err)
		}
	}
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
