// Package storage provides SQLite-based persistence for finished points.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/matrix-pong/internal/pong"
)

// Store manages the SQLite database connection for the point log.
type Store struct {
	db *sql.DB
}

// PointEntry is one logged point.
type PointEntry struct {
	ID         int64
	MatchID    int64
	Scorer     string
	LeftScore  int
	RightScore int
	Hits       int
	Practice   bool
	CreatedAt  time.Time
}

// MatchSummary aggregates the points of one match (one process run).
type MatchSummary struct {
	ID         int64
	Source     string // "run", "play" or "serve"
	StartedAt  time.Time
	Points     int
	LeftScore  int
	RightScore int
	LongestHit int // Most paddle hits in a single point
}

// Totals aggregates all logged points.
type Totals struct {
	Matches   int
	Points    int
	LeftWins  int
	RightWins int
	MostHits  int
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			started_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id INTEGER NOT NULL REFERENCES matches(id),
			scorer TEXT NOT NULL,
			left_score INTEGER NOT NULL,
			right_score INTEGER NOT NULL,
			hits INTEGER NOT NULL DEFAULT 0,
			practice INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_points_match_id ON points(match_id);
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

// StartMatch records the start of a match and returns its ID.
func (s *Store) StartMatch(source string, at time.Time) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO matches (source, started_at) VALUES (?, ?)",
		source, at.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SavePoint records a finished point for a match.
// Returns the ID of the inserted record.
func (s *Store) SavePoint(matchID int64, ev pong.PointEvent) (int64, error) {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	result, err := s.db.Exec(
		`INSERT INTO points (match_id, scorer, left_score, right_score, hits, practice, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		matchID, ev.Scorer.String(), ev.Left, ev.Right, ev.Hits, ev.Practice, at.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save point: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentPoints retrieves the latest N points across all matches, newest first.
func (s *Store) RecentPoints(limit int) ([]PointEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, scorer, left_score, right_score, hits, practice, created_at
		 FROM points
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query points: %w", err)
	}
	defer rows.Close()

	var entries []PointEntry
	for rows.Next() {
		var e PointEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Scorer, &e.LeftScore, &e.RightScore, &e.Hits, &e.Practice, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecentMatches summarises the latest N matches that have at least one
// point, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT m.id, m.source, m.started_at,
		        COUNT(p.id), MAX(p.left_score), MAX(p.right_score), MAX(p.hits)
		 FROM matches m
		 JOIN points p ON p.match_id = m.id
		 GROUP BY m.id
		 ORDER BY m.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchSummary
	for rows.Next() {
		var m MatchSummary
		var startedAt int64
		if err := rows.Scan(&m.ID, &m.Source, &startedAt, &m.Points, &m.LeftScore, &m.RightScore, &m.LongestHit); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.StartedAt = time.UnixMilli(startedAt)
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Totals aggregates the whole log.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	var mostHits sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT match_id), COUNT(*),
		        COALESCE(SUM(scorer = 'left'), 0), COALESCE(SUM(scorer = 'right'), 0), MAX(hits)
		 FROM points`,
	).Scan(&t.Matches, &t.Points, &t.LeftWins, &t.RightWins, &mostHits)
	if err != nil {
		return t, fmt.Errorf("storage: cannot query totals: %w", err)
	}

	if mostHits.Valid {
		t.MostHits = int(mostHits.Int64)
	}
	return t, nil
}

// ClearPoints removes every logged point and match.
func (s *Store) ClearPoints() error {
	if _, err := s.db.Exec("DELETE FROM points; DELETE FROM matches;"); err != nil {
		return fmt.Errorf("storage: cannot clear points: %w", err)
	}
	return nil
}
