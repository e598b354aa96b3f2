// Package storage provides SQLite-based persistence for best times.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// TrackCampaign is the track holding full campaign times.
const TrackCampaign = "campaign"

// StageTrack returns the track of a single stage.
func StageTrack(stageID int) string {
	return fmt.Sprintf("stage-%d", stageID)
}

// Store manages the SQLite database connection for record persistence.
type Store struct {
	db *sql.DB
}

// RecordEntry is one recorded time.
type RecordEntry struct {
	ID        int64
	Track     string
	Time      time.Duration
	CreatedAt time.Time
}

// Update describes the outcome of UpdateIfBetter.
type Update struct {
	Previous time.Duration // zero when the track had no record
	Current  time.Duration
	Improved bool
}

// First reports whether the update set the first record of its track.
func (u Update) First() bool {
	return u.Improved && u.Previous == 0
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
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			track TEXT NOT NULL,
			millis INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_records_track ON records(track);
		CREATE INDEX IF NOT EXISTS idx_records_best ON records(track, millis ASC);
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

// SaveRecord stores a time on a track. Returns the ID of the inserted row.
func (s *Store) SaveRecord(track string, d time.Duration) (int64, error) {
	if d <= 0 {
		return 0, fmt.Errorf("storage: time must be positive, got %v", d)
	}

	result, err := s.db.Exec(
		"INSERT INTO records (track, millis) VALUES (?, ?)",
		track, d.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestTime returns the fastest time on a track, or zero if it has none.
func (s *Store) BestTime(track string) (time.Duration, error) {
	var millis sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(millis) FROM records WHERE track = ?",
		track,
	).Scan(&millis)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !millis.Valid {
		return 0, nil
	}
	return time.Duration(millis.Int64) * time.Millisecond, nil
}

// UpdateIfBetter stores d only when it beats the track's best time.
// Equal times are not a new record.
func (s *Store) UpdateIfBetter(track string, d time.Duration) (Update, error) {
	best, err := s.BestTime(track)
	if err != nil {
		return Update{}, err
	}

	u := Update{Previous: best, Current: d}
	if best > 0 && best <= d.Truncate(time.Millisecond) {
		return u, nil
	}

	if _, err := s.SaveRecord(track, d); err != nil {
		return Update{}, err
	}
	u.Improved = true
	return u, nil
}

// TopTimes returns the fastest times on a track, fastest first.
func (s *Store) TopTimes(track string, limit int) ([]RecordEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, track, millis, created_at
		 FROM records
		 WHERE track = ?
		 ORDER BY millis ASC, id ASC
		 LIMIT ?`,
		track, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var entries []RecordEntry
	for rows.Next() {
		var e RecordEntry
		var millis int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Track, &millis, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Time = time.Duration(millis) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRecords deletes every record on a track.
func (s *Store) ClearRecords(track string) error {
	_, err := s.db.Exec("DELETE FROM records WHERE track = ?", track)
	if err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}

// TrackStats contains aggregated statistics for a track.
type TrackStats struct {
	Track      string
	Runs       int
	Best       time.Duration
	Average    time.Duration
	LastPlayed time.Time
}

// Tracks returns statistics for every track with at least one record,
// campaign first, then stage tracks in id order.
func (s *Store) Tracks() ([]TrackStats, error) {
	rows, err := s.db.Query(
		`SELECT track, COUNT(*), MIN(millis), AVG(millis), MAX(created_at)
		 FROM records
		 GROUP BY track
		 ORDER BY track = ? DESC, LENGTH(track), track`,
		TrackCampaign,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get track stats: %w", err)
	}
	defer rows.Close()

	var stats []TrackStats
	for rows.Next() {
		var ts TrackStats
		var best int64
		var avg float64
		var lastPlayed any
		if err := rows.Scan(&ts.Track, &ts.Runs, &best, &avg, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ts.Best = time.Duration(best) * time.Millisecond
		ts.Average = time.Duration(avg * float64(time.Millisecond))
		ts.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ErrNoRecords is returned by LatestRecord for an empty track.
var ErrNoRecords = errors.New("storage: no records")

// LatestRecord returns the most recently stored record of a track.
func (s *Store) LatestRecord(track string) (RecordEntry, error) {
	var e RecordEntry
	var millis int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, track, millis, created_at
		 FROM records
		 WHERE track = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		track,
	).Scan(&e.ID, &e.Track, &millis, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RecordEntry{}, ErrNoRecords
	}
	if err != nil {
		return RecordEntry{}, fmt.Errorf("storage: cannot query latest record: %w", err)
	}

	e.Time = time.Duration(millis) * time.Millisecond
	e.CreatedAt = parseTime(createdAt)
	return e, nil
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
