// Package store persists scored match tallies to sqlite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/duelscore/duelscore/duel"
)

// ErrNotFound is returned when a match ID does not exist.
var ErrNotFound = errors.New("match not found")

// Match is one persisted match: the tally of a scored input stream
type Match struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Tally     duel.Tally `json:"tally"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Store wraps the sqlite database holding match results
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the sqlite database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			first_wins INTEGER NOT NULL,
			second_wins INTEGER NOT NULL,
			ties INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating matches table: %w", err)
	}
	return nil
}

// SaveMatch inserts a match record
func (s *Store) SaveMatch(m Match) error {
	_, err := s.db.Exec(`
		INSERT INTO matches (id, source, first_wins, second_wins, ties, lines, skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Source, m.Tally.FirstWins, m.Tally.SecondWins, m.Tally.Ties, m.Tally.Lines, m.Tally.Skipped, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving match %s: %w", m.ID, err)
	}
	return nil
}

// GetMatch retrieves a match by ID
func (s *Store) GetMatch(id string) (Match, error) {
	row := s.db.QueryRow(`
		SELECT id, source, first_wins, second_wins, ties, lines, skipped, created_at
		FROM matches WHERE id = ?
	`, id)

	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, ErrNotFound
	}
	if err != nil {
		return Match{}, fmt.Errorf("error loading match %s: %w", id, err)
	}
	return m, nil
}

// ListMatches retrieves the most recent matches, newest first
func (s *Store) ListMatches(limit int) ([]Match, error) {
	rows, err := s.db.Query(`
		SELECT id, source, first_wins, second_wins, ties, lines, skipped, created_at
		FROM matches ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (Match, error) {
	var m Match
	err := row.Scan(
		&m.ID, &m.Source,
		&m.Tally.FirstWins, &m.Tally.SecondWins, &m.Tally.Ties,
		&m.Tally.Lines, &m.Tally.Skipped,
		&m.CreatedAt,
	)
	return m, err
}
