// Package storage persists the small amount of device-local state the
// sync layer owns: the device identity, the vote ledger, followed teams
// and recent searches. Everything else is re-derivable from the backend.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/statiq/gridiron-sync/internal/domain/predict"
)

// maxRecentSearches bounds the recent_search table.
const maxRecentSearches = 10

// ErrNoDeviceID is returned by DeviceID before a device id has been saved.
var ErrNoDeviceID = errors.New("storage: no device id recorded")

// Store wraps the local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DeviceID returns the persisted device id, or ErrNoDeviceID.
func (s *Store) DeviceID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT device_id FROM device_identity WHERE key = 'device_id'`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoDeviceID
	}
	if err != nil {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}
	return id, nil
}

// SaveDeviceID stores the device id. The first write wins: a second
// save is a no-op, so concurrent bootstraps converge on one identity.
func (s *Store) SaveDeviceID(id string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO device_identity (key, device_id) VALUES ('device_id', ?)`, id)
	if err != nil {
		return fmt.Errorf("failed to save device id: %w", err)
	}
	return nil
}

// RecordVote appends a vote for the game if none exists. It reports
// whether this call inserted the row; false means a vote was already
// on record and the ledger is unchanged.
func (s *Store) RecordVote(gameID string, winner predict.Side, committedAt time.Time) (bool, error) {
	if !winner.Valid() {
		return false, fmt.Errorf("invalid predicted winner %q", winner)
	}
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO vote (game_id, predicted_winner, committed_at) VALUES (?, ?, ?)`,
		gameID, string(winner), committedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to record vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to record vote: %w", err)
	}
	return n > 0, nil
}

// Vote returns the recorded vote for a game, if any.
func (s *Store) Vote(gameID string) (predict.Vote, bool, error) {
	var (
		winner      string
		committedAt string
	)
	err := s.db.QueryRow(
		`SELECT predicted_winner, committed_at FROM vote WHERE game_id = ?`, gameID).
		Scan(&winner, &committedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return predict.Vote{}, false, nil
	}
	if err != nil {
		return predict.Vote{}, false, fmt.Errorf("failed to read vote: %w", err)
	}
	return predict.Vote{
		GameID:          gameID,
		PredictedWinner: predict.Side(winner),
		CommittedAt:     parseTimestamp(committedAt),
	}, true, nil
}

// Votes returns every recorded vote keyed by game id, for hydration.
func (s *Store) Votes() (map[string]predict.Vote, error) {
	rows, err := s.db.Query(`SELECT game_id, predicted_winner, committed_at FROM vote`)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]predict.Vote)
	for rows.Next() {
		var gameID, winner, committedAt string
		if err := rows.Scan(&gameID, &winner, &committedAt); err != nil {
			return nil, fmt.Errorf("failed to list votes: %w", err)
		}
		out[gameID] = predict.Vote{
			GameID:          gameID,
			PredictedWinner: predict.Side(winner),
			CommittedAt:     parseTimestamp(committedAt),
		}
	}
	return out, rows.Err()
}

// FollowTeam marks a team as followed. Idempotent.
func (s *Store) FollowTeam(teamID string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO followed_team (team_id) VALUES (?)`, teamID)
	if err != nil {
		return fmt.Errorf("failed to follow team: %w", err)
	}
	return nil
}

// UnfollowTeam removes a followed team. Idempotent.
func (s *Store) UnfollowTeam(teamID string) error {
	_, err := s.db.Exec(`DELETE FROM followed_team WHERE team_id = ?`, teamID)
	if err != nil {
		return fmt.Errorf("failed to unfollow team: %w", err)
	}
	return nil
}

// FollowedTeams returns followed team ids, oldest follow first.
func (s *Store) FollowedTeams() ([]string, error) {
	rows, err := s.db.Query(`SELECT team_id FROM followed_team ORDER BY followed_at, team_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed teams: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to list followed teams: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// AddRecentSearch records a search query, moving repeats to the front
// and trimming the history to its cap.
func (s *Store) AddRecentSearch(query string, at time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO recent_search (query, searched_at) VALUES (?, ?)
		 ON CONFLICT(query) DO UPDATE SET searched_at = excluded.searched_at`,
		query, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM recent_search WHERE query NOT IN (
		     SELECT query FROM recent_search ORDER BY searched_at DESC, query LIMIT ?)`,
		maxRecentSearches)
	if err != nil {
		return fmt.Errorf("failed to trim searches: %w", err)
	}
	return tx.Commit()
}

// RecentSearches returns the search history, newest first.
func (s *Store) RecentSearches() ([]string, error) {
	rows, err := s.db.Query(`SELECT query FROM recent_search ORDER BY searched_at DESC, query`)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to list searches: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
