package storage

import (
	"database/sql"
	"fmt"
)

// createSchema creates all tables the sync layer persists locally.
// Safe to call multiple times - uses IF NOT EXISTS.
func createSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Device identity: a single row holding the anonymous device id.
CREATE TABLE IF NOT EXISTS device_identity (
    key TEXT PRIMARY KEY CHECK (key = 'device_id'),
    device_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Votes: at most one per game, never updated.
CREATE TABLE IF NOT EXISTS vote (
    game_id TEXT PRIMARY KEY,
    predicted_winner TEXT NOT NULL CHECK (predicted_winner IN ('home', 'away')),
    committed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Followed teams.
CREATE TABLE IF NOT EXISTS followed_team (
    team_id TEXT PRIMARY KEY,
    followed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Recent team searches, newest first, capped by the store. Queries
-- dedupe case-insensitively.
CREATE TABLE IF NOT EXISTS recent_search (
    query TEXT PRIMARY KEY COLLATE NOCASE,
    searched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_recent_search_at ON recent_search(searched_at);
`
