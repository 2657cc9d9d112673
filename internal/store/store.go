// Package store holds the in-memory scoreboard snapshot the poll loop
// refreshes and the UI reads.
package store

import (
	"sync"
	"time"

	"github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/normalize"
)

// Scoreboard is a read-mostly snapshot of the current slate. Writers
// replace the whole snapshot; readers get copies.
type Scoreboard struct {
	loc *time.Location
	now func() time.Time

	mu        sync.RWMutex
	live      []games.Game
	finished  []games.Game
	upcoming  []games.Game
	updatedAt time.Time
}

// NewScoreboard creates an empty scoreboard. Dates group in loc; a nil
// loc means local time.
func NewScoreboard(loc *time.Location) *Scoreboard {
	if loc == nil {
		loc = time.Local
	}
	return &Scoreboard{loc: loc, now: time.Now}
}

// SetGames replaces the snapshot with a fresh fetch. The input is
// deduplicated, cleared of stale schedule rows, and split by status;
// the previous snapshot is discarded wholesale.
func (s *Scoreboard) SetGames(in []games.Game) {
	cleaned := normalize.Dedupe(in)
	cleaned = normalize.FilterStaleUpcoming(cleaned, s.now(), s.loc)
	live, finished, upcoming := normalize.ByStatus(cleaned)

	s.mu.Lock()
	s.live = live
	s.finished = finished
	s.upcoming = upcoming
	s.updatedAt = s.now()
	s.mu.Unlock()
}

// Live returns the live games in fetch order.
func (s *Scoreboard) Live() []games.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.live)
}

// Finished returns the finished games in fetch order.
func (s *Scoreboard) Finished() []games.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.finished)
}

// Upcoming returns the upcoming games in fetch order.
func (s *Scoreboard) Upcoming() []games.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.upcoming)
}

// UpcomingByDate returns the upcoming games bucketed by civil date,
// earliest date first.
func (s *Scoreboard) UpcomingByDate() []games.DateGroup {
	s.mu.RLock()
	upcoming := copyGames(s.upcoming)
	s.mu.RUnlock()
	return normalize.GroupByDate(upcoming, s.loc)
}

// HasLive reports whether any game is currently live.
func (s *Scoreboard) HasLive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.live) > 0
}

// UpdatedAt returns when the snapshot was last replaced, zero if never.
func (s *Scoreboard) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func copyGames(in []games.Game) []games.Game {
	out := make([]games.Game, len(in))
	copy(out, in)
	return out
}
