// Package ledger keeps the append-only record of the device's game
// predictions. One vote per game, ever: once a side is committed it can
// never be replaced, matching the one-device-one-vote contract the
// backend enforces.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/statiq/gridiron-sync/internal/domain/predict"
)

// ErrAlreadyVoted is returned by Commit when the game already has a
// vote on record. The existing vote is returned alongside it.
var ErrAlreadyVoted = errors.New("ledger: vote already recorded for game")

// VoteStore is the persistence surface the ledger needs.
type VoteStore interface {
	RecordVote(gameID string, winner predict.Side, committedAt time.Time) (bool, error)
	Votes() (map[string]predict.Vote, error)
}

// Ledger caches the persisted votes and funnels all writes through the
// write-once store.
type Ledger struct {
	store VoteStore
	now   func() time.Time

	mu    sync.RWMutex
	votes map[string]predict.Vote
}

// Open loads the persisted votes into a new ledger.
func Open(store VoteStore) (*Ledger, error) {
	votes, err := store.Votes()
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate vote ledger: %w", err)
	}
	if votes == nil {
		votes = make(map[string]predict.Vote)
	}
	return &Ledger{store: store, now: time.Now, votes: votes}, nil
}

// Commit records a vote for the game. If the durable write fails the
// vote is not committed and the error is returned; callers must not
// act as if the vote exists. If the game already has a vote, Commit
// returns the existing vote and ErrAlreadyVoted.
func (l *Ledger) Commit(gameID string, winner predict.Side) (predict.Vote, error) {
	if !winner.Valid() {
		return predict.Vote{}, fmt.Errorf("invalid predicted winner %q", winner)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.votes[gameID]; ok {
		return existing, ErrAlreadyVoted
	}

	vote := predict.Vote{
		GameID:          gameID,
		PredictedWinner: winner,
		CommittedAt:     l.now().UTC(),
	}
	inserted, err := l.store.RecordVote(gameID, winner, vote.CommittedAt)
	if err != nil {
		return predict.Vote{}, err
	}
	if !inserted {
		// The store already held a vote the cache had not seen; adopt it.
		if persisted, err := l.store.Votes(); err == nil {
			if existing, ok := persisted[gameID]; ok {
				l.votes[gameID] = existing
				return existing, ErrAlreadyVoted
			}
		}
		return predict.Vote{}, ErrAlreadyVoted
	}

	l.votes[gameID] = vote
	return vote, nil
}

// Vote returns the committed vote for a game, if any.
func (l *Ledger) Vote(gameID string) (predict.Vote, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.votes[gameID]
	return v, ok
}

// Votes returns a copy of every committed vote keyed by game id.
func (l *Ledger) Votes() map[string]predict.Vote {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]predict.Vote, len(l.votes))
	for k, v := range l.votes {
		out[k] = v
	}
	return out
}
