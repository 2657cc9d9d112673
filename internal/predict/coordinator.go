// Package predict coordinates game predictions: committing the device's
// vote to the local ledger, pushing it to the backend, and keeping the
// fan consensus fresh. The ledger write is the source of truth; the
// remote submission is best effort and retried by the caller's polling.
package predict

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	domainpredict "github.com/statiq/gridiron-sync/internal/domain/predict"
	"github.com/statiq/gridiron-sync/internal/ledger"
	"github.com/statiq/gridiron-sync/internal/logging"
	"github.com/statiq/gridiron-sync/internal/metrics"
	"github.com/statiq/gridiron-sync/internal/providers"
)

// ErrVoteInFlight is returned when a submission for the same game is
// still being processed; rapid repeat taps collapse into one vote.
var ErrVoteInFlight = errors.New("predict: vote submission in flight")

// Snapshot is the per-game prediction state handed to the UI. UserVote
// and Consensus are independent: either can be present without the other.
type Snapshot struct {
	UserVote  *domainpredict.Vote
	Consensus *domainpredict.FanConsensus
}

// Coordinator owns prediction state for all games.
type Coordinator struct {
	votes    providers.VoteService
	ledger   *ledger.Ledger
	deviceID func() string
	logger   *slog.Logger
	metrics  *metrics.Recorder

	mu        sync.Mutex
	inflight  map[string]bool
	consensus map[string]domainpredict.FanConsensus
	applied   map[string]uint64
	seq       uint64

	wg sync.WaitGroup
}

// NewCoordinator wires a coordinator. deviceID is called lazily so the
// identity can be minted after construction.
func NewCoordinator(votes providers.VoteService, l *ledger.Ledger, deviceID func() string, logger *slog.Logger, recorder *metrics.Recorder) *Coordinator {
	return &Coordinator{
		votes:     votes,
		ledger:    l,
		deviceID:  deviceID,
		logger:    logger,
		metrics:   recorder,
		inflight:  make(map[string]bool),
		consensus: make(map[string]domainpredict.FanConsensus),
		applied:   make(map[string]uint64),
	}
}

// Submit commits a vote for the game. The ledger write happens first
// and its failure fails the whole action: no vote is shown that is not
// durably recorded. On success the vote is pushed to the backend and
// the consensus refreshed in the background.
func (c *Coordinator) Submit(ctx context.Context, gameID string, winner domainpredict.Side) (domainpredict.Vote, error) {
	c.mu.Lock()
	if c.inflight[gameID] {
		c.mu.Unlock()
		return domainpredict.Vote{}, ErrVoteInFlight
	}
	c.inflight[gameID] = true
	c.mu.Unlock()

	vote, err := c.ledger.Commit(gameID, winner)
	if err != nil && !errors.Is(err, ledger.ErrAlreadyVoted) {
		c.clearInflight(gameID)
		return domainpredict.Vote{}, err
	}
	if errors.Is(err, ledger.ErrAlreadyVoted) {
		c.clearInflight(gameID)
		return vote, ledger.ErrAlreadyVoted
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.clearInflight(gameID)
		c.pushVote(ctx, vote)
		c.refreshConsensus(ctx, gameID)
	}()

	return vote, nil
}

// Hydrate re-reads persisted votes after a restart and refreshes the
// consensus for every game the device has voted on.
func (c *Coordinator) Hydrate(ctx context.Context) {
	for gameID := range c.ledger.Votes() {
		c.refreshConsensus(ctx, gameID)
	}
}

// RefreshConsensus fetches the current fan split for a game. Stale
// responses arriving out of order never overwrite newer ones.
func (c *Coordinator) RefreshConsensus(ctx context.Context, gameID string) error {
	return c.refreshConsensus(ctx, gameID)
}

// Snapshot returns the prediction state for a game.
func (c *Coordinator) Snapshot(gameID string) Snapshot {
	var snap Snapshot
	if v, ok := c.ledger.Vote(gameID); ok {
		snap.UserVote = &v
	}
	c.mu.Lock()
	if fc, ok := c.consensus[gameID]; ok {
		snap.Consensus = &fc
	}
	c.mu.Unlock()
	return snap
}

func (c *Coordinator) pushVote(ctx context.Context, vote domainpredict.Vote) {
	err := c.votes.SubmitVote(ctx, vote.GameID, c.deviceID(), vote.PredictedWinner)
	c.metrics.RecordVoteSubmission(err)
	if err != nil {
		logging.Warn(c.logger, "vote submission failed, keeping local vote",
			logging.FieldGameID, vote.GameID,
			logging.FieldSide, string(vote.PredictedWinner),
			logging.FieldError, err)
	}
}

func (c *Coordinator) refreshConsensus(ctx context.Context, gameID string) error {
	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	c.mu.Unlock()

	fc, err := c.votes.FetchConsensus(ctx, gameID)
	if err != nil {
		logging.Warn(c.logger, "consensus refresh failed",
			logging.FieldGameID, gameID, logging.FieldError, err)
		return err
	}

	c.mu.Lock()
	if mySeq > c.applied[gameID] {
		c.applied[gameID] = mySeq
		c.consensus[gameID] = fc
	}
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) clearInflight(gameID string) {
	c.mu.Lock()
	delete(c.inflight, gameID)
	c.mu.Unlock()
}
