package predict

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainpredict "github.com/statiq/gridiron-sync/internal/domain/predict"
	"github.com/statiq/gridiron-sync/internal/ledger"
)

type memVoteStore struct {
	mu        sync.Mutex
	votes     map[string]domainpredict.Vote
	recordErr error
}

func newMemVoteStore() *memVoteStore {
	return &memVoteStore{votes: map[string]domainpredict.Vote{}}
}

func (m *memVoteStore) RecordVote(gameID string, winner domainpredict.Side, committedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return false, m.recordErr
	}
	if _, ok := m.votes[gameID]; ok {
		return false, nil
	}
	m.votes[gameID] = domainpredict.Vote{GameID: gameID, PredictedWinner: winner, CommittedAt: committedAt}
	return true, nil
}

func (m *memVoteStore) Votes() (map[string]domainpredict.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domainpredict.Vote, len(m.votes))
	for k, v := range m.votes {
		out[k] = v
	}
	return out, nil
}

type submitRec struct {
	gameID   string
	deviceID string
	winner   domainpredict.Side
}

type stubVotes struct {
	mu          sync.Mutex
	submitErr   error
	submitBlock chan struct{}
	submitted   []submitRec
	consensus   map[string]domainpredict.FanConsensus
	fetches     int
}

func newStubVotes() *stubVotes {
	return &stubVotes{consensus: map[string]domainpredict.FanConsensus{}}
}

func (s *stubVotes) SubmitVote(ctx context.Context, gameID, deviceID string, winner domainpredict.Side) error {
	if s.submitBlock != nil {
		<-s.submitBlock
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, submitRec{gameID, deviceID, winner})
	return nil
}

func (s *stubVotes) FetchConsensus(ctx context.Context, gameID string) (domainpredict.FanConsensus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.consensus[gameID], nil
}

func newTestCoordinator(t *testing.T, votes *stubVotes, store *memVoteStore) *Coordinator {
	t.Helper()
	l, err := ledger.Open(store)
	require.NoError(t, err)
	return NewCoordinator(votes, l, func() string { return "dev-1" }, nil, nil)
}

func TestSubmitCommitsThenPushes(t *testing.T) {
	votes := newStubVotes()
	votes.consensus["g1"] = domainpredict.FanConsensus{GameID: "g1", HomePercentage: 60, AwayPercentage: 40, SampleSize: 5}
	c := newTestCoordinator(t, votes, newMemVoteStore())

	vote, err := c.Submit(context.Background(), "g1", domainpredict.SideHome)
	require.NoError(t, err)
	assert.Equal(t, domainpredict.SideHome, vote.PredictedWinner)
	c.wg.Wait()

	require.Len(t, votes.submitted, 1)
	assert.Equal(t, submitRec{"g1", "dev-1", domainpredict.SideHome}, votes.submitted[0])

	snap := c.Snapshot("g1")
	require.NotNil(t, snap.UserVote)
	assert.Equal(t, domainpredict.SideHome, snap.UserVote.PredictedWinner)
	require.NotNil(t, snap.Consensus)
	assert.Equal(t, 5, snap.Consensus.SampleSize)
}

func TestSubmitLedgerFailureFailsAction(t *testing.T) {
	votes := newStubVotes()
	store := newMemVoteStore()
	store.recordErr = errors.New("disk full")
	c := newTestCoordinator(t, votes, store)

	_, err := c.Submit(context.Background(), "g1", domainpredict.SideHome)
	require.Error(t, err)
	c.wg.Wait()

	assert.Empty(t, votes.submitted, "remote submit must not happen without a durable vote")
	assert.Nil(t, c.Snapshot("g1").UserVote)
}

func TestSubmitRemoteFailureKeepsLocalVote(t *testing.T) {
	votes := newStubVotes()
	votes.submitErr = errors.New("backend down")
	c := newTestCoordinator(t, votes, newMemVoteStore())

	_, err := c.Submit(context.Background(), "g1", domainpredict.SideAway)
	require.NoError(t, err)
	c.wg.Wait()

	snap := c.Snapshot("g1")
	require.NotNil(t, snap.UserVote)
	assert.Equal(t, domainpredict.SideAway, snap.UserVote.PredictedWinner)
}

func TestSubmitRapidTapsCollapse(t *testing.T) {
	votes := newStubVotes()
	votes.submitBlock = make(chan struct{})
	c := newTestCoordinator(t, votes, newMemVoteStore())

	_, err := c.Submit(context.Background(), "g1", domainpredict.SideHome)
	require.NoError(t, err)

	// Second tap while the first submission is still in flight.
	_, err = c.Submit(context.Background(), "g1", domainpredict.SideAway)
	assert.ErrorIs(t, err, ErrVoteInFlight)

	close(votes.submitBlock)
	c.wg.Wait()

	require.Len(t, votes.submitted, 1)
	assert.Equal(t, domainpredict.SideHome, votes.submitted[0].winner)
}

func TestSubmitAlreadyVoted(t *testing.T) {
	votes := newStubVotes()
	c := newTestCoordinator(t, votes, newMemVoteStore())

	_, err := c.Submit(context.Background(), "g1", domainpredict.SideHome)
	require.NoError(t, err)
	c.wg.Wait()

	vote, err := c.Submit(context.Background(), "g1", domainpredict.SideAway)
	require.ErrorIs(t, err, ledger.ErrAlreadyVoted)
	assert.Equal(t, domainpredict.SideHome, vote.PredictedWinner)

	require.Len(t, votes.submitted, 1, "a settled game must not be re-submitted")
}

func TestHydrateRefreshesVotedGames(t *testing.T) {
	votes := newStubVotes()
	votes.consensus["g1"] = domainpredict.FanConsensus{GameID: "g1", SampleSize: 12}
	store := newMemVoteStore()
	_, err := store.RecordVote("g1", domainpredict.SideHome, time.Now())
	require.NoError(t, err)

	c := newTestCoordinator(t, votes, store)
	c.Hydrate(context.Background())

	snap := c.Snapshot("g1")
	require.NotNil(t, snap.UserVote, "persisted vote must survive restart")
	require.NotNil(t, snap.Consensus)
	assert.Equal(t, 12, snap.Consensus.SampleSize)
}

type consensusCall struct {
	gameID string
	reply  chan domainpredict.FanConsensus
}

type scriptedVotes struct {
	calls chan consensusCall
}

func (s *scriptedVotes) SubmitVote(ctx context.Context, gameID, deviceID string, winner domainpredict.Side) error {
	return nil
}

func (s *scriptedVotes) FetchConsensus(ctx context.Context, gameID string) (domainpredict.FanConsensus, error) {
	call := consensusCall{gameID: gameID, reply: make(chan domainpredict.FanConsensus)}
	s.calls <- call
	return <-call.reply, nil
}

func TestStaleConsensusNeverOverwritesNewer(t *testing.T) {
	votes := &scriptedVotes{calls: make(chan consensusCall)}
	l, err := ledger.Open(newMemVoteStore())
	require.NoError(t, err)
	c := NewCoordinator(votes, l, func() string { return "dev-1" }, nil, nil)

	done := make(chan struct{}, 2)
	refresh := func() {
		_ = c.RefreshConsensus(context.Background(), "g1")
		done <- struct{}{}
	}

	go refresh()
	first := <-votes.calls
	go refresh()
	second := <-votes.calls

	// The newer request completes first; the older response arrives late.
	second.reply <- domainpredict.FanConsensus{GameID: "g1", SampleSize: 20}
	<-done
	first.reply <- domainpredict.FanConsensus{GameID: "g1", SampleSize: 3}
	<-done

	snap := c.Snapshot("g1")
	require.NotNil(t, snap.Consensus)
	assert.Equal(t, 20, snap.Consensus.SampleSize, "late stale response must be discarded")
}
