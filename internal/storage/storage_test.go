package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statiq/gridiron-sync/internal/domain/predict"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDeviceIDFirstWriteWins(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DeviceID()
	require.ErrorIs(t, err, ErrNoDeviceID)

	require.NoError(t, s.SaveDeviceID("dev-a"))
	require.NoError(t, s.SaveDeviceID("dev-b"))

	id, err := s.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, "dev-a", id)
}

func TestDeviceIDSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveDeviceID("dev-a"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	id, err := s.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, "dev-a", id)
}

func TestRecordVoteWriteOnce(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2025, 10, 3, 19, 30, 0, 0, time.UTC)

	inserted, err := s.RecordVote("g1", predict.SideHome, at)
	require.NoError(t, err)
	assert.True(t, inserted)

	// A second vote for the same game must not replace the first.
	inserted, err = s.RecordVote("g1", predict.SideAway, at.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, inserted)

	v, ok, err := s.Vote("g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, predict.SideHome, v.PredictedWinner)
	assert.Equal(t, at, v.CommittedAt)
}

func TestRecordVoteRejectsInvalidSide(t *testing.T) {
	s := openTestStore(t)
	_, err := s.RecordVote("g1", predict.Side("tie"), time.Now())
	assert.Error(t, err)
}

func TestVotesHydration(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2025, 10, 3, 19, 30, 0, 0, time.UTC)

	_, err := s.RecordVote("g1", predict.SideHome, at)
	require.NoError(t, err)
	_, err = s.RecordVote("g2", predict.SideAway, at)
	require.NoError(t, err)

	votes, err := s.Votes()
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, predict.SideHome, votes["g1"].PredictedWinner)
	assert.Equal(t, predict.SideAway, votes["g2"].PredictedWinner)
}

func TestVoteMissing(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Vote("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowedTeams(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.FollowTeam("team-a"))
	require.NoError(t, s.FollowTeam("team-b"))
	require.NoError(t, s.FollowTeam("team-a")) // idempotent

	teams, err := s.FollowedTeams()
	require.NoError(t, err)
	assert.Equal(t, []string{"team-a", "team-b"}, teams)

	require.NoError(t, s.UnfollowTeam("team-a"))
	teams, err = s.FollowedTeams()
	require.NoError(t, err)
	assert.Equal(t, []string{"team-b"}, teams)
}

func TestRecentSearchesCapAndRecency(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 10, 3, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		q := string(rune('a' + i))
		require.NoError(t, s.AddRecentSearch(q, base.Add(time.Duration(i)*time.Second)))
	}
	// Re-search an old query; it moves to the front instead of duplicating.
	require.NoError(t, s.AddRecentSearch("e", base.Add(time.Hour)))

	got, err := s.RecentSearches()
	require.NoError(t, err)
	require.Len(t, got, maxRecentSearches)
	assert.Equal(t, "e", got[0])
	for _, q := range got {
		assert.NotEqual(t, "a", q, "oldest entries should have been trimmed")
	}
}

func TestRecentSearchesDedupeCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 10, 3, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.AddRecentSearch("Westlake", base))
	require.NoError(t, s.AddRecentSearch("westlake", base.Add(time.Second)))

	got, err := s.RecentSearches()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing-dir", "x", "test.db"))
	assert.Error(t, err)
}
