package providers

import (
	"context"

	domainchat "github.com/statiq/gridiron-sync/internal/domain/chat"
	domaingames "github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/domain/predict"
	"github.com/statiq/gridiron-sync/internal/domain/teams"
)

// ScoreProvider fetches the full scoreboard, optionally filtered by
// competitive classification ("6A", "5A-D1", ...). An empty
// classification means all games.
type ScoreProvider interface {
	FetchGames(ctx context.Context, classification string) ([]domaingames.Game, error)
}

// TeamProvider fetches a team profile for display enrichment. Treated as
// best-effort; failures never block score display.
type TeamProvider interface {
	FetchTeam(ctx context.Context, teamID string) (teams.Team, error)
}

// VoteService submits predictions and fetches the fan-consensus
// aggregate. SubmitVote is idempotent-safe to retry for a given
// (gameID, deviceID) pair.
type VoteService interface {
	SubmitVote(ctx context.Context, gameID, deviceID string, winner predict.Side) error
	FetchConsensus(ctx context.Context, gameID string) (predict.FanConsensus, error)
}

// ChatService covers the room-scoped chat endpoints. FetchGameRoom
// returns ErrChatClosed once a game's room is closed by policy.
type ChatService interface {
	FetchGameRoom(ctx context.Context, gameID string) (domainchat.Room, error)
	FetchMessages(ctx context.Context, roomID int64, limit int) ([]domainchat.Message, error)
	SendMessage(ctx context.Context, roomID int64, userID, text string) (domainchat.Message, error)
	ReportMessage(ctx context.Context, messageID int64, reason string) error
}

// DataProvider combines all backend capabilities.
type DataProvider interface {
	ScoreProvider
	TeamProvider
	VoteService
	ChatService
}
