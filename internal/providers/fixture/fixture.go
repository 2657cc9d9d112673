package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainchat "github.com/statiq/gridiron-sync/internal/domain/chat"
	domaingames "github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/domain/predict"
	"github.com/statiq/gridiron-sync/internal/domain/teams"
	"github.com/statiq/gridiron-sync/internal/timeutil"
)

// Provider returns a static slate of games and an in-memory chat room,
// useful for local development and bootstrapping without a backend.
type Provider struct {
	now func() time.Time

	mu       sync.Mutex
	votes    map[string]map[string]predict.Side // gameID -> deviceID -> side
	messages []domainchat.Message
	nextMsg  int64
}

// New creates a fixture provider with a real time source.
func New() *Provider {
	return &Provider{
		now:     time.Now,
		votes:   make(map[string]map[string]predict.Side),
		nextMsg: 1,
	}
}

// FetchGames returns a deterministic slate: one live, one finished, one
// upcoming game relative to the provider's clock.
func (p *Provider) FetchGames(ctx context.Context, classification string) ([]domaingames.Game, error) {
	_ = ctx

	today := timeutil.CivilKey(p.now())
	nextWeek := timeutil.CivilKey(p.now().AddDate(0, 0, 7))

	slate := []domaingames.Game{
		{
			ID:             "fixture-live-1",
			HomeTeam:       teams.Ref{ID: "team-westlake", Name: "Westlake", Mascot: "Chaparrals"},
			AwayTeam:       teams.Ref{ID: "team-laketravis", Name: "Lake Travis", Mascot: "Cavaliers"},
			Classification: "6A",
			Status:         domaingames.StatusLive,
			Live:           &domaingames.LiveState{HomeScore: 21, AwayScore: 17, Quarter: "3Q", TimeRemaining: "06:42"},
		},
		{
			ID:             "fixture-final-1",
			HomeTeam:       teams.Ref{ID: "team-allen", Name: "Allen", Mascot: "Eagles"},
			AwayTeam:       teams.Ref{ID: "team-highlandpark", Name: "Highland Park", Mascot: "Scots"},
			Classification: "6A",
			Status:         domaingames.StatusFinished,
			Final:          &domaingames.FinalState{HomeScore: 35, AwayScore: 28, FinalStatus: "FINAL", Date: today},
		},
		{
			ID:             "fixture-upcoming-1",
			HomeTeam:       teams.Ref{ID: "team-katy", Name: "Katy", Mascot: "Tigers"},
			AwayTeam:       teams.Ref{ID: "team-northshore", Name: "North Shore", Mascot: "Mustangs"},
			Classification: "6A",
			Status:         domaingames.StatusUpcoming,
			Upcoming:       &domaingames.UpcomingState{Date: nextWeek, Time: "7:00 PM", Week: 7},
		},
	}

	if classification == "" {
		return slate, nil
	}
	filtered := slate[:0]
	for _, g := range slate {
		if g.Classification == classification {
			filtered = append(filtered, g)
		}
	}
	return filtered, nil
}

// FetchTeam returns a minimal profile for any id.
func (p *Provider) FetchTeam(ctx context.Context, teamID string) (teams.Team, error) {
	_ = ctx
	return teams.Team{ID: teamID, Name: "Fixture", Mascot: "Fixtures", Classification: "6A", Record: "5-1"}, nil
}

// SubmitVote records the vote in memory; repeated submissions for the
// same (game, device) keep the first side, matching the backend.
func (p *Provider) SubmitVote(ctx context.Context, gameID, deviceID string, winner predict.Side) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	byDevice, ok := p.votes[gameID]
	if !ok {
		byDevice = make(map[string]predict.Side)
		p.votes[gameID] = byDevice
	}
	if _, voted := byDevice[deviceID]; !voted {
		byDevice[deviceID] = winner
	}
	return nil
}

// FetchConsensus aggregates the in-memory votes.
func (p *Provider) FetchConsensus(ctx context.Context, gameID string) (predict.FanConsensus, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	byDevice := p.votes[gameID]
	total := len(byDevice)
	fc := predict.FanConsensus{GameID: gameID, SampleSize: total}
	if total == 0 {
		return fc, nil
	}
	home := 0
	for _, side := range byDevice {
		if side == predict.SideHome {
			home++
		}
	}
	fc.HomePercentage = float64(home) / float64(total) * 100
	fc.AwayPercentage = 100 - fc.HomePercentage
	return fc, nil
}

// FetchGameRoom returns an open room for any game.
func (p *Provider) FetchGameRoom(ctx context.Context, gameID string) (domainchat.Room, error) {
	_ = ctx
	return domainchat.Room{
		ID:           1,
		Type:         domainchat.RoomGame,
		Name:         fmt.Sprintf("Game %s", gameID),
		GameID:       gameID,
		IsActive:     true,
		IsAccessible: true,
	}, nil
}

// FetchMessages returns the in-memory room history, oldest first.
func (p *Provider) FetchMessages(ctx context.Context, roomID int64, limit int) ([]domainchat.Message, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domainchat.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// SendMessage appends to the in-memory history.
func (p *Provider) SendMessage(ctx context.Context, roomID int64, userID, text string) (domainchat.Message, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := domainchat.Message{
		ID:        p.nextMsg,
		RoomID:    roomID,
		UserID:    userID,
		UserName:  userID,
		Text:      text,
		CreatedAt: p.now().UTC(),
	}
	p.nextMsg++
	p.messages = append(p.messages, msg)
	return msg, nil
}

// ReportMessage is a no-op for fixtures.
func (p *Provider) ReportMessage(ctx context.Context, messageID int64, reason string) error {
	_, _ = messageID, reason
	_ = ctx
	return nil
}
