package statiq

import (
	"sort"
	"strings"
	"time"

	domainchat "github.com/statiq/gridiron-sync/internal/domain/chat"
	domaingames "github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/domain/teams"
)

func mapScores(payload scoresResponse) []domaingames.Game {
	out := make([]domaingames.Game, 0, len(payload.LiveGames)+len(payload.FinishedGames)+len(payload.UpcomingGames))
	for _, g := range payload.LiveGames {
		out = append(out, mapLiveGame(g))
	}
	for _, g := range payload.FinishedGames {
		out = append(out, mapFinishedGame(g))
	}
	for _, g := range payload.UpcomingGames {
		out = append(out, mapUpcomingGame(g))
	}
	return out
}

func mapLiveGame(g liveGameResponse) domaingames.Game {
	game := mapBase(g.gameBaseResponse)
	game.Status = domaingames.StatusLive
	game.Live = &domaingames.LiveState{
		HomeScore:     g.HomeScore,
		AwayScore:     g.AwayScore,
		Quarter:       g.Quarter,
		TimeRemaining: g.TimeRemaining,
		StartedAt:     g.StartedAt,
		Possession:    g.Possession,
		Broadcaster:   strings.TrimSpace(g.Broadcaster),
	}
	return game
}

func mapFinishedGame(g finishedGameResponse) domaingames.Game {
	game := mapBase(g.gameBaseResponse)
	game.Status = domaingames.StatusFinished
	game.Final = &domaingames.FinalState{
		HomeScore:   g.HomeScore,
		AwayScore:   g.AwayScore,
		FinalStatus: g.FinalStatus,
		Date:        g.Date,
		Time:        g.Time,
	}
	return game
}

func mapUpcomingGame(g upcomingGameResponse) domaingames.Game {
	game := mapBase(g.gameBaseResponse)
	game.Status = domaingames.StatusUpcoming
	game.Upcoming = &domaingames.UpcomingState{
		Date: g.Date,
		Time: g.Time,
		Week: g.Week,
	}
	return game
}

func mapBase(g gameBaseResponse) domaingames.Game {
	return domaingames.Game{
		ID: g.ID,
		HomeTeam: teams.Ref{
			ID:              g.HomeTeamID,
			Name:            g.HomeTeamName,
			Mascot:          g.HomeTeamMascot,
			PrimaryColor:    g.HomePrimaryColor,
			BackgroundColor: g.HomeBackgroundColor,
			Record:          g.HomeRecord,
		},
		AwayTeam: teams.Ref{
			ID:              g.AwayTeamID,
			Name:            g.AwayTeamName,
			Mascot:          g.AwayTeamMascot,
			PrimaryColor:    g.AwayPrimaryColor,
			BackgroundColor: g.AwayBackgroundColor,
			Record:          g.AwayRecord,
		},
		Classification: g.Classification,
		District:       g.District,
		Location:       g.Location,
		PlayoffRound:   g.PlayoffRound,
	}
}

func mapTeam(t teamResponse) teams.Team {
	return teams.Team{
		ID:              t.ID,
		Name:            t.Name,
		Mascot:          t.Mascot,
		District:        t.District,
		Classification:  t.Classification,
		Record:          t.Record,
		PrimaryColor:    t.PrimaryColor,
		BackgroundColor: t.BackgroundColor,
		StateRank:       t.StateRank,
		NationalRank:    t.NationalRank,
		LogoURL:         t.LogoURL,
	}
}

func mapRoom(r roomResponse) domainchat.Room {
	return domainchat.Room{
		ID:           r.ID,
		Type:         domainchat.RoomType(r.RoomType),
		Name:         r.RoomName,
		GameID:       r.GameID,
		TeamID:       r.TeamID,
		IsActive:     r.IsActive,
		IsAccessible: r.IsAccessible,
		MessageCount: r.MessageCount,
	}
}

func mapMessages(in []messageResponse) []domainchat.Message {
	out := make([]domainchat.Message, 0, len(in))
	for _, m := range in {
		out = append(out, mapMessage(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func mapMessage(m messageResponse) domainchat.Message {
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return domainchat.Message{
		ID:          m.ID,
		RoomID:      m.RoomID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		Text:        m.MessageText,
		WasCensored: m.WasCensored,
		CreatedAt:   createdAt,
	}
}
