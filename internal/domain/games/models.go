package games

import "github.com/statiq/gridiron-sync/internal/domain/teams"

// Status discriminates the three game variants.
type Status string

const (
	StatusLive     Status = "LIVE"
	StatusFinished Status = "FINISHED"
	StatusUpcoming Status = "UPCOMING"
)

// LiveState holds the fields only an in-progress game carries.
type LiveState struct {
	HomeScore     int    `json:"homeScore"`
	AwayScore     int    `json:"awayScore"`
	Quarter       string `json:"quarter"`
	TimeRemaining string `json:"timeRemaining"`
	StartedAt     string `json:"startedAt,omitempty"`
	Possession    string `json:"possession,omitempty"`
	Broadcaster   string `json:"broadcaster,omitempty"`
}

// FinalState holds the fields only a completed game carries.
type FinalState struct {
	HomeScore   int    `json:"homeScore"`
	AwayScore   int    `json:"awayScore"`
	FinalStatus string `json:"finalStatus"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
}

// UpcomingState holds the fields only a scheduled game carries.
type UpcomingState struct {
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
	Week int    `json:"week,omitempty"`
}

// Game is a tagged union over the three variants. Exactly one of Live,
// Final, Upcoming is non-nil, matching Status.
type Game struct {
	ID             string         `json:"id"`
	HomeTeam       teams.Ref      `json:"homeTeam"`
	AwayTeam       teams.Ref      `json:"awayTeam"`
	Classification string         `json:"classification,omitempty"`
	District       string         `json:"district,omitempty"`
	Location       string         `json:"location,omitempty"`
	PlayoffRound   string         `json:"playoffRound,omitempty"`
	Status         Status         `json:"status"`
	Live           *LiveState     `json:"live,omitempty"`
	Final          *FinalState    `json:"final,omitempty"`
	Upcoming       *UpcomingState `json:"upcoming,omitempty"`
}

// DateValue returns the raw date/timestamp string for the game, preferring
// the variant's civil date. Live games fall back to their start timestamp.
func (g Game) DateValue() string {
	switch g.Status {
	case StatusFinished:
		if g.Final != nil {
			return g.Final.Date
		}
	case StatusUpcoming:
		if g.Upcoming != nil {
			return g.Upcoming.Date
		}
	case StatusLive:
		if g.Live != nil {
			return g.Live.StartedAt
		}
	}
	return ""
}

// Valid reports whether the variant payload matches the discriminant.
func (g Game) Valid() bool {
	switch g.Status {
	case StatusLive:
		return g.Live != nil && g.Final == nil && g.Upcoming == nil
	case StatusFinished:
		return g.Final != nil && g.Live == nil && g.Upcoming == nil
	case StatusUpcoming:
		return g.Upcoming != nil && g.Live == nil && g.Final == nil
	}
	return false
}

// DateGroup is an ordered bucket of games sharing one civil date.
// Label is display-only; SortKey drives ordering.
type DateGroup struct {
	Label   string `json:"label"`
	SortKey string `json:"sortKey"` // YYYY-MM-DD
	Games   []Game `json:"games"`
}
