package predict

import "time"

// Side is the predicted winner of a game.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Valid reports whether s is one of the two recognized sides.
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// Vote records one device's prediction for one game. At most one Vote
// exists per (DeviceID, GameID), and it is immutable once committed.
type Vote struct {
	GameID          string    `json:"gameId"`
	DeviceID        string    `json:"deviceId"`
	PredictedWinner Side      `json:"predictedWinner"`
	CommittedAt     time.Time `json:"committedAt"`
}

// FanConsensus is the backend-owned vote aggregate for a game. The client
// only caches it; it is never derived from local votes.
type FanConsensus struct {
	GameID         string  `json:"gameId"`
	HomePercentage float64 `json:"homePercentage"`
	AwayPercentage float64 `json:"awayPercentage"`
	SampleSize     int     `json:"sampleSize"`
}
