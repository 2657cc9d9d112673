package viewmode

import "time"

// Mode is the coarse temporal lens that decides which game slices a
// screen shows and how aggressively it polls. It is a heuristic only and
// never authoritative for whether games exist.
type Mode string

const (
	ModeLive    Mode = "live"
	ModeWeekend Mode = "weekend"
	ModeWeekday Mode = "weekday"
	ModePlayoff Mode = "playoff"
)

// Classify derives the mode from wall-clock time. Playoff season
// (November and December) overrides everything, including Friday nights.
// Otherwise Friday 17:00-23:59 is live, Saturday is weekend, and the rest
// of the week is weekday.
//
// Callers should classify once per render pass and reuse the result so a
// mode flip mid-pass cannot split a screen across two modes.
func Classify(now time.Time) Mode {
	month := now.Month()
	if month == time.November || month == time.December {
		return ModePlayoff
	}
	if now.Weekday() == time.Friday && now.Hour() >= 17 {
		return ModeLive
	}
	if now.Weekday() == time.Saturday {
		return ModeWeekend
	}
	return ModeWeekday
}
