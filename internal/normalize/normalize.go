package normalize

import (
	"sort"
	"time"

	"github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/timeutil"
)

// Dedupe drops games whose id was already seen, keeping the first
// occurrence. Upstream feeds occasionally repeat games across pages, so
// duplicates are filtered silently rather than treated as errors.
func Dedupe(in []games.Game) []games.Game {
	seen := make(map[string]struct{}, len(in))
	out := make([]games.Game, 0, len(in))
	for _, g := range in {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}

// ByStatus splits a mixed fetch into the three variant slices, preserving
// input order. Games whose payload does not match their discriminant are
// dropped.
func ByStatus(in []games.Game) (live, finished, upcoming []games.Game) {
	for _, g := range in {
		if !g.Valid() {
			continue
		}
		switch g.Status {
		case games.StatusLive:
			live = append(live, g)
		case games.StatusFinished:
			finished = append(finished, g)
		case games.StatusUpcoming:
			upcoming = append(upcoming, g)
		}
	}
	return live, finished, upcoming
}

// GroupByDate buckets games by civil date in loc and orders the buckets
// ascending by the underlying date value. Labels are display strings and
// never participate in ordering. Games without a parseable date are
// skipped.
func GroupByDate(in []games.Game, loc *time.Location) []games.DateGroup {
	type bucket struct {
		day   time.Time
		games []games.Game
	}

	buckets := make(map[string]*bucket)
	for _, g := range in {
		value := g.DateValue()
		if value == "" {
			continue
		}
		day, err := timeutil.ParseCivil(value, loc)
		if err != nil {
			continue
		}
		key := timeutil.CivilKey(day)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: day}
			buckets[key] = b
		}
		b.games = append(b.games, g)
	}

	groups := make([]games.DateGroup, 0, len(buckets))
	for key, b := range buckets {
		groups = append(groups, games.DateGroup{
			Label:   timeutil.GroupLabel(b.day),
			SortKey: key,
			Games:   b.games,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SortKey < groups[j].SortKey
	})
	return groups
}

// FilterStaleUpcoming drops Upcoming games dated strictly before today's
// civil date in loc; stale schedule rows are bad data, not news. Live and
// Finished games pass through untouched.
func FilterStaleUpcoming(in []games.Game, now time.Time, loc *time.Location) []games.Game {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc)

	out := make([]games.Game, 0, len(in))
	for _, g := range in {
		if g.Status == games.StatusUpcoming {
			day, err := timeutil.ParseCivil(g.DateValue(), loc)
			if err != nil || timeutil.BeforeCivilDay(day, today) {
				continue
			}
		}
		out = append(out, g)
	}
	return out
}
