package normalize

import (
	"testing"
	"time"

	"github.com/statiq/gridiron-sync/internal/domain/games"
	"github.com/statiq/gridiron-sync/internal/domain/teams"
)

func upcoming(id, date string) games.Game {
	return games.Game{
		ID:       id,
		HomeTeam: teams.Ref{ID: "h-" + id},
		AwayTeam: teams.Ref{ID: "a-" + id},
		Status:   games.StatusUpcoming,
		Upcoming: &games.UpcomingState{Date: date, Time: "7:00 PM"},
	}
}

func finished(id, date string) games.Game {
	return games.Game{
		ID:       id,
		Status:   games.StatusFinished,
		Final:    &games.FinalState{HomeScore: 21, AwayScore: 14, FinalStatus: "FINAL", Date: date},
		HomeTeam: teams.Ref{ID: "h-" + id},
		AwayTeam: teams.Ref{ID: "a-" + id},
	}
}

func live(id string) games.Game {
	return games.Game{
		ID:     id,
		Status: games.StatusLive,
		Live:   &games.LiveState{Quarter: "2Q", TimeRemaining: "04:12", HomeScore: 7, AwayScore: 10},
	}
}

func TestDedupeFirstSeenWins(t *testing.T) {
	a := upcoming("g1", "2025-10-03")
	dup := upcoming("g1", "2025-10-10") // same id, different payload
	b := upcoming("g2", "2025-10-03")

	out := Dedupe([]games.Game{a, dup, b})
	if len(out) != 2 {
		t.Fatalf("expected 2 games, got %d", len(out))
	}
	if out[0].Upcoming.Date != "2025-10-03" {
		t.Fatalf("expected first occurrence kept, got date %s", out[0].Upcoming.Date)
	}
	if out[1].ID != "g2" {
		t.Fatalf("expected input order preserved, got %s", out[1].ID)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	in := []games.Game{upcoming("g1", "2025-10-03"), upcoming("g1", "2025-10-03"), upcoming("g2", "2025-10-04")}

	once := Dedupe(in)
	twice := Dedupe(once)
	if len(once) != len(twice) {
		t.Fatalf("dedupe not idempotent: %d vs %d", len(once), len(twice))
	}
	if len(once) > len(in) {
		t.Fatalf("output longer than input")
	}
	seen := map[string]bool{}
	for _, g := range once {
		if seen[g.ID] {
			t.Fatalf("duplicate id %s in output", g.ID)
		}
		seen[g.ID] = true
	}
}

func TestGroupByDateBareAndTimestampShareGroup(t *testing.T) {
	// UTC-5: naive parsing of the bare date would drift to Oct 2.
	loc := time.FixedZone("UTC-5", -5*60*60)

	g1 := upcoming("g1", "2025-10-03")
	g2 := finished("g2", "2025-10-03T00:00:00Z")

	groups := GroupByDate([]games.Game{g1, g2}, loc)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if groups[0].SortKey != "2025-10-03" {
		t.Fatalf("expected sort key 2025-10-03, got %s", groups[0].SortKey)
	}
	if groups[0].Label != "FRIDAY, OCT 3" {
		t.Fatalf("unexpected label %s", groups[0].Label)
	}
	if len(groups[0].Games) != 2 {
		t.Fatalf("expected both games in group, got %d", len(groups[0].Games))
	}
}

func TestGroupByDateOrdersByDateNotLabel(t *testing.T) {
	// Lexicographic label ordering would put SEP after OCT.
	sep := upcoming("g1", "2025-09-26")
	oct := upcoming("g2", "2025-10-03")

	groups := GroupByDate([]games.Game{oct, sep}, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}
	if groups[0].SortKey != "2025-09-26" || groups[1].SortKey != "2025-10-03" {
		t.Fatalf("groups out of order: %s, %s", groups[0].SortKey, groups[1].SortKey)
	}
}

func TestGroupByDateSkipsUnparseable(t *testing.T) {
	groups := GroupByDate([]games.Game{upcoming("g1", "soon"), upcoming("g2", "2025-10-03")}, time.UTC)
	if len(groups) != 1 || len(groups[0].Games) != 1 {
		t.Fatalf("expected only the parseable game grouped, got %+v", groups)
	}
}

func TestFilterStaleUpcoming(t *testing.T) {
	now := time.Date(2025, time.October, 3, 12, 0, 0, 0, time.UTC)

	stale := upcoming("g1", "2025-10-02")
	today := upcoming("g2", "2025-10-03")
	done := finished("g3", "2025-10-02") // finished games are never date-filtered

	out := FilterStaleUpcoming([]games.Game{stale, today, done}, now, time.UTC)
	if len(out) != 2 {
		t.Fatalf("expected 2 games, got %d", len(out))
	}
	for _, g := range out {
		if g.ID == "g1" {
			t.Fatal("stale upcoming game should have been dropped")
		}
	}
}

func TestByStatusSplitsAndValidates(t *testing.T) {
	invalid := games.Game{ID: "bad", Status: games.StatusLive} // no Live payload

	l, f, u := ByStatus([]games.Game{live("g1"), finished("g2", "2025-10-03"), upcoming("g3", "2025-10-10"), invalid})
	if len(l) != 1 || len(f) != 1 || len(u) != 1 {
		t.Fatalf("unexpected split: live=%d finished=%d upcoming=%d", len(l), len(f), len(u))
	}
}
