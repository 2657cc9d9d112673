package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical civil date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var bareDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// IsBareDate reports whether value is a bare YYYY-MM-DD civil date.
func IsBareDate(value string) bool {
	return bareDate.MatchString(value)
}

// ParseCivil resolves a date value to a calendar day in loc.
//
// Bare YYYY-MM-DD strings are decomposed into year/month/day and built
// directly in loc. Running them through a timezone-aware parser would
// shift the day near midnight in non-UTC locales. Full timestamps are
// parsed normally but keep the offset they were written in, so a midnight
// UTC kickoff does not drift to the previous day in western locales.
func ParseCivil(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if m := bareDate.FindStringSubmatch(value); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
	}
	return time.Parse(time.RFC3339, value)
}

// CivilKey formats a time as its YYYY-MM-DD civil date.
func CivilKey(t time.Time) string {
	return t.Format(DateLayout)
}

// GroupLabel renders the long-form date header, e.g. "FRIDAY, OCT 3".
func GroupLabel(t time.Time) string {
	return strings.ToUpper(t.Format("Monday, Jan 2"))
}

// SameCivilDay reports whether a and b fall on the same calendar day.
func SameCivilDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeCivilDay reports whether a's calendar day is strictly before b's.
func BeforeCivilDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
