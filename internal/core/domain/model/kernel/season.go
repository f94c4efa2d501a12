package kernel

import (
	"fmt"
	"strings"
	"time"

	"pricing/internal/pkg/errs"
)

// Season is the calendar period seasonal discounts are keyed by.
type Season string

const (
	SeasonBlackFriday Season = "black_friday"
	SeasonChristmas   Season = "christmas"
	SeasonWinter      Season = "winter"
	SeasonSpring      Season = "spring"
	SeasonSummer      Season = "summer"
	SeasonAutumn      Season = "autumn"
)

var seasons = []Season{SeasonBlackFriday, SeasonChristmas, SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

type dayWindow struct {
	month   time.Month
	fromDay int
	toDay   int
	season  Season
}

// Special windows in precedence order. The first window containing the date
// wins, so Black Friday shadows the overlapping part of Christmas.
var specialWindows = []dayWindow{
	{month: time.November, fromDay: 24, toDay: 30, season: SeasonBlackFriday},
	{month: time.November, fromDay: 20, toDay: 30, season: SeasonChristmas},
	{month: time.December, fromDay: 1, toDay: 31, season: SeasonChristmas},
	{month: time.January, fromDay: 1, toDay: 7, season: SeasonChristmas},
}

var quarterSeasons = [4]Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// SeasonAt derives the season of a calendar date (in the date's own location).
// Black Friday (Nov 24-30) takes precedence over Christmas (Nov 20 to Jan 7),
// which takes precedence over the quarter: Q1 winter, Q2 spring, Q3 summer,
// Q4 autumn.
func SeasonAt(t time.Time) Season {
	month, day := t.Month(), t.Day()
	for _, w := range specialWindows {
		if month == w.month && day >= w.fromDay && day <= w.toDay {
			return w.season
		}
	}
	return quarterSeasons[(int(month)-1)/3]
}

// AllSeasons returns every season in a stable order.
func AllSeasons() []Season {
	return append([]Season(nil), seasons...)
}

// ParseSeason normalizes s and checks it names a known season.
func ParseSeason(s string) (Season, error) {
	candidate := Season(strings.ToLower(strings.TrimSpace(s)))
	for _, season := range seasons {
		if season == candidate {
			return season, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("season", fmt.Errorf("unknown season %q", s))
}

func (s Season) String() string {
	return string(s)
}
