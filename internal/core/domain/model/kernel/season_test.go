package kernel_test

import (
	"testing"
	"time"

	"pricing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonAt(t *testing.T) {
	testCases := []struct {
		date     string
		expected kernel.Season
	}{
		{date: "2025-11-24", expected: kernel.SeasonBlackFriday},
		{date: "2025-11-30", expected: kernel.SeasonBlackFriday},
		{date: "2025-11-20", expected: kernel.SeasonChristmas},
		{date: "2025-11-23", expected: kernel.SeasonChristmas},
		{date: "2025-12-31", expected: kernel.SeasonChristmas},
		{date: "2026-01-07", expected: kernel.SeasonChristmas},
		{date: "2026-01-08", expected: kernel.SeasonWinter},
		{date: "2026-03-31", expected: kernel.SeasonWinter},
		{date: "2026-04-01", expected: kernel.SeasonSpring},
		{date: "2026-07-15", expected: kernel.SeasonSummer},
		{date: "2026-10-01", expected: kernel.SeasonAutumn},
		{date: "2026-11-19", expected: kernel.SeasonAutumn},
	}

	for _, tc := range testCases {
		t.Run(tc.date, func(t *testing.T) {
			date, err := time.Parse(time.DateOnly, tc.date)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, kernel.SeasonAt(date))
		})
	}
}

func TestParseSeason(t *testing.T) {
	s, err := kernel.ParseSeason("Black_Friday")
	require.NoError(t, err)
	assert.Equal(t, kernel.SeasonBlackFriday, s)

	_, err = kernel.ParseSeason("monsoon")
	require.Error(t, err)
}
