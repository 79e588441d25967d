package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d)

	// full timestamps are truncated to the calendar date
	d, err = ParseDate("2025-06-01T18:45:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d)

	for _, raw := range []string{"", "  ", "06/01/2025", "2025-13-01", "yesterday"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrBadDate, raw)
	}
}

func TestDayDropsWallClock(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	stamp := time.Date(2025, 6, 1, 23, 59, 59, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Day(stamp))
}

func TestNights(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan5 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, Nights(jan1, jan5))
	assert.Equal(t, 0, Nights(jan1, jan1))
	assert.Equal(t, 0, Nights(jan5, jan1))
}
