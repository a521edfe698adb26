package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("12/03/2026")
	assert.Error(t, err)

	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	s, err := ParseTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", s)

	// Normalized output keeps lexicographic order equal to clock order.
	early, _ := ParseTime("08:05")
	late, _ := ParseTime("17:45")
	assert.True(t, early < late)

	_, err = ParseTime("25:00")
	assert.Error(t, err)

	_, err = ParseTime("0930")
	assert.Error(t, err)
}

func TestFormatDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", FormatDate(d))
}

func TestToday(t *testing.T) {
	today := Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, time.UTC, today.Location())
	assert.False(t, Today().Before(today))
}
