package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 10, 30, 45, 0, time.UTC)

func TestDefaultPeriod(t *testing.T) {
	p := DefaultPeriod(now, 30)
	assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), p.EndDate)
	assert.Equal(t, time.Date(2025, 5, 16, 10, 30, 0, 0, time.UTC), p.StartDate)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2025-06-01", "2025-06-07", now, 30)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, time.Date(2025, 6, 7, 23, 59, 59, 999999999, time.UTC), p.EndDate)

	// a single day is allowed
	_, err = ParsePeriod("2025-06-07", "2025-06-07", now, 30)
	require.NoError(t, err)

	p, err = ParsePeriod("2025-06-01", "", now, 30)
	require.NoError(t, err)
	assert.Equal(t, DefaultPeriod(now, 30).EndDate, p.EndDate)

	p, err = ParsePeriod("", "2025-01-31", now, 30)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 999999999, time.UTC), p.EndDate)

	// future start with no end collapses to the start instant
	p, err = ParsePeriod("2025-06-20", "", now, 30)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, p.StartDate, p.EndDate)

	p, err = ParsePeriod("", "", now, 7)
	require.NoError(t, err)
	assert.Equal(t, DefaultPeriod(now, 7), p)
}

func TestParsePeriodErrors(t *testing.T) {
	for _, tc := range [][2]string{
		{"2025/06/01", ""},
		{"", "yesterday"},
		{"2025-06-08", "2025-06-07"},
	} {
		_, err := ParsePeriod(tc[0], tc[1], now, 30)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "%v", tc)
	}
}
