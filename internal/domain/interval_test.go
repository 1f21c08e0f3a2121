package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, checkIn, checkOut time.Time) DateInterval {
	t.Helper()
	i, err := NewDateInterval(checkIn, checkOut)
	require.NoError(t, err)
	return i
}

func TestNewDateInterval(t *testing.T) {
	t.Run("valid interval", func(t *testing.T) {
		i, err := NewDateInterval(date(2026, 7, 1), date(2026, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, date(2026, 7, 1), i.CheckIn)
		assert.Equal(t, date(2026, 7, 8), i.CheckOut)
	})

	t.Run("time of day is truncated", func(t *testing.T) {
		checkIn := time.Date(2026, 7, 1, 15, 30, 45, 0, time.UTC)
		checkOut := time.Date(2026, 7, 8, 9, 0, 0, 0, time.UTC)

		i, err := NewDateInterval(checkIn, checkOut)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 7, 1), i.CheckIn)
		assert.Equal(t, date(2026, 7, 8), i.CheckOut)
	})

	t.Run("check-out equal to check-in is invalid", func(t *testing.T) {
		_, err := NewDateInterval(date(2026, 7, 1), date(2026, 7, 1))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("check-out before check-in is invalid", func(t *testing.T) {
		_, err := NewDateInterval(date(2026, 7, 8), date(2026, 7, 1))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("same calendar day with different times is invalid", func(t *testing.T) {
		checkIn := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 7, 1, 22, 0, 0, 0, time.UTC)

		_, err := NewDateInterval(checkIn, checkOut)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestDateInterval_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"single night", date(2026, 7, 1), date(2026, 7, 2), 1},
		{"week", date(2026, 7, 1), date(2026, 7, 8), 7},
		{"across month boundary", date(2026, 7, 30), date(2026, 8, 2), 3},
		{"across year boundary", date(2026, 12, 30), date(2027, 1, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := mustInterval(t, tt.checkIn, tt.checkOut)
			nights, err := i.Nights()
			require.NoError(t, err)
			assert.Equal(t, tt.want, nights)
		})
	}
}

func TestDateInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, date(2026, 7, 10), date(2026, 7, 20))

	tests := []struct {
		name  string
		other DateInterval
		want  bool
	}{
		{"identical", mustInterval(t, date(2026, 7, 10), date(2026, 7, 20)), true},
		{"fully inside", mustInterval(t, date(2026, 7, 12), date(2026, 7, 15)), true},
		{"fully contains", mustInterval(t, date(2026, 7, 5), date(2026, 7, 25)), true},
		{"overlaps start", mustInterval(t, date(2026, 7, 5), date(2026, 7, 12)), true},
		{"overlaps end", mustInterval(t, date(2026, 7, 18), date(2026, 7, 25)), true},
		{"single shared night", mustInterval(t, date(2026, 7, 19), date(2026, 7, 21)), true},
		{"back-to-back before", mustInterval(t, date(2026, 7, 1), date(2026, 7, 10)), false},
		{"back-to-back after", mustInterval(t, date(2026, 7, 20), date(2026, 7, 25)), false},
		{"entirely before", mustInterval(t, date(2026, 7, 1), date(2026, 7, 5)), false},
		{"entirely after", mustInterval(t, date(2026, 7, 25), date(2026, 7, 30)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestDateInterval_Contains(t *testing.T) {
	window := mustInterval(t, date(2026, 6, 1), date(2026, 9, 1))

	tests := []struct {
		name  string
		inner DateInterval
		want  bool
	}{
		{"strictly inside", mustInterval(t, date(2026, 7, 1), date(2026, 7, 8)), true},
		{"exact match", mustInterval(t, date(2026, 6, 1), date(2026, 9, 1)), true},
		{"check-out on window edge", mustInterval(t, date(2026, 8, 25), date(2026, 9, 1)), true},
		{"check-in before window", mustInterval(t, date(2026, 5, 30), date(2026, 6, 5)), false},
		{"check-out after window", mustInterval(t, date(2026, 8, 28), date(2026, 9, 2)), false},
		{"entirely outside", mustInterval(t, date(2026, 10, 1), date(2026, 10, 8)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.inner))
		})
	}
}
