package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentDate_JSTBoundary(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "UTC evening is already tomorrow in JST",
			now:      time.Date(2024, 6, 1, 16, 30, 0, 0, time.UTC),
			expected: "2024-06-02",
		},
		{
			name:     "UTC morning is the same JST day",
			now:      time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
			expected: "2024-06-01",
		},
		{
			name:     "JST midnight exactly",
			now:      time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC),
			expected: "2024-06-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrentDate(NewFixedClock(tt.now)))
		})
	}
}

func TestNextAndPreviousDate(t *testing.T) {
	next, err := NextDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", next)

	prev, err := PreviousDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-31", prev)

	// Month boundary
	next, err = NextDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", next)

	_, err = NextDate("06/01/2024")
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expectError bool
	}{
		{name: "Valid RFC3339", value: "2024-06-01T06:00:00Z"},
		{name: "Valid with offset", value: "2024-06-01T15:00:00+09:00"},
		{name: "Empty", value: "", expectError: true},
		{name: "Missing T separator", value: "2024-06-01 06:00:00", expectError: true},
		{name: "Garbage", value: "not-a-time", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.value)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.False(t, ts.IsZero())
			}
		})
	}
}
