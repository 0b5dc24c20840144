package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRepeat(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("nil rule encodes to empty", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(nil, start)

		assert.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("daily", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(&RepeatRule{Frequency: "daily"}, start)

		require.NoError(t, err)
		assert.Equal(t, "FREQ=DAILY", value)
	})

	t.Run("weekly with interval", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(&RepeatRule{Frequency: "weekly", Interval: 2}, start)

		require.NoError(t, err)
		assert.Equal(t, "FREQ=WEEKLY;INTERVAL=2", value)
	})

	t.Run("count", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(&RepeatRule{Frequency: "monthly", Count: 6}, start)

		require.NoError(t, err)
		assert.Equal(t, "FREQ=MONTHLY;COUNT=6", value)
	})

	t.Run("until rendered as UTC timestamp", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(&RepeatRule{Frequency: "daily", Until: "2025-12-31"}, start)

		require.NoError(t, err)
		assert.Contains(t, value, "FREQ=DAILY")
		assert.Contains(t, value, "UNTIL=20251231T000000Z")
	})

	t.Run("byday accepts case-insensitive codes", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(&RepeatRule{Frequency: "weekly", ByDay: []string{"MO", "we"}}, start)

		require.NoError(t, err)
		assert.Contains(t, value, "FREQ=WEEKLY")
		assert.Contains(t, value, "BYDAY=MO,WE")
	})

	t.Run("no dtstart leaks into the value", func(t *testing.T) {
		t.Parallel()

		value, err := EncodeRepeat(&RepeatRule{Frequency: "yearly"}, start)

		require.NoError(t, err)
		assert.NotContains(t, value, "DTSTART")
	})
}

func TestEncodeRepeat_Invalid(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		repeat *RepeatRule
	}{
		{name: "unknown frequency", repeat: &RepeatRule{Frequency: "fortnightly"}},
		{name: "empty frequency", repeat: &RepeatRule{}},
		{name: "unknown weekday", repeat: &RepeatRule{Frequency: "weekly", ByDay: []string{"someday"}}},
		{name: "malformed until", repeat: &RepeatRule{Frequency: "daily", Until: "31/12/2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			value, err := EncodeRepeat(tt.repeat, start)

			assert.Error(t, err)
			assert.Empty(t, value)
		})
	}
}
