package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/week"
)

func TestWeekIDKnownDates(t *testing.T) {
	cases := []struct {
		date time.Time
		want week.ID
	}{
		{time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC), "2026-W03"},
		{time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC), "2020-W53"},
		{time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "2026-W53"},
		{time.Date(2027, time.January, 3, 0, 0, 0, 0, time.UTC), "2026-W53"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekID(tc.date), tc.date.String())
	}
}

func TestParseWeekIDRoundTrip(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		id := WeekID(d)
		monday, err := ParseWeekID(id)
		require.NoError(t, err, id)
		if !monday.Equal(WeekStart(d)) {
			t.Fatalf("%s: expected monday %s, got %s", id, WeekStart(d), monday)
		}
		if got := WeekID(monday); got != id {
			t.Fatalf("round trip of %s produced %s", id, got)
		}
	}
}

func TestParseWeekIDInvalid(t *testing.T) {
	for _, bad := range []week.ID{"", "2026-3", "2026-W3", "26-W03", "2026-W00", "2025-W53", "2026-W54", "2026-w03"} {
		_, err := ParseWeekID(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrInvalidWeekID), bad)
	}
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, WeeksInYear(2020))
	assert.Equal(t, 52, WeeksInYear(2025))
	assert.Equal(t, 53, WeeksInYear(2026))
}

func TestNextPreviousWeekID(t *testing.T) {
	next, err := NextWeekID("2026-W53")
	require.NoError(t, err)
	assert.Equal(t, week.ID("2027-W01"), next)

	prev, err := PreviousWeekID("2026-W01")
	require.NoError(t, err)
	assert.Equal(t, week.ID("2025-W52"), prev)
}

func TestFormatWeekLabel(t *testing.T) {
	label, err := FormatWeekLabel("2026-W03")
	require.NoError(t, err)
	assert.Equal(t, "Jan 12-18, 2026", label)

	label, err = FormatWeekLabel("2026-W01")
	require.NoError(t, err)
	assert.Equal(t, "Dec 29 - Jan 4, 2025", label)
}

func TestDateForDay(t *testing.T) {
	monday := MustParseWeekID("2026-W03")
	assert.Equal(t, time.Monday, DateForDay(monday, week.Monday).Weekday())
	assert.Equal(t, 18, DateForDay(monday, week.Sunday).Day())
	assert.Equal(t, 17, DateForDay(monday, week.Saturday).Day())
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
