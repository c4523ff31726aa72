package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

var now = time.Date(2026, time.January, 14, 10, 0, 0, 0, time.UTC)

func TestDayValue(t *testing.T) {
	var d DayValue
	assert.False(t, d.IsSet())
	assert.Equal(t, "", d.String())

	require.NoError(t, d.Set("tue"))
	assert.True(t, d.IsSet())
	assert.Equal(t, week.Tuesday, d.Day)

	require.NoError(t, d.Set("0"))
	assert.Equal(t, week.Sunday, d.Day)

	assert.Error(t, d.Set("someday"))
	assert.Equal(t, "day", d.Type())
}

func TestWeekValue(t *testing.T) {
	var w WeekValue
	require.NoError(t, w.Set("2026-W03"))
	assert.Equal(t, week.ID("2026-W03"), w.ID)
	assert.Error(t, w.Set("2026-03"))
	assert.Equal(t, week.ID("2026-W03"), w.ID, "a bad value leaves the old one")
}

func TestSlotValue(t *testing.T) {
	var s SlotValue
	require.NoError(t, s.Set("9:30"))
	assert.Equal(t, week.Slot(3), s.Slot)
	assert.Equal(t, "9:30", s.String())
	assert.Error(t, s.Set("7:00"))
	assert.Error(t, s.Set("noon"))
}

func TestWeekID(t *testing.T) {
	o := &WeekOptions{}
	id, err := o.WeekID(now)
	require.NoError(t, err)
	assert.Equal(t, week.ID("2026-W03"), id)

	o.OnString = "2026-2-2"
	id, err = o.WeekID(now)
	require.NoError(t, err)
	assert.Equal(t, week.ID("2026-W06"), id)

	require.NoError(t, o.Week.Set("2025-W52"))
	id, err = o.WeekID(now)
	require.NoError(t, err)
	assert.Equal(t, week.ID("2025-W52"), id, "--week wins over --on")
}

func TestParseOn(t *testing.T) {
	got, err := ParseOn("1/20", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseOn("1/3", now)
	require.NoError(t, err)
	assert.Equal(t, 2027, got.Year(), "a past month/day rolls to next year")

	got, err = ParseOn("next friday", now)
	require.NoError(t, err)
	assert.True(t, got.After(now))

	_, err = ParseOn("qwerty", now)
	assert.Error(t, err)
}

func TestBlockLink(t *testing.T) {
	o := &BlockOptions{GoalID: "g1"}
	typ, goal, err := o.Link()
	require.NoError(t, err)
	assert.Equal(t, week.BlockGoal, typ)
	assert.Equal(t, "g1", goal)

	o = &BlockOptions{Title: "Gym"}
	typ, goal, err = o.Link()
	require.NoError(t, err)
	assert.Equal(t, week.BlockFreestyle, typ)
	assert.Empty(t, goal)

	_, _, err = (&BlockOptions{}).Link()
	assert.Error(t, err)

	o = &BlockOptions{For: "90m"}
	n, err := o.Duration()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDropTarget(t *testing.T) {
	o := &DropOptions{Zone: "evening"}
	require.NoError(t, o.Day.Set("fri"))
	target, err := o.Target()
	require.NoError(t, err)
	assert.Equal(t, dnd.EveningZone{Day: week.Friday}, target)

	o.Zone = "timegrid"
	_, err = o.Target()
	assert.Error(t, err, "grid drops need a time")

	require.NoError(t, o.At.Set("14:00"))
	target, err = o.Target()
	require.NoError(t, err)
	assert.Equal(t, dnd.TimeGridZone{Day: week.Friday, Slot: 12}, target)

	o.Zone = "sidebar"
	_, err = o.Target()
	assert.Error(t, err)
}

func TestListStoreOptions(t *testing.T) {
	o := &ListOptions{Limit: 3}
	assert.Equal(t, store.ListOptions{Limit: 3, Order: store.Newest}, o.StoreOptions())
	o.Oldest = true
	assert.Equal(t, store.Oldest, o.StoreOptions().Order)
}
