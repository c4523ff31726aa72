package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/ftf/pkg/week"
)

func TestSlotRoundTrip(t *testing.T) {
	for s := week.Slot(0); s < week.SlotsPerDay; s++ {
		assert.Equal(t, s, TimeToSlot(SlotToTime(s)), SlotToTime(s))
	}
}

func TestSlotToTime(t *testing.T) {
	assert.Equal(t, "8:00", SlotToTime(0))
	assert.Equal(t, "8:30", SlotToTime(1))
	assert.Equal(t, "19:30", SlotToTime(23))
	assert.Equal(t, "20:00", SlotToTime(24))
	assert.Equal(t, "24:00", SlotToTime(32))
}

func TestSlotToTimeOffClock(t *testing.T) {
	for _, s := range []week.Slot{InvalidSlot, -7, 33, 100} {
		assert.Equal(t, NoTime, SlotToTime(s), int(s))
	}
}

func TestTimeToSlotOutOfRange(t *testing.T) {
	for _, in := range []string{"7:59", "0:00", "19:31", "20:00", "23:30", "nine", "9", "9:75", ""} {
		assert.Equal(t, InvalidSlot, TimeToSlot(in), in)
	}
	assert.Equal(t, week.Slot(3), TimeToSlot("09:45"))
}
