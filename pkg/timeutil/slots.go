package timeutil

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/ftf/pkg/week"
)

// InvalidSlot is returned by TimeToSlot for times outside 08:00-19:30.
const InvalidSlot week.Slot = -1

const firstHour = 8

// NoTime is rendered for slots that do not fall on the clock.
const NoTime = "--:--"

// SlotToTime converts a slot index to a wall-clock time: 0 -> "8:00",
// 1 -> "8:30", 23 -> "19:30". Slots past the grid keep counting up to
// midnight so block end times still read; anything else is NoTime.
func SlotToTime(slot week.Slot) string {
	if slot < 0 || int(slot) > (24-firstHour)*2 {
		return NoTime
	}
	hour := int(slot)/2 + firstHour
	minute := (int(slot) % 2) * 30
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// TimeToSlot converts "H:MM" to a slot index. Anything unparsable, before
// 08:00 or after 19:30 yields InvalidSlot.
func TimeToSlot(clock string) week.Slot {
	h, m, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return InvalidSlot
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return InvalidSlot
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return InvalidSlot
	}
	if hour < firstHour || hour > 19 || (hour == 19 && minute > 30) {
		return InvalidSlot
	}
	slot := (hour - firstHour) * 2
	if minute >= 30 {
		slot++
	}
	return week.Slot(slot)
}
