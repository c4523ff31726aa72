package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

// DayValue is a pflag.Value accepting day names ("mon", "Tuesday") or
// indexes (0 is Sunday).
type DayValue struct {
	Day week.Day
	set bool
}

var _ pflag.Value = (*DayValue)(nil)

func (d *DayValue) String() string {
	if !d.set {
		return ""
	}
	return d.Day.String()
}

func (d *DayValue) Set(raw string) error {
	day, err := week.ParseDay(raw)
	if err != nil {
		return err
	}
	d.Day, d.set = day, true
	return nil
}

func (d *DayValue) Type() string { return "day" }

// IsSet reports whether the flag was given.
func (d *DayValue) IsSet() bool { return d.set }

// WeekValue is a pflag.Value holding an ISO week id such as 2026-W03.
type WeekValue struct {
	ID week.ID
}

var _ pflag.Value = (*WeekValue)(nil)

func (w *WeekValue) String() string { return string(w.ID) }

func (w *WeekValue) Set(raw string) error {
	id := week.ID(raw)
	if _, err := timeutil.ParseWeekID(id); err != nil {
		return err
	}
	w.ID = id
	return nil
}

func (w *WeekValue) Type() string { return "week" }

// SlotValue is a pflag.Value turning a clock time ("9:30") into a grid slot.
type SlotValue struct {
	Slot week.Slot
	set  bool
}

var _ pflag.Value = (*SlotValue)(nil)

func (s *SlotValue) String() string {
	if !s.set {
		return ""
	}
	return timeutil.SlotToTime(s.Slot)
}

func (s *SlotValue) Set(raw string) error {
	slot := timeutil.TimeToSlot(raw)
	if slot == timeutil.InvalidSlot {
		return fmt.Errorf("time %q is not on the 8:00-19:30 grid", raw)
	}
	s.Slot, s.set = slot, true
	return nil
}

func (s *SlotValue) Type() string { return "time" }

// IsSet reports whether the flag was given.
func (s *SlotValue) IsSet() bool { return s.set }
