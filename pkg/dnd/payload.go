// Package dnd reconciles a dragged item dropped on a planner zone into the
// store mutations it implies.
package dnd

import (
	"fmt"
	"strings"

	"tableflip.dev/ftf/pkg/week"
)

// Kind names the source of a drag.
type Kind string

const (
	KindGoal     Kind = "goal"
	KindBlock    Kind = "timeBlock"
	KindPriority Kind = "priority"
	KindEvening  Kind = "evening"
)

// AllPayloadKinds lists every payload kind the engine handles.
func AllPayloadKinds() []Kind {
	return []Kind{KindGoal, KindBlock, KindPriority, KindEvening}
}

// ParseKind accepts a kind name, case-insensitive. "block" is accepted for
// time blocks.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "goal":
		return KindGoal, nil
	case "block", "timeblock", "time-block":
		return KindBlock, nil
	case "priority":
		return KindPriority, nil
	case "evening", "eveningblock", "evening-block":
		return KindEvening, nil
	}
	return "", fmt.Errorf("dnd: unknown payload kind %q", raw)
}

// Payload is what is being dragged. The set of variants is closed.
type Payload interface {
	Kind() Kind
	payload()
}

// GoalPayload is a goal dragged from the sidebar. Dropping copies it.
type GoalPayload struct {
	GoalID string
	RoleID string
	Text   string
}

// BlockPayload is a time block moved from the grid.
type BlockPayload struct {
	BlockID   string
	SourceDay week.Day
}

// PriorityPayload is a day priority moved from a day's list.
type PriorityPayload struct {
	PriorityID string
	GoalID     string
	RoleID     string
	Text       string
	SourceDay  week.Day
}

// EveningPayload is an evening block moved from a day.
type EveningPayload struct {
	EveningBlockID string
	GoalID         string
	RoleID         string
	Title          string
	SourceDay      week.Day
}

func (GoalPayload) Kind() Kind     { return KindGoal }
func (BlockPayload) Kind() Kind    { return KindBlock }
func (PriorityPayload) Kind() Kind { return KindPriority }
func (EveningPayload) Kind() Kind  { return KindEvening }

func (GoalPayload) payload()     {}
func (BlockPayload) payload()    {}
func (PriorityPayload) payload() {}
func (EveningPayload) payload()  {}

// Zone names a drop area.
type Zone string

const (
	ZonePriorities Zone = "priorities"
	ZoneTimeGrid   Zone = "timegrid"
	ZoneEvening    Zone = "evening"
)

// AllZones lists every zone the engine handles.
func AllZones() []Zone {
	return []Zone{ZonePriorities, ZoneTimeGrid, ZoneEvening}
}

// ParseZone accepts a zone name, case-insensitive.
func ParseZone(raw string) (Zone, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "priorities", "priority":
		return ZonePriorities, nil
	case "timegrid", "time-grid", "grid":
		return ZoneTimeGrid, nil
	case "evening":
		return ZoneEvening, nil
	}
	return "", fmt.Errorf("dnd: unknown zone %q", raw)
}

// Target is where a payload is dropped. The set of variants is closed.
type Target interface {
	Zone() Zone
	DayIndex() week.Day
	target()
}

// PrioritiesZone is a day's priority list.
type PrioritiesZone struct {
	Day week.Day
}

// TimeGridZone is one slot of a day's grid.
type TimeGridZone struct {
	Day  week.Day
	Slot week.Slot
}

// EveningZone is a day's evening slot.
type EveningZone struct {
	Day week.Day
}

func (PrioritiesZone) Zone() Zone { return ZonePriorities }
func (TimeGridZone) Zone() Zone   { return ZoneTimeGrid }
func (EveningZone) Zone() Zone    { return ZoneEvening }

func (z PrioritiesZone) DayIndex() week.Day { return z.Day }
func (z TimeGridZone) DayIndex() week.Day   { return z.Day }
func (z EveningZone) DayIndex() week.Day    { return z.Day }

func (PrioritiesZone) target() {}
func (TimeGridZone) target()   {}
func (EveningZone) target()    {}

// NewTarget builds the target for zone z. slot is used only by the grid.
func NewTarget(z Zone, day week.Day, slot week.Slot) (Target, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("dnd: day %d out of range", day)
	}
	switch z {
	case ZonePriorities:
		return PrioritiesZone{Day: day}, nil
	case ZoneTimeGrid:
		if !slot.Valid() {
			return nil, fmt.Errorf("dnd: slot %d out of range", slot)
		}
		return TimeGridZone{Day: day, Slot: slot}, nil
	case ZoneEvening:
		return EveningZone{Day: day}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, z)
}
