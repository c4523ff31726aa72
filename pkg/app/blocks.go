package app

import (
	"strings"

	"tableflip.dev/ftf/pkg/week"
)

// TimeBlockInput describes a new block on the day grid.
type TimeBlockInput struct {
	Type      week.BlockType
	GoalID    string
	RoleID    string
	Day       week.Day
	StartSlot week.Slot
	Duration  int
	Title     string
	Completed bool
}

// TimeBlockUpdate carries the block fields to change. Nil fields are left alone.
type TimeBlockUpdate struct {
	Day       *week.Day
	StartSlot *week.Slot
	Duration  *int
	Title     *string
	Completed *bool
}

// EveningBlockInput describes a new evening block.
type EveningBlockInput struct {
	Type      week.BlockType
	GoalID    string
	RoleID    string
	Day       week.Day
	Title     string
	Completed bool
}

// EveningBlockUpdate carries the evening block fields to change. Moving a
// block to another day does not check that day's occupancy.
type EveningBlockUpdate struct {
	Day       *week.Day
	Title     *string
	Completed *bool
}

// linkage validates the goal/role pair of a block. Goal blocks need a goal;
// a missing role is filled from the goal when the goal exists. Freestyle
// blocks carry neither.
func linkage(w *week.Week, t week.BlockType, goalID, roleID string) (week.BlockType, string, string, error) {
	switch t {
	case week.BlockGoal:
		if goalID == "" {
			return t, "", "", invalid("goal block needs a goal id")
		}
		if roleID == "" {
			if g, ok := w.Goal(goalID); ok {
				roleID = g.RoleID
			}
		}
		return t, goalID, roleID, nil
	case week.BlockFreestyle, "":
		return week.BlockFreestyle, "", "", nil
	default:
		return t, "", "", invalid("unknown block type %q", t)
	}
}

// AddTimeBlock schedules a block. Duration defaults to one hour; overlaps
// are allowed and the end is not clamped to the grid.
func (s *WeekStore) AddTimeBlock(in TimeBlockInput) (week.TimeBlock, error) {
	if !in.Day.Valid() {
		return week.TimeBlock{}, invalid("day %d out of range", in.Day)
	}
	if !in.StartSlot.Valid() {
		return week.TimeBlock{}, invalid("slot %d out of range", in.StartSlot)
	}
	if in.Duration == 0 {
		in.Duration = week.DefaultBlockDuration
	}
	if in.Duration < 1 {
		return week.TimeBlock{}, invalid("duration %d below one slot", in.Duration)
	}
	var b week.TimeBlock
	err := s.mutate(func(w *week.Week) error {
		t, goalID, roleID, err := linkage(w, in.Type, in.GoalID, in.RoleID)
		if err != nil {
			return err
		}
		b = week.TimeBlock{
			ID:        s.newID(),
			Type:      t,
			GoalID:    goalID,
			RoleID:    roleID,
			Day:       in.Day,
			StartSlot: in.StartSlot,
			Duration:  in.Duration,
			Title:     strings.TrimSpace(in.Title),
			Completed: in.Completed,
		}
		w.TimeBlocks = append(w.TimeBlocks, b)
		return nil
	})
	return b, err
}

// UpdateTimeBlock applies u to block id.
func (s *WeekStore) UpdateTimeBlock(id string, u TimeBlockUpdate) error {
	if u.Day != nil && !u.Day.Valid() {
		return invalid("day %d out of range", *u.Day)
	}
	if u.StartSlot != nil && !u.StartSlot.Valid() {
		return invalid("slot %d out of range", *u.StartSlot)
	}
	if u.Duration != nil && *u.Duration < 1 {
		return invalid("duration %d below one slot", *u.Duration)
	}
	return s.mutate(func(w *week.Week) error {
		for i := range w.TimeBlocks {
			b := &w.TimeBlocks[i]
			if b.ID != id {
				continue
			}
			if u.Day != nil {
				b.Day = *u.Day
			}
			if u.StartSlot != nil {
				b.StartSlot = *u.StartSlot
			}
			if u.Duration != nil {
				b.Duration = *u.Duration
			}
			if u.Title != nil {
				b.Title = strings.TrimSpace(*u.Title)
			}
			if u.Completed != nil {
				b.Completed = *u.Completed
			}
			return nil
		}
		return notFound("time block", id)
	})
}

// DeleteTimeBlock removes block id.
func (s *WeekStore) DeleteTimeBlock(id string) error {
	return s.mutate(func(w *week.Week) error {
		if _, ok := w.TimeBlock(id); !ok {
			return notFound("time block", id)
		}
		w.TimeBlocks = filter(w.TimeBlocks, func(b week.TimeBlock) bool { return b.ID != id })
		return nil
	})
}

// ToggleTimeBlockCompleted flips the completed flag of block id.
func (s *WeekStore) ToggleTimeBlockCompleted(id string) error {
	return s.mutate(func(w *week.Week) error {
		for i := range w.TimeBlocks {
			if w.TimeBlocks[i].ID == id {
				w.TimeBlocks[i].Completed = !w.TimeBlocks[i].Completed
				return nil
			}
		}
		return notFound("time block", id)
	})
}

// AddEveningBlock sets the evening block of a day. A day holds at most one.
func (s *WeekStore) AddEveningBlock(in EveningBlockInput) (week.EveningBlock, error) {
	if !in.Day.Valid() {
		return week.EveningBlock{}, invalid("day %d out of range", in.Day)
	}
	var b week.EveningBlock
	err := s.mutate(func(w *week.Week) error {
		if existing, ok := w.EveningBlockFor(in.Day); ok {
			return &OccupiedError{Day: in.Day, BlockID: existing.ID}
		}
		t, goalID, roleID, err := linkage(w, in.Type, in.GoalID, in.RoleID)
		if err != nil {
			return err
		}
		b = week.EveningBlock{
			ID:        s.newID(),
			Type:      t,
			GoalID:    goalID,
			RoleID:    roleID,
			Day:       in.Day,
			Title:     strings.TrimSpace(in.Title),
			Completed: in.Completed,
		}
		w.EveningBlocks = append(w.EveningBlocks, b)
		return nil
	})
	return b, err
}

// UpdateEveningBlock applies u to evening block id.
func (s *WeekStore) UpdateEveningBlock(id string, u EveningBlockUpdate) error {
	if u.Day != nil && !u.Day.Valid() {
		return invalid("day %d out of range", *u.Day)
	}
	return s.mutate(func(w *week.Week) error {
		for i := range w.EveningBlocks {
			b := &w.EveningBlocks[i]
			if b.ID != id {
				continue
			}
			if u.Day != nil {
				b.Day = *u.Day
			}
			if u.Title != nil {
				b.Title = strings.TrimSpace(*u.Title)
			}
			if u.Completed != nil {
				b.Completed = *u.Completed
			}
			return nil
		}
		return notFound("evening block", id)
	})
}

// DeleteEveningBlock removes evening block id.
func (s *WeekStore) DeleteEveningBlock(id string) error {
	return s.mutate(func(w *week.Week) error {
		if _, ok := w.EveningBlock(id); !ok {
			return notFound("evening block", id)
		}
		w.EveningBlocks = filter(w.EveningBlocks, func(b week.EveningBlock) bool { return b.ID != id })
		return nil
	})
}

// ToggleEveningBlockCompleted flips the completed flag of evening block id.
func (s *WeekStore) ToggleEveningBlockCompleted(id string) error {
	return s.mutate(func(w *week.Week) error {
		for i := range w.EveningBlocks {
			if w.EveningBlocks[i].ID == id {
				w.EveningBlocks[i].Completed = !w.EveningBlocks[i].Completed
				return nil
			}
		}
		return notFound("evening block", id)
	})
}

// OccupiedError reports the evening block already holding a day.
type OccupiedError struct {
	Day     week.Day
	BlockID string
}

func (e *OccupiedError) Error() string {
	return "evening of " + e.Day.String() + " already holds " + e.BlockID
}

// Unwrap lets errors.Is match ErrEveningSlotOccupied.
func (e *OccupiedError) Unwrap() error {
	return ErrEveningSlotOccupied
}
