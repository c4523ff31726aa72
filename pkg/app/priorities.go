package app

import (
	"tableflip.dev/ftf/pkg/week"
)

// PriorityInput describes a goal pinned to a day.
type PriorityInput struct {
	GoalID    string
	Day       week.Day
	Completed bool
}

// AddDayPriority appends a priority to the end of its day's list. The goal is
// referenced, not checked: a priority may outlive its goal.
func (s *WeekStore) AddDayPriority(in PriorityInput) (week.DayPriority, error) {
	if !in.Day.Valid() {
		return week.DayPriority{}, invalid("day %d out of range", in.Day)
	}
	if in.GoalID == "" {
		return week.DayPriority{}, invalid("goal id required")
	}
	var p week.DayPriority
	err := s.mutate(func(w *week.Week) error {
		p = week.DayPriority{
			ID:        s.newID(),
			GoalID:    in.GoalID,
			Day:       in.Day,
			Order:     len(w.DayPrioritiesFor(in.Day)),
			Completed: in.Completed,
		}
		w.DayPriorities = append(w.DayPriorities, p)
		return nil
	})
	return p, err
}

// RemoveDayPriority deletes priority id.
func (s *WeekStore) RemoveDayPriority(id string) error {
	return s.mutate(func(w *week.Week) error {
		if _, ok := w.DayPriority(id); !ok {
			return notFound("priority", id)
		}
		w.DayPriorities = filter(w.DayPriorities, func(p week.DayPriority) bool { return p.ID != id })
		return nil
	})
}

// ToggleDayPriorityCompleted flips the completed flag of priority id.
func (s *WeekStore) ToggleDayPriorityCompleted(id string) error {
	return s.mutate(func(w *week.Week) error {
		for i := range w.DayPriorities {
			if w.DayPriorities[i].ID == id {
				w.DayPriorities[i].Completed = !w.DayPriorities[i].Completed
				return nil
			}
		}
		return notFound("priority", id)
	})
}

// ReorderDayPriorities sets the order of the listed priorities of day to
// their index in ids. Priorities of other days, and unlisted ones, keep
// their order.
func (s *WeekStore) ReorderDayPriorities(day week.Day, ids []string) error {
	if !day.Valid() {
		return invalid("day %d out of range", day)
	}
	return s.mutate(func(w *week.Week) error {
		pos := make(map[string]int, len(ids))
		for i, id := range ids {
			pos[id] = i
		}
		for i := range w.DayPriorities {
			if w.DayPriorities[i].Day != day {
				continue
			}
			if p, ok := pos[w.DayPriorities[i].ID]; ok {
				w.DayPriorities[i].Order = p
			}
		}
		return nil
	})
}
