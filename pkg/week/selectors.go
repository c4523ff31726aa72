package week

import "sort"

// SortedRoles returns the roles ordered by Order. Ties keep insertion order.
func (w *Week) SortedRoles() []Role {
	if w == nil {
		return nil
	}
	out := append([]Role(nil), w.Roles...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Role looks up a role by id.
func (w *Week) Role(id string) (Role, bool) {
	if w == nil {
		return Role{}, false
	}
	for _, r := range w.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// Goal looks up a goal by id. A false result is how dangling references from
// priorities and blocks surface.
func (w *Week) Goal(id string) (Goal, bool) {
	if w == nil || id == "" {
		return Goal{}, false
	}
	for _, g := range w.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// GoalsByRole returns the goals owned by roleID.
func (w *Week) GoalsByRole(roleID string) []Goal {
	if w == nil {
		return nil
	}
	var out []Goal
	for _, g := range w.Goals {
		if g.RoleID == roleID {
			out = append(out, g)
		}
	}
	return out
}

// DayPrioritiesFor returns the priorities of day sorted by Order.
func (w *Week) DayPrioritiesFor(day Day) []DayPriority {
	if w == nil {
		return nil
	}
	var out []DayPriority
	for _, p := range w.DayPriorities {
		if p.Day == day {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// DayPriority looks up a priority by id.
func (w *Week) DayPriority(id string) (DayPriority, bool) {
	if w == nil {
		return DayPriority{}, false
	}
	for _, p := range w.DayPriorities {
		if p.ID == id {
			return p, true
		}
	}
	return DayPriority{}, false
}

// TimeBlocksFor returns the blocks of day sorted by start slot.
func (w *Week) TimeBlocksFor(day Day) []TimeBlock {
	if w == nil {
		return nil
	}
	var out []TimeBlock
	for _, b := range w.TimeBlocks {
		if b.Day == day {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartSlot < out[j].StartSlot
	})
	return out
}

// TimeBlock looks up a time block by id.
func (w *Week) TimeBlock(id string) (TimeBlock, bool) {
	if w == nil {
		return TimeBlock{}, false
	}
	for _, b := range w.TimeBlocks {
		if b.ID == id {
			return b, true
		}
	}
	return TimeBlock{}, false
}

// EveningBlockFor returns the evening block of day, if any.
func (w *Week) EveningBlockFor(day Day) (EveningBlock, bool) {
	if w == nil {
		return EveningBlock{}, false
	}
	for _, b := range w.EveningBlocks {
		if b.Day == day {
			return b, true
		}
	}
	return EveningBlock{}, false
}

// EveningBlock looks up an evening block by id.
func (w *Week) EveningBlock(id string) (EveningBlock, bool) {
	if w == nil {
		return EveningBlock{}, false
	}
	for _, b := range w.EveningBlocks {
		if b.ID == id {
			return b, true
		}
	}
	return EveningBlock{}, false
}

// ResolvedPriority pairs a priority with the goal and role it points at.
type ResolvedPriority struct {
	DayPriority
	Goal Goal
	Role Role
}

// ResolvedPrioritiesFor returns the priorities of day whose goal still exists.
// Orphaned priorities are skipped.
func (w *Week) ResolvedPrioritiesFor(day Day) []ResolvedPriority {
	var out []ResolvedPriority
	for _, p := range w.DayPrioritiesFor(day) {
		g, ok := w.Goal(p.GoalID)
		if !ok {
			continue
		}
		r, _ := w.Role(g.RoleID)
		out = append(out, ResolvedPriority{DayPriority: p, Goal: g, Role: r})
	}
	return out
}

// Orphaned reports whether a goal-typed block points at a goal that no longer
// exists. Freestyle blocks are never orphaned.
func (w *Week) Orphaned(t BlockType, goalID string) bool {
	if t != BlockGoal {
		return false
	}
	_, ok := w.Goal(goalID)
	return !ok
}
