package app

import (
	"strings"

	"tableflip.dev/ftf/pkg/week"
)

// RoleUpdate carries the role fields to change. Nil fields are left alone.
type RoleUpdate struct {
	Name  *string
	Color *week.RoleColor
	Order *int
}

// AddRole appends a role. Its color follows the palette by position and its
// order is one past the highest existing order.
func (s *WeekStore) AddRole(name string) (week.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return week.Role{}, invalid("role name required")
	}
	var role week.Role
	err := s.mutate(func(w *week.Week) error {
		order := 0
		for _, r := range w.Roles {
			if r.Order+1 > order {
				order = r.Order + 1
			}
		}
		role = week.Role{
			ID:    s.newID(),
			Name:  name,
			Color: week.ColorForIndex(len(w.Roles)),
			Order: order,
		}
		w.Roles = append(w.Roles, role)
		return nil
	})
	return role, err
}

// UpdateRole applies u to role id.
func (s *WeekStore) UpdateRole(id string, u RoleUpdate) error {
	if u.Color != nil && !u.Color.Valid() {
		return invalid("unknown color %q", *u.Color)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return invalid("role name required")
	}
	return s.mutate(func(w *week.Week) error {
		for i := range w.Roles {
			if w.Roles[i].ID != id {
				continue
			}
			if u.Name != nil {
				w.Roles[i].Name = strings.TrimSpace(*u.Name)
			}
			if u.Color != nil {
				w.Roles[i].Color = *u.Color
			}
			if u.Order != nil {
				w.Roles[i].Order = *u.Order
			}
			return nil
		}
		return notFound("role", id)
	})
}

// DeleteRole removes role id, its goals, and every priority, time block and
// evening block that references one of those goals.
func (s *WeekStore) DeleteRole(id string) error {
	return s.mutate(func(w *week.Week) error {
		if _, ok := w.Role(id); !ok {
			return notFound("role", id)
		}
		w.Roles = filter(w.Roles, func(r week.Role) bool { return r.ID != id })

		doomed := make(map[string]struct{})
		for _, g := range w.Goals {
			if g.RoleID == id {
				doomed[g.ID] = struct{}{}
			}
		}
		w.Goals = filter(w.Goals, func(g week.Goal) bool { return g.RoleID != id })
		dropGoalReferences(w, doomed)
		return nil
	})
}

// ReorderRoles sets each listed role's order to its index in ids. Roles not
// listed keep their order; unknown ids are ignored.
func (s *WeekStore) ReorderRoles(ids []string) error {
	return s.mutate(func(w *week.Week) error {
		pos := make(map[string]int, len(ids))
		for i, id := range ids {
			pos[id] = i
		}
		for i := range w.Roles {
			if p, ok := pos[w.Roles[i].ID]; ok {
				w.Roles[i].Order = p
			}
		}
		return nil
	})
}

func dropGoalReferences(w *week.Week, goals map[string]struct{}) {
	if len(goals) == 0 {
		return
	}
	referenced := func(goalID string) bool {
		_, ok := goals[goalID]
		return ok
	}
	w.DayPriorities = filter(w.DayPriorities, func(p week.DayPriority) bool { return !referenced(p.GoalID) })
	w.TimeBlocks = filter(w.TimeBlocks, func(b week.TimeBlock) bool { return b.GoalID == "" || !referenced(b.GoalID) })
	w.EveningBlocks = filter(w.EveningBlocks, func(b week.EveningBlock) bool { return b.GoalID == "" || !referenced(b.GoalID) })
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
