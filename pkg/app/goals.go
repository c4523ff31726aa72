package app

import (
	"strings"

	"tableflip.dev/ftf/pkg/week"
)

// GoalInput describes a new goal.
type GoalInput struct {
	RoleID string
	Text   string
	Notes  string
}

// GoalUpdate carries the goal fields to change. Nil fields are left alone.
type GoalUpdate struct {
	Text      *string
	Notes     *string
	Completed *bool
}

// AddGoal creates an incomplete goal under an existing role.
func (s *WeekStore) AddGoal(in GoalInput) (week.Goal, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return week.Goal{}, invalid("goal text required")
	}
	var goal week.Goal
	err := s.mutate(func(w *week.Week) error {
		if _, ok := w.Role(in.RoleID); !ok {
			return notFound("role", in.RoleID)
		}
		goal = week.Goal{
			ID:     s.newID(),
			RoleID: in.RoleID,
			Text:   text,
			Notes:  strings.TrimSpace(in.Notes),
		}
		w.Goals = append(w.Goals, goal)
		return nil
	})
	return goal, err
}

// UpdateGoal applies u to goal id. Blocks that copied the goal text keep
// their own title.
func (s *WeekStore) UpdateGoal(id string, u GoalUpdate) error {
	if u.Text != nil && strings.TrimSpace(*u.Text) == "" {
		return invalid("goal text required")
	}
	return s.mutate(func(w *week.Week) error {
		for i := range w.Goals {
			if w.Goals[i].ID != id {
				continue
			}
			if u.Text != nil {
				w.Goals[i].Text = strings.TrimSpace(*u.Text)
			}
			if u.Notes != nil {
				w.Goals[i].Notes = strings.TrimSpace(*u.Notes)
			}
			if u.Completed != nil {
				w.Goals[i].Completed = *u.Completed
			}
			return nil
		}
		return notFound("goal", id)
	})
}

// DeleteGoal removes goal id and everything scheduled from it.
func (s *WeekStore) DeleteGoal(id string) error {
	return s.mutate(func(w *week.Week) error {
		if _, ok := w.Goal(id); !ok {
			return notFound("goal", id)
		}
		w.Goals = filter(w.Goals, func(g week.Goal) bool { return g.ID != id })
		dropGoalReferences(w, map[string]struct{}{id: {}})
		return nil
	})
}

// ToggleGoalCompleted flips the completed flag of goal id.
func (s *WeekStore) ToggleGoalCompleted(id string) error {
	return s.mutate(func(w *week.Week) error {
		for i := range w.Goals {
			if w.Goals[i].ID == id {
				w.Goals[i].Completed = !w.Goals[i].Completed
				return nil
			}
		}
		return notFound("goal", id)
	})
}
