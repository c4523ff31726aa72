package app

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/ftf/pkg/week"
)

// MigrationCandidate is an unfinished goal from an earlier week.
type MigrationCandidate struct {
	Goal week.Goal
	Role week.Role
}

// MigrationCandidates returns the incomplete goals of week from, in role
// order.
func (s *WeekStore) MigrationCandidates(ctx context.Context, from week.ID) ([]MigrationCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	w, err := s.Persistence.Get(ctx, from)
	if err != nil {
		return nil, err
	}
	var out []MigrationCandidate
	for _, r := range w.SortedRoles() {
		for _, g := range w.GoalsByRole(r.ID) {
			if g.Completed {
				continue
			}
			out = append(out, MigrationCandidate{Goal: g, Role: r})
		}
	}
	return out, nil
}

// MigrateGoals copies the given candidates into the current week as new,
// incomplete goals. A role with the same name (case-insensitive) is reused;
// otherwise the role is added with its original color.
func (s *WeekStore) MigrateGoals(candidates []MigrationCandidate) ([]week.Goal, error) {
	var added []week.Goal
	err := s.mutate(func(w *week.Week) error {
		byName := make(map[string]string, len(w.Roles))
		next := 0
		for _, r := range w.Roles {
			byName[strings.ToLower(r.Name)] = r.ID
			if r.Order+1 > next {
				next = r.Order + 1
			}
		}
		for _, c := range candidates {
			key := strings.ToLower(c.Role.Name)
			roleID, ok := byName[key]
			if !ok {
				color := c.Role.Color
				if !color.Valid() {
					color = week.ColorForIndex(len(w.Roles))
				}
				role := week.Role{ID: s.newID(), Name: c.Role.Name, Color: color, Order: next}
				next++
				w.Roles = append(w.Roles, role)
				byName[key] = role.ID
				roleID = role.ID
			}
			g := week.Goal{
				ID:     s.newID(),
				RoleID: roleID,
				Text:   c.Goal.Text,
				Notes:  c.Goal.Notes,
			}
			w.Goals = append(w.Goals, g)
			added = append(added, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}
