package app

import (
	"context"
	"sort"

	"tableflip.dev/ftf/pkg/week"
)

// ReportItem captures a goal and how much of it got scheduled and done.
type ReportItem struct {
	Goal             week.Goal `json:"goal" yaml:"goal"`
	Priorities       int       `json:"priorities" yaml:"priorities"`
	ScheduledSlots   int       `json:"scheduledSlots" yaml:"scheduledSlots"`
	CompletedBlocks  int       `json:"completedBlocks" yaml:"completedBlocks"`
	TotalBlocks      int       `json:"totalBlocks" yaml:"totalBlocks"`
	EveningScheduled bool      `json:"eveningScheduled" yaml:"eveningScheduled"`
}

// ReportSection groups goals by role.
type ReportSection struct {
	Role    week.Role    `json:"role" yaml:"role"`
	Entries []ReportItem `json:"entries" yaml:"entries"`
}

// ReportResult summarises progress for one week.
type ReportResult struct {
	Week           week.ID         `json:"week" yaml:"week"`
	Sections       []ReportSection `json:"sections" yaml:"sections"`
	Goals          int             `json:"goals" yaml:"goals"`
	CompletedGoals int             `json:"completedGoals" yaml:"completedGoals"`
	ScheduledSlots int             `json:"scheduledSlots" yaml:"scheduledSlots"`
	FreestyleSlots int             `json:"freestyleSlots" yaml:"freestyleSlots"`
	Orphans        int             `json:"orphans" yaml:"orphans"`
}

// Report summarises week id. The current week is used when it matches;
// otherwise the week is read from persistence.
func (s *WeekStore) Report(ctx context.Context, id week.ID) (ReportResult, error) {
	w := s.Current()
	if w == nil || (id != "" && w.ID != id) {
		if id == "" {
			return ReportResult{}, ErrNoWeekLoaded
		}
		var err error
		w, err = s.Persistence.Get(ctx, id)
		if err != nil {
			return ReportResult{}, err
		}
	}
	return BuildReport(w), nil
}

// BuildReport summarises w.
func BuildReport(w *week.Week) ReportResult {
	res := ReportResult{Week: w.ID}
	items := make(map[string]*ReportItem, len(w.Goals))
	for _, g := range w.Goals {
		items[g.ID] = &ReportItem{Goal: g}
		res.Goals++
		if g.Completed {
			res.CompletedGoals++
		}
	}
	for _, p := range w.DayPriorities {
		if item, ok := items[p.GoalID]; ok {
			item.Priorities++
		} else {
			res.Orphans++
		}
	}
	for _, b := range w.TimeBlocks {
		res.ScheduledSlots += b.Duration
		if b.Type != week.BlockGoal {
			res.FreestyleSlots += b.Duration
			continue
		}
		item, ok := items[b.GoalID]
		if !ok {
			res.Orphans++
			continue
		}
		item.ScheduledSlots += b.Duration
		item.TotalBlocks++
		if b.Completed {
			item.CompletedBlocks++
		}
	}
	for _, b := range w.EveningBlocks {
		if b.Type != week.BlockGoal {
			continue
		}
		if item, ok := items[b.GoalID]; ok {
			item.EveningScheduled = true
		} else {
			res.Orphans++
		}
	}

	for _, r := range w.SortedRoles() {
		section := ReportSection{Role: r}
		for _, g := range w.GoalsByRole(r.ID) {
			section.Entries = append(section.Entries, *items[g.ID])
		}
		sort.SliceStable(section.Entries, func(i, j int) bool {
			return !section.Entries[i].Goal.Completed && section.Entries[j].Goal.Completed
		})
		res.Sections = append(res.Sections, section)
	}
	return res
}
