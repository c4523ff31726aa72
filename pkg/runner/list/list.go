// Package list prints the stored weeks.
package list

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

// Summary is the machine readable row of a stored week.
type Summary struct {
	ID             week.ID   `json:"id" yaml:"id"`
	Label          string    `json:"label" yaml:"label"`
	Roles          int       `json:"roles" yaml:"roles"`
	Goals          int       `json:"goals" yaml:"goals"`
	CompletedGoals int       `json:"completedGoals" yaml:"completedGoals"`
	Blocks         int       `json:"blocks" yaml:"blocks"`
	UpdatedAt      time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// List prints the stored weeks, newest first unless asked otherwise.
type List struct {
	Options     store.ListOptions
	Format      printers.Format
	Now         time.Time
	Persistence store.Persistence
	Out         io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}

	weeks, err := n.Persistence.ListAll(ctx, n.Options)
	if err != nil {
		return err
	}

	if n.Format != "" {
		out := n.Out
		if out == nil {
			out = printers.Stdout()
		}
		return printers.Export(out, n.Format, Summaries(weeks))
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Weeks(weeks, timeutil.CurrentWeekID(now), now)
	return nil
}

// Summaries condenses weeks for export.
func Summaries(weeks []*week.Week) []Summary {
	out := make([]Summary, 0, len(weeks))
	for _, w := range weeks {
		s := Summary{
			ID:        w.ID,
			Roles:     len(w.Roles),
			Goals:     len(w.Goals),
			Blocks:    len(w.TimeBlocks) + len(w.EveningBlocks),
			UpdatedAt: w.UpdatedAt,
		}
		s.Label, _ = timeutil.FormatWeekLabel(w.ID)
		for _, g := range w.Goals {
			if g.Completed {
				s.CompletedGoals++
			}
		}
		out = append(out, s)
	}
	return out
}
