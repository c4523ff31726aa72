// Package drop reconciles a drag-and-drop gesture given on the command line.
package drop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/uistate"
	"tableflip.dev/ftf/pkg/week"
)

// Drop drags the item Kind/ID of Week onto Target.
type Drop struct {
	Week   week.ID
	Kind   dnd.Kind
	ID     string
	Target dnd.Target
	ShowID bool
	Format printers.Format

	Persistence store.Persistence
	Log         *slog.Logger
	Out         io.Writer
}

func (n *Drop) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not drop, no persistence")
	}

	ws := app.New(n.Persistence, app.WithLogger(n.Log))
	if err := ws.OpenWeek(ctx, n.Week); err != nil {
		return err
	}

	payload, err := dnd.PayloadFor(ws.Current(), n.Kind, n.ID)
	if err != nil {
		return err
	}

	session := dnd.Session{
		Engine: dnd.NewEngine(ws, n.Log),
		State:  uistate.New(),
	}
	session.Start(payload)
	session.Hover(n.Target)
	outcome, dropErr := session.End(ctx, n.Target)

	// Whatever the engine managed to apply is written even when a later
	// step failed.
	if err := ws.Flush(ctx); err != nil {
		return err
	}
	if dropErr != nil {
		return dropErr
	}
	if !ws.Synced() {
		return fmt.Errorf("week %s: %w", n.Week, app.ErrNotSaved)
	}

	if n.Format != "" {
		out := n.Out
		if out == nil {
			out = printers.Stdout()
		}
		return printers.Export(out, n.Format, outcome)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Outcome(outcome)
	if outcome.Kind != dnd.OutcomeNoop && n.Target != nil {
		pp.NewLine()
		pp.Day(ws.Current(), n.Target.DayIndex())
	}
	return nil
}
