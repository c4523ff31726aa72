// Package edit runs one mutation against a week and prints the result.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

// Func applies a change to the loaded week. The returned value is printed
// for --json and --yaml; nil prints the week.
type Func func(ctx context.Context, ws *app.WeekStore) (any, error)

// Edit opens Week, applies Apply, waits for the write and prints either the
// touched Day or the whole week.
type Edit struct {
	Week   week.ID
	Apply  Func
	Day    *week.Day
	ShowID bool
	Format printers.Format

	Persistence store.Persistence
	Log         *slog.Logger
	Out         io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not edit, no persistence")
	}
	if n.Apply == nil {
		return errors.New("can not edit, nothing to apply")
	}

	ws := app.New(n.Persistence, app.WithLogger(n.Log))
	if err := ws.OpenWeek(ctx, n.Week); err != nil {
		return err
	}

	result, err := n.Apply(ctx, ws)
	if err != nil {
		return err
	}
	if err := ws.Flush(ctx); err != nil {
		return err
	}
	if !ws.Synced() {
		return fmt.Errorf("week %s: %w", n.Week, app.ErrNotSaved)
	}

	w := ws.Current()
	if n.Format != "" {
		if result == nil {
			result = w
		}
		out := n.Out
		if out == nil {
			out = printers.Stdout()
		}
		return printers.Export(out, n.Format, result)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	if n.Day != nil {
		pp.Day(w, *n.Day)
		return nil
	}
	pp.Week(w)
	return nil
}
