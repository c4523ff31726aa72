// Package show prints a single week.
package show

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

// Show loads a week, creating it when needed, and prints it.
type Show struct {
	Week   week.ID
	ShowID bool
	Grid   bool
	// Format selects JSON or YAML output; empty prints the pretty view.
	Format      printers.Format
	Persistence store.Persistence
	Log         *slog.Logger
	Out         io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show, no persistence")
	}

	ws := app.New(n.Persistence, app.WithLogger(n.Log))
	if err := ws.OpenWeek(ctx, n.Week); err != nil {
		return err
	}
	w := ws.Current()

	if n.Format != "" {
		return printers.Export(n.out(), n.Format, w)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	if n.Grid {
		pp.Grid(w)
		return nil
	}
	pp.Week(w)
	return nil
}

func (n *Show) out() io.Writer {
	if n.Out == nil {
		return printers.Stdout()
	}
	return n.Out
}
