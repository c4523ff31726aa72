// Package report summarizes a week by role.
package report

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

// Report prints how a stored week's time was planned and spent.
type Report struct {
	Week   week.ID
	Format printers.Format

	Persistence store.Persistence
	Log         *slog.Logger
	Out         io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not report, no persistence")
	}

	ws := app.New(n.Persistence, app.WithLogger(n.Log))
	res, err := ws.Report(ctx, n.Week)
	if err != nil {
		return err
	}

	if n.Format != "" {
		out := n.Out
		if out == nil {
			out = printers.Stdout()
		}
		return printers.Export(out, n.Format, res)
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Report(res)
	return nil
}
