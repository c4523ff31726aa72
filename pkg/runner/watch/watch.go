// Package watch follows changes to the store.
package watch

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

// Watch reprints Week whenever another process changes it, until ctx is done.
type Watch struct {
	Week   week.ID
	ShowID bool

	Persistence store.Persistence
	Log         *slog.Logger
	Out         io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}
	if n.Log == nil {
		n.Log = slog.Default()
	}

	ws := app.New(n.Persistence, app.WithLogger(n.Log))
	if err := ws.OpenWeek(ctx, n.Week); err != nil {
		return err
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Week(ws.Current())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !Affects(ev, n.Week) {
				continue
			}
			w, err := n.Persistence.Get(ctx, n.Week)
			switch {
			case errors.Is(err, store.ErrNotFound):
				n.Log.Info("week removed", "week", n.Week)
				continue
			case err != nil:
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			pp.NewLine()
			pp.Week(w)
		}
	}
}

// Affects reports whether ev may have changed week id.
func Affects(ev store.Event, id week.ID) bool {
	switch ev.Type {
	case store.EventWeekChanged:
		return ev.Week == id
	case store.EventWeeksInvalidated:
		return true
	}
	return false
}
