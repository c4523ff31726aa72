// Package teaui is the interactive week view: pick up goals, priorities and
// blocks and drop them onto a day.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

// UI opens Week in a full screen view until the user quits.
type UI struct {
	Week week.ID

	Persistence store.Persistence
	Log         *slog.Logger
}

func (n *UI) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not start ui, no persistence")
	}

	ws := app.New(n.Persistence, app.WithLogger(n.Log))
	if err := ws.OpenWeek(ctx, n.Week); err != nil {
		return err
	}

	p := tea.NewProgram(New(ctx, ws, n.Log), tea.WithAltScreen())
	_, runErr := p.Run()

	// Anything changed before quitting is still written.
	if err := ws.Flush(ctx); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if !ws.Synced() {
		return fmt.Errorf("week %s: %w", n.Week, app.ErrNotSaved)
	}
	return nil
}
