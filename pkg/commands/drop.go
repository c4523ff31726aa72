package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/runner/drop"
	"tableflip.dev/ftf/pkg/store"
)

func addDrop(topLevel *cobra.Command) {
	f := &editFlags{}
	do := &options.DropOptions{}

	cmd := &cobra.Command{
		Use:   "drop <goal|priority|block|evening> <id>",
		Short: "Drag an item onto a day's priorities, time grid or evening.",
		Long: base.Wrap80("Drop does what dragging an item across the week view would do. " +
			"A goal dropped on a day creates a priority, a time block or an evening block. " +
			"Items already placed move, or become a different kind of item when dropped on another zone."),
		Example: `
ftf drop goal 01J... --zone timegrid --day tue --at 10:00
ftf drop block 01J... -z evening -d fri
ftf drop priority 01J... -z priorities -d mon
`,
		ValidArgs: []string{"goal", "priority", "block", "evening"},
		Args:      cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			kind, err := dnd.ParseKind(args[0])
			if err != nil {
				return f.oo.HandleError(err)
			}
			target, err := do.Target()
			if err != nil {
				return f.oo.HandleError(err)
			}
			id, err := f.wo.WeekID(time.Now())
			if err != nil {
				return f.oo.HandleError(err)
			}
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return f.oo.HandleError(err)
			}
			defer p.Close()

			d := drop.Drop{
				Week:        id,
				Kind:        kind,
				ID:          args[1],
				Target:      target,
				ShowID:      f.io.ShowID,
				Format:      f.oo.Format(),
				Persistence: p,
				Log:         logger,
				Out:         cmd.OutOrStdout(),
			}
			return f.oo.HandleError(d.Do(cmd.Context()))
		},
	}

	addEditFlags(cmd, f)
	options.AddDropArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
