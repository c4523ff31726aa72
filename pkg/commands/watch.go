package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/runner/watch"
	"tableflip.dev/ftf/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a week and reprint it whenever it changes.",
		Example: `
ftf watch
ftf watch --on "next week" -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			id, err := wo.WeekID(time.Now())
			if err != nil {
				return err
			}
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return err
			}
			defer p.Close()

			w := watch.Watch{
				Week:        id,
				ShowID:      io.ShowID,
				Persistence: p,
				Log:         logger,
				Out:         cmd.OutOrStdout(),
			}
			return w.Do(cmd.Context())
		},
	}

	options.AddWeekArgs(cmd, wo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
