package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ftf/pkg/commands/options"
	teaui "tableflip.dev/ftf/pkg/runner/tea"
	"tableflip.dev/ftf/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}

	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Plan a week interactively.",
		Long: base.Wrap80("Opens the week in a full screen view. Move with the arrow keys, " +
			"press space to pick up a goal, priority or block, move it over a day and press " +
			"enter to drop it, or esc to put it back."),
		Example: `
ftf ui
ftf ui --on "next week"
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

			u := teaui.UI{
				Week:        id,
				Persistence: p,
				Log:         logger,
			}
			return u.Do(cmd.Context())
		},
	}

	options.AddWeekArgs(cmd, wo)
	_ = cmd.RegisterFlagCompletionFunc("week", weekCompletions)

	topLevel.AddCommand(cmd)
}
