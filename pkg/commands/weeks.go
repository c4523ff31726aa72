package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/runner/list"
	"tableflip.dev/ftf/pkg/store"
)

func addWeeks(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "List stored weeks.",
		Example: `
ftf weeks
ftf weeks --limit 4 --oldest
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return oo.HandleError(err)
			}
			defer p.Close()

			l := list.List{
				Options:     lo.StoreOptions(),
				Format:      oo.Format(),
				Now:         time.Now(),
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
