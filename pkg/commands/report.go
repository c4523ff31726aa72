package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/runner/report"
	"tableflip.dev/ftf/pkg/store"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize how a week's goals were planned and done, by role.",
		Example: `
ftf report
ftf report --week 2026-W03
ftf report --on "last week" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			id, err := wo.WeekID(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return oo.HandleError(err)
			}
			defer p.Close()

			r := report.Report{
				Week:        id,
				Format:      oo.Format(),
				Persistence: p,
				Log:         logger,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddWeekArgs(cmd, wo)
	_ = cmd.RegisterFlagCompletionFunc("week", weekCompletions)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
