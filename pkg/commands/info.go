package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/runner/info"
	"tableflip.dev/ftf/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the stored weeks and where they live.",
		Example: `
ftf info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return err
			}
			defer p.Close()

			s := info.Info{
				Config:      cfg,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
