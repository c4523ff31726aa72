package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ftf/pkg/logging"
	"tableflip.dev/ftf/pkg/store"
)

var (
	cfg    store.Config
	logger *slog.Logger
)

func New() *cobra.Command {
	var closer io.Closer

	cmd := &cobra.Command{
		Use:   "ftf",
		Short: base.Wrap80("First things first: plan the week by roles and goals, pin daily priorities and block out time."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.LoadConfig()
			if err != nil {
				return err
			}
			cfg = c
			logger, closer = logging.New(logging.Options{
				File:   c.LogFile(),
				Level:  c.LogLevel(),
				Format: c.LogFormat(),
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closer != nil {
				_ = closer.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addWeeks(topLevel)
	addWeek(topLevel)
	addRole(topLevel)
	addGoal(topLevel)
	addPriority(topLevel)
	addBlock(topLevel)
	addEvening(topLevel)
	addDrop(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}
