package commands

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/runner/edit"
	"tableflip.dev/ftf/pkg/snake"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

var errCancelled = errors.New("cancelled")

// editFlags are shared by every command that changes a week.
type editFlags struct {
	wo options.WeekOptions
	io options.IDOptions
	oo options.OutputOptions
}

func addEditFlags(cmd *cobra.Command, f *editFlags) {
	options.AddWeekArgs(cmd, &f.wo)
	options.AddShowIDArgs(cmd, &f.io)
	options.AddOutputArg(cmd, &f.oo)
	_ = cmd.RegisterFlagCompletionFunc("week", weekCompletions)
}

// runEdit applies fn to the selected week and prints day, or the whole
// week when day is nil.
func runEdit(cmd *cobra.Command, f *editFlags, day *week.Day, fn edit.Func) error {
	cmd.SilenceUsage = true

	id, err := f.wo.WeekID(time.Now())
	if err != nil {
		return f.oo.HandleError(err)
	}
	p, err := store.Load(cfg, store.WithLogger(logger))
	if err != nil {
		return f.oo.HandleError(err)
	}
	defer p.Close()

	e := edit.Edit{
		Week:        id,
		Apply:       fn,
		Day:         day,
		ShowID:      f.io.ShowID,
		Format:      f.oo.Format(),
		Persistence: p,
		Log:         logger,
		Out:         cmd.OutOrStdout(),
	}
	return f.oo.HandleError(e.Do(cmd.Context()))
}

func requireArgs(n int, what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return errors.New("requires " + what)
		}
		return nil
	}
}

// textOrPrompt joins args, asking for label on the terminal when none were
// given. The prompt is written to stderr so --json output stays clean.
func textOrPrompt(cmd *cobra.Command, args []string, label string) (string, error) {
	if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
		return text, nil
	}
	return snake.PromptString(io.NopCloser(cmd.InOrStdin()), snake.NopCloser(cmd.ErrOrStderr()), label, "")
}
