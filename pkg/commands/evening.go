package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/week"
)

func addEvening(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "evening",
		Short: "Plan the single evening block of a day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEveningAdd(cmd)
	addEveningDelete(cmd)
	addEveningDone(cmd)

	topLevel.AddCommand(cmd)
}

func addEveningAdd(parent *cobra.Command) {
	f := &editFlags{}
	o := &options.BlockOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Set the evening block of a day.",
		Example: `
ftf evening add --day thu --goal 01J...
ftf evening add -d sat --title "Board games"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, goalID, err := o.Link()
			if err != nil {
				return err
			}
			day := o.Day.Day
			return runEdit(cmd, f, &day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return ws.AddEveningBlock(app.EveningBlockInput{
					Type:   t,
					GoalID: goalID,
					Day:    day,
					Title:  goalTitle(ws, goalID, o.Title),
				})
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddDayArg(cmd, o)
	options.AddLinkArgs(cmd, o)
	parent.AddCommand(cmd)
}

func eveningDay(ws *app.WeekStore, id string, day *week.Day) error {
	b, ok := ws.Current().EveningBlock(id)
	if !ok {
		return fmt.Errorf("evening block %q: %w", id, app.ErrNotFound)
	}
	*day = b.Day
	return nil
}

func addEveningDelete(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "delete <evening block id>",
		Aliases: []string{"rm"},
		Short:   "Clear an evening block.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := eveningDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.DeleteEveningBlock(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addEveningDone(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "done <evening block id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle an evening block between done and open.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := eveningDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.ToggleEveningBlockCompleted(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}
