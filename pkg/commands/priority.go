package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/week"
)

func addPriority(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "priority",
		Aliases: []string{"pri"},
		Short:   "Pin goals to the priority list of a day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPriorityAdd(cmd)
	addPriorityRemove(cmd)
	addPriorityDone(cmd)
	addPriorityReorder(cmd)

	topLevel.AddCommand(cmd)
}

func addPriorityAdd(parent *cobra.Command) {
	f := &editFlags{}
	o := &options.BlockOptions{}

	cmd := &cobra.Command{
		Use:   "add <goal id>",
		Short: "Add a goal to the end of a day's priorities.",
		Example: `
ftf priority add 01J... --day tue
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := o.Day.Day
			in := app.PriorityInput{GoalID: args[0], Day: day}
			return runEdit(cmd, f, &day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return ws.AddDayPriority(in)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddDayArg(cmd, o)
	parent.AddCommand(cmd)
}

// priorityDay finds the day of priority id in the loaded week.
func priorityDay(ws *app.WeekStore, id string, day *week.Day) error {
	p, ok := ws.Current().DayPriority(id)
	if !ok {
		return fmt.Errorf("priority %q: %w", id, app.ErrNotFound)
	}
	*day = p.Day
	return nil
}

func addPriorityRemove(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "remove <priority id>",
		Aliases: []string{"rm"},
		Short:   "Take a priority off its day.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := priorityDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.RemoveDayPriority(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addPriorityDone(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "done <priority id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a priority between done and open.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := priorityDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.ToggleDayPriorityCompleted(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addPriorityReorder(parent *cobra.Command) {
	f := &editFlags{}
	o := &options.BlockOptions{}

	cmd := &cobra.Command{
		Use:   "reorder <priority id>...",
		Short: "Set the order of a day's priorities.",
		Example: `
ftf priority reorder --day wed 01JB... 01JA...
`,
		Args: requireArgs(1, "at least one priority id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := o.Day.Day
			return runEdit(cmd, f, &day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return nil, ws.ReorderDayPriorities(day, args)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddDayArg(cmd, o)
	parent.AddCommand(cmd)
}
