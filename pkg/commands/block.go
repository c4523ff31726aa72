package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

func addBlock(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Schedule time blocks on the day grid.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addBlockAdd(cmd)
	addBlockDelete(cmd)
	addBlockDone(cmd)
	addBlockResize(cmd)

	topLevel.AddCommand(cmd)
}

// goalTitle returns the text of goalID for block titles, or fallback.
func goalTitle(ws *app.WeekStore, goalID, fallback string) string {
	if g, ok := ws.Current().Goal(goalID); ok && fallback == "" {
		return g.Text
	}
	return fallback
}

func addBlockAdd(parent *cobra.Command) {
	f := &editFlags{}
	o := &options.BlockOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a block for a goal, or a freestyle block with a title.",
		Example: `
ftf block add --day mon --at 9:00 --for 90m --goal 01J...
ftf block add -d fri --at 14:30 --title "Deep work"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, goalID, err := o.Link()
			if err != nil {
				return err
			}
			duration, err := o.Duration()
			if err != nil {
				return err
			}
			day := o.Day.Day
			return runEdit(cmd, f, &day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return ws.AddTimeBlock(app.TimeBlockInput{
					Type:      t,
					GoalID:    goalID,
					Day:       day,
					StartSlot: o.At.Slot,
					Duration:  duration,
					Title:     goalTitle(ws, goalID, o.Title),
				})
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddBlockArgs(cmd, o)
	parent.AddCommand(cmd)
}

func blockDay(ws *app.WeekStore, id string, day *week.Day) error {
	b, ok := ws.Current().TimeBlock(id)
	if !ok {
		return fmt.Errorf("time block %q: %w", id, app.ErrNotFound)
	}
	*day = b.Day
	return nil
}

func addBlockDelete(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "delete <block id>",
		Aliases: []string{"rm"},
		Short:   "Remove a time block.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := blockDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.DeleteTimeBlock(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addBlockDone(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "done <block id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a time block between done and open.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := blockDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.ToggleTimeBlockCompleted(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addBlockResize(parent *cobra.Command) {
	f := &editFlags{}
	var length string

	cmd := &cobra.Command{
		Use:   "resize <block id>",
		Short: "Change the length of a time block.",
		Example: `
ftf block resize 01J... --for 2h30m
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := timeutil.ParseDuration(length)
			if err != nil {
				return err
			}
			day := new(week.Day)
			return runEdit(cmd, f, day, func(_ context.Context, ws *app.WeekStore) (any, error) {
				if err := blockDay(ws, args[0], day); err != nil {
					return nil, err
				}
				return nil, ws.UpdateTimeBlock(args[0], app.TimeBlockUpdate{Duration: &duration})
			})
		},
	}

	addEditFlags(cmd, f)
	cmd.Flags().StringVar(&length, "for", "", "New length of the block, example: --for=90m.")
	_ = cmd.MarkFlagRequired("for")
	parent.AddCommand(cmd)
}
