package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/timeutil"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the goals of a week.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGoalAdd(cmd)
	addGoalEdit(cmd)
	addGoalDelete(cmd)
	addGoalDone(cmd)
	addGoalMigrate(cmd)

	topLevel.AddCommand(cmd)
}

func addGoalAdd(parent *cobra.Command) {
	f := &editFlags{}
	o := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a goal under a role. Asks for the text when none is given.",
		Example: `
ftf goal add --role 01J... Finish the quarterly plan
ftf goal add -r 01J... "Call mom" --notes "Sunday works best"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textOrPrompt(cmd, args, "Goal")
			if err != nil {
				return err
			}
			in := app.GoalInput{
				RoleID: o.RoleID,
				Text:   text,
				Notes:  o.Notes,
			}
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return ws.AddGoal(in)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddGoalArgs(cmd, o)
	parent.AddCommand(cmd)
}

func addGoalEdit(parent *cobra.Command) {
	f := &editFlags{}
	o := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "edit <goal id>",
		Short: "Change the text or notes of a goal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u app.GoalUpdate
			if cmd.Flags().Changed("text") {
				u.Text = &o.Text
			}
			if cmd.Flags().Changed("notes") {
				u.Notes = &o.Notes
			}
			if u.Text == nil && u.Notes == nil {
				return fmt.Errorf("nothing to change, set --text or --notes")
			}
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return nil, ws.UpdateGoal(args[0], u)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddGoalEditArgs(cmd, o)
	parent.AddCommand(cmd)
}

func addGoalDelete(parent *cobra.Command) {
	f := &editFlags{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete <goal id>",
		Short: "Delete a goal and everything scheduled from it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				g, ok := ws.Current().Goal(id)
				if !ok {
					return nil, fmt.Errorf("goal %q: %w", id, app.ErrNotFound)
				}
				if ok, err := co.Confirm(fmt.Sprintf("Delete goal %q?", g.Text)); err != nil {
					return nil, err
				} else if !ok {
					return nil, errCancelled
				}
				return nil, ws.DeleteGoal(id)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addGoalDone(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:     "done <goal id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a goal between done and open.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return nil, ws.ToggleGoalCompleted(args[0])
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addGoalMigrate(parent *cobra.Command) {
	f := &editFlags{}
	co := &options.ConfirmOptions{}
	from := &options.WeekValue{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy unfinished goals of an earlier week into this one.",
		Example: `
ftf goal migrate
ftf goal migrate --from 2026-W02 --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEdit(cmd, f, nil, func(ctx context.Context, ws *app.WeekStore) (any, error) {
				source := from.ID
				if source == "" {
					prev, err := timeutil.PreviousWeekID(ws.Current().ID)
					if err != nil {
						return nil, err
					}
					source = prev
				}
				candidates, err := ws.MigrationCandidates(ctx, source)
				if err != nil {
					return nil, fmt.Errorf("migrate from %s: %w", source, err)
				}
				if len(candidates) == 0 {
					return nil, fmt.Errorf("no unfinished goals in %s", source)
				}

				out := cmd.ErrOrStderr()
				_, _ = fmt.Fprintf(out, "Unfinished goals in %s:\n", source)
				for _, c := range candidates {
					_, _ = fmt.Fprintf(out, "  %s: %s\n", c.Role.Name, c.Goal.Text)
				}
				ok, err := co.Confirm(fmt.Sprintf("Copy %d goals into %s?", len(candidates), ws.Current().ID))
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, errCancelled
				}
				return ws.MigrateGoals(candidates)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddConfirmArgs(cmd, co)
	cmd.Flags().Var(from, "from", "Week to migrate from; defaults to the previous week.")
	parent.AddCommand(cmd)
}
