package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/runner/list"
	"tableflip.dev/ftf/pkg/runner/show"
	"tableflip.dev/ftf/pkg/snake"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

func addShow(topLevel *cobra.Command) {
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	var grid, pick bool

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "week-view"},
		Short:   "Show a week, this week by default.",
		Example: `
ftf show
ftf show --on "next monday" --grid
ftf show --week 2026-W03 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return oo.HandleError(err)
			}
			defer p.Close()

			var id week.ID
			if pick {
				id, err = pickWeek(cmd.Context(), p)
			} else {
				id, err = wo.WeekID(time.Now())
			}
			if err != nil {
				return oo.HandleError(err)
			}

			s := show.Show{
				Week:        id,
				ShowID:      io.ShowID,
				Grid:        grid,
				Format:      oo.Format(),
				Persistence: p,
				Log:         logger,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddWeekArgs(cmd, wo)
	_ = cmd.RegisterFlagCompletionFunc("week", weekCompletions)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&grid, "grid", false, "Show the time grid instead of the day lists.")
	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "Pick the week from the stored weeks.")

	topLevel.AddCommand(cmd)
}

// pickWeek prompts for one of the stored weeks.
func pickWeek(ctx context.Context, p store.Persistence) (week.ID, error) {
	weeks, err := p.ListAll(ctx, store.ListOptions{})
	if err != nil {
		return "", err
	}
	summaries := list.Summaries(weeks)
	choices := make([]snake.Choice, 0, len(summaries))
	for _, s := range summaries {
		choices = append(choices, snake.Choice{
			Name:   string(s.ID),
			Short:  s.Label,
			Detail: fmt.Sprintf("%d roles, %d/%d goals done, %d blocks", s.Roles, s.CompletedGoals, s.Goals, s.Blocks),
		})
	}
	i, err := snake.Select(os.Stdin, snake.NopCloser(os.Stdout), "Week", choices)
	if err != nil {
		return "", err
	}
	return summaries[i].ID, nil
}
