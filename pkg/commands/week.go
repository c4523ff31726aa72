package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/commands/options"
	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

func addWeek(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Create, delete or export whole weeks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWeekNew(cmd)
	addWeekDelete(cmd)
	addWeekExport(cmd)

	topLevel.AddCommand(cmd)
}

func addWeekNew(parent *cobra.Command) {
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	from := &options.WeekValue{}
	var empty bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a week, carrying over the roles of the week before.",
		Example: `
ftf week new --on "next monday"
ftf week new --week 2026-W10 --carry-roles-from 2026-W07
ftf week new --empty
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			id, err := wo.WeekID(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return oo.HandleError(err)
			}
			defer p.Close()

			if exists, err := p.Exists(ctx, id); err != nil {
				return oo.HandleError(err)
			} else if exists {
				return oo.HandleError(fmt.Errorf("week %s already exists", id))
			}

			ws := app.New(p, app.WithLogger(logger))
			var roles []week.Role
			if !empty {
				source := from.ID
				if source == "" {
					if source, err = timeutil.PreviousWeekID(id); err != nil {
						return oo.HandleError(err)
					}
				}
				if roles, err = ws.CarryOverRoles(ctx, source); err != nil {
					return oo.HandleError(err)
				}
			}
			w, err := ws.CreateWeek(ctx, id, roles)
			if err != nil {
				return oo.HandleError(err)
			}

			if f := oo.Format(); f != "" {
				return printers.Export(cmd.OutOrStdout(), f, w)
			}
			pp := printers.PrettyPrint{ShowID: io.ShowID, Out: cmd.OutOrStdout()}
			pp.NewLine()
			pp.Week(w)
			return nil
		},
	}

	options.AddWeekArgs(cmd, wo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().Var(from, "carry-roles-from", "Week to copy roles from; defaults to the previous week.")
	cmd.Flags().BoolVar(&empty, "empty", false, "Start without any roles.")
	cmd.MarkFlagsMutuallyExclusive("carry-roles-from", "empty")

	parent.AddCommand(cmd)
}

func addWeekDelete(parent *cobra.Command) {
	co := &options.ConfirmOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "delete <week id>",
		Short: "Delete a stored week.",
		Example: `
ftf week delete 2026-W03 --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: weekCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			var id options.WeekValue
			if err := id.Set(args[0]); err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return oo.HandleError(err)
			}
			defer p.Close()

			if exists, err := p.Exists(ctx, id.ID); err != nil {
				return oo.HandleError(err)
			} else if !exists {
				return oo.HandleError(fmt.Errorf("week %s: %w", id.ID, store.ErrNotFound))
			}
			ok, err := co.Confirm(fmt.Sprintf("Delete week %s?", id.ID))
			if err != nil {
				return oo.HandleError(err)
			}
			if !ok {
				return oo.HandleError(errCancelled)
			}
			if err := p.Delete(ctx, id.ID); err != nil {
				return oo.HandleError(err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id.ID)
			return nil
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addWeekExport(parent *cobra.Command) {
	wo := &options.WeekOptions{}
	var all, yamlOut bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a week, or every week, as JSON or YAML.",
		Example: `
ftf week export > this-week.json
ftf week export --all --yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			format := printers.FormatJSON
			if yamlOut {
				format = printers.FormatYAML
			}
			p, err := store.Load(cfg, store.WithLogger(logger))
			if err != nil {
				return err
			}
			defer p.Close()

			if all {
				weeks, err := p.ListAll(ctx, store.ListOptions{Order: store.Oldest})
				if err != nil {
					return err
				}
				return printers.Export(cmd.OutOrStdout(), format, weeks)
			}

			id, err := wo.WeekID(time.Now())
			if err != nil {
				return err
			}
			w, err := p.Get(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("nothing planned for %s yet", id)
			}
			if err != nil {
				return err
			}
			return printers.Export(cmd.OutOrStdout(), format, w)
		},
	}

	options.AddWeekArgs(cmd, wo)
	cmd.Flags().BoolVar(&all, "all", false, "Export every stored week.")
	cmd.Flags().BoolVar(&yamlOut, "yaml", false, "Export as YAML instead of JSON.")

	parent.AddCommand(cmd)
}
