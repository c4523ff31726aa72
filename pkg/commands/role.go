package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/commands/options"
)

func addRole(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage the roles of a week.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addRoleAdd(cmd)
	addRoleRename(cmd)
	addRoleDelete(cmd)
	addRoleReorder(cmd)

	topLevel.AddCommand(cmd)
}

func addRoleAdd(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a role to the week. Asks for the name when none is given.",
		Example: `
ftf role add Parent
ftf role add "Team lead" --week 2026-W04
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := textOrPrompt(cmd, args, "Role name")
			if err != nil {
				return err
			}
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return ws.AddRole(name)
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addRoleRename(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "rename <role id> <name>",
		Short: "Rename a role.",
		Args:  requireArgs(2, "a role id and a name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name := args[0], strings.Join(args[1:], " ")
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return nil, ws.UpdateRole(id, app.RoleUpdate{Name: &name})
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}

func addRoleDelete(parent *cobra.Command) {
	f := &editFlags{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete <role id>",
		Short: "Delete a role along with its goals.",
		Long: base.Wrap80("Delete a role along with its goals, and every priority, time block and evening block scheduled from those goals."),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				w := ws.Current()
				role, ok := w.Role(id)
				if !ok {
					return nil, fmt.Errorf("role %q: %w", id, app.ErrNotFound)
				}
				question := fmt.Sprintf("Delete role %q and its %d goals?", role.Name, len(w.GoalsByRole(id)))
				if ok, err := co.Confirm(question); err != nil {
					return nil, err
				} else if !ok {
					return nil, errCancelled
				}
				return nil, ws.DeleteRole(id)
			})
		},
	}

	addEditFlags(cmd, f)
	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addRoleReorder(parent *cobra.Command) {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "reorder <role id>...",
		Short: "Set the order of roles. Roles not listed keep their order.",
		Args:  requireArgs(1, "at least one role id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, f, nil, func(_ context.Context, ws *app.WeekStore) (any, error) {
				return nil, ws.ReorderRoles(args)
			})
		},
	}

	addEditFlags(cmd, f)
	parent.AddCommand(cmd)
}
