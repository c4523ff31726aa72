// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// GoalOptions captures the goal fields settable from the command line.
type GoalOptions struct {
	RoleID string
	Text   string
	Notes  string
}

// AddGoalArgs wires the flags used when creating a goal.
func AddGoalArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVarP(&o.RoleID, "role", "r", "",
		"Role the goal belongs to.")
	_ = cmd.MarkFlagRequired("role")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free form notes for the goal.")
}

// AddGoalEditArgs wires the flags used when editing a goal.
func AddGoalEditArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVar(&o.Text, "text", "",
		"New goal text.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"New goal notes.")
}
