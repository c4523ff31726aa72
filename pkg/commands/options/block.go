package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

// BlockOptions
type BlockOptions struct {
	Day    DayValue
	At     SlotValue
	For    string
	GoalID string
	Title  string
}

func AddDayArg(cmd *cobra.Command, o *BlockOptions) {
	cmd.Flags().VarP(&o.Day, "day", "d",
		`Day of the week, example: --day=mon or --day=1.`)
	_ = cmd.MarkFlagRequired("day")
}

func AddBlockArgs(cmd *cobra.Command, o *BlockOptions) {
	AddDayArg(cmd, o)
	cmd.Flags().Var(&o.At, "at",
		`Start time on the 8:00-19:30 grid, example: --at=9:30.`)
	_ = cmd.MarkFlagRequired("at")
	cmd.Flags().StringVar(&o.For, "for", timeutil.DefaultDuration,
		`Length of the block, example: --for=90m.`)
	AddLinkArgs(cmd, o)
}

// AddLinkArgs adds --goal and --title, used by time and evening blocks.
func AddLinkArgs(cmd *cobra.Command, o *BlockOptions) {
	cmd.Flags().StringVarP(&o.GoalID, "goal", "g", "",
		"Link the block to a goal.")
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of a freestyle block.")
	cmd.MarkFlagsMutuallyExclusive("goal", "title")
}

// Duration returns the length of the block in slots.
func (o *BlockOptions) Duration() (int, error) {
	return timeutil.ParseDuration(o.For)
}

// Link returns the block type and goal implied by --goal and --title.
func (o *BlockOptions) Link() (week.BlockType, string, error) {
	if o.GoalID != "" {
		return week.BlockGoal, o.GoalID, nil
	}
	if o.Title == "" {
		return "", "", errors.New("one of --goal or --title is required")
	}
	return week.BlockFreestyle, "", nil
}
