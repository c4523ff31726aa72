package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/dnd"
)

// DropOptions
type DropOptions struct {
	Zone string
	Day  DayValue
	At   SlotValue
}

func AddDropArgs(cmd *cobra.Command, o *DropOptions) {
	cmd.Flags().StringVarP(&o.Zone, "zone", "z", "",
		"Zone to drop on: priorities, timegrid or evening.")
	_ = cmd.MarkFlagRequired("zone")
	cmd.Flags().VarP(&o.Day, "day", "d",
		"Day column of the drop.")
	_ = cmd.MarkFlagRequired("day")
	cmd.Flags().Var(&o.At, "at",
		"Grid time of a timegrid drop, example: --at=14:00.")
}

// Target builds the drop target named by the flags.
func (o *DropOptions) Target() (dnd.Target, error) {
	z, err := dnd.ParseZone(o.Zone)
	if err != nil {
		return nil, err
	}
	if z == dnd.ZoneTimeGrid && !o.At.IsSet() {
		return nil, errors.New("--at is required when dropping on the timegrid")
	}
	return dnd.NewTarget(z, o.Day.Day, o.At.Slot)
}
