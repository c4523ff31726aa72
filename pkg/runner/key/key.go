// Package key provides CLI helpers to display the planner legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/ftf/pkg/printers"
)

// Key prints the block markers and the role color palette.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Key()
	return nil
}
