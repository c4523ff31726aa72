package options

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/snake"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		`Do not ask for confirmation.`)
}

// Confirm asks question on the terminal unless --yes was given.
func (o *ConfirmOptions) Confirm(question string) (bool, error) {
	if o.Yes {
		return true, nil
	}
	return snake.Confirm(os.Stdin, snake.NopCloser(os.Stdout), question, false)
}
