package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/store"
)

// ListOptions
type ListOptions struct {
	Limit  int
	Oldest bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"Show at most this many weeks, 0 for all.")
	cmd.Flags().BoolVar(&o.Oldest, "oldest", false,
		"Show the oldest weeks first.")
}

// StoreOptions converts the flags for Persistence.ListAll.
func (o *ListOptions) StoreOptions() store.ListOptions {
	order := store.Newest
	if o.Oldest {
		order = store.Oldest
	}
	return store.ListOptions{Limit: o.Limit, Order: order}
}
