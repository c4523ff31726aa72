// Package info reports where weeks are stored.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = printers.Stdout()
	}

	if override := os.Getenv("FTF_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "FTF_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "FTF_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:    ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.Backend())
	if f := n.Config.LogFile(); f != "" {
		_, _ = fmt.Fprintln(out, "Config.log.file:", f)
	}

	if n.Persistence == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}

	weeks, err := n.Persistence.ListAll(ctx, store.ListOptions{Order: store.Oldest})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Weeks:\n")
	for _, w := range weeks {
		_, _ = fmt.Fprintf(out, "  %s  %d roles, %d goals\n", w.ID, len(w.Roles), len(w.Goals))
	}
	if len(weeks) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no weeks")
	}

	return nil
}
