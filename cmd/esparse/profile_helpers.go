package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esparse/internal/prof"
)

// setupProfiling starts the profilers named by the persistent flags. The
// returned cleanup stops them and writes the heap profile.
func setupProfiling(cmd *cobra.Command) (func(error), error) {
	flags := cmd.Root().PersistentFlags()

	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cfg == (prof.Config{}) {
		return func(error) {}, nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func(error) {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}
