package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"esparse/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the parse summary cache",
	Long:  "Remove every summary stored by parse --cache.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenCache("esparse")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		_, _ = fmt.Fprintln(os.Stdout, "cache cleared")
	}
	return nil
}
