package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"esparse/internal/diag"
	"esparse/internal/diagfmt"
	"esparse/internal/source"
)

// errFailed is returned after the diagnostics of a failed run were printed,
// so that main exits non-zero without printing the error again.
type errFailed struct{ files int }

func (e errFailed) Error() string {
	if e.files == 1 {
		return "1 file has errors"
	}
	return fmt.Sprintf("%d files have errors", e.files)
}

type diagPrinter struct {
	format string
	pretty diagfmt.PrettyOpts
	json   diagfmt.JSONOpts
}

func newDiagPrinter(cmd *cobra.Command) (*diagPrinter, error) {
	flags := cmd.Root().PersistentFlags()
	pathModeFlag, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeFlag)
	if !ok {
		return nil, fmt.Errorf("unknown path mode: %s", pathModeFlag)
	}
	format, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return nil, fmt.Errorf("unknown diagnostics format: %s", format)
	}
	return &diagPrinter{
		format: format,
		pretty: diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: true,
		},
		json: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
		},
	}, nil
}

// print writes bag to stderr. It returns whether bag holds an error.
func (p *diagPrinter) print(bag *diag.Bag, fs *source.FileSet) (bool, error) {
	if bag == nil || bag.Len() == 0 {
		return false, nil
	}
	bag.Sort()
	if p.format == "json" {
		return bag.HasErrors(), diagfmt.JSON(os.Stderr, bag, fs, p.json)
	}
	diagfmt.Pretty(os.Stderr, bag, fs, p.pretty)
	return bag.HasErrors(), nil
}

func addDiagnosticsFlag(cmd *cobra.Command) {
	cmd.Flags().String("diagnostics", "pretty", "diagnostics format on stderr (pretty|json)")
}
