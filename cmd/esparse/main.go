package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"esparse/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "esparse",
	Short: "JavaScript tokenizer and parser",
	Long:  `esparse tokenizes and parses JavaScript sources into located syntax trees`,
	// Usage is noise after a syntax error.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiling)
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTracing)
		return nil
	},
}

// cleanups run after the command, also when it failed, in reverse order.
// They receive the error of the command.
var cleanups []func(error)

func runCleanups(err error) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](err)
	}
	cleanups = nil
}

// main registers the subcommands and persistent flags and runs the root
// command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cleanCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("config", "", "path to esparse.toml (default: search upwards from the working directory)")
	flags.String("source-type", "", "goal symbol for .js files (script|module)")
	flags.Bool("strict", false, "parse scripts as strict mode code")
	flags.Bool("allow-return-outside-function", false, "accept return statements at the top level")
	flags.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval for long runs (0 disables)")

	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	runCleanups(err)
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
