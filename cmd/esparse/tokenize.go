package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"esparse/internal/diagfmt"
	"esparse/internal/driver"
	"esparse/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.js|directory>",
	Short: "Tokenize a JavaScript file or directory",
	Long:  `Tokenize breaks a source file, or every *.js, *.mjs and *.cjs file of a directory, into tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	tokenizeCmd.Flags().Bool("html-comments", false, "treat <!-- and --> as line comments in scripts")
	addDiagnosticsFlag(tokenizeCmd)
}

func tokenFormatter(format string) (func(io.Writer, []token.Token) error, error) {
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty, nil
	case "json":
		return diagfmt.FormatTokensJSON, nil
	case "msgpack":
		return diagfmt.FormatTokensMsgpack, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	write, err := tokenFormatter(format)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	popts, err := parserOptions(cmd)
	if err != nil {
		return err
	}
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}
	dopts := driver.Options{Parser: popts, MaxDiagnostics: maxDiagnostics}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		result, err := driver.Tokenize(path, driver.LexerOptions(dopts, path), maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if err := write(os.Stdout, result.Tokens); err != nil {
			return err
		}
		failed, err := printer.print(result.Bag, result.FileSet)
		if err != nil {
			return err
		}
		if failed {
			return errFailed{files: 1}
		}
		return nil
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	fs, results, err := driver.TokenizeDir(cmd.Context(), path, driver.LexerOptions(dopts, ""), maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	failedFiles := 0
	for idx, r := range results {
		if !quiet && format == "pretty" {
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath(fs, r.FileID, r.Path))
		}
		if err := write(os.Stdout, r.Tokens); err != nil {
			return err
		}
		failed, err := printer.print(r.Bag, fs)
		if err != nil {
			return err
		}
		if failed {
			failedFiles++
		}
	}
	if failedFiles > 0 {
		return errFailed{files: failedFiles}
	}
	return nil
}
