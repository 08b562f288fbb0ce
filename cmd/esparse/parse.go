package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"esparse/internal/ast"
	"esparse/internal/diagfmt"
	"esparse/internal/driver"
	"esparse/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.js|directory>",
	Short: "Parse a JavaScript file or directory and output the syntax tree",
	Long: `Parse builds the syntax tree of a source file, or of every *.js, *.mjs and
*.cjs file of a directory, and prints it as JSON, as a tree outline or as a
one-line summary per file`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "json", "output format (json|tree|summary)")
	parseCmd.Flags().Bool("compact", false, "do not indent JSON output")
	parseCmd.Flags().Bool("tokens", false, "include the token list in JSON output")
	parseCmd.Flags().Bool("lint", true, "run identifier checks on parsed trees")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "off", "progress view for directories (auto|on|off)")
	parseCmd.Flags().Bool("cache", false, "reuse cached summaries for unchanged files (summary format only)")
	parseCmd.Flags().Bool("html-comments", false, "treat <!-- and --> as line comments in scripts")
	addDiagnosticsFlag(parseCmd)
}

type parseOutput struct {
	format  string
	compact bool
	quiet   bool
	out     io.Writer
}

func (o parseOutput) writeAST(file *ast.File) error {
	switch o.format {
	case "json":
		return diagfmt.FormatASTJSON(o.out, file, !o.compact)
	case "tree":
		return diagfmt.FormatASTTree(o.out, file)
	}
	return fmt.Errorf("unknown format: %s", o.format)
}

func (o parseOutput) writeSummary(path string, s *driver.Summary, cached bool) error {
	status := "ok"
	if len(s.Diagnostics) > 0 {
		status = fmt.Sprintf("%d diagnostics", len(s.Diagnostics))
	}
	if cached {
		status += " (cached)"
	}
	_, err := fmt.Fprintf(o.out, "%s: %s, %d statements, %d nodes, %d comments, %s\n",
		path, s.SourceType, s.Statements, s.NodeCount, s.CommentCount, status)
	return err
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "json", "tree", "summary":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	compact, err := flags.GetBool("compact")
	if err != nil {
		return fmt.Errorf("failed to get compact flag: %w", err)
	}
	withTokens, err := flags.GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	lint, err := flags.GetBool("lint")
	if err != nil {
		return fmt.Errorf("failed to get lint flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	popts, err := parserOptions(cmd)
	if err != nil {
		return err
	}
	popts.Tokens = withTokens && format == "json"
	printer, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Parser:         popts,
		MaxDiagnostics: maxDiagnostics,
		Lint:           lint,
		Timings:        timings,
	}
	out := parseOutput{format: format, compact: compact, quiet: quiet, out: os.Stdout}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return runParseDir(cmd, path, opts, out, printer)
	}

	result, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.AST != nil {
		if format == "summary" {
			err = out.writeSummary(path, driver.Summarize(result, string(result.AST.Program.SourceType)), false)
		} else {
			err = out.writeAST(result.AST)
		}
		if err != nil {
			return err
		}
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

func runParseDir(cmd *cobra.Command, dir string, opts driver.Options, out parseOutput, printer *diagPrinter) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	var cache *driver.Cache
	// A cache hit has no tree, so only summaries can use it.
	if useCache && out.format == "summary" {
		if cache, err = driver.OpenCache("esparse"); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
	)
	if shouldUseTUI(mode, out.quiet) {
		fs, results, err = parseDirWithUI(cmd.Context(), dir, opts, jobs, cache)
	} else {
		fs, results, err = driver.ParseDir(cmd.Context(), dir, opts, jobs, cache)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failedFiles := 0
	trees := make(map[string]*ast.File, len(results))
	for idx, r := range results {
		name := displayPath(fs, r.FileID, r.Path)
		switch out.format {
		case "summary":
			if r.Summary != nil {
				if err := out.writeSummary(name, r.Summary, r.Cached); err != nil {
					return err
				}
			}
		case "json":
			trees[name] = r.AST
		case "tree":
			if !out.quiet {
				if idx > 0 {
					fmt.Fprintln(out.out)
				}
				fmt.Fprintf(out.out, "== %s ==\n", name)
			}
			if r.AST != nil {
				if err := out.writeAST(r.AST); err != nil {
					return err
				}
			}
		}
		failed, err := printer.print(r.Bag, fs)
		if err != nil {
			return err
		}
		if failed {
			failedFiles++
		}
	}
	if out.format == "json" {
		encoder := json.NewEncoder(out.out)
		if !out.compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(trees); err != nil {
			return err
		}
	}
	if opts.Timings && len(results) > 1 {
		fmt.Fprint(os.Stderr, driver.MergeTimings(results).Summary())
	}
	if failedFiles > 0 {
		return errFailed{files: failedFiles}
	}
	return nil
}

func displayPath(fs *source.FileSet, id source.FileID, fallback string) string {
	if f := fs.Get(id); f != nil {
		return f.FormatPath("auto", fs.BaseDir())
	}
	return fallback
}
