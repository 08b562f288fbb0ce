package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/observ"
	"esparse/internal/parser"
	"esparse/internal/source"
	"esparse/internal/trace"
)

// Options configure one driver run.
type Options struct {
	Parser         parser.Options
	MaxDiagnostics int
	// Lint runs the checks that need a finished tree.
	Lint bool
	// Timings appends a timing diagnostic to every result bag.
	Timings  bool
	Observer PhaseObserver
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// AST is nil when the parse failed.
	AST *ast.File
	// Err is the parse error, also present in Bag.
	Err    *diag.Error
	Bag    *diag.Bag
	Timing *observ.Report
}

// Parse loads and parses one file. I/O and context errors are returned;
// syntax errors are reported in the result.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

// ParseSource parses content that does not come from disk, such as stdin.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	ph := newPhases(opts, file.Path)
	span, ctx := trace.BeginContext(ctx, trace.ScopeDriver, "file")
	span.WithExtra("path", file.Path)

	popts := opts.Parser
	popts.SourceType = SourceTypeFor(file.Path, popts.SourceType)

	var parseErr error
	ph.run("parse", func() string {
		res.AST, parseErr = parser.ParseFile(ctx, file, popts)
		if parseErr != nil {
			return "failed"
		}
		return fmt.Sprintf("%d statements", len(res.AST.Program.Body))
	})
	if parseErr != nil {
		var de *diag.Error
		if !errors.As(parseErr, &de) {
			return nil, parseErr
		}
		res.Err = de
		res.Bag.Add(explainDialect(de.Diagnostic(file), file, LexerOptions(Options{Parser: popts}, file.Path)))
	}

	if res.AST != nil && opts.Lint {
		ph.run("lint", func() string {
			n := LintIdentifiers(res.AST, file, diag.BagReporter{Bag: res.Bag})
			return fmt.Sprintf("%d warnings", n)
		})
	}

	res.Timing = ph.finish(res.Bag)
	if res.Err != nil {
		span.End("error")
	} else {
		span.End("ok")
	}
	return res, nil
}

// SourceTypeFor picks the goal for a file: .mjs is always a module, .cjs
// always a script, anything else keeps def.
func SourceTypeFor(path string, def parser.SourceType) parser.SourceType {
	switch filepath.Ext(path) {
	case ".mjs":
		return parser.SourceModule
	case ".cjs":
		return parser.SourceScript
	}
	return def
}
