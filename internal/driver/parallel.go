package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/lexer"
	"esparse/internal/observ"
	"esparse/internal/source"
	"esparse/internal/token"
	"esparse/internal/trace"
)

// TokenizeDirResult is the outcome for one file of TokenizeDir.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult is the outcome for one file of ParseDir.
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	// AST is nil when the parse failed or the summary came from the cache.
	AST     *ast.File
	Bag     *diag.Bag
	Summary *Summary
	Cached  bool
	Timing  *observ.Report
}

var sourceExts = map[string]bool{".js": true, ".mjs": true, ".cjs": true}

// SourceFiles returns the sorted script files under dir, skipping
// node_modules. ParseDir and TokenizeDir visit exactly these files.
func SourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExts[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// preload reads every file up front so workers share one FileSet without
// locking. A file that fails to load is registered empty, so its load error
// still has a path to point at.
func preload(dir string, files []string) (*source.FileSet, map[string]source.FileID, map[string]error) {
	fileSet := source.NewFileSetWithBase(dir)
	ids := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			id = fileSet.AddVirtual(path, nil)
		}
		ids[path] = id
	}
	return fileSet, ids, loadErrors
}

func loadErrorBag(file source.FileID, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{File: file},
	})
	return bag
}

func workerLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// TokenizeDir lexes every script file under dir in parallel. Results are in
// path order.
func TokenizeDir(ctx context.Context, dir string, opts lexer.Options, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := SourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}
	fileSet, ids, loadErrors := preload(dir, files)

	// Each worker writes only its own index.
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = TokenizeDirResult{Path: path, FileID: ids[path], Bag: loadErrorBag(ids[path], loadErr, maxDiagnostics)}
				return nil
			}
			res, err := tokenizeFile(fileSet, fileSet.Get(ids[path]), opts, maxDiagnostics)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = TokenizeDirResult{Path: path, FileID: res.File.ID, Tokens: res.Tokens, Bag: res.Bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// ParseDir parses every script file under dir with at most jobs workers.
// With a cache, unchanged files are answered from their stored summary and
// their AST is not built. opts.Observer is called from several goroutines.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int, cache *Cache) (*source.FileSet, []ParseDirResult, error) {
	files, err := SourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}
	fileSet, ids, loadErrors := preload(dir, files)

	span, ctx := trace.BeginContext(ctx, trace.ScopeDriver, "parse-dir")
	span.WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")

	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var r ParseDirResult
			if loadErr, failed := loadErrors[path]; failed {
				r = ParseDirResult{Path: path, FileID: ids[path], Bag: loadErrorBag(ids[path], loadErr, opts.MaxDiagnostics)}
			} else {
				var err error
				r, err = parseCached(gctx, fileSet, fileSet.Get(ids[path]), opts, cache)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			results[i] = r
			if opts.Observer != nil {
				opts.Observer(PhaseEvent{Name: "file", Path: path, Status: PhaseDone, Failed: r.Bag.HasErrors(), Cached: r.Cached})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

func parseCached(ctx context.Context, fileSet *source.FileSet, file *source.File, opts Options, cache *Cache) (ParseDirResult, error) {
	out := ParseDirResult{Path: file.Path, FileID: file.ID}
	key := CacheKey(file.Hash, file.Path, opts)

	var hit Summary
	ok, err := cache.Get(key, &hit)
	if err != nil {
		// A corrupt entry is a miss; it is overwritten below.
		ok = false
	}
	if ok {
		out.Bag = diag.NewBag(opts.MaxDiagnostics)
		hit.Restore(out.Bag, file.ID)
		out.Summary = &hit
		out.Cached = true
		return out, nil
	}

	res, err := parseFile(ctx, fileSet, file, opts)
	if err != nil {
		return out, err
	}
	out.AST, out.Bag, out.Timing = res.AST, res.Bag, res.Timing
	out.Summary = Summarize(res, string(SourceTypeFor(file.Path, orScript(opts.Parser.SourceType))))
	if err := cache.Put(key, out.Summary); err != nil && !errors.Is(err, fs.ErrPermission) {
		return out, fmt.Errorf("cache: %w", err)
	}
	return out, nil
}

// MergeTimings combines the timing reports of a directory run.
func MergeTimings(results []ParseDirResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	return observ.Merge(reports...)
}
