package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/source"
)

// Current schema version; increment when Summary changes.
const cacheSchemaVersion uint16 = 1

// Cache stores parse summaries by CacheKey, in memory and on disk. It is
// safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
	mem *memoryCache
}

// Summary is what a directory parse keeps of a file: enough to report
// diagnostics and counts without parsing it again.
type Summary struct {
	Schema       uint16
	Path         string
	SourceType   string
	Statements   int
	NodeCount    int
	CommentCount int
	Diagnostics  []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic without its file id.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote `msgpack:",omitempty"`
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenCache opens the cache of app under $XDG_CACHE_HOME or ~/.cache.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt opens a cache rooted at dir, creating it when needed.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, mem: newMemoryCache(64)}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "parse", hex.EncodeToString(key[:])+".mp")
}

// Put writes a summary. The file is replaced atomically.
func (c *Cache) Put(key Digest, s *Summary) (err error) {
	if c == nil {
		return nil
	}
	s.Schema = cacheSchemaVersion
	c.mem.put(key, *s)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(s); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a summary. Entries written with another schema are misses.
func (c *Cache) Get(key Digest, out *Summary) (bool, error) {
	if c == nil {
		return false, nil
	}
	if s, ok := c.mem.get(key); ok {
		*out = s
		return true, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var s Summary
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return false, err
	}
	if s.Schema != cacheSchemaVersion {
		return false, nil
	}
	c.mem.put(key, s)
	*out = s
	return true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mem.clear()
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// Summarize condenses a parse result. Timing diagnostics are left out.
func Summarize(res *ParseResult, sourceType string) *Summary {
	s := &Summary{
		Schema:     cacheSchemaVersion,
		Path:       res.File.Path,
		SourceType: sourceType,
	}
	if res.AST != nil {
		s.Statements = len(res.AST.Program.Body)
		s.NodeCount = ast.Count(res.AST)
		s.CommentCount = len(res.AST.Comments)
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		s.Diagnostics = append(s.Diagnostics, cd)
	}
	return s
}

// Restore adds the cached diagnostics to bag as diagnostics of file.
func (s *Summary) Restore(bag *diag.Bag, file source.FileID) {
	for _, cd := range s.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(d)
	}
}
