package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives parse events. Implementations are shared by the parallel
// directory workers, so Emit must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is false for the disabled tracer, which lets the parser skip
	// building span names.
	Enabled() bool
}

// DefaultRingSize covers the statement spans of a few hundred lines, enough
// to show where a failing file went wrong.
const DefaultRingSize = 4096

// StorageMode picks where events go: straight to the trace output, into an
// in-memory ring that is dumped when a command fails, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = map[string]StorageMode{
	"stream": ModeStream,
	"ring":   ModeRing,
	"both":   ModeBoth,
}

func (m StorageMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode reads the --trace-mode flag.
func ParseMode(s string) (StorageMode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

func (m StorageMode) streams() bool { return m == ModeStream || m == ModeBoth }
func (m StorageMode) rings() bool   { return m == ModeRing || m == ModeBoth }

// Config describes the tracer built from the trace flags.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format
	// Output wins over OutputPath. An empty path or "-" means stderr.
	Output     io.Writer
	OutputPath string
	RingSize   int
}

// New builds the tracer for cfg. A level of LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == 0 || cfg.Mode > ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}

	var sinks []Tracer
	if cfg.Mode.streams() {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		format := cfg.Format
		if format == FormatAuto {
			format = formatForPath(cfg.OutputPath)
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, format))
	}
	if cfg.Mode.rings() {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiTracer(cfg.Level, sinks...), nil
}

// formatForPath picks NDJSON for .ndjson and .json trace files and text
// for everything else, stderr included.
func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".json":
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the tracer used when tracing is off. Parsers started without a
// tracer fall back to it.
var Nop Tracer = nopTracer{}
