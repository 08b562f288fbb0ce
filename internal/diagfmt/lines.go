package diagfmt

import (
	"fmt"

	"fortio.org/safecast"

	"esparse/internal/source"
)

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

// lineStartOffset returns the offset of the first byte of a 1-based line.
func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx]
	}
	return contentLen(f)
}

// lineEndOffset returns the offset just past the last byte of a 1-based
// line, before its terminator.
func lineEndOffset(f *source.File, line uint32) uint32 {
	n, err := safecast.Conv[uint32](len(f.GetLine(line)))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return lineStartOffset(f, line) + n
}

func lineCount(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return n
}
