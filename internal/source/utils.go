package source

import (
	"path/filepath"
	"strings"
)

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineIndex records the offset where each line after the first begins.
// Line terminators are LF, CR, CRLF (one terminator), U+2028 and U+2029.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i := 0; i < len(content); i++ {
		switch b := content[i]; {
		case b == '\n':
			out = append(out, uint32(i+1))
		case b == '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			out = append(out, uint32(i+1))
		case b == 0xE2 && i+2 < len(content) && content[i+1] == 0x80 && (content[i+2] == 0xA8 || content[i+2] == 0xA9):
			i += 2
			out = append(out, uint32(i+1))
		}
	}
	return out
}

// lineOf returns the 0-based line index containing off and the offset where
// that line starts.
func lineOf(lineIdx []uint32, off uint32) (int, uint32) {
	// largest i with lineIdx[i] <= off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return 0, 0
	}
	return hi + 1, lineIdx[hi]
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line, start := lineOf(lineIdx, off)
	return LineCol{Line: uint32(line + 1), Col: off - start + 1}
}

// trimLineTerminator drops a trailing line terminator from a line slice.
func trimLineTerminator(b []byte) []byte {
	n := len(b)
	switch {
	case n >= 2 && b[n-2] == '\r' && b[n-1] == '\n':
		return b[:n-2]
	case n >= 1 && (b[n-1] == '\n' || b[n-1] == '\r'):
		return b[:n-1]
	case n >= 3 && b[n-3] == 0xE2 && b[n-2] == 0x80 && (b[n-1] == 0xA8 || b[n-1] == 0xA9):
		return b[:n-3]
	}
	return b
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p against the working directory.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir. Paths that escape baseDir are
// returned absolute.
func RelativePath(p, baseDir string) (string, error) {
	absPath, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}
