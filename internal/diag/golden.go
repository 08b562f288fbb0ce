package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"esparse/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics one per line in a stable order:
// "<severity> <ID> <path>:<line>:<col> <message>".
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendGolden(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendGolden(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	if int(d.Primary.File) >= fs.Len() {
		return out
	}
	path := goldenPath(fs.Get(d.Primary.File).Path)
	start, _ := fs.Resolve(d.Primary)
	out = append(out, goldenDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			if int(note.Span.File) >= fs.Len() {
				continue
			}
			nstart, _ := fs.Resolve(note.Span)
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     goldenPath(fs.Get(note.Span.File).Path),
				Line:     nstart.Line,
				Column:   nstart.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func goldenPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
