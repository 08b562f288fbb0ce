package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"esparse/internal/diag"
	"esparse/internal/source"
)

const tabWidth = 4

type palette struct {
	path, gutter, note *color.Color
	sev                map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgCyan, color.Bold),
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
	}
	all := []*color.Color{p.path, p.gutter, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	if c, ok := p.sev[s]; ok {
		return c
	}
	return p.note
}

// Pretty writes diagnostics for humans. The bag should be sorted first.
// Each diagnostic is printed as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined and then its notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := pal.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s: %s\n",
			pal.path.Sprint(location(d.Primary, fs, opts.PathMode)),
			sev.Sprintf("%s %s", d.Severity, d.Code.ID()),
			d.Message)
		writeSnippet(w, d.Primary, fs, opts, pal, sev)

		if !opts.ShowNotes && d.Code != diag.ObsTimings {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(n.Span, fs, opts.PathMode), n.Msg)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostics not shown\n", dropped)
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	return f.FormatPath("auto", "")
}

func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts, pal palette, sev *color.Color) {
	f := fs.Get(span.File)
	if len(f.Content) == 0 {
		return
	}
	start, _ := fs.Resolve(span)
	line := start.Line
	first := line
	if opts.Context > 0 {
		first = line - min(line-1, uint32(opts.Context))
	}
	gutterWidth := len(fmt.Sprint(line))

	for l := first; l <= line; l++ {
		text := expandTabs(f.GetLine(l))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, l), text)
	}

	// Underline up to the end of the span or of its first line.
	lineStart := lineStartOffset(f, line)
	lineEnd := lineEndOffset(f, line)
	from := min(span.Start, lineEnd)
	to := min(max(span.End, from), lineEnd)
	prefix := runewidth.StringWidth(expandTabs(string(f.Content[lineStart:from])))
	width := max(1, runewidth.StringWidth(expandTabs(string(f.Content[from:to]))))
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", prefix),
		sev.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
