package testkit

import (
	"context"
	"strings"
	"testing"

	"esparse/internal/ast"
	"esparse/internal/parser"
	"esparse/internal/source"
)

func parseVirtual(t *testing.T, src string, st parser.SourceType) (*ast.File, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("k.js", []byte(src)))
	tree, err := parser.ParseFile(context.Background(), sf, parser.Options{SourceType: st})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree, sf
}

func TestCheckSpanInvariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		st   parser.SourceType
	}{
		{"empty", "", parser.SourceScript},
		{"comments", "/* a */ x; // b\n// c\nfunction f(/* d */) {}\n", parser.SourceScript},
		{"crlf and separators", "a\r\nb\u2028c\rd", parser.SourceScript},
		{"templates", "tag`a${b}c${`d${e}`}`", parser.SourceScript},
		{"classes", "class A extends B { #x = 1; static { this.#x; } get y() { return super.y } }", parser.SourceScript},
		{"patterns", "let { a, b: [c = 1, ...d], ...e } = f; ({ g = 2 } = h);", parser.SourceScript},
		{"arrows", "async (a, { b }) => a ?? b?.(c)", parser.SourceScript},
		{"module", "import x, * as y from 'z'; export default class {} export { x as 'w' };", parser.SourceModule},
		{"unicode", "var ünï = '日本'; ünï += 1;", parser.SourceScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, sf := parseVirtual(t, tt.src, tt.st)
			if err := CheckSpanInvariants(tree, sf); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestCheckSpanInvariantsDetects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ast.File)
		want   string
	}{
		{"escaping child", func(f *ast.File) { f.Program.Body[0].Base().End = 100 }, "escapes"},
		{"inverted", func(f *ast.File) { b := f.Program.Body[1].Base(); b.Start, b.End = b.End, b.Start }, "inverted"},
		{"stale loc", func(f *ast.File) { f.Program.Body[1].Base().Loc.Start.Column++ }, "start loc"},
		{"order", func(f *ast.File) { f.Program.Body[0], f.Program.Body[1] = f.Program.Body[1], f.Program.Body[0] }, "precedes"},
		{"double attach", func(f *ast.File) {
			f.Program.Body[1].Base().LeadingComments = f.Program.Body[0].Base().LeadingComments
		}, "attached to both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, sf := parseVirtual(t, "// c\na;\nb;", parser.SourceScript)
			tt.mutate(tree)
			err := CheckSpanInvariants(tree, sf)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
	if err := CheckSpanInvariants(nil, nil); err == nil {
		t.Fatal("nil input accepted")
	}
}
