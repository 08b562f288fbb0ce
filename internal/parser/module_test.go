package parser_test

import (
	"testing"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/parser"
)

func TestImports(t *testing.T) {
	tests := []struct {
		src   string
		specs []string
	}{
		{"import 'x'", nil},
		{"import {} from 'x'", nil},
		{"import a from 'x'", []string{"ImportDefaultSpecifier"}},
		{"import * as ns from 'x'", []string{"ImportNamespaceSpecifier"}},
		{"import a, * as ns from 'x'", []string{"ImportDefaultSpecifier", "ImportNamespaceSpecifier"}},
		{"import a, {b as c, 'd e' as f, default as g,} from 'x'", []string{"ImportDefaultSpecifier", "ImportSpecifier", "ImportSpecifier", "ImportSpecifier"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			imp := body(t, parseOK(t, tt.src, moduleOpts)).(*ast.ImportDeclaration)
			var got []string
			for _, s := range imp.Specifiers {
				got = append(got, s.Base().Type)
			}
			if !sameStrings(got, tt.specs) {
				t.Fatalf("specifiers = %v, want %v", got, tt.specs)
			}
			if imp.Source == nil || imp.Source.Value != "x" {
				t.Fatalf("source = %+v", imp.Source)
			}
		})
	}

	imp := body(t, parseOK(t, "import {'d e' as f} from 'x'", moduleOpts)).(*ast.ImportDeclaration)
	spec := imp.Specifiers[0].(*ast.ImportSpecifier)
	if s, ok := spec.Imported.(*ast.StringLiteral); !ok || s.Value != "d e" || spec.Local.Name != "f" {
		t.Fatalf("string import = %+v", spec)
	}

	imp = body(t, parseOK(t, "import {a} from 'x'", moduleOpts)).(*ast.ImportDeclaration)
	spec = imp.Specifiers[0].(*ast.ImportSpecifier)
	if spec.Imported == ast.Node(spec.Local) {
		t.Fatal("shorthand import must not share one node for imported and local")
	}
	if spec.Local.Start != 8 || spec.Local.End != 9 {
		t.Fatalf("local span = %d..%d", spec.Local.Start, spec.Local.End)
	}
}

func TestExports(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"export var a = 1, {b} = c", "ExportNamedDeclaration"},
		{"export let x = 1", "ExportNamedDeclaration"},
		{"export function f() {}", "ExportNamedDeclaration"},
		{"export async function g() {}", "ExportNamedDeclaration"},
		{"export class C {}", "ExportNamedDeclaration"},
		{"export default function () {}", "ExportDefaultDeclaration"},
		{"export default async function () {}", "ExportDefaultDeclaration"},
		{"export default class {}", "ExportDefaultDeclaration"},
		{"export default a + b;", "ExportDefaultDeclaration"},
		{"export { a as default, b as 'str', c }", "ExportNamedDeclaration"},
		{"export { default } from 'x'", "ExportNamedDeclaration"},
		{"export { 'a b' as c } from 'x'", "ExportNamedDeclaration"},
		{"export * from 'x'", "ExportAllDeclaration"},
		{"export * as ns from 'x'", "ExportNamedDeclaration"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := body(t, parseOK(t, tt.src, moduleOpts)).Base().Type; got != tt.want {
				t.Fatalf("type = %s, want %s", got, tt.want)
			}
		})
	}

	def := body(t, parseOK(t, "export default function () {}", moduleOpts)).(*ast.ExportDefaultDeclaration)
	if fn, ok := def.Declaration.(*ast.FunctionDeclaration); !ok || fn.ID != nil {
		t.Fatalf("default declaration = %T", def.Declaration)
	}

	ns := body(t, parseOK(t, "export * as ns from 'x'", moduleOpts)).(*ast.ExportNamedDeclaration)
	if len(ns.Specifiers) != 1 || ns.Specifiers[0].Base().Type != "ExportNamespaceSpecifier" || ns.Source == nil {
		t.Fatalf("namespace export = %+v", ns)
	}
}

func TestModuleErrors(t *testing.T) {
	tests := []struct {
		src  string
		opts parser.Options
		code diag.Code
	}{
		{"export { a as b, c as b }", moduleOpts, diag.SynDuplicateExport},
		{"export default 1; export default 2", moduleOpts, diag.SynDuplicateExport},
		{"export function f() {} export { g as f }", moduleOpts, diag.SynDuplicateExport},
		{"export * as a from 'x'; export { b as a }", moduleOpts, diag.SynDuplicateExport},
		{"export var [a, b] = c; export { d as b }", moduleOpts, diag.SynDuplicateExport},
		{"export { default }", moduleOpts, diag.SynReservedWord},
		{"export { 'a' }", moduleOpts, diag.SynUnexpectedToken},
		{"import { 'a' } from 'x'", moduleOpts, diag.SynUnexpectedToken},
		{"import { if } from 'x'", moduleOpts, diag.SynReservedWord},
		{"import eval from 'x'", moduleOpts, diag.SynStrictEvalArguments},
		{"import a from 'x'", parser.Options{}, diag.SynModuleOnly},
		{"export var a", parser.Options{}, diag.SynModuleOnly},
		{"{ import a from 'x' }", moduleOpts, diag.SynModuleOnly},
		{"function f() { export var a }", moduleOpts, diag.SynModuleOnly},
		{"import.meta", parser.Options{}, diag.SynModuleOnly},
		{"import.other", moduleOpts, diag.SynUnexpectedToken},
		{"import a, from 'x'", moduleOpts, diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if err := parseErr(t, tt.src, tt.opts); err.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", err.Code.ID(), err.Message, tt.code.ID())
			}
		})
	}
}

func TestModuleGoal(t *testing.T) {
	file := parseOK(t, "await x; import.meta.url; import('y')", moduleOpts)
	if file.Program.SourceType != "module" {
		t.Fatalf("sourceType = %s", file.Program.SourceType)
	}
	if len(file.Program.Body) != 3 {
		t.Fatalf("statements = %d", len(file.Program.Body))
	}
	if _, ok := body(t, parseOK(t, "import('x')", parser.Options{})).(*ast.ExpressionStatement); !ok {
		t.Fatal("dynamic import must parse in scripts")
	}
	parseErr(t, "await x", parser.Options{})
}
