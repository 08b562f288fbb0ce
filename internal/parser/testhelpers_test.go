package parser_test

import (
	"errors"
	"strconv"
	"testing"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/parser"
)

var moduleOpts = parser.Options{SourceType: parser.SourceModule}

// parseOK parses src and fails the test on error.
func parseOK(t *testing.T, src string, opts parser.Options) *ast.File {
	t.Helper()
	file, err := parser.Parse(src, opts)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return file
}

// parseErr parses src and returns the error it must produce.
func parseErr(t *testing.T, src string, opts parser.Options) *diag.Error {
	t.Helper()
	file, err := parser.Parse(src, opts)
	if err == nil {
		t.Fatalf("parse %q: expected an error", src)
	}
	if file != nil {
		t.Fatalf("parse %q: got a tree together with an error", src)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("parse %q: error %T is not *diag.Error", src, err)
	}
	return de
}

// body returns the single statement of a program.
func body(t *testing.T, file *ast.File) ast.Statement {
	t.Helper()
	if n := len(file.Program.Body); n != 1 {
		t.Fatalf("program has %d statements, want 1", n)
	}
	return file.Program.Body[0]
}

// expr parses src as a script holding one expression statement.
func expr(t *testing.T, src string) ast.Expression {
	t.Helper()
	es, ok := body(t, parseOK(t, src, parser.Options{})).(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("%q is not an expression statement", src)
	}
	return es.Expression
}

// shape renders an expression with explicit grouping, for precedence tests.
func shape(e ast.Node) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.NumericLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.BinaryExpression:
		return "(" + shape(n.Left) + " " + n.Operator + " " + shape(n.Right) + ")"
	case *ast.LogicalExpression:
		return "(" + shape(n.Left) + " " + n.Operator + " " + shape(n.Right) + ")"
	case *ast.AssignmentExpression:
		return "(" + shape(n.Left) + " " + n.Operator + " " + shape(n.Right) + ")"
	case *ast.UnaryExpression:
		return "(" + n.Operator + " " + shape(n.Argument) + ")"
	case *ast.UpdateExpression:
		if n.Prefix {
			return "(" + n.Operator + shape(n.Argument) + ")"
		}
		return "(" + shape(n.Argument) + n.Operator + ")"
	case *ast.ConditionalExpression:
		return "(" + shape(n.Test) + " ? " + shape(n.Consequent) + " : " + shape(n.Alternate) + ")"
	case *ast.SequenceExpression:
		out := "("
		for i, x := range n.Expressions {
			if i > 0 {
				out += ", "
			}
			out += shape(x)
		}
		return out + ")"
	case *ast.AwaitExpression:
		return "(await " + shape(n.Argument) + ")"
	}
	return e.Base().Type
}

func types(nodes []ast.Statement) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Base().Type
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
