package parser_test

import (
	"testing"

	"esparse/internal/ast"
	"esparse/internal/parser"
)

// attached counts every comment reference held by nodes of the tree.
func attached(file *ast.File) map[*ast.Comment]int {
	seen := make(map[*ast.Comment]int)
	ast.Inspect(file, func(n ast.Node) bool {
		b := n.Base()
		for _, list := range [][]*ast.Comment{b.LeadingComments, b.TrailingComments, b.InnerComments} {
			for _, c := range list {
				seen[c]++
			}
		}
		return true
	})
	return seen
}

func TestCommentAttachment(t *testing.T) {
	src := "// lead\na = 1; // trail\n/* next */ b\n// end\n"
	file := parseOK(t, src, parser.Options{})
	if len(file.Comments) != 4 {
		t.Fatalf("comments = %d", len(file.Comments))
	}
	first := file.Program.Body[0].Base()
	if len(first.LeadingComments) != 1 || first.LeadingComments[0].Value != " lead" {
		t.Fatalf("leading = %+v", first.LeadingComments)
	}
	if len(first.TrailingComments) != 1 || first.TrailingComments[0].Value != " trail" {
		t.Fatalf("trailing = %+v", first.TrailingComments)
	}
	second := file.Program.Body[1].Base()
	if len(second.LeadingComments) != 1 || second.LeadingComments[0].Type != ast.CommentBlock {
		t.Fatalf("second leading = %+v", second.LeadingComments)
	}
	if len(file.Program.InnerComments) != 1 || file.Program.InnerComments[0].Value != " end" {
		t.Fatalf("program inner = %+v", file.Program.InnerComments)
	}
}

func TestCommentLocations(t *testing.T) {
	file := parseOK(t, "x /* a\nb */", parser.Options{})
	c := file.Comments[0]
	if c.Type != ast.CommentBlock || c.Value != " a\nb " {
		t.Fatalf("comment = %+v", c)
	}
	if c.Start != 2 || c.End != 11 {
		t.Fatalf("span = %d..%d", c.Start, c.End)
	}
	if c.Loc.Start.Line != 1 || c.Loc.Start.Column != 2 || c.Loc.End.Line != 2 || c.Loc.End.Column != 4 {
		t.Fatalf("loc = %+v", c.Loc)
	}
}

func TestInnerComments(t *testing.T) {
	fn := body(t, parseOK(t, "function f() { /* empty */ }", parser.Options{})).(*ast.FunctionDeclaration)
	if len(fn.Body.InnerComments) != 1 {
		t.Fatalf("block inner = %+v", fn.Body.InnerComments)
	}

	call := expr(t, "f(/* none */)").(*ast.CallExpression)
	if len(call.InnerComments) != 1 {
		t.Fatalf("call inner = %+v", call.InnerComments)
	}

	obj := expr(t, "({ /* nothing */ })").(*ast.ObjectExpression)
	if len(obj.InnerComments) != 1 {
		t.Fatalf("object inner = %+v", obj.InnerComments)
	}
}

func TestCommentsAttachOnce(t *testing.T) {
	tests := []string{
		"(/* c */ a) => a",
		"(/* c */ a, b)",
		"async (/* c */ x) => x",
		"a /* c */ ? b : c",
		"class A { /* c */ m() {} // d\n}",
		"if (a) { // c\n} else /* d */ b",
		"switch (x) { /* c */ case 1: // d\n}",
		"/* only */",
		"<!-- html\nx",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			file := parseOK(t, src, parser.Options{AllowHTMLComments: true})
			seen := attached(file)
			if len(seen) != len(file.Comments) {
				t.Fatalf("%d of %d comments attached", len(seen), len(file.Comments))
			}
			for c, n := range seen {
				if n != 1 {
					t.Fatalf("comment %q attached %d times", c.Value, n)
				}
			}
		})
	}
}

func TestClassMemberLeadingComments(t *testing.T) {
	members := classBody(t, "class A {\n  // doc\n  m() {}\n}")
	lead := members[0].Base().LeadingComments
	if len(lead) != 1 || lead[0].Value != " doc" {
		t.Fatalf("member leading = %+v", lead)
	}
}

func TestLeadingCommentsNeedAdjacentStatement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		// owner is the type of the node expected to hold the comment
		owner string
		role  string
	}{
		{"call argument", "f(/* c */ function(){ x; })", "CallExpression", "inner"},
		{"array initializer", "var a = /* c */ [ function(){ z; } ]", "VariableDeclarator", "inner"},
		{"assignment", "a = /* c */ function(){ y; };", "AssignmentExpression", "inner"},
		{"block after brace", "{ /* c */ x; }", "ExpressionStatement", "leading"},
		{"after label", "l: /* c */ x;", "ExpressionStatement", "leading"},
		{"after previous statement", "a; /* c */\nb;", "ExpressionStatement", "trailing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parseOK(t, tt.src, parser.Options{})
			var owner ast.Node
			role := ""
			ast.Inspect(file, func(n ast.Node) bool {
				b := n.Base()
				for r, list := range map[string][]*ast.Comment{"leading": b.LeadingComments, "trailing": b.TrailingComments, "inner": b.InnerComments} {
					for _, c := range list {
						if c.Value == " c " {
							owner, role = n, r
						}
					}
				}
				return true
			})
			if owner == nil {
				t.Fatal("comment not attached")
			}
			if owner.Base().Type != tt.owner || role != tt.role {
				t.Fatalf("comment is %s of %s@%d, want %s of %s", role, owner.Base().Type, owner.Base().Start, tt.role, tt.owner)
			}
			if seen := attached(file); len(seen) != len(file.Comments) {
				t.Fatalf("%d of %d comments attached", len(seen), len(file.Comments))
			}
		})
	}
}

func TestCommentBeforeNestedFunctionSkipsItsBody(t *testing.T) {
	file := parseOK(t, "f(/* c */ function(){ x; })", parser.Options{})
	call := body(t, file).(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	fn := call.Arguments[0].(*ast.FunctionExpression)
	inner := fn.Body.Body[0].Base()
	if len(inner.LeadingComments) != 0 {
		t.Fatalf("statement inside the function took %+v", inner.LeadingComments)
	}
}
