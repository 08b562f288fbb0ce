package ast

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func ident(name string, start int) *Identifier {
	return &Identifier{NodeBase: NodeBase{Type: "Identifier", Start: start, End: start + len(name)}, Name: name}
}

func TestChildrenSourceOrder(t *testing.T) {
	// a + b * c
	mul := &BinaryExpression{NodeBase: NodeBase{Type: "BinaryExpression"}, Operator: "*", Left: ident("b", 4), Right: ident("c", 8)}
	add := &BinaryExpression{NodeBase: NodeBase{Type: "BinaryExpression"}, Operator: "+", Left: ident("a", 0), Right: mul}
	stmt := &ExpressionStatement{NodeBase: NodeBase{Type: "ExpressionStatement"}, Expression: add}

	var names []string
	Inspect(stmt, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	if got := strings.Join(names, ","); got != "a,b,c" {
		t.Fatalf("visit order %q", got)
	}
	if got := Count(stmt); got != 6 {
		t.Fatalf("Count = %d, want 6", got)
	}
}

func TestChildrenSkipsNil(t *testing.T) {
	ret := &ReturnStatement{NodeBase: NodeBase{Type: "ReturnStatement"}}
	if c := Children(ret); len(c) != 0 {
		t.Fatalf("expected no children, got %d", len(c))
	}
	arr := &ArrayExpression{Elements: []Expression{nil, ident("x", 3), nil}}
	if c := Children(arr); len(c) != 1 {
		t.Fatalf("holes must be skipped, got %d children", len(c))
	}
	fn := &FunctionExpression{Function: Function{Body: &BlockStatement{}}}
	if c := Children(fn); len(c) != 1 {
		t.Fatalf("anonymous function children = %d, want 1", len(c))
	}
}

func TestWalkLeaveAndSkip(t *testing.T) {
	inner := &BlockStatement{Body: []Statement{&EmptyStatement{}}}
	outer := &BlockStatement{Body: []Statement{inner, &DebuggerStatement{}}}
	var order []string
	Walk(outer, func(n Node) bool {
		return n != Node(inner)
	}, func(n Node) {
		switch n.(type) {
		case *DebuggerStatement:
			order = append(order, "debugger")
		case *BlockStatement:
			order = append(order, "block")
		case *EmptyStatement:
			order = append(order, "empty")
		}
	})
	if got := strings.Join(order, ","); got != "debugger,block" {
		t.Fatalf("leave order %q", got)
	}
}

func TestExtras(t *testing.T) {
	x := NewExtras()
	a := ident("a", 0)
	if x.Get(a) != nil || x.Parenthesized(a) {
		t.Fatal("fresh table must be empty")
	}
	x.Ensure(a).Parenthesized = true
	x.Ensure(a).ParenStart = 0
	if !x.Parenthesized(a) || x.Len() != 1 {
		t.Fatal("Ensure must reuse the entry")
	}
	b := ident("a", 0)
	x.Move(a, b)
	if x.Get(a) != nil || !x.Parenthesized(b) {
		t.Fatal("Move must re-key the entry")
	}
	var nilTable *Extras
	if nilTable.Get(a) != nil || nilTable.Len() != 0 {
		t.Fatal("nil table must read as empty")
	}
}

func TestJSONShape(t *testing.T) {
	cooked := "x"
	tl := &TemplateLiteral{
		NodeBase: NodeBase{Type: "TemplateLiteral", Start: 0, End: 3},
		Quasis: []*TemplateElement{{
			NodeBase: NodeBase{Type: "TemplateElement", Start: 1, End: 2},
			Value:    TemplateElementValue{Raw: "x", Cooked: &cooked},
			Tail:     true,
		}},
		Expressions: []Expression{},
	}
	data, err := json.Marshal(tl)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"type":"TemplateLiteral"`, `"raw":"x"`, `"cooked":"x"`, `"tail":true`, `"expressions":[]`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s in %s", want, s)
		}
	}
	if strings.Contains(s, "leadingComments") {
		t.Errorf("empty comment lists must be omitted: %s", s)
	}

	fn := &FunctionDeclaration{NodeBase: NodeBase{Type: "FunctionDeclaration"}, Function: Function{ID: ident("f", 9), Async: true}}
	data, err = json.Marshal(fn)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"async":true`) || !strings.Contains(string(data), `"name":"f"`) {
		t.Errorf("function fields must be flattened: %s", data)
	}
}

func TestNonFiniteNumberJSON(t *testing.T) {
	num := &NumericLiteral{NodeBase: NodeBase{Type: "NumericLiteral", End: 5}, Value: math.Inf(1)}
	file := &File{
		NodeBase: NodeBase{Type: "File"},
		Program: &Program{NodeBase: NodeBase{Type: "Program"}, Body: []Statement{
			&ExpressionStatement{NodeBase: NodeBase{Type: "ExpressionStatement"}, Expression: num},
		}},
		Extras: NewExtras(),
	}
	file.Extras.Ensure(num).RawValue = math.Inf(1)

	for name, v := range map[string]any{"literal": num, "file": file} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(v)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), `"value":null`) {
				t.Errorf("non-finite value must encode as null: %s", data)
			}
		})
	}
}

func TestFileJSONExtra(t *testing.T) {
	str := &StringLiteral{NodeBase: NodeBase{Type: "StringLiteral", Start: 1, End: 4}, Value: "a"}
	bare := ident("b", 6)
	file := &File{
		NodeBase: NodeBase{Type: "File"},
		Program: &Program{NodeBase: NodeBase{Type: "Program"}, Body: []Statement{
			&ExpressionStatement{NodeBase: NodeBase{Type: "ExpressionStatement"}, Expression: str},
			&ExpressionStatement{NodeBase: NodeBase{Type: "ExpressionStatement"}, Expression: bare},
		}},
		Extras: NewExtras(),
	}
	x := file.Extras.Ensure(str)
	x.Raw = "'a'"
	x.RawValue = "a"
	x.Parenthesized = true

	data, err := json.Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	want := `"loc":{`
	if i := strings.Index(s, `"type":"StringLiteral"`); i < 0 || !strings.Contains(s[i:], `"extra":{"raw":"'a'","rawValue":"a","parenthesized":true}`) {
		t.Errorf("string literal extra missing: %s", s)
	}
	if strings.Count(s, `"extra"`) != 1 {
		t.Errorf("only nodes with an entry carry extra: %s", s)
	}
	if i := strings.Index(s, `"extra"`); strings.LastIndex(s[:i], want) < strings.Index(s, `"type":"StringLiteral"`) {
		t.Errorf("extra must follow the node's loc: %s", s)
	}
	if strings.Contains(s, "Extras") {
		t.Errorf("side-table must not be encoded as a field: %s", s)
	}
}

func TestExtrasRollback(t *testing.T) {
	x := NewExtras()
	kept, moved, fresh := ident("a", 0), ident("b", 2), ident("c", 4)
	x.Ensure(kept).Raw = "a"
	x.Ensure(moved).Raw = "b"

	outer := x.Mark()
	x.Ensure(fresh)
	x.Mark()
	x.Ensure(ident("d", 6))
	x.Release()
	target := ident("b", 2)
	x.Move(moved, target)
	x.Rollback(outer)

	if x.Len() != 2 || x.Get(fresh) != nil || x.Get(target) != nil {
		t.Fatalf("rollback left %d entries", x.Len())
	}
	if x.Get(kept).Raw != "a" || x.Get(moved) == nil || x.Get(moved).Raw != "b" {
		t.Fatal("entries from before the mark must survive")
	}

	m := x.Mark()
	x.Ensure(fresh)
	x.Release()
	if x.Len() != 3 || m != 0 {
		t.Fatal("Release must keep the changes")
	}
}
