package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"esparse/internal/parser"
)

func TestFormatASTTree(t *testing.T) {
	file, err := parser.Parse("// c\nlet x = 1 + 2;", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, file); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"File [0,19)",
		"VariableDeclaration let [5,19)",
		`leading CommentLine " c" [0,4)`,
		"Identifier x [9,10)",
		"BinaryExpression + [13,18)",
		"NumericLiteral 2 [17,18)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "NumericLiteral 1") > strings.Index(out, "NumericLiteral 2") {
		t.Error("children out of source order")
	}
}

func TestFormatASTJSON(t *testing.T) {
	file, err := parser.Parse("a?.b", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var compact, indented bytes.Buffer
	if err := FormatASTJSON(&compact, file, false); err != nil {
		t.Fatal(err)
	}
	if err := FormatASTJSON(&indented, file, true); err != nil {
		t.Fatal(err)
	}
	if strings.Count(compact.String(), "\n") != 1 || !strings.Contains(indented.String(), "\n  ") {
		t.Fatal("indent option ignored")
	}
	var root map[string]any
	if err := json.Unmarshal(compact.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	program := root["program"].(map[string]any)
	stmt := program["body"].([]any)[0].(map[string]any)
	if expr := stmt["expression"].(map[string]any); expr["type"] != "OptionalMemberExpression" {
		t.Fatalf("expression = %v", expr)
	}
}
