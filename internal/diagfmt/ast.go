package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss/tree"

	"esparse/internal/ast"
)

// FormatASTJSON writes the tree in its JSON form.
func FormatASTJSON(w io.Writer, file *ast.File, indent bool) error {
	encoder := json.NewEncoder(w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(file)
}

// FormatASTTree draws the tree as an indented outline, one node per line.
// Attached comments are listed under the node that owns them.
func FormatASTTree(w io.Writer, file *ast.File) error {
	_, err := fmt.Fprintln(w, buildTree(file).String())
	return err
}

func buildTree(n ast.Node) *tree.Tree {
	t := tree.Root(nodeLabel(n)).Enumerator(tree.RoundedEnumerator)
	b := n.Base()
	for _, c := range b.LeadingComments {
		t.Child(commentLabel("leading", c))
	}
	for _, c := range b.InnerComments {
		t.Child(commentLabel("inner", c))
	}
	for _, child := range ast.Children(n) {
		t.Child(buildTree(child))
	}
	for _, c := range b.TrailingComments {
		t.Child(commentLabel("trailing", c))
	}
	return t
}

func nodeLabel(n ast.Node) string {
	b := n.Base()
	label := b.Type
	if d := nodeDetail(n); d != "" {
		label += " " + d
	}
	return fmt.Sprintf("%s [%d,%d)", label, b.Start, b.End)
}

func nodeDetail(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.StringLiteral:
		return strconv.Quote(n.Value)
	case *ast.DirectiveLiteral:
		return strconv.Quote(n.Value)
	case *ast.NumericLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.BigIntLiteral:
		return n.Value + "n"
	case *ast.BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *ast.RegExpLiteral:
		return "/" + n.Pattern + "/" + n.Flags
	case *ast.TemplateElement:
		return strconv.Quote(n.Value.Raw)
	case *ast.UnaryExpression:
		return n.Operator
	case *ast.UpdateExpression:
		if n.Prefix {
			return n.Operator + "x"
		}
		return "x" + n.Operator
	case *ast.BinaryExpression:
		return n.Operator
	case *ast.LogicalExpression:
		return n.Operator
	case *ast.AssignmentExpression:
		return n.Operator
	case *ast.VariableDeclaration:
		return n.Kind
	case *ast.ObjectMethod:
		return n.Kind
	case *ast.ClassMethod:
		return n.Kind
	}
	return ""
}

func commentLabel(role string, c *ast.Comment) string {
	return fmt.Sprintf("%s %s %q [%d,%d)", role, c.Type, c.Value, c.Start, c.End)
}
