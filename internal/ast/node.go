package ast

import (
	"esparse/internal/source"
	"esparse/internal/token"
)

// NodeBase is embedded by every node.
type NodeBase struct {
	Type             string          `json:"type"`
	Start            int             `json:"start"`
	End              int             `json:"end"`
	Loc              source.Location `json:"loc"`
	LeadingComments  []*Comment      `json:"leadingComments,omitempty"`
	TrailingComments []*Comment      `json:"trailingComments,omitempty"`
	InnerComments    []*Comment      `json:"innerComments,omitempty"`
}

// Base gives access to the shared node header.
func (b *NodeBase) Base() *NodeBase { return b }

// Node is any syntax tree node.
type Node interface {
	Base() *NodeBase
}

// Expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Statement nodes, declarations included.
type Statement interface {
	Node
	statementNode()
}

// Pattern nodes: binding and assignment targets.
type Pattern interface {
	Node
	patternNode()
}

// ExtensionNode is embedded by nodes defined outside this package.
type ExtensionNode struct {
	NodeBase
}

func (*ExtensionNode) expressionNode() {}
func (*ExtensionNode) statementNode()  {}
func (*ExtensionNode) patternNode()    {}

// Comment types.
const (
	CommentBlock = "CommentBlock"
	CommentLine  = "CommentLine"
)

// Comment is a block or line comment. Value excludes the delimiters.
type Comment struct {
	Type  string          `json:"type"`
	Value string          `json:"value"`
	Start int             `json:"start"`
	End   int             `json:"end"`
	Loc   source.Location `json:"loc"`
}

// File is the root returned by the parser.
type File struct {
	NodeBase
	Program  *Program   `json:"program"`
	Comments []*Comment `json:"comments"`
	// Tokens is filled only when the parser runs with token collection on.
	Tokens []token.Token `json:"tokens,omitempty"`
	// Extras is the side-table of rarely used node metadata.
	Extras *Extras `json:"-"`
}

// Program holds the top-level body.
type Program struct {
	NodeBase
	SourceType  string                `json:"sourceType"`
	Interpreter *InterpreterDirective `json:"interpreter"`
	Body        []Statement           `json:"body"`
	Directives  []*Directive          `json:"directives"`
}

// InterpreterDirective is the leading "#!" line.
type InterpreterDirective struct {
	NodeBase
	Value string `json:"value"`
}

// Directive is one entry of a directive prologue.
type Directive struct {
	NodeBase
	Value *DirectiveLiteral `json:"value"`
}

// DirectiveLiteral is the string of a directive; Value is its raw contents.
type DirectiveLiteral struct {
	NodeBase
	Value string `json:"value"`
}
