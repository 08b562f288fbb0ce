package lexer

import (
	"slices"

	"esparse/internal/ast"
	"esparse/internal/source"
	"esparse/internal/token"
)

// ContextKind classifies a frame of the tokenizer context stack.
type ContextKind uint8

const (
	// CtxBrace is the base frame; ordinary code is lexed in it.
	CtxBrace ContextKind = iota
	// CtxInterpolation is pushed by "${" inside a template literal.
	CtxInterpolation
	// CtxTagOpen, CtxTagClose and CtxTagExpr are reserved for extensions
	// that lex markup-like tags.
	CtxTagOpen
	CtxTagClose
	CtxTagExpr
)

func (k ContextKind) String() string {
	switch k {
	case CtxBrace:
		return "brace"
	case CtxInterpolation:
		return "interpolation"
	case CtxTagOpen:
		return "tag-open"
	case CtxTagClose:
		return "tag-close"
	case CtxTagExpr:
		return "tag-expr"
	}
	return "unknown"
}

// Context is one frame of the context stack. Braces counts the '{' opened
// while this frame is on top and not yet closed.
type Context struct {
	Kind          ContextKind
	PreserveSpace bool
	Braces        int
}

// LabelKind tells what kind of statement a label belongs to.
type LabelKind uint8

const (
	LabelPlain LabelKind = iota
	LabelLoop
	LabelSwitch
)

// Label is an entry of the label stack. Unlabeled loops and switches push
// an entry with an empty Name so that bare break/continue can be checked.
type Label struct {
	Kind LabelKind
	Name string
	// StatementStart is the offset of the labeled statement, used to retag
	// chained labels when the body turns out to be a loop.
	StatementStart int
}

// State is the complete mutable state of a tokenizer. The parser clones it
// for speculative parsing and restores the clone on failure.
type State struct {
	Pos       int
	CurLine   int
	LineStart int

	// Tok is the current token.
	Tok token.Token

	LastTokStart  int
	LastTokEnd    int
	LastTokEndLoc source.Position
	// LastTokKind is the kind of the token before Tok.
	LastTokKind token.Kind

	Context     []Context
	ExprAllowed bool
	Strict      bool
	Labels      []Label

	// Comments holds comments not yet attached to a node.
	Comments []*ast.Comment

	// ContainsEsc is set when the current word token used a \u escape.
	ContainsEsc bool
	// HadLineBreak is set when a line terminator separates the current
	// token from the previous one.
	HadLineBreak bool
	// OctalPositions lists legacy octal literals and escapes seen in
	// non-strict code, for the deferred "use strict" check.
	OctalPositions []int

	// lengths of the lexer's append-only logs at this point
	commentCount int
	tokenCount   int
}

// NewState returns the state at the start of input.
func NewState(strict bool) *State {
	return &State{
		CurLine:       1,
		Context:       []Context{{Kind: CtxBrace}},
		ExprAllowed:   true,
		Strict:        strict,
		LastTokEndLoc: source.NewPosition(1, 0, 0),
	}
}

// Clone returns a copy that shares no mutable memory with s.
func (s *State) Clone() *State {
	c := *s
	c.Context = slices.Clone(s.Context)
	c.Labels = slices.Clone(s.Labels)
	c.Comments = slices.Clone(s.Comments)
	c.OctalPositions = slices.Clone(s.OctalPositions)
	return &c
}

// CurContext returns the top frame of the context stack.
func (s *State) CurContext() *Context {
	return &s.Context[len(s.Context)-1]
}

// CurPosition is the position of the cursor.
func (s *State) CurPosition() source.Position {
	return source.NewPosition(s.CurLine, s.Pos-s.LineStart, s.Pos)
}

// StartLoc and EndLoc are the current token boundaries.
func (s *State) StartLoc() source.Position { return s.Tok.Loc.Start }
func (s *State) EndLoc() source.Position   { return s.Tok.Loc.End }
