package diag

import (
	"fmt"

	"esparse/internal/source"
)

// ErrorKind discriminates lexical from syntax errors.
type ErrorKind uint8

const (
	KindLexical ErrorKind = iota + 1
	KindSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "LexicalError"
	case KindSyntax:
		return "SyntaxError"
	}
	return "Error"
}

// Error is the failure returned by the parse facade. Pos is the absolute
// byte offset; Line is 1-based and Column 0-based, like source.Position.
type Error struct {
	Kind    ErrorKind
	Code    Code
	Message string
	Pos     int
	Line    int
	Column  int
}

// NewError builds an Error at pos. The kind follows the code range.
func NewError(code Code, pos source.Position, msg string) *Error {
	kind := KindSyntax
	if code.IsLexical() {
		kind = KindLexical
	}
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: msg,
		Pos:     pos.Index,
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d:%d)", e.Kind, e.Message, e.Line, e.Column)
}

// Position returns the error location.
func (e *Error) Position() source.Position {
	return source.Position{Line: e.Line, Column: e.Column, Index: e.Pos}
}

// Diagnostic converts e into a single-point error diagnostic inside f.
func (e *Error) Diagnostic(f *source.File) Diagnostic {
	end := e.Pos
	if end < len(f.Content) {
		end++
	}
	return NewDiagnostic(SevError, e.Code, f.SpanOf(e.Pos, end), e.Message)
}
