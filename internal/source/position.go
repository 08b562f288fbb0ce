package source

import "fmt"

// Position is a point in the input: 1-based line, 0-based column counted in
// bytes from the start of the line, and the absolute byte offset.
type Position struct {
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column" msgpack:"column"`
	Index  int `json:"index" msgpack:"index"`
}

// NewPosition builds a Position. Positions are values and never mutated.
func NewPosition(line, column, index int) Position {
	return Position{Line: line, Column: column, Index: index}
}

// WithColumnOffset returns the position shifted by n bytes on the same line.
func (p Position) WithColumnOffset(n int) Position {
	return Position{Line: p.Line, Column: p.Column + n, Index: p.Index + n}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is the start/end pair attached to tokens, nodes and comments.
// IdentifierName is set only on Identifier nodes.
type Location struct {
	Start          Position `json:"start" msgpack:"start"`
	End            Position `json:"end" msgpack:"end"`
	IdentifierName string   `json:"identifierName,omitempty" msgpack:"identifierName,omitempty"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}
