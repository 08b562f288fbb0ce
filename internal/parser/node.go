package parser

import (
	"esparse/internal/ast"
	"esparse/internal/source"
)

// Marker records where a node starts. Statement-level markers also carry
// the comments that lead the node.
type Marker struct {
	Start int
	Loc   source.Position

	leading []*ast.Comment
	stmt    bool
}

// StartNode marks the start of the current token.
func (p *Parser) StartNode() Marker {
	t := p.tok()
	return Marker{Start: t.Start, Loc: t.Loc.Start}
}

// startStmt marks a statement-level node and takes the pending comments
// before it as its leading comments.
func (p *Parser) startStmt() Marker {
	m := p.StartNode()
	m.stmt = true
	m.leading = p.takeLeading(m.Start)
	return m
}

// startAt marks the start of an already built node.
func startAt(n ast.Node) Marker {
	b := n.Base()
	return Marker{Start: b.Start, Loc: b.Loc.Start}
}

// Finish stamps typ and the end of the last consumed token onto n.
func Finish[N ast.Node](p *Parser, n N, typ string, m Marker) N {
	s := p.state()
	return FinishAt(p, n, typ, m, s.LastTokEnd, s.LastTokEndLoc)
}

// FinishAt is Finish with an explicit end.
func FinishAt[N ast.Node](p *Parser, n N, typ string, m Marker, end int, endLoc source.Position) N {
	b := n.Base()
	b.Type = typ
	b.Start = m.Start
	b.Loc.Start = m.Loc
	b.End = end
	b.Loc.End = endLoc
	if id, ok := any(n).(*ast.Identifier); ok {
		b.Loc.IdentifierName = id.Name
	}
	p.attachComments(b, m)
	return n
}
