package parser

import (
	"esparse/internal/ast"
)

// takeLeading removes the pending comments that lie between the previous
// token and start. Comments before the previous token stay pending for the
// node that encloses both.
func (p *Parser) takeLeading(start int) []*ast.Comment {
	s := p.state()
	if len(s.Comments) == 0 {
		return nil
	}
	var lead, rest []*ast.Comment
	for _, c := range s.Comments {
		if c.End <= start && c.Start >= s.LastTokEnd {
			lead = append(lead, c)
		} else {
			rest = append(rest, c)
		}
	}
	s.Comments = rest
	return lead
}

// attachComments resolves pending comments against a node that was just
// finished. Comments inside its span become inner comments; for
// statement-level nodes, comments after it on the line where it ends become
// trailing comments. A comment attaches to exactly one node.
func (p *Parser) attachComments(b *ast.NodeBase, m Marker) {
	if len(m.leading) > 0 {
		b.LeadingComments = append(b.LeadingComments, m.leading...)
	}
	s := p.state()
	if len(s.Comments) == 0 {
		return
	}
	var rest []*ast.Comment
	for _, c := range s.Comments {
		switch {
		case c.Start >= b.Start && c.End <= b.End:
			b.InnerComments = append(b.InnerComments, c)
		case m.stmt && c.Start >= b.End && c.Loc.Start.Line == b.Loc.End.Line:
			b.TrailingComments = append(b.TrailingComments, c)
		default:
			rest = append(rest, c)
		}
	}
	s.Comments = rest
}
