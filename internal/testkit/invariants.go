package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"esparse/internal/ast"
	"esparse/internal/source"
)

// CheckSpanInvariants runs structural checks on a parsed file:
//  1. the File node spans the whole source;
//  2. every node has Start <= End and lies within its parent;
//  3. siblings appear in source order;
//  4. Loc agrees with the byte offsets;
//  5. each comment is attached at most once and sits before, inside or after
//     its owner as its role says.
func CheckSpanInvariants(tree *ast.File, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	n, err := safecast.Conv[int](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if tree.Start != 0 || tree.End != n {
		return fmt.Errorf("file span [%d,%d) does not cover content of %d bytes", tree.Start, tree.End, n)
	}

	c := checker{sf: sf, seen: make(map[*ast.Comment]ast.Node)}
	c.node(tree, tree.Start, tree.End)
	return c.err
}

type checker struct {
	sf   *source.File
	seen map[*ast.Comment]ast.Node
	err  error
}

func (c *checker) fail(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf(format, args...)
	}
}

func (c *checker) node(n ast.Node, lo, hi int) {
	if c.err != nil {
		return
	}
	b := n.Base()
	switch {
	case b.Start > b.End:
		c.fail("%s has inverted span [%d,%d)", b.Type, b.Start, b.End)
		return
	case b.Start < lo || b.End > hi:
		c.fail("%s [%d,%d) escapes its parent [%d,%d)", b.Type, b.Start, b.End, lo, hi)
		return
	}
	if want := c.sf.Position(b.Start); b.Loc.Start != want {
		c.fail("%s start loc %v, offset %d is at %v", b.Type, b.Loc.Start, b.Start, want)
		return
	}
	if want := c.sf.Position(b.End); b.Loc.End != want {
		c.fail("%s end loc %v, offset %d is at %v", b.Type, b.Loc.End, b.End, want)
		return
	}
	c.comments(n, b)

	prev := b.Start
	for _, child := range ast.Children(n) {
		cb := child.Base()
		if cb.Start < prev {
			c.fail("%s child %s at %d precedes its sibling at %d", b.Type, cb.Type, cb.Start, prev)
			return
		}
		prev = cb.Start
		c.node(child, b.Start, b.End)
	}
}

func (c *checker) comments(n ast.Node, b *ast.NodeBase) {
	check := func(role string, list []*ast.Comment, ok func(*ast.Comment) bool) {
		for _, cm := range list {
			if owner, dup := c.seen[cm]; dup {
				c.fail("comment at %d attached to both %s and %s", cm.Start, owner.Base().Type, b.Type)
				return
			}
			c.seen[cm] = n
			if !ok(cm) {
				c.fail("%s comment [%d,%d) misplaced for %s [%d,%d)", role, cm.Start, cm.End, b.Type, b.Start, b.End)
				return
			}
		}
	}
	check("leading", b.LeadingComments, func(cm *ast.Comment) bool { return cm.End <= b.Start })
	check("inner", b.InnerComments, func(cm *ast.Comment) bool { return cm.Start >= b.Start && cm.End <= b.End })
	check("trailing", b.TrailingComments, func(cm *ast.Comment) bool { return cm.Start >= b.End })
}
