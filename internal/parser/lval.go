package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/token"
)

// bindKind says what an assignment target declares.
type bindKind uint8

const (
	bindNone bindKind = iota
	bindVar
	bindLexical
	bindParam
)

// toAssignable reinterprets an expression that turned out to be the left
// side of `=` (or arrow parameters) as a pattern.
func (p *Parser) toAssignable(n ast.Node) ast.Pattern {
	if p.extras.Parenthesized(n) {
		switch n.(type) {
		case *ast.Identifier, *ast.MemberExpression:
		default:
			p.raise(diag.SynInvalidLHS, n.Base().Start, "Invalid parenthesized assignment pattern.")
		}
	}
	switch n := n.(type) {
	case *ast.Identifier:
		return n
	case *ast.MemberExpression:
		return n
	case *ast.AssignmentPattern, *ast.ObjectPattern, *ast.ArrayPattern, *ast.RestElement:
		return n.(ast.Pattern)
	case *ast.ObjectExpression:
		pat := &ast.ObjectPattern{NodeBase: n.NodeBase, Properties: make([]ast.Node, 0, len(n.Properties))}
		pat.Type = "ObjectPattern"
		for i, prop := range n.Properties {
			switch prop := prop.(type) {
			case *ast.ObjectProperty:
				prop.Value = p.toAssignable(prop.Value)
				pat.Properties = append(pat.Properties, prop)
			case *ast.SpreadElement:
				if i != len(n.Properties)-1 || p.trailingComma(n) > 0 {
					p.raise(diag.SynInvalidLHS, prop.Start, "Rest element must be last element.")
				}
				arg := p.toAssignable(prop.Argument)
				switch arg.(type) {
				case *ast.Identifier, *ast.MemberExpression:
				default:
					p.raise(diag.SynInvalidLHS, arg.Base().Start, "`...` must be followed by an assignable reference in assignment contexts.")
				}
				pat.Properties = append(pat.Properties, p.toRest(prop, arg))
			case *ast.ObjectMethod:
				p.raise(diag.SynInvalidLHS, prop.Key.Base().Start, "Object pattern can't contain getter or setter.")
			default:
				p.raise(diag.SynInvalidLHS, prop.Base().Start, "Invalid left-hand side in object destructuring pattern.")
			}
		}
		p.extras.Move(n, pat)
		return pat
	case *ast.ArrayExpression:
		pat := &ast.ArrayPattern{NodeBase: n.NodeBase, Elements: make([]ast.Pattern, len(n.Elements))}
		pat.Type = "ArrayPattern"
		for i, el := range n.Elements {
			if el == nil {
				continue
			}
			if spread, ok := el.(*ast.SpreadElement); ok {
				if i != len(n.Elements)-1 || p.trailingComma(n) > 0 {
					p.raise(diag.SynInvalidLHS, spread.Start, "Rest element must be last element.")
				}
				arg := p.toAssignable(spread.Argument)
				if _, def := arg.(*ast.AssignmentPattern); def {
					p.raise(diag.SynInvalidLHS, arg.Base().Start, "Rest elements cannot have a default value.")
				}
				pat.Elements[i] = p.toRest(spread, arg)
				continue
			}
			pat.Elements[i] = p.toAssignable(el)
		}
		p.extras.Move(n, pat)
		return pat
	case *ast.AssignmentExpression:
		if n.Operator != "=" {
			p.raise(diag.SynInvalidLHS, n.Left.Base().End, "Only '=' operator can be used for specifying default value.")
		}
		pat := &ast.AssignmentPattern{NodeBase: n.NodeBase, Left: n.Left, Right: n.Right}
		pat.Type = "AssignmentPattern"
		p.extras.Move(n, pat)
		return pat
	}
	p.raise(diag.SynInvalidLHS, n.Base().Start, "Invalid left-hand side in assignment expression.")
	return nil
}

func (p *Parser) toRest(spread *ast.SpreadElement, arg ast.Pattern) *ast.RestElement {
	rest := &ast.RestElement{NodeBase: spread.NodeBase, Argument: arg}
	rest.Type = "RestElement"
	return rest
}

func (p *Parser) trailingComma(n ast.Node) int {
	if x := p.extras.Get(n); x != nil {
		return x.TrailingComma
	}
	return 0
}

// toParams converts call arguments into the parameters of an async arrow.
func (p *Parser) toParams(args []ast.Expression, trailing int) []ast.Pattern {
	params := make([]ast.Pattern, 0, len(args))
	for i, arg := range args {
		if spread, ok := arg.(*ast.SpreadElement); ok {
			if i != len(args)-1 || trailing > 0 {
				p.raise(diag.SynInvalidParameters, spread.Start, "Rest element must be last element.")
			}
			params = append(params, p.toRest(spread, p.toAssignable(spread.Argument)))
			continue
		}
		params = append(params, p.toAssignable(arg))
	}
	for _, prm := range params {
		p.checkLVal(prm, bindParam)
	}
	return params
}

// checkLVal verifies that every leaf of a pattern may be assigned or bound.
func (p *Parser) checkLVal(n ast.Node, kind bindKind) {
	switch n := n.(type) {
	case *ast.Identifier:
		if p.strict() && (n.Name == "eval" || n.Name == "arguments") {
			p.raise(diag.SynStrictEvalArguments, n.Start, "Assigning to '%s' in strict mode.", n.Name)
		}
		if kind == bindLexical && n.Name == "let" {
			p.raise(diag.SynReservedWord, n.Start, "'let' is not allowed to be used as a name in 'let' or 'const' declarations.")
		}
	case *ast.MemberExpression:
		if kind != bindNone {
			p.raise(diag.SynInvalidLHS, n.Start, "Binding member expression.")
		}
	case *ast.ObjectPattern:
		for _, prop := range n.Properties {
			switch prop := prop.(type) {
			case *ast.ObjectProperty:
				p.checkLVal(prop.Value, kind)
			default:
				p.checkLVal(prop, kind)
			}
		}
	case *ast.ArrayPattern:
		for _, el := range n.Elements {
			if el != nil {
				p.checkLVal(el, kind)
			}
		}
	case *ast.AssignmentPattern:
		p.checkLVal(n.Left, kind)
	case *ast.RestElement:
		p.checkLVal(n.Argument, kind)
	default:
		p.raise(diag.SynInvalidLHS, n.Base().Start, "Invalid left-hand side.")
	}
}

// checkSimpleTarget accepts only identifiers and member expressions, the
// targets of compound assignment and update operators.
func (p *Parser) checkSimpleTarget(n ast.Expression, what string) ast.Pattern {
	switch n := n.(type) {
	case *ast.Identifier:
		p.checkLVal(n, bindNone)
		return n
	case *ast.MemberExpression:
		return n
	}
	p.raise(diag.SynInvalidLHS, n.Base().Start, "Invalid left-hand side in %s.", what)
	return nil
}

func (p *Parser) parseBindingAtom() ast.Pattern {
	switch {
	case p.at(token.LBracket):
		m := p.StartNode()
		p.Next()
		elts := p.parseBindingList(token.RBracket, true, true)
		return Finish(p, &ast.ArrayPattern{Elements: elts}, "ArrayPattern", m)
	case p.at(token.LBrace):
		return p.parseObjectPattern()
	}
	return p.parseIdent(false)
}

// parseBindingList parses comma separated binding elements up to close. A
// rest element must come last and cannot be followed by a comma.
func (p *Parser) parseBindingList(close token.Kind, allowEmpty, allowTrailingComma bool) []ast.Pattern {
	elts := []ast.Pattern{}
	for first := true; !p.Eat(close); first = false {
		if !first {
			p.Expect(token.Comma)
		}
		if allowEmpty && p.at(token.Comma) {
			elts = append(elts, nil)
			continue
		}
		if !first && allowTrailingComma && p.Eat(close) {
			break
		}
		if p.at(token.Ellipsis) {
			elts = append(elts, p.parseBindingRest())
			if p.at(token.Comma) {
				p.raise(diag.SynInvalidParameters, p.tok().Start, "Comma is not permitted after the rest element.")
			}
			p.Expect(close)
			break
		}
		elts = append(elts, p.parseMaybeDefault(p.StartNode(), nil))
	}
	return elts
}

func (p *Parser) parseBindingRest() *ast.RestElement {
	m := p.StartNode()
	p.Next()
	arg := p.parseBindingAtom()
	return Finish(p, &ast.RestElement{Argument: arg}, "RestElement", m)
}

// parseMaybeDefault parses an optional `= default` after a binding. left is
// parsed here when nil.
func (p *Parser) parseMaybeDefault(m Marker, left ast.Pattern) ast.Pattern {
	if left == nil {
		left = p.parseBindingAtom()
	}
	if !p.Eat(token.Assign) {
		return left
	}
	right := p.parseMaybeAssign(false, nil)
	return Finish(p, &ast.AssignmentPattern{Left: left, Right: right}, "AssignmentPattern", m)
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	m := p.StartNode()
	p.Next()
	pat := &ast.ObjectPattern{Properties: []ast.Node{}}
	for first := true; !p.Eat(token.RBrace); first = false {
		if !first {
			p.Expect(token.Comma)
			if p.Eat(token.RBrace) {
				break
			}
		}
		if p.at(token.Ellipsis) {
			rm := p.StartNode()
			p.Next()
			arg := p.parseIdent(false)
			pat.Properties = append(pat.Properties, Finish(p, &ast.RestElement{Argument: arg}, "RestElement", rm))
			if p.at(token.Comma) {
				p.raise(diag.SynInvalidLHS, p.tok().Start, "Comma is not permitted after the rest element.")
			}
			p.Expect(token.RBrace)
			break
		}
		pm := p.StartNode()
		keyTok, keyEsc := p.tok(), p.state().ContainsEsc
		key, computed := p.parsePropertyName(false)
		if p.Eat(token.Colon) {
			value := p.parseMaybeDefault(p.StartNode(), nil)
			pat.Properties = append(pat.Properties, Finish(p, &ast.ObjectProperty{Key: key, Value: value, Computed: computed}, "ObjectProperty", pm))
			continue
		}
		id, ok := key.(*ast.Identifier)
		if computed || !ok || keyTok.Kind != token.Name {
			p.unexpected(token.Colon)
		}
		p.checkIdentifier(id.Name, id.Start, keyEsc)
		value := p.parseMaybeDefault(startAt(id), cloneIdent(id))
		pat.Properties = append(pat.Properties, Finish(p, &ast.ObjectProperty{Key: key, Value: value, Shorthand: true}, "ObjectProperty", pm))
	}
	return Finish(p, pat, "ObjectPattern", m)
}
