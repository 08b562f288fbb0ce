package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/token"
)

func (p *Parser) parseExprAtom(refs *destructErrs) ast.Expression {
	if e := p.extensionAtom(); e != nil {
		return e
	}
	t := p.tok()
	canBeArrow := p.potentialArrowAt == t.Start
	switch t.Kind {
	case token.KwSuper:
		return p.parseSuper()
	case token.KwThis:
		m := p.StartNode()
		p.Next()
		return Finish(p, &ast.ThisExpression{}, "ThisExpression", m)
	case token.Name:
		return p.parseIdentAtom(canBeArrow)
	case token.Num, token.String, token.BigInt, token.Regexp:
		return p.parseLiteral()
	case token.KwNull:
		m := p.StartNode()
		p.Next()
		return Finish(p, &ast.NullLiteral{}, "NullLiteral", m)
	case token.KwTrue, token.KwFalse:
		m := p.StartNode()
		p.Next()
		return Finish(p, &ast.BooleanLiteral{Value: t.Kind == token.KwTrue}, "BooleanLiteral", m)
	case token.LParen:
		return p.parseParenAndDistinguish(canBeArrow)
	case token.LBracket:
		return p.parseArrayLiteral(refs)
	case token.LBrace:
		return p.parseObjectLiteral(refs)
	case token.KwFunction:
		m := p.StartNode()
		p.Next()
		return p.parseFunctionExpression(m, false)
	case token.KwClass:
		return p.parseClassExpression(p.StartNode())
	case token.KwNew:
		return p.parseNew()
	case token.TemplateNonTail, token.TemplateTail:
		return p.parseTemplate()
	case token.KwImport:
		return p.parseImportMeta()
	case token.PrivateName:
		pn := p.parsePrivateName()
		if !p.at(token.KwIn) {
			p.raise(diag.SynInvalidPrivateName, pn.Start, "Private names are only allowed in property accesses (`obj.#x`) or in `in` expressions (`#x in obj`).")
		}
		return pn
	case token.Slash, token.DivAssign:
		if err := p.lx.RescanRegexp(); err != nil {
			p.fail(err)
		}
		return p.parseLiteral()
	}
	p.unexpected()
	return nil
}

func (p *Parser) parseSuper() ast.Expression {
	m := p.StartNode()
	p.Next()
	switch {
	case p.at(token.LParen):
		if !p.fn.allowSuperCall {
			p.raise(diag.SynInvalidSuper, m.Start, "super() is only valid inside a class constructor of a subclass.")
		}
	case p.at(token.Dot) || p.at(token.LBracket):
		if !p.fn.allowSuper {
			p.raise(diag.SynInvalidSuper, m.Start, "'super' is only allowed in object methods and classes.")
		}
	default:
		p.raise(diag.SynInvalidSuper, m.Start, "'super' can only be used with function calls (i.e. super()) or in property accesses (i.e. super.prop or super[prop]).")
	}
	return Finish(p, &ast.Super{}, "Super", m)
}

// parseIdentAtom parses an identifier reference, an `async function`
// expression or the head of an arrow with a single unparenthesized
// parameter.
func (p *Parser) parseIdentAtom(canBeArrow bool) ast.Expression {
	m := p.StartNode()
	escaped := p.state().ContainsEsc
	id := p.parseIdent(false)
	isAsync := id.Name == "async" && !escaped
	if isAsync && p.at(token.KwFunction) && !p.CanInsertSemicolon() {
		p.Next()
		return p.parseFunctionExpression(m, true)
	}
	if !canBeArrow {
		return id
	}
	if p.at(token.Arrow) {
		if p.state().HadLineBreak {
			p.raise(diag.SynArrowLineBreak, p.tok().Start, "Line terminator not permitted before arrow.")
		}
		return p.parseArrowExpression(m, []ast.Pattern{id}, false)
	}
	if isAsync && p.at(token.Name) && !p.CanInsertSemicolon() {
		param := p.parseIdent(false)
		if !p.at(token.Arrow) || p.CanInsertSemicolon() {
			p.unexpected(token.Arrow)
		}
		params := []ast.Pattern{param}
		p.checkAsyncParams(params)
		return p.parseArrowExpression(m, params, true)
	}
	return id
}

// parseIdent parses an identifier. liberal accepts reserved words, as in
// property names.
func (p *Parser) parseIdent(liberal bool) *ast.Identifier {
	m := p.StartNode()
	t := p.tok()
	switch {
	case t.Kind == token.Name:
		if !liberal {
			p.checkIdentifier(t.Text(), t.Start, p.state().ContainsEsc)
		}
	case liberal && t.Kind.IsKeyword():
	default:
		p.unexpected()
	}
	p.Next()
	return Finish(p, &ast.Identifier{Name: t.Text()}, "Identifier", m)
}

// checkIdentifier rejects names that cannot be identifier references or
// bindings in the current context.
func (p *Parser) checkIdentifier(name string, off int, escaped bool) {
	if escaped && token.IsReservedWord(name) {
		p.raise(diag.SynEscapedKeyword, off, "Escape sequence in keyword %s.", name)
	}
	switch name {
	case "enum":
		p.raise(diag.SynReservedWord, off, "Unexpected reserved word 'enum'.")
	case "yield":
		if p.fn.generator {
			p.raise(diag.SynReservedWord, off, "Can not use 'yield' as identifier inside a generator.")
		}
	case "await":
		if p.fn.async || p.fn.staticBlock || p.opts.module() {
			p.raise(diag.SynReservedWord, off, "Can not use 'await' as identifier inside an async function.")
		}
	}
	if p.strict() && token.IsStrictReserved(name) {
		p.raise(diag.SynReservedWord, off, "Unexpected reserved word '%s'.", name)
	}
}

func (p *Parser) parsePrivateName() *ast.PrivateName {
	t := p.tok()
	if p.classDepth == 0 {
		p.raise(diag.SynInvalidPrivateName, t.Start, "Private name #%s is not defined.", t.Text())
	}
	m := p.StartNode()
	p.Next()
	id := FinishAt(p, &ast.Identifier{Name: t.Text()}, "Identifier",
		Marker{Start: t.Start + 1, Loc: t.Loc.Start.WithColumnOffset(1)}, t.End, t.Loc.End)
	return Finish(p, &ast.PrivateName{ID: id}, "PrivateName", m)
}

// parseLiteral parses a numeric, string, bigint or regular expression
// literal and records its raw text.
func (p *Parser) parseLiteral() ast.Expression {
	t := p.tok()
	m := p.StartNode()
	raw := p.lx.Source()[t.Start:t.End]
	p.Next()
	var n ast.Expression
	switch t.Kind {
	case token.Num:
		n = Finish(p, &ast.NumericLiteral{Value: t.Value.(float64)}, "NumericLiteral", m)
	case token.String:
		n = Finish(p, &ast.StringLiteral{Value: t.Text()}, "StringLiteral", m)
	case token.BigInt:
		n = Finish(p, &ast.BigIntLiteral{Value: t.Text()}, "BigIntLiteral", m)
	case token.Regexp:
		v := t.Value.(token.RegExpValue)
		n = Finish(p, &ast.RegExpLiteral{Pattern: v.Pattern, Flags: v.Flags}, "RegExpLiteral", m)
	default:
		p.unexpectedAt(t)
	}
	x := p.extras.Ensure(n)
	x.Raw = raw
	x.RawValue = t.Value
	return n
}

func (p *Parser) parseStringLiteral() *ast.StringLiteral {
	if !p.at(token.String) {
		p.unexpected(token.String)
	}
	return p.parseLiteral().(*ast.StringLiteral)
}

// parseTemplate parses a template literal. Each chunk token includes its
// delimiters; the element spans exclude them.
func (p *Parser) parseTemplate() *ast.TemplateLiteral {
	m := p.StartNode()
	lit := &ast.TemplateLiteral{Quasis: []*ast.TemplateElement{}, Expressions: []ast.Expression{}}
	for {
		t := p.tok()
		if t.Kind != token.TemplateNonTail && t.Kind != token.TemplateTail {
			p.unexpected(token.RBrace)
		}
		p.Next()
		lit.Quasis = append(lit.Quasis, p.templateElement(t))
		if t.Kind == token.TemplateTail {
			break
		}
		lit.Expressions = append(lit.Expressions, p.ParseExpression())
		if cur := p.tok(); cur.Start >= len(p.lx.Source()) || p.lx.Source()[cur.Start] != '}' {
			p.unexpected(token.RBrace)
		}
	}
	return Finish(p, lit, "TemplateLiteral", m)
}

func (p *Parser) templateElement(t token.Token) *ast.TemplateElement {
	v := t.Value.(token.TemplateValue)
	trim := 1
	if t.Kind == token.TemplateNonTail {
		trim = 2
	}
	el := &ast.TemplateElement{
		Value: ast.TemplateElementValue{Raw: v.Raw, Cooked: v.Cooked},
		Tail:  t.Kind == token.TemplateTail,
	}
	start := Marker{Start: t.Start + 1, Loc: t.Loc.Start.WithColumnOffset(1)}
	return FinishAt(p, el, "TemplateElement", start, t.End-trim, t.Loc.End.WithColumnOffset(-trim))
}

func (p *Parser) parseNew() ast.Expression {
	m := p.StartNode()
	kw := p.tok()
	p.Next()
	if p.Eat(token.Dot) {
		meta := FinishAt(p, &ast.Identifier{Name: "new"}, "Identifier", m, kw.End, kw.Loc.End)
		escaped := p.state().ContainsEsc
		prop := p.parseIdent(true)
		if prop.Name != "target" || escaped {
			p.raise(diag.SynInvalidNewTarget, prop.Start, "The only valid meta property for new is new.target.")
		}
		if !p.fn.allowNewTarget {
			p.raise(diag.SynInvalidNewTarget, m.Start, "new.target can only be used in functions or class properties.")
		}
		return Finish(p, &ast.MetaProperty{Meta: meta, Property: prop}, "MetaProperty", m)
	}
	if p.at(token.KwImport) {
		p.raise(diag.SynUnexpectedToken, p.tok().Start, "Cannot use new with import(...).")
	}
	cm := p.StartNode()
	callee := p.parseSubscripts(p.parseExprAtom(nil), cm, true)
	node := &ast.NewExpression{Callee: callee, Arguments: []ast.Expression{}}
	trailing := 0
	if p.Eat(token.LParen) {
		node.Arguments, trailing = p.parseExprList(token.RParen, false, nil)
	}
	n := Finish(p, node, "NewExpression", m)
	p.noteTrailingComma(n, trailing)
	return n
}

// parseImportMeta parses `import.meta` or the callee of `import(...)`.
func (p *Parser) parseImportMeta() ast.Expression {
	m := p.StartNode()
	kw := p.tok()
	p.Next()
	if p.Eat(token.Dot) {
		meta := FinishAt(p, &ast.Identifier{Name: "import"}, "Identifier", m, kw.End, kw.Loc.End)
		prop := p.parseIdent(true)
		if prop.Name != "meta" {
			p.raise(diag.SynUnexpectedToken, prop.Start, "The only valid meta property for import is import.meta.")
		}
		if !p.opts.module() {
			p.raise(diag.SynModuleOnly, m.Start, "import.meta may appear only with 'sourceType: \"module\"'.")
		}
		return Finish(p, &ast.MetaProperty{Meta: meta, Property: prop}, "MetaProperty", m)
	}
	if !p.at(token.LParen) {
		p.unexpected(token.LParen)
	}
	return Finish(p, &ast.Import{}, "Import", m)
}

// parseParenAndDistinguish parses either a parenthesized expression or the
// parameter list of an arrow function. When an arrow is possible the
// parameter list is tried first on a cloned state.
func (p *Parser) parseParenAndDistinguish(canBeArrow bool) ast.Expression {
	m := p.StartNode()
	if canBeArrow && !p.noArrowAt[m.Start] {
		var params []ast.Pattern
		lineBreak := false
		err := p.tryParse(func() {
			params = p.parseArrowParams()
			if !p.at(token.Arrow) {
				p.unexpected(token.Arrow)
			}
			lineBreak = p.state().HadLineBreak
		})
		if err == nil {
			if lineBreak {
				p.raise(diag.SynArrowLineBreak, p.tok().Start, "Line terminator not permitted before arrow.")
			}
			return p.parseArrowExpression(m, params, false)
		}
		p.noArrowAt[m.Start] = true
	}
	p.Expect(token.LParen)
	expr := p.ParseExpression()
	p.Expect(token.RParen)
	x := p.extras.Ensure(expr)
	x.Parenthesized = true
	x.ParenStart = m.Start
	return expr
}

func (p *Parser) parseArrayLiteral(refs *destructErrs) ast.Expression {
	m := p.StartNode()
	p.Next()
	elts, trailing := p.parseExprList(token.RBracket, true, refs)
	arr := Finish(p, &ast.ArrayExpression{Elements: elts}, "ArrayExpression", m)
	p.noteTrailingComma(arr, trailing)
	return arr
}

func (p *Parser) parseObjectLiteral(refs *destructErrs) ast.Expression {
	m := p.StartNode()
	p.Next()
	obj := &ast.ObjectExpression{Properties: []ast.Node{}}
	trailing := 0
	hasProto := false
	for first := true; !p.Eat(token.RBrace); first = false {
		if !first {
			p.Expect(token.Comma)
			if p.at(token.RBrace) {
				trailing = p.state().LastTokStart
				p.Next()
				break
			}
		}
		obj.Properties = append(obj.Properties, p.parseObjectMember(refs, &hasProto))
	}
	n := Finish(p, obj, "ObjectExpression", m)
	p.noteTrailingComma(n, trailing)
	return n
}

func (p *Parser) parseObjectMember(refs *destructErrs, hasProto *bool) ast.Node {
	m := p.startStmt()
	if p.at(token.Ellipsis) {
		p.Next()
		arg := p.parseMaybeAssign(false, refs)
		return Finish(p, &ast.SpreadElement{Argument: arg}, "SpreadElement", m)
	}
	kind, async, generator := p.parseMethodModifiers()
	keyTok, keyEsc := p.tok(), p.state().ContainsEsc
	key, computed := p.parsePropertyName(false)

	if async || generator || kind != "method" || p.at(token.LParen) {
		method := &ast.ObjectMethod{Kind: kind, Key: key, Computed: computed, Method: kind == "method"}
		fs := funcState{inFunction: true, generator: generator, async: async, allowSuper: true, allowNewTarget: true}
		p.parseFunctionRest(&method.Function, fs, true)
		p.checkAccessorParams(kind, method.Params, key)
		return Finish(p, method, "ObjectMethod", m)
	}

	if p.Eat(token.Colon) {
		value := p.parseMaybeAssign(false, refs)
		if !computed && isProtoKey(key) {
			if *hasProto {
				if refs == nil {
					p.raise(diag.SynDuplicateProto, key.Base().Start, "Redefinition of __proto__ property.")
				}
				if refs.doubleProto < 0 {
					refs.doubleProto = key.Base().Start
				}
			}
			*hasProto = true
		}
		return Finish(p, &ast.ObjectProperty{Key: key, Value: value, Computed: computed}, "ObjectProperty", m)
	}

	id, ok := key.(*ast.Identifier)
	if computed || !ok || keyTok.Kind != token.Name {
		p.unexpected()
	}
	p.checkIdentifier(id.Name, id.Start, keyEsc)
	var value ast.Node = cloneIdent(id)
	if p.at(token.Assign) {
		if refs == nil {
			p.raise(diag.SynInvalidCoverInit, p.tok().Start, "Invalid shorthand property initializer.")
		}
		if refs.shorthandAssign < 0 {
			refs.shorthandAssign = p.tok().Start
		}
		p.Next()
		right := p.parseMaybeAssign(false, nil)
		value = Finish(p, &ast.AssignmentPattern{Left: value.(*ast.Identifier), Right: right}, "AssignmentPattern", startAt(id))
	}
	return Finish(p, &ast.ObjectProperty{Key: key, Value: value, Shorthand: true}, "ObjectProperty", m)
}

// parseMethodModifiers consumes `async`, `get`, `set` and `*` when they
// prefix a method name rather than being the name.
func (p *Parser) parseMethodModifiers() (kind string, async, generator bool) {
	kind = "method"
	if p.Eat(token.Star) {
		return kind, false, true
	}
	word := ""
	for _, w := range []string{"async", "get", "set"} {
		if p.isContextual(w) {
			word = w
		}
	}
	if word == "" {
		return kind, false, false
	}
	next := p.lookahead()
	if !isPropertyNameStart(next.Tok) && !(word == "async" && next.Tok.Kind == token.Star) {
		return kind, false, false
	}
	if word == "async" {
		if next.HadLineBreak {
			return kind, false, false
		}
		p.Next()
		return kind, true, p.Eat(token.Star)
	}
	p.Next()
	return word, false, false
}

func isPropertyNameStart(t token.Token) bool {
	switch t.Kind {
	case token.Name, token.String, token.Num, token.BigInt, token.LBracket, token.PrivateName:
		return true
	}
	return t.Kind.IsKeyword()
}

// parsePropertyName parses a literal, identifier, computed or (in classes)
// private key.
func (p *Parser) parsePropertyName(allowPrivate bool) (ast.Expression, bool) {
	if p.Eat(token.LBracket) {
		key := p.parseMaybeAssign(false, nil)
		p.Expect(token.RBracket)
		return key, true
	}
	switch t := p.tok(); {
	case t.Kind == token.Num || t.Kind == token.String || t.Kind == token.BigInt:
		return p.parseLiteral(), false
	case t.Kind == token.PrivateName && allowPrivate:
		return p.parsePrivateName(), false
	case t.Kind == token.Name || t.Kind.IsKeyword():
		return p.parseIdent(true), false
	}
	p.unexpected()
	return nil, false
}

func isProtoKey(key ast.Expression) bool {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name == "__proto__"
	case *ast.StringLiteral:
		return k.Value == "__proto__"
	}
	return false
}

// propertyKeyName returns the static name of a non-computed key.
func propertyKeyName(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name
	case *ast.StringLiteral:
		return k.Value
	}
	return ""
}

// cloneIdent copies id without its comments. Shorthand properties and
// specifiers reference the same source text twice and need distinct nodes.
func cloneIdent(id *ast.Identifier) *ast.Identifier {
	c := *id
	c.LeadingComments, c.TrailingComments, c.InnerComments = nil, nil, nil
	return &c
}
