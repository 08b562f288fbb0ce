package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/token"
)

// parseClassExpression parses a class in expression position, starting at
// the `class` keyword.
func (p *Parser) parseClassExpression(m Marker) *ast.ClassExpression {
	c := &ast.ClassExpression{}
	p.parseClassParts(&c.Class, false)
	return Finish(p, c, "ClassExpression", m)
}

// parseClassDeclaration parses a class statement. The name is optional
// only after `export default`.
func (p *Parser) parseClassDeclaration(m Marker, optionalID bool) *ast.ClassDeclaration {
	c := &ast.ClassDeclaration{}
	p.parseClassParts(&c.Class, !optionalID)
	return Finish(p, c, "ClassDeclaration", m)
}

// parseClassParts parses everything from `class` to the closing brace. All
// parts of a class are strict code, so strictness is switched on before the
// token after `class` is read.
func (p *Parser) parseClassParts(c *ast.Class, requireID bool) {
	oldStrict := p.strict()
	p.state().Strict = true
	p.Expect(token.KwClass)
	if p.at(token.Name) {
		c.ID = p.parseIdent(false)
		p.checkLVal(c.ID, bindLexical)
	} else if requireID {
		p.unexpected()
	}
	if p.Eat(token.KwExtends) {
		c.SuperClass = p.parseExprSubscripts(nil)
	}
	c.Body = p.parseClassBody(c.SuperClass != nil, oldStrict)
}

// privateKinds tracks the private names a class body declares. Accessor
// pairs share a name when both halves agree on staticness.
type privateKinds map[string]string

func (pk privateKinds) declare(name, kind string, static bool) bool {
	if static {
		kind = "static " + kind
	}
	prev, ok := pk[name]
	if !ok {
		pk[name] = kind
		return true
	}
	pair := (prev == "get" && kind == "set") || (prev == "set" && kind == "get") ||
		(prev == "static get" && kind == "static set") || (prev == "static set" && kind == "static get")
	if pair {
		pk[name] = "accessor"
	}
	return pair
}

func (p *Parser) parseClassBody(derived, oldStrict bool) *ast.ClassBody {
	m := p.StartNode()
	p.Expect(token.LBrace)
	p.classDepth++
	body := &ast.ClassBody{Body: []ast.Node{}}
	hadCtor := false
	private := privateKinds{}
	for !p.at(token.RBrace) {
		if p.Eat(token.Semicolon) {
			continue
		}
		body.Body = append(body.Body, p.parseClassMember(derived, &hadCtor, private))
	}
	p.classDepth--
	p.state().Strict = oldStrict
	p.Expect(token.RBrace)
	return Finish(p, body, "ClassBody", m)
}

func (p *Parser) parseClassMember(derived bool, hadCtor *bool, private privateKinds) ast.Node {
	m := p.startStmt()
	static := false
	if p.isContextual("static") {
		next := p.lookahead().Tok
		if next.Kind == token.LBrace {
			p.Next()
			return p.parseStaticBlock(m)
		}
		if isPropertyNameStart(next) || next.Kind == token.Star {
			p.Next()
			static = true
		}
	}

	kind, async, generator := p.parseMethodModifiers()
	key, computed := p.parsePropertyName(true)
	pn, isPrivate := key.(*ast.PrivateName)
	name := ""
	if !computed {
		name = propertyKeyName(key)
	}
	if isPrivate {
		name = pn.ID.Name
		if name == "constructor" {
			p.raise(diag.SynInvalidPrivateName, pn.Start, "Classes may not have a private field named '#constructor'.")
		}
	}
	if static && !isPrivate && name == "prototype" {
		p.raise(diag.SynUnexpectedToken, key.Base().Start, "Classes may not have static property named prototype.")
	}

	if p.at(token.LParen) || kind != "method" || async || generator {
		isCtor := !static && !isPrivate && name == "constructor"
		if isCtor {
			if kind != "method" || async || generator {
				p.raise(diag.SynDuplicateConstructor, key.Base().Start, "Constructor can't be a special method.")
			}
			if *hadCtor {
				p.raise(diag.SynDuplicateConstructor, key.Base().Start, "Duplicate constructor in the same class.")
			}
			*hadCtor = true
			kind = "constructor"
		}
		fs := funcState{
			inFunction:     true,
			generator:      generator,
			async:          async,
			allowSuper:     true,
			allowSuperCall: isCtor && derived,
			allowNewTarget: true,
		}
		if isPrivate {
			if !private.declare(name, kind, static) {
				p.raise(diag.SynInvalidPrivateName, pn.Start, "Identifier '#%s' has already been declared.", name)
			}
			method := &ast.ClassPrivateMethod{Kind: kind, Key: pn, Static: static}
			p.parseFunctionRest(&method.Function, fs, true)
			p.checkAccessorParams(kind, method.Params, key)
			return Finish(p, method, "ClassPrivateMethod", m)
		}
		method := &ast.ClassMethod{Kind: kind, Key: key, Computed: computed, Static: static}
		p.parseFunctionRest(&method.Function, fs, true)
		p.checkAccessorParams(kind, method.Params, key)
		return Finish(p, method, "ClassMethod", m)
	}

	if !isPrivate && name == "constructor" {
		p.raise(diag.SynUnexpectedToken, key.Base().Start, "Classes may not have a field named 'constructor'.")
	}
	value := p.parseFieldInit()
	p.Semicolon()
	if isPrivate {
		if !private.declare(name, "field", static) {
			p.raise(diag.SynInvalidPrivateName, pn.Start, "Identifier '#%s' has already been declared.", name)
		}
		return Finish(p, &ast.ClassPrivateProperty{Key: pn, Value: value, Static: static}, "ClassPrivateProperty", m)
	}
	return Finish(p, &ast.ClassProperty{Key: key, Value: value, Computed: computed, Static: static}, "ClassProperty", m)
}

// parseFieldInit parses an optional `= value` of a class field. The
// initializer behaves like a method body: super properties and new.target
// are allowed, yield and await are not operators.
func (p *Parser) parseFieldInit() ast.Expression {
	if !p.Eat(token.Assign) {
		return nil
	}
	defer p.enterFunction(funcState{allowSuper: true, allowNewTarget: true})()
	return p.parseMaybeAssign(false, nil)
}

func (p *Parser) parseStaticBlock(m Marker) *ast.StaticBlock {
	restore := p.enterFunction(funcState{staticBlock: true, allowSuper: true, allowNewTarget: true})
	p.Expect(token.LBrace)
	blk := &ast.StaticBlock{Body: []ast.Statement{}}
	for !p.at(token.RBrace) {
		blk.Body = append(blk.Body, p.parseStatement(stmtContext{list: true}))
	}
	restore()
	p.Next()
	return Finish(p, blk, "StaticBlock", m)
}
