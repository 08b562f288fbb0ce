package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/token"
)

// enterFunction installs fs and an empty label set for a function body and
// returns the function that restores the enclosing context.
func (p *Parser) enterFunction(fs funcState) func() {
	old := p.fn
	labels := p.state().Labels
	p.fn = fs
	p.state().Labels = nil
	return func() {
		p.fn = old
		p.state().Labels = labels
	}
}

// parseFunctionExpression parses what follows the `function` keyword.
func (p *Parser) parseFunctionExpression(m Marker, async bool) *ast.FunctionExpression {
	fn := &ast.FunctionExpression{}
	p.parseFunctionHead(&fn.Function, async, false)
	return Finish(p, fn, "FunctionExpression", m)
}

// parseFunctionDeclaration parses what follows the `function` keyword of a
// declaration. The name is optional only after `export default`.
func (p *Parser) parseFunctionDeclaration(m Marker, async, optionalID bool) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{}
	p.parseFunctionHead(&fn.Function, async, !optionalID)
	return Finish(p, fn, "FunctionDeclaration", m)
}

func (p *Parser) parseFunctionHead(fn *ast.Function, async, requireID bool) {
	fn.Async = async
	fn.Generator = p.Eat(token.Star)
	if p.at(token.Name) {
		fn.ID = p.parseIdent(false)
		p.checkLVal(fn.ID, bindVar)
	} else if requireID {
		p.unexpected()
	}
	fs := funcState{inFunction: true, generator: fn.Generator, async: async, allowNewTarget: true}
	p.parseFunctionRest(fn, fs, false)
}

// parseFunctionRest parses the parameter list and body under fs. method
// forbids duplicate parameters even in sloppy mode.
func (p *Parser) parseFunctionRest(fn *ast.Function, fs funcState, method bool) {
	defer p.enterFunction(fs)()
	p.fn.inParams = true
	p.Expect(token.LParen)
	fn.Params = p.parseBindingList(token.RParen, false, true)
	p.fn.inParams = false
	body, strict, useStrict := p.parseFunctionBody()
	fn.Body = body
	p.checkParams(fn.ID, fn.Params, strict, useStrict, !method)
}

// parseFunctionBody parses a braced body with its directive prologue. It
// reports whether the body is strict and whether it says "use strict"
// itself. Strictness is restored before the closing brace is consumed so
// that the next token is read in the enclosing mode.
func (p *Parser) parseFunctionBody() (*ast.BlockStatement, bool, bool) {
	m := p.StartNode()
	oldStrict := p.strict()
	octalMark := len(p.state().OctalPositions)
	p.Expect(token.LBrace)
	blk := p.parseBlockBody(token.RBrace, true, false, octalMark)
	strict := p.strict()
	p.state().Strict = oldStrict
	p.Expect(token.RBrace)
	body := Finish(p, &ast.BlockStatement{Body: blk.body, Directives: blk.directives}, "BlockStatement", m)
	return body, strict, blk.useStrict
}

// parseArrowParams parses `( params )` of an arrow head.
func (p *Parser) parseArrowParams() []ast.Pattern {
	old := p.fn.inParams
	p.fn.inParams = true
	defer func() { p.fn.inParams = old }()
	p.Expect(token.LParen)
	return p.parseBindingList(token.RParen, false, true)
}

// parseArrowExpression parses `=> body` for the given parameters. Arrows
// keep the enclosing super and new.target permissions.
func (p *Parser) parseArrowExpression(m Marker, params []ast.Pattern, async bool) *ast.ArrowFunctionExpression {
	p.Expect(token.Arrow)
	fs := p.fn
	fs.inFunction = true
	fs.generator = false
	fs.async = async
	fs.inParams = false
	fs.staticBlock = false
	restore := p.enterFunction(fs)
	node := &ast.ArrowFunctionExpression{Params: params, Async: async}
	strict, useStrict := p.strict(), false
	if p.at(token.LBrace) {
		var body *ast.BlockStatement
		body, strict, useStrict = p.parseFunctionBody()
		node.Body = body
	} else {
		node.Body = p.parseMaybeAssign(false, nil)
		node.Expression = true
	}
	restore()
	p.checkParams(nil, params, strict, useStrict, false)
	return Finish(p, node, "ArrowFunctionExpression", m)
}

// checkParams validates a finished parameter list against the strictness of
// the body. Duplicates are allowed only for simple lists of non-strict,
// non-arrow, non-method functions.
func (p *Parser) checkParams(id *ast.Identifier, params []ast.Pattern, strict, useStrict, allowDup bool) {
	simple := true
	for _, prm := range params {
		if _, ok := prm.(*ast.Identifier); !ok {
			simple = false
		}
	}
	if useStrict && !simple {
		p.raise(diag.SynInvalidParameters, params[0].Base().Start, "Illegal 'use strict' directive in function with non-simple parameter list.")
	}
	if strict && id != nil {
		p.checkStrictBinding(id)
	}
	seen := make(map[string]bool)
	for _, prm := range params {
		for _, name := range boundNames(prm) {
			if strict {
				p.checkStrictBinding(name)
			}
			if seen[name.Name] && (strict || !allowDup || !simple) {
				p.raise(diag.SynStrictDuplicateParam, name.Start, "Argument name clash.")
			}
			seen[name.Name] = true
		}
	}
}

func (p *Parser) checkStrictBinding(id *ast.Identifier) {
	if id.Name == "eval" || id.Name == "arguments" {
		p.raise(diag.SynStrictEvalArguments, id.Start, "Binding '%s' in strict mode.", id.Name)
	}
	if token.IsStrictReserved(id.Name) {
		p.raise(diag.SynReservedWord, id.Start, "Unexpected reserved word '%s'.", id.Name)
	}
}

// checkAsyncParams rejects await in the parameters of an async arrow that
// was first read as call arguments.
func (p *Parser) checkAsyncParams(params []ast.Pattern) {
	for _, prm := range params {
		ast.Inspect(prm, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FunctionExpression, *ast.ArrowFunctionExpression, *ast.ClassExpression:
				return false
			case *ast.AwaitExpression:
				p.raise(diag.SynYieldAwaitInParams, n.Start, "Await expression is not allowed in formal parameters.")
			case *ast.Identifier:
				if n.Name == "await" {
					p.raise(diag.SynYieldAwaitInParams, n.Start, "Can not use 'await' as identifier inside an async function.")
				}
			}
			return true
		})
	}
}

func (p *Parser) checkAccessorParams(kind string, params []ast.Pattern, key ast.Node) {
	switch kind {
	case "get":
		if len(params) != 0 {
			p.raise(diag.SynInvalidParameters, key.Base().Start, "A 'get' accessor must not have any formal parameters.")
		}
	case "set":
		if len(params) != 1 {
			p.raise(diag.SynInvalidParameters, key.Base().Start, "A 'set' accessor must have exactly one formal parameter.")
		}
		if _, rest := params[0].(*ast.RestElement); rest {
			p.raise(diag.SynInvalidParameters, params[0].Base().Start, "A 'set' accessor function argument must not be a rest parameter.")
		}
	}
}

// boundNames lists the identifiers a binding pattern declares.
func boundNames(n ast.Node) []*ast.Identifier {
	var out []*ast.Identifier
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		switch n := n.(type) {
		case *ast.Identifier:
			out = append(out, n)
		case *ast.AssignmentPattern:
			visit(n.Left)
		case *ast.RestElement:
			visit(n.Argument)
		case *ast.ArrayPattern:
			for _, el := range n.Elements {
				if el != nil {
					visit(el)
				}
			}
		case *ast.ObjectPattern:
			for _, prop := range n.Properties {
				switch prop := prop.(type) {
				case *ast.ObjectProperty:
					visit(prop.Value)
				case *ast.RestElement:
					visit(prop)
				}
			}
		}
	}
	visit(n)
	return out
}
