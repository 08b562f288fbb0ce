package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/lexer"
	"esparse/internal/token"
	"esparse/internal/trace"
)

// stmtContext describes where a statement appears. list is a statement
// list position where declarations are allowed; top is the program body.
type stmtContext struct {
	list bool
	top  bool
}

type blockBody struct {
	body       []ast.Statement
	directives []*ast.Directive
	useStrict  bool
}

// parseTopLevel reads the whole input into a File.
func (p *Parser) parseTopLevel() *ast.File {
	p.Next()
	start := Marker{Start: 0, Loc: p.lx.PositionAt(0)}
	prog := &ast.Program{SourceType: string(p.opts.SourceType)}
	if p.at(token.InterpreterDirective) {
		t := p.tok()
		m := p.StartNode()
		p.Next()
		prog.Interpreter = Finish(p, &ast.InterpreterDirective{Value: t.Text()}, "InterpreterDirective", m)
	}
	blk := p.parseBlockBody(token.EOF, true, true, 0)
	prog.Body, prog.Directives = blk.body, blk.directives

	end := len(p.lx.Source())
	endLoc := p.lx.PositionAt(end)
	prog = FinishAt(p, prog, "Program", start, end, endLoc)
	file := &ast.File{Program: prog, Comments: p.lx.Comments(), Extras: p.extras}
	if file.Comments == nil {
		file.Comments = []*ast.Comment{}
	}
	if p.opts.Tokens {
		file.Tokens = p.lx.Tokens()
	}
	return FinishAt(p, file, "File", start, end, endLoc)
}

// parseBlockBody parses statements up to end without consuming it. With
// allowDirectives the leading string statements form a directive prologue;
// a "use strict" directive turns strict mode on and rejects legacy octals
// recorded since octalMark.
func (p *Parser) parseBlockBody(end token.Kind, allowDirectives, top bool, octalMark int) blockBody {
	out := blockBody{body: []ast.Statement{}, directives: []*ast.Directive{}}
	ctx := stmtContext{list: true, top: top}
	for !p.at(end) {
		st := p.parseStatement(ctx)
		if allowDirectives {
			if d := p.asDirective(st); d != nil {
				out.directives = append(out.directives, d)
				if d.Value.Value == "use strict" {
					out.useStrict = true
					p.state().Strict = true
					if pos := p.state().OctalPositions; len(pos) > octalMark {
						p.raise(diag.SynStrictOctal, pos[octalMark], "Octal literal in strict mode.")
					}
				}
				continue
			}
			allowDirectives = false
		}
		out.body = append(out.body, st)
	}
	return out
}

// asDirective converts a statement made of a lone string literal into a
// Directive. The directive value is the raw text between the quotes.
func (p *Parser) asDirective(st ast.Statement) *ast.Directive {
	es, ok := st.(*ast.ExpressionStatement)
	if !ok {
		return nil
	}
	lit, ok := es.Expression.(*ast.StringLiteral)
	if !ok || p.extras.Parenthesized(lit) {
		return nil
	}
	raw := p.lx.Source()[lit.Start+1 : lit.End-1]
	val := &ast.DirectiveLiteral{NodeBase: lit.NodeBase, Value: raw}
	val.Type = "DirectiveLiteral"
	p.extras.Move(lit, val)
	p.extras.Ensure(val).RawValue = raw
	d := &ast.Directive{NodeBase: es.NodeBase, Value: val}
	d.Type = "Directive"
	return d
}

func (p *Parser) parseStatement(ctx stmtContext) ast.Statement {
	sp := p.beginSpan(trace.ScopeStmt, "stmt")
	st := p.parseStatementContent(ctx)
	p.endSpan(sp, st)
	return st
}

func (p *Parser) parseStatementContent(ctx stmtContext) ast.Statement {
	m := p.startStmt()
	if st := p.extensionStatement(); st != nil {
		b := st.Base()
		b.LeadingComments = append(m.leading, b.LeadingComments...)
		return st
	}
	t := p.tok()
	switch t.Kind {
	case token.KwBreak, token.KwContinue:
		return p.parseBreakContinue(m, t.Kind == token.KwBreak)
	case token.KwDebugger:
		p.Next()
		p.Semicolon()
		return Finish(p, &ast.DebuggerStatement{}, "DebuggerStatement", m)
	case token.KwDo:
		return p.parseDoWhile(m)
	case token.KwFor:
		return p.parseFor(m)
	case token.KwFunction:
		if !ctx.list && p.strict() {
			p.raise(diag.SynUnexpectedToken, m.Start, "In strict mode code, functions can only be declared at top level or inside a block.")
		}
		p.Next()
		if !ctx.list && p.at(token.Star) {
			p.unexpected()
		}
		return p.parseFunctionDeclaration(m, false, false)
	case token.KwClass:
		if !ctx.list {
			p.unexpected()
		}
		return p.parseClassDeclaration(m, false)
	case token.KwIf:
		return p.parseIf(m)
	case token.KwReturn:
		return p.parseReturn(m)
	case token.KwSwitch:
		return p.parseSwitch(m)
	case token.KwThrow:
		return p.parseThrow(m)
	case token.KwTry:
		return p.parseTry(m)
	case token.KwConst, token.KwVar:
		kind := t.Text()
		if kind == "const" && !ctx.list {
			p.raise(diag.SynUnexpectedToken, m.Start, "Lexical declaration cannot appear in a single-statement context.")
		}
		return p.parseVarStatement(m, kind)
	case token.KwWhile:
		return p.parseWhile(m)
	case token.KwWith:
		return p.parseWith(m)
	case token.LBrace:
		return p.parseBlockAt(m)
	case token.Semicolon:
		p.Next()
		return Finish(p, &ast.EmptyStatement{}, "EmptyStatement", m)
	case token.KwImport:
		if next := p.lookahead().Tok.Kind; next == token.LParen || next == token.Dot {
			break
		}
		p.checkModuleItem(ctx, m)
		return p.parseImport(m)
	case token.KwExport:
		p.checkModuleItem(ctx, m)
		return p.parseExport(m)
	case token.Name:
		if p.isLetDeclaration(ctx) {
			if !ctx.list {
				p.raise(diag.SynUnexpectedToken, m.Start, "Lexical declaration cannot appear in a single-statement context.")
			}
			return p.parseVarStatement(m, "let")
		}
		if p.isAsyncFunction() {
			if !ctx.list {
				p.raise(diag.SynUnexpectedToken, m.Start, "Async functions can only be declared at the top level or inside a block.")
			}
			p.Next()
			p.Next()
			return p.parseFunctionDeclaration(m, true, false)
		}
	}

	expr := p.ParseExpression()
	if id, ok := expr.(*ast.Identifier); ok && t.Kind == token.Name && id.Start == t.Start &&
		!p.extras.Parenthesized(id) && p.Eat(token.Colon) {
		return p.parseLabeled(m, id)
	}
	p.Semicolon()
	return Finish(p, &ast.ExpressionStatement{Expression: expr}, "ExpressionStatement", m)
}

func (p *Parser) checkModuleItem(ctx stmtContext, m Marker) {
	if !ctx.top {
		p.raise(diag.SynModuleOnly, m.Start, "'import' and 'export' may only appear at the top level.")
	}
	if !p.opts.module() {
		p.raise(diag.SynModuleOnly, m.Start, "'import' and 'export' may appear only with 'sourceType: module'.")
	}
}

// isLetDeclaration reports whether a `let` at the current token starts a
// declaration rather than being an identifier.
func (p *Parser) isLetDeclaration(ctx stmtContext) bool {
	if !p.isContextual("let") {
		return false
	}
	next := p.lookahead()
	switch next.Tok.Kind {
	case token.LBracket, token.LBrace:
		return true
	case token.Name:
		return ctx.list || !next.HadLineBreak
	}
	return false
}

func (p *Parser) isAsyncFunction() bool {
	if !p.isContextual("async") {
		return false
	}
	next := p.lookahead()
	return next.Tok.Kind == token.KwFunction && !next.HadLineBreak
}

func (p *Parser) pushLabel(kind lexer.LabelKind, name string, stmtStart int) {
	s := p.state()
	s.Labels = append(s.Labels, lexer.Label{Kind: kind, Name: name, StatementStart: stmtStart})
}

func (p *Parser) popLabel() {
	s := p.state()
	s.Labels = s.Labels[:len(s.Labels)-1]
}

func (p *Parser) parseBreakContinue(m Marker, isBreak bool) ast.Statement {
	p.Next()
	var label *ast.Identifier
	if !p.isLineTerminator() {
		if !p.at(token.Name) {
			p.unexpected()
		}
		label = p.parseIdent(false)
		p.Semicolon()
	}

	found, named := false, false
	labels := p.state().Labels
	for i := len(labels) - 1; i >= 0; i-- {
		l := labels[i]
		if label != nil && l.Name != label.Name {
			continue
		}
		named = true
		if l.Kind != lexer.LabelPlain && (isBreak || l.Kind == lexer.LabelLoop) {
			found = true
			break
		}
		if label != nil && isBreak {
			found = true
			break
		}
	}
	if !found {
		switch {
		case label != nil && !named:
			p.raise(diag.SynUnknownLabel, label.Start, "Undefined label '%s'.", label.Name)
		case isBreak:
			p.raise(diag.SynIllegalBreak, m.Start, "Unsyntactic break.")
		default:
			p.raise(diag.SynIllegalContinue, m.Start, "Unsyntactic continue.")
		}
	}
	if isBreak {
		return Finish(p, &ast.BreakStatement{Label: label}, "BreakStatement", m)
	}
	return Finish(p, &ast.ContinueStatement{Label: label}, "ContinueStatement", m)
}

func (p *Parser) parseDoWhile(m Marker) *ast.DoWhileStatement {
	p.Next()
	p.pushLabel(lexer.LabelLoop, "", m.Start)
	body := p.parseStatement(stmtContext{})
	p.popLabel()
	p.Expect(token.KwWhile)
	test := p.parseParenExpression()
	p.Eat(token.Semicolon)
	return Finish(p, &ast.DoWhileStatement{Body: body, Test: test}, "DoWhileStatement", m)
}

// parseFor parses the three for-statement forms. A declaration or
// expression head decides between them once the token after it is seen.
func (p *Parser) parseFor(m Marker) ast.Statement {
	p.Next()
	await := false
	if p.isContextual("await") && p.canAwait() {
		await = true
		p.Next()
	}
	p.pushLabel(lexer.LabelLoop, "", m.Start)
	defer p.popLabel()
	p.Expect(token.LParen)
	if p.at(token.Semicolon) {
		if await {
			p.unexpected()
		}
		return p.parseForClassic(m, nil)
	}

	if p.at(token.KwVar) || p.at(token.KwConst) || p.isLetDeclaration(stmtContext{list: true}) {
		im := p.StartNode()
		kind := p.tok().Text()
		p.Next()
		decls := p.parseVarDeclarations(kind, true)
		decl := Finish(p, &ast.VariableDeclaration{Kind: kind, Declarations: decls}, "VariableDeclaration", im)
		of := p.isContextual("of")
		if (of || p.at(token.KwIn)) && len(decls) == 1 {
			_, simple := decls[0].ID.(*ast.Identifier)
			if decls[0].Init != nil && (of || kind != "var" || p.strict() || !simple) {
				p.raise(diag.SynInvalidForHead, decls[0].Start, "for-in or for-of loop variable declaration may not have an initializer.")
			}
			return p.parseForIn(m, decl, await)
		}
		if of || p.at(token.KwIn) {
			p.raise(diag.SynInvalidForHead, decl.Start, "Only a single declaration is allowed in a for-in or for-of head.")
		}
		if await {
			p.unexpected()
		}
		return p.parseForClassic(m, decl)
	}

	startsWithLet := p.isContextual("let")
	startsWithAsync := p.isContextual("async")
	refs := newDestructErrs()
	init := p.parseExpression(true, refs)
	if of := p.isContextual("of"); of || p.at(token.KwIn) {
		if of && startsWithLet {
			p.raise(diag.SynInvalidForHead, init.Base().Start, "The left-hand side of a for-of loop may not be 'let'.")
		}
		if id, ok := init.(*ast.Identifier); of && !await && startsWithAsync && ok && id.Name == "async" {
			p.raise(diag.SynInvalidForHead, init.Base().Start, "The left-hand side of a for-of loop may not be 'async'.")
		}
		target := p.toAssignable(init)
		p.checkLVal(target, bindNone)
		return p.parseForIn(m, target, await)
	}
	p.checkExpressionErrors(refs)
	if await {
		p.unexpected()
	}
	return p.parseForClassic(m, init)
}

func (p *Parser) parseForClassic(m Marker, init ast.Node) *ast.ForStatement {
	p.Expect(token.Semicolon)
	loop := &ast.ForStatement{Init: init}
	if !p.at(token.Semicolon) {
		loop.Test = p.ParseExpression()
	}
	p.Expect(token.Semicolon)
	if !p.at(token.RParen) {
		loop.Update = p.ParseExpression()
	}
	p.Expect(token.RParen)
	loop.Body = p.parseStatement(stmtContext{})
	return Finish(p, loop, "ForStatement", m)
}

func (p *Parser) parseForIn(m Marker, left ast.Node, await bool) ast.Statement {
	of := p.isContextual("of")
	if await && !of {
		p.unexpected()
	}
	p.Next()
	var right ast.Expression
	if of {
		right = p.parseMaybeAssign(false, nil)
	} else {
		right = p.ParseExpression()
	}
	p.Expect(token.RParen)
	body := p.parseStatement(stmtContext{})
	if of {
		return Finish(p, &ast.ForOfStatement{Left: left, Right: right, Body: body, Await: await}, "ForOfStatement", m)
	}
	return Finish(p, &ast.ForInStatement{Left: left, Right: right, Body: body}, "ForInStatement", m)
}

func (p *Parser) parseIf(m Marker) *ast.IfStatement {
	p.Next()
	st := &ast.IfStatement{Test: p.parseParenExpression()}
	st.Consequent = p.parseStatement(stmtContext{})
	if p.Eat(token.KwElse) {
		st.Alternate = p.parseStatement(stmtContext{})
	}
	return Finish(p, st, "IfStatement", m)
}

func (p *Parser) parseReturn(m Marker) *ast.ReturnStatement {
	if !p.fn.inFunction && !p.opts.AllowReturnOutsideFunction {
		p.raise(diag.SynIllegalReturn, m.Start, "'return' outside of function.")
	}
	p.Next()
	st := &ast.ReturnStatement{}
	if !p.isLineTerminator() {
		st.Argument = p.ParseExpression()
		p.Semicolon()
	}
	return Finish(p, st, "ReturnStatement", m)
}

func (p *Parser) parseSwitch(m Marker) *ast.SwitchStatement {
	p.Next()
	st := &ast.SwitchStatement{Discriminant: p.parseParenExpression(), Cases: []*ast.SwitchCase{}}
	p.Expect(token.LBrace)
	p.pushLabel(lexer.LabelSwitch, "", m.Start)
	sawDefault := false
	for !p.at(token.RBrace) {
		cm := p.startStmt()
		c := &ast.SwitchCase{Consequent: []ast.Statement{}}
		switch {
		case p.Eat(token.KwCase):
			c.Test = p.ParseExpression()
		case p.Eat(token.KwDefault):
			if sawDefault {
				p.raise(diag.SynMultipleDefaults, cm.Start, "Multiple default clauses.")
			}
			sawDefault = true
		default:
			p.unexpected()
		}
		p.Expect(token.Colon)
		for !p.at(token.RBrace) && !p.at(token.KwCase) && !p.at(token.KwDefault) {
			c.Consequent = append(c.Consequent, p.parseStatement(stmtContext{list: true}))
		}
		st.Cases = append(st.Cases, Finish(p, c, "SwitchCase", cm))
	}
	p.popLabel()
	p.Next()
	return Finish(p, st, "SwitchStatement", m)
}

func (p *Parser) parseThrow(m Marker) *ast.ThrowStatement {
	p.Next()
	if p.state().HadLineBreak {
		p.raise(diag.SynNewlineAfterThrow, p.state().LastTokEnd, "Illegal newline after throw.")
	}
	arg := p.ParseExpression()
	p.Semicolon()
	return Finish(p, &ast.ThrowStatement{Argument: arg}, "ThrowStatement", m)
}

func (p *Parser) parseTry(m Marker) *ast.TryStatement {
	p.Next()
	st := &ast.TryStatement{Block: p.parseBlockAt(p.StartNode())}
	if p.at(token.KwCatch) {
		cm := p.StartNode()
		p.Next()
		clause := &ast.CatchClause{}
		if p.Eat(token.LParen) {
			clause.Param = p.parseBindingAtom()
			p.checkLVal(clause.Param, bindVar)
			p.Expect(token.RParen)
		}
		clause.Body = p.parseBlockAt(p.StartNode())
		st.Handler = Finish(p, clause, "CatchClause", cm)
	}
	if p.Eat(token.KwFinally) {
		st.Finalizer = p.parseBlockAt(p.StartNode())
	}
	if st.Handler == nil && st.Finalizer == nil {
		p.raise(diag.SynMissingCatchOrFinally, m.Start, "Missing catch or finally clause.")
	}
	return Finish(p, st, "TryStatement", m)
}

func (p *Parser) parseVarStatement(m Marker, kind string) *ast.VariableDeclaration {
	p.Next()
	decls := p.parseVarDeclarations(kind, false)
	p.Semicolon()
	return Finish(p, &ast.VariableDeclaration{Kind: kind, Declarations: decls}, "VariableDeclaration", m)
}

// parseVarDeclarations parses the declarator list after var, let or const.
// In a for head the `in` operator is disabled and the initializer may be
// left out before `in` or `of`.
func (p *Parser) parseVarDeclarations(kind string, isFor bool) []*ast.VariableDeclarator {
	bind := bindLexical
	if kind == "var" {
		bind = bindVar
	}
	var list []*ast.VariableDeclarator
	for {
		dm := p.StartNode()
		id := p.parseBindingAtom()
		p.checkLVal(id, bind)
		d := &ast.VariableDeclarator{ID: id}
		if p.Eat(token.Assign) {
			d.Init = p.parseMaybeAssign(isFor, nil)
		} else if !isFor || !(p.at(token.KwIn) || p.isContextual("of")) {
			if kind == "const" {
				p.raise(diag.SynMissingInitializer, p.state().LastTokEnd, "Missing initializer in const declaration.")
			}
			if _, simple := id.(*ast.Identifier); !simple {
				p.raise(diag.SynMissingInitializer, p.state().LastTokEnd, "Complex binding patterns require an initialization value.")
			}
		}
		list = append(list, Finish(p, d, "VariableDeclarator", dm))
		if !p.Eat(token.Comma) {
			return list
		}
	}
}

func (p *Parser) parseWhile(m Marker) *ast.WhileStatement {
	p.Next()
	test := p.parseParenExpression()
	p.pushLabel(lexer.LabelLoop, "", m.Start)
	body := p.parseStatement(stmtContext{})
	p.popLabel()
	return Finish(p, &ast.WhileStatement{Test: test, Body: body}, "WhileStatement", m)
}

func (p *Parser) parseWith(m Marker) *ast.WithStatement {
	if p.strict() {
		p.raise(diag.SynStrictWith, m.Start, "'with' in strict mode.")
	}
	p.Next()
	obj := p.parseParenExpression()
	body := p.parseStatement(stmtContext{})
	return Finish(p, &ast.WithStatement{Object: obj, Body: body}, "WithStatement", m)
}

func (p *Parser) parseBlockAt(m Marker) *ast.BlockStatement {
	p.Expect(token.LBrace)
	blk := p.parseBlockBody(token.RBrace, false, false, 0)
	p.Next()
	return Finish(p, &ast.BlockStatement{Body: blk.body, Directives: blk.directives}, "BlockStatement", m)
}

// parseLabeled parses the body of `label:`. A label on a loop is a loop
// label; labels chained in front of the same statement share its kind.
func (p *Parser) parseLabeled(m Marker, label *ast.Identifier) *ast.LabeledStatement {
	labels := p.state().Labels
	for _, l := range labels {
		if l.Name == label.Name {
			p.raise(diag.SynDuplicateLabel, label.Start, "Label '%s' is already declared.", label.Name)
		}
	}
	kind := lexer.LabelPlain
	switch k := p.tok().Kind; {
	case k.IsLoop():
		kind = lexer.LabelLoop
	case k == token.KwSwitch:
		kind = lexer.LabelSwitch
	}
	next := p.tok().Start
	for i := len(labels) - 1; i >= 0 && labels[i].StatementStart == m.Start; i-- {
		labels[i].StatementStart = next
		labels[i].Kind = kind
	}
	p.pushLabel(kind, label.Name, next)
	body := p.parseStatement(stmtContext{})
	p.popLabel()
	return Finish(p, &ast.LabeledStatement{Label: label, Body: body}, "LabeledStatement", m)
}
