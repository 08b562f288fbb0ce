package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/token"
	"esparse/internal/trace"
)

// destructErrs records constructs that are only valid when the enclosing
// expression is later reinterpreted as a pattern, such as `{a = 1}`. The
// outermost parseMaybeAssign that owns it reports them if no '=' follows.
type destructErrs struct {
	shorthandAssign int
	doubleProto     int
}

func newDestructErrs() *destructErrs {
	return &destructErrs{shorthandAssign: -1, doubleProto: -1}
}

func (d *destructErrs) pending() bool {
	return d != nil && (d.shorthandAssign >= 0 || d.doubleProto >= 0)
}

func (p *Parser) checkExpressionErrors(d *destructErrs) {
	if d == nil {
		return
	}
	if d.shorthandAssign >= 0 {
		p.raise(diag.SynInvalidCoverInit, d.shorthandAssign, "Invalid shorthand property initializer.")
	}
	if d.doubleProto >= 0 {
		p.raise(diag.SynDuplicateProto, d.doubleProto, "Redefinition of __proto__ property.")
	}
}

// parseExpression parses an assignment expression and folds a following
// comma list into a SequenceExpression. noIn disables the `in` operator for
// for-loop heads.
func (p *Parser) parseExpression(noIn bool, refs *destructErrs) ast.Expression {
	m := p.StartNode()
	expr := p.parseMaybeAssign(noIn, refs)
	if !p.at(token.Comma) {
		return expr
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expression{expr}}
	for p.Eat(token.Comma) {
		seq.Expressions = append(seq.Expressions, p.parseMaybeAssign(noIn, refs))
	}
	return Finish(p, seq, "SequenceExpression", m)
}

func (p *Parser) parseMaybeAssign(noIn bool, refs *destructErrs) ast.Expression {
	sp := p.beginSpan(trace.ScopeExpr, "expr")
	expr := p.parseMaybeAssignInner(noIn, refs)
	p.endSpan(sp, expr)
	return expr
}

func (p *Parser) parseMaybeAssignInner(noIn bool, refs *destructErrs) ast.Expression {
	if p.fn.generator && p.isContextual("yield") {
		return p.parseYield(noIn)
	}
	own := refs == nil
	oldProto := -1
	if own {
		refs = newDestructErrs()
	} else {
		oldProto = refs.doubleProto
		refs.doubleProto = -1
	}

	m := p.StartNode()
	if p.at(token.LParen) || p.at(token.Name) {
		p.potentialArrowAt = m.Start
	}
	left := p.parseMaybeConditional(noIn, refs)

	if op := p.tok().Kind; op.IsAssign() {
		var target ast.Pattern
		if op == token.Assign {
			target = p.toAssignable(left)
			p.checkLVal(target, bindNone)
		} else {
			target = p.checkSimpleTarget(left, "assignment expression")
		}
		if !own {
			refs.doubleProto = -1
		}
		if refs.shorthandAssign >= left.Base().Start {
			refs.shorthandAssign = -1
		}
		p.Next()
		right := p.parseMaybeAssign(noIn, nil)
		if oldProto >= 0 {
			refs.doubleProto = oldProto
		}
		return Finish(p, &ast.AssignmentExpression{Operator: op.String(), Left: target, Right: right}, "AssignmentExpression", m)
	}
	if own {
		p.checkExpressionErrors(refs)
	}
	if oldProto >= 0 {
		refs.doubleProto = oldProto
	}
	return left
}

// isBareArrow reports an arrow function that is not wrapped in parentheses;
// such an arrow cannot be an operand.
func (p *Parser) isBareArrow(e ast.Expression, m Marker) bool {
	_, ok := e.(*ast.ArrowFunctionExpression)
	return ok && e.Base().Start == m.Start && !p.extras.Parenthesized(e)
}

func (p *Parser) parseMaybeConditional(noIn bool, refs *destructErrs) ast.Expression {
	m := p.StartNode()
	expr := p.parseExprOps(noIn, refs)
	if refs.pending() || p.isBareArrow(expr, m) {
		return expr
	}
	if !p.Eat(token.Question) {
		return expr
	}
	cons := p.parseMaybeAssign(false, nil)
	p.Expect(token.Colon)
	alt := p.parseMaybeAssign(noIn, nil)
	return Finish(p, &ast.ConditionalExpression{Test: expr, Consequent: cons, Alternate: alt}, "ConditionalExpression", m)
}

func (p *Parser) parseExprOps(noIn bool, refs *destructErrs) ast.Expression {
	m := p.StartNode()
	expr := p.parseMaybeUnary(refs, false, false)
	if refs.pending() || p.isBareArrow(expr, m) {
		return expr
	}
	return p.parseExprOp(expr, m, -1, noIn)
}

// parseExprOp is the precedence climbing loop. left has already been
// parsed; operators binding tighter than minPrec are folded into it.
func (p *Parser) parseExprOp(left ast.Expression, m Marker, minPrec int, noIn bool) ast.Expression {
	op := p.tok().Kind
	prec := op.Binop()
	if prec == 0 || (noIn && op == token.KwIn) {
		return left
	}
	if _, ok := left.(*ast.PrivateName); ok && op != token.KwIn {
		p.raise(diag.SynInvalidPrivateName, left.Base().Start, "Private names are only allowed in property accesses (`obj.#x`) or in `in` expressions (`#x in obj`).")
	}
	if prec <= minPrec {
		return left
	}
	logical := op == token.LogicalOr || op == token.LogicalAnd
	nullish := op == token.Nullish
	if nullish {
		// ?? binds like && so that mixing can be detected below
		prec = token.LogicalAnd.Binop()
	}
	p.Next()
	rm := p.StartNode()
	rightPrec := prec
	if op.RightAssoc() {
		rightPrec--
	}
	right := p.parseExprOp(p.parseMaybeUnary(nil, false, false), rm, rightPrec, noIn)
	if (nullish && (p.at(token.LogicalOr) || p.at(token.LogicalAnd))) || (logical && p.at(token.Nullish)) {
		p.raise(diag.SynMixedNullish, p.tok().Start, "Nullish coalescing operator(??) requires parens when mixing with logical operators.")
	}
	var node ast.Expression
	if logical || nullish {
		node = Finish(p, &ast.LogicalExpression{Operator: op.String(), Left: left, Right: right}, "LogicalExpression", m)
	} else {
		node = Finish(p, &ast.BinaryExpression{Operator: op.String(), Left: left, Right: right}, "BinaryExpression", m)
	}
	return p.parseExprOp(node, m, minPrec, noIn)
}

// parseMaybeUnary parses prefix and postfix operators and exponentiation.
// sawUnary is set when the caller already consumed a unary operator, which
// makes a following ** an error; incDec stops ** from binding inside the
// operand of a prefix ++/--.
func (p *Parser) parseMaybeUnary(refs *destructErrs, sawUnary, incDec bool) ast.Expression {
	m := p.StartNode()
	var expr ast.Expression
	t := p.tok()
	switch {
	case p.isContextual("await") && p.canAwait():
		expr = p.parseAwait()
		sawUnary = true
	case t.Kind.IsPrefix():
		update := t.Kind == token.Inc || t.Kind == token.Dec
		p.Next()
		arg := p.parseMaybeUnary(nil, true, update)
		if update {
			p.checkSimpleTarget(arg, "prefix operation")
			expr = Finish(p, &ast.UpdateExpression{Operator: t.Kind.String(), Prefix: true, Argument: arg}, "UpdateExpression", m)
			break
		}
		if t.Kind == token.KwDelete {
			p.checkDelete(arg, m)
		}
		expr = Finish(p, &ast.UnaryExpression{Operator: t.Kind.String(), Prefix: true, Argument: arg}, "UnaryExpression", m)
		sawUnary = true
	default:
		expr = p.parseExprSubscripts(refs)
		if refs.pending() {
			return expr
		}
		for p.tok().Kind.IsPostfix() && !p.state().HadLineBreak {
			op := p.tok().Kind
			p.checkSimpleTarget(expr, "postfix operation")
			p.Next()
			expr = Finish(p, &ast.UpdateExpression{Operator: op.String(), Argument: expr}, "UpdateExpression", m)
		}
	}
	if incDec || !p.at(token.Exp) {
		return expr
	}
	if sawUnary {
		p.raise(diag.SynUnaryBeforeExponent, p.tok().Start, "Illegal expression. Wrap left hand side or entire exponentiation in parentheses.")
	}
	p.Next()
	right := p.parseMaybeUnary(nil, false, false)
	return Finish(p, &ast.BinaryExpression{Operator: "**", Left: expr, Right: right}, "BinaryExpression", m)
}

func (p *Parser) checkDelete(arg ast.Expression, m Marker) {
	switch a := arg.(type) {
	case *ast.Identifier:
		if p.strict() {
			p.raise(diag.SynStrictDelete, m.Start, "Deleting local variable in strict mode.")
		}
	case *ast.MemberExpression:
		if _, ok := a.Property.(*ast.PrivateName); ok {
			p.raise(diag.SynInvalidPrivateName, m.Start, "Deleting a private field is not allowed.")
		}
	case *ast.OptionalMemberExpression:
		if _, ok := a.Property.(*ast.PrivateName); ok {
			p.raise(diag.SynInvalidPrivateName, m.Start, "Deleting a private field is not allowed.")
		}
	}
}

func (p *Parser) canAwait() bool {
	if p.fn.async {
		return true
	}
	return p.opts.module() && !p.fn.inFunction && !p.fn.staticBlock
}

func (p *Parser) parseAwait() ast.Expression {
	m := p.StartNode()
	if p.fn.inParams {
		p.raise(diag.SynYieldAwaitInParams, m.Start, "Await expression is not allowed in formal parameters.")
	}
	p.Next()
	arg := p.parseMaybeUnary(nil, true, false)
	return Finish(p, &ast.AwaitExpression{Argument: arg}, "AwaitExpression", m)
}

func (p *Parser) parseYield(noIn bool) ast.Expression {
	m := p.StartNode()
	if p.fn.inParams {
		p.raise(diag.SynYieldAwaitInParams, m.Start, "Yield expression is not allowed in formal parameters.")
	}
	p.Next()
	node := &ast.YieldExpression{}
	k := p.tok().Kind
	hasArg := k == token.Star || k.StartsExpr() || k == token.Slash || k == token.DivAssign
	if hasArg && !p.at(token.Semicolon) && !p.CanInsertSemicolon() {
		node.Delegate = p.Eat(token.Star)
		node.Argument = p.parseMaybeAssign(noIn, nil)
	}
	return Finish(p, node, "YieldExpression", m)
}

func (p *Parser) parseExprSubscripts(refs *destructErrs) ast.Expression {
	m := p.StartNode()
	expr := p.parseExprAtom(refs)
	if p.isBareArrow(expr, m) {
		return expr
	}
	return p.parseSubscripts(expr, m, false)
}

// parseSubscripts layers member accesses, calls and tagged templates onto
// base. noCalls is set for the callee of `new`.
func (p *Parser) parseSubscripts(base ast.Expression, m Marker, noCalls bool) ast.Expression {
	maybeAsyncArrow := false
	if id, ok := base.(*ast.Identifier); ok && id.Name == "async" && id.End-id.Start == 5 &&
		p.state().LastTokEnd == id.End && !p.CanInsertSemicolon() && p.potentialArrowAt == id.Start {
		maybeAsyncArrow = true
	}
	chained := false
	for {
		t := p.tok()
		switch {
		case t.Kind == token.QuestionDot:
			if noCalls {
				p.raise(diag.SynInvalidOptionalChain, t.Start, "Constructors in/after an Optional Chain are not allowed.")
			}
			p.Next()
			chained = true
			switch {
			case p.at(token.LParen):
				base = p.parseCall(base, m, true, true)
			case p.Eat(token.LBracket):
				prop := p.ParseExpression()
				p.Expect(token.RBracket)
				base = Finish(p, &ast.OptionalMemberExpression{Object: base, Property: prop, Computed: true, Optional: true}, "OptionalMemberExpression", m)
			default:
				prop := p.parseMemberProperty()
				base = Finish(p, &ast.OptionalMemberExpression{Object: base, Property: prop, Optional: true}, "OptionalMemberExpression", m)
			}
		case t.Kind == token.Dot:
			p.Next()
			base = p.member(base, p.parseMemberProperty(), false, chained, m)
		case t.Kind == token.LBracket:
			p.Next()
			prop := p.ParseExpression()
			p.Expect(token.RBracket)
			base = p.member(base, prop, true, chained, m)
		case t.Kind == token.LParen && !noCalls:
			if maybeAsyncArrow {
				expr, arrow := p.parseAsyncArrowOrCall(base, m)
				if arrow {
					return expr
				}
				base = expr
				maybeAsyncArrow = false
				continue
			}
			base = p.parseCall(base, m, chained, false)
		case (t.Kind == token.TemplateNonTail || t.Kind == token.TemplateTail) && p.lx.Source()[t.Start] == '`':
			if chained {
				p.raise(diag.SynInvalidOptionalChain, t.Start, "Tagged Template Literals are not allowed in optionalChain.")
			}
			quasi := p.parseTemplate()
			base = Finish(p, &ast.TaggedTemplateExpression{Tag: base, Quasi: quasi}, "TaggedTemplateExpression", m)
		default:
			return base
		}
	}
}

func (p *Parser) member(obj ast.Expression, prop ast.Node, computed, chained bool, m Marker) ast.Expression {
	if chained {
		return Finish(p, &ast.OptionalMemberExpression{Object: obj, Property: prop, Computed: computed}, "OptionalMemberExpression", m)
	}
	return Finish(p, &ast.MemberExpression{Object: obj, Property: prop, Computed: computed}, "MemberExpression", m)
}

func (p *Parser) parseMemberProperty() ast.Node {
	if p.at(token.PrivateName) {
		return p.parsePrivateName()
	}
	return p.parseIdent(true)
}

func (p *Parser) parseCall(callee ast.Expression, m Marker, chained, optional bool) ast.Expression {
	p.Expect(token.LParen)
	args, trailing := p.parseExprList(token.RParen, false, nil)
	if _, ok := callee.(*ast.Import); ok {
		if len(args) != 1 {
			p.raise(diag.SynUnexpectedToken, m.Start, "import() requires exactly one argument.")
		}
		if _, spread := args[0].(*ast.SpreadElement); spread {
			p.raise(diag.SynUnexpectedToken, args[0].Base().Start, "... is not allowed in import().")
		}
	}
	var call ast.Expression
	if chained {
		call = Finish(p, &ast.OptionalCallExpression{Callee: callee, Arguments: args, Optional: optional}, "OptionalCallExpression", m)
	} else {
		call = Finish(p, &ast.CallExpression{Callee: callee, Arguments: args}, "CallExpression", m)
	}
	p.noteTrailingComma(call, trailing)
	return call
}

// parseAsyncArrowOrCall handles `async(...)`: an arrow head if `=>` follows
// on the same line, otherwise a call.
func (p *Parser) parseAsyncArrowOrCall(callee ast.Expression, m Marker) (ast.Expression, bool) {
	refs := newDestructErrs()
	p.Expect(token.LParen)
	args, trailing := p.parseExprList(token.RParen, false, refs)
	if p.at(token.Arrow) && !p.state().HadLineBreak {
		params := p.toParams(args, trailing)
		p.checkAsyncParams(params)
		return p.parseArrowExpression(m, params, true), true
	}
	p.checkExpressionErrors(refs)
	call := Finish(p, &ast.CallExpression{Callee: callee, Arguments: args}, "CallExpression", m)
	p.noteTrailingComma(call, trailing)
	return call, false
}

// parseExprList parses a comma separated list up to close. Holes are nil
// when allowEmpty is set. The offset of a trailing comma is returned, or 0.
func (p *Parser) parseExprList(close token.Kind, allowEmpty bool, refs *destructErrs) ([]ast.Expression, int) {
	elts := []ast.Expression{}
	trailing := 0
	first := true
	for !p.Eat(close) {
		if !first {
			p.Expect(token.Comma)
			if p.at(close) {
				trailing = p.state().LastTokStart
				p.Next()
				break
			}
		}
		first = false
		switch {
		case allowEmpty && p.at(token.Comma):
			elts = append(elts, nil)
		case p.at(token.Ellipsis):
			elts = append(elts, p.parseSpread(refs))
		default:
			elts = append(elts, p.parseMaybeAssign(false, refs))
		}
	}
	return elts, trailing
}

func (p *Parser) parseSpread(refs *destructErrs) *ast.SpreadElement {
	m := p.StartNode()
	p.Next()
	arg := p.parseMaybeAssign(false, refs)
	return Finish(p, &ast.SpreadElement{Argument: arg}, "SpreadElement", m)
}

func (p *Parser) noteTrailingComma(n ast.Node, off int) {
	if off > 0 {
		p.extras.Ensure(n).TrailingComma = off
	}
}

func (p *Parser) parseParenExpression() ast.Expression {
	p.Expect(token.LParen)
	e := p.ParseExpression()
	p.Expect(token.RParen)
	return e
}
