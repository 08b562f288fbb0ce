package parser_test

import (
	"testing"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/parser"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a ** b ** c", "(a ** (b ** c))"},
		{"a * b ** c", "(a * (b ** c))"},
		{"(-a) ** b", "((- a) ** b)"},
		{"a ** -b", "(a ** (- b))"},
		{"a || b && c", "(a || (b && c))"},
		{"a ?? b ?? c", "((a ?? b) ?? c)"},
		{"(a ?? b) || c", "((a ?? b) || c)"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"a = b = c", "(a = (b = c))"},
		{"a += b || c", "(a += (b || c))"},
		{"a, b = c", "(a, (b = c))"},
		{"!a + b", "((! a) + b)"},
		{"typeof a === b", "((typeof a) === b)"},
		{"a++ + b", "((a++) + b)"},
		{"++a * 2", "((++a) * 2)"},
		{"a < b == c", "((a < b) == c)"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a << 1 + 2", "(a << (1 + 2))"},
		{"a in b instanceof c", "((a in b) instanceof c)"},
		{"a / b / c", "((a / b) / c)"},
		{"a\n/b/g", "((a / b) / g)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := shape(expr(t, tt.src)); got != tt.want {
				t.Fatalf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"-a ** b", diag.SynUnaryBeforeExponent},
		{"typeof a ** b", diag.SynUnaryBeforeExponent},
		{"a ?? b || c", diag.SynMixedNullish},
		{"a || b ?? c", diag.SynMixedNullish},
		{"a ?? b && c", diag.SynMixedNullish},
		{"a + 1 = 2", diag.SynInvalidLHS},
		{"1++", diag.SynInvalidLHS},
		{"++a()", diag.SynInvalidLHS},
		{"[a] += b", diag.SynInvalidLHS},
		{"({a}) = 1", diag.SynInvalidLHS},
		{"a?.b = 1", diag.SynInvalidLHS},
		{"a.b?.c++", diag.SynInvalidLHS},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parseErr(t, tt.src, parser.Options{})
			if err.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", err.Code.ID(), err.Message, tt.code.ID())
			}
		})
	}
}

func TestRegexpAfterOperator(t *testing.T) {
	e := expr(t, "x = /re/g")
	re, ok := e.(*ast.AssignmentExpression).Right.(*ast.RegExpLiteral)
	if !ok {
		t.Fatalf("right side is %T, want *ast.RegExpLiteral", e.(*ast.AssignmentExpression).Right)
	}
	if re.Pattern != "re" || re.Flags != "g" {
		t.Fatalf("regexp = /%s/%s", re.Pattern, re.Flags)
	}
	if re.Start != 4 || re.End != 9 {
		t.Fatalf("regexp span = %d..%d, want 4..9", re.Start, re.End)
	}
}

func TestDivisionAfterKeywordProperty(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a.return / 2 / 3", "((MemberExpression / 2) / 3)"},
		{"x.default / y", "(MemberExpression / y)"},
		{"a.in / b", "(MemberExpression / b)"},
		{"a?.delete / 2", "(OptionalMemberExpression / 2)"},
		{"({typeof: 1}).typeof / 2", "(MemberExpression / 2)"},
		{"a?.x / y", "(OptionalMemberExpression / y)"},
		{"a.if /= 2", "(MemberExpression /= 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := shape(expr(t, tt.src)); got != tt.want {
				t.Fatalf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestArrowFunctions(t *testing.T) {
	tests := []struct {
		src    string
		params []string
		async  bool
		isExpr bool
	}{
		{"x => x", []string{"Identifier"}, false, true},
		{"() => {}", []string{}, false, false},
		{"(a, b) => a", []string{"Identifier", "Identifier"}, false, true},
		{"(a = 1, {b}, [c], ...d) => 0", []string{"AssignmentPattern", "ObjectPattern", "ArrayPattern", "RestElement"}, false, true},
		{"(a,) => a", []string{"Identifier"}, false, true},
		{"async (a) => a", []string{"Identifier"}, true, true},
		{"async x => x", []string{"Identifier"}, true, true},
		{"async ({a}, ...b) => { await a }", []string{"ObjectPattern", "RestElement"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			arrow, ok := expr(t, tt.src).(*ast.ArrowFunctionExpression)
			if !ok {
				t.Fatalf("%q did not parse to an arrow", tt.src)
			}
			got := make([]string, len(arrow.Params))
			for i, p := range arrow.Params {
				got[i] = p.Base().Type
			}
			if !sameStrings(got, tt.params) {
				t.Fatalf("params = %v, want %v", got, tt.params)
			}
			if arrow.Async != tt.async || arrow.Expression != tt.isExpr {
				t.Fatalf("async=%v expression=%v", arrow.Async, arrow.Expression)
			}
		})
	}
}

func TestParenthesizedIsNotArrow(t *testing.T) {
	file := parseOK(t, "(a, b)", parser.Options{})
	seq, ok := body(t, file).(*ast.ExpressionStatement).Expression.(*ast.SequenceExpression)
	if !ok {
		t.Fatal("expected a sequence expression")
	}
	x := file.Extras.Get(seq)
	if x == nil || !x.Parenthesized || x.ParenStart != 0 {
		t.Fatalf("extra = %+v, want parenthesized at 0", x)
	}
	if seq.Start != 1 || seq.End != 5 {
		t.Fatalf("sequence span = %d..%d, want 1..5", seq.Start, seq.End)
	}

	call, ok := expr(t, "async(a, b)").(*ast.CallExpression)
	if !ok || len(call.Arguments) != 2 {
		t.Fatal("async(a, b) should be a call with two arguments")
	}
}

func TestFailedArrowLeavesNoExtras(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"(a = 1, b);", 2},
		{"f((x = 'y', [z = 0x1]));", 3},
		{"((a = 1), b);", 3},
		{"(a = 1, b) => 2;", 2},
		{"(a = (b = 1, c)) => a;", 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			file := parseOK(t, tt.src, parser.Options{})
			reachable := 0
			ast.Inspect(file, func(n ast.Node) bool {
				if file.Extras.Get(n) != nil {
					reachable++
				}
				return true
			})
			if reachable != tt.want {
				t.Errorf("nodes with extras = %d, want %d", reachable, tt.want)
			}
			if file.Extras.Len() != reachable {
				t.Errorf("side-table holds %d entries, only %d nodes are in the tree", file.Extras.Len(), reachable)
			}
		})
	}
}

func TestArrowErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"(a, b)\n=> a", diag.SynArrowLineBreak},
		{"x\n=> x", diag.SynArrowLineBreak},
		{"async (await) => 1", diag.SynYieldAwaitInParams},
		{"async (x = await) => 1", diag.SynYieldAwaitInParams},
		{"(a, a) => 1", diag.SynStrictDuplicateParam},
		{"(...a, b) => 1", diag.SynUnexpectedToken},
		{"(a.b) => 1", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parseErr(t, tt.src, parser.Options{})
			if tt.code == diag.SynUnexpectedToken {
				return
			}
			if err.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", err.Code.ID(), err.Message, tt.code.ID())
			}
		})
	}
}

func TestDestructuring(t *testing.T) {
	e := expr(t, "({a = 1, b: [c, , ...d], ...e} = f)")
	asg, ok := e.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("got %T", e)
	}
	pat, ok := asg.Left.(*ast.ObjectPattern)
	if !ok || len(pat.Properties) != 3 {
		t.Fatalf("left = %T", asg.Left)
	}
	first := pat.Properties[0].(*ast.ObjectProperty)
	if !first.Shorthand || first.Value.Base().Type != "AssignmentPattern" {
		t.Fatalf("first property = %+v", first)
	}
	arr := pat.Properties[1].(*ast.ObjectProperty).Value.(*ast.ArrayPattern)
	if len(arr.Elements) != 3 || arr.Elements[1] != nil || arr.Elements[2].Base().Type != "RestElement" {
		t.Fatalf("array pattern = %+v", arr.Elements)
	}
	if pat.Properties[2].Base().Type != "RestElement" {
		t.Fatalf("last property = %s", pat.Properties[2].Base().Type)
	}
}

func TestCoverGrammarErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"({a = 1})", diag.SynInvalidCoverInit},
		{"f({a = 1})", diag.SynInvalidCoverInit},
		{"({__proto__: a, __proto__: b})", diag.SynDuplicateProto},
		{"[...a, b] = c", diag.SynInvalidLHS},
		{"[...a,] = c", diag.SynInvalidLHS},
		{"({...a, b} = c)", diag.SynInvalidLHS},
		{"({get a() {}} = b)", diag.SynInvalidLHS},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parseErr(t, tt.src, parser.Options{})
			if err.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", err.Code.ID(), err.Message, tt.code.ID())
			}
		})
	}

	// both are fine once the object becomes a pattern
	parseOK(t, "({a = 1} = b)", parser.Options{})
	parseOK(t, "({__proto__: a, __proto__: b} = c)", parser.Options{})
}

func TestOptionalChains(t *testing.T) {
	e := expr(t, "a?.b.c")
	outer, ok := e.(*ast.OptionalMemberExpression)
	if !ok || outer.Optional {
		t.Fatalf("outer = %T", e)
	}
	inner, ok := outer.Object.(*ast.OptionalMemberExpression)
	if !ok || !inner.Optional {
		t.Fatalf("inner = %T", outer.Object)
	}

	call, ok := expr(t, "a?.(b)").(*ast.OptionalCallExpression)
	if !ok || !call.Optional || len(call.Arguments) != 1 {
		t.Fatal("a?.(b) should be an optional call")
	}

	if _, ok := expr(t, "a?.[0]").(*ast.OptionalMemberExpression); !ok {
		t.Fatal("a?.[0] should be an optional member")
	}

	for _, src := range []string{"a?.b`t`", "new a?.b()"} {
		if err := parseErr(t, src, parser.Options{}); err.Code != diag.SynInvalidOptionalChain {
			t.Fatalf("%q: code = %s", src, err.Code.ID())
		}
	}
}

func TestTemplates(t *testing.T) {
	lit, ok := expr(t, "`a${b}c`").(*ast.TemplateLiteral)
	if !ok {
		t.Fatal("expected a template literal")
	}
	if len(lit.Quasis) != 2 || len(lit.Expressions) != 1 {
		t.Fatalf("quasis=%d expressions=%d", len(lit.Quasis), len(lit.Expressions))
	}
	q0, q1 := lit.Quasis[0], lit.Quasis[1]
	if q0.Value.Raw != "a" || q0.Tail || q0.Start != 1 || q0.End != 2 {
		t.Fatalf("first quasi = %+v", q0)
	}
	if q1.Value.Raw != "c" || !q1.Tail || q1.Start != 6 || q1.End != 7 {
		t.Fatalf("second quasi = %+v", q1)
	}
	if q0.Value.Cooked == nil || *q0.Value.Cooked != "a" {
		t.Fatal("cooked value missing")
	}

	tagged, ok := expr(t, "tag`\\unicode`").(*ast.TaggedTemplateExpression)
	if !ok {
		t.Fatal("expected a tagged template")
	}
	if q := tagged.Quasi.Quasis[0]; q.Value.Cooked != nil || q.Value.Raw != `\unicode` {
		t.Fatalf("tagged quasi = %+v", q.Value)
	}

	plain := expr(t, "`\\xZ`").(*ast.TemplateLiteral)
	if plain.Quasis[0].Value.Cooked != nil {
		t.Fatal("invalid escape should leave cooked nil")
	}

	nested := expr(t, "`x${`y${z}`}`").(*ast.TemplateLiteral)
	if inner, ok := nested.Expressions[0].(*ast.TemplateLiteral); !ok || len(inner.Expressions) != 1 {
		t.Fatalf("nested template = %T", nested.Expressions[0])
	}
}

func TestSuperAndMetaProperties(t *testing.T) {
	tests := []struct {
		src  string
		opts parser.Options
		code diag.Code
	}{
		{"super.x", parser.Options{}, diag.SynInvalidSuper},
		{"function f() { super() }", parser.Options{}, diag.SynInvalidSuper},
		{"class A { constructor() { super() } }", parser.Options{}, diag.SynInvalidSuper},
		{"new.target", parser.Options{}, diag.SynInvalidNewTarget},
		{"() => new.target", parser.Options{}, diag.SynInvalidNewTarget},
		{"import.meta", parser.Options{}, diag.SynModuleOnly},
		{"import(a, b)", parser.Options{}, diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if err := parseErr(t, tt.src, tt.opts); err.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", err.Code.ID(), err.Message, tt.code.ID())
			}
		})
	}

	for _, src := range []string{
		"({ m() { return super.x } })",
		"class A extends B { constructor() { super() } }",
		"function f() { return () => new.target }",
		"import(a)",
	} {
		parseOK(t, src, parser.Options{})
	}
	parseOK(t, "import.meta.url", moduleOpts)
}

func TestYieldAndAwait(t *testing.T) {
	ok := []struct {
		src  string
		opts parser.Options
	}{
		{"function* g() { yield; yield a; yield* b }", parser.Options{}},
		{"async function f() { await x }", parser.Options{}},
		{"var await = 1; await", parser.Options{}},
		{"var yield = 1", parser.Options{}},
		{"await x", moduleOpts},
		{"for await (const x of y) {}", moduleOpts},
	}
	for _, tt := range ok {
		parseOK(t, tt.src, tt.opts)
	}

	bad := []struct {
		src  string
		opts parser.Options
		code diag.Code
	}{
		{"function* g() { var yield }", parser.Options{}, diag.SynReservedWord},
		{"async function f() { var await }", parser.Options{}, diag.SynReservedWord},
		{"var await", moduleOpts, diag.SynReservedWord},
		{"function* g(a = yield) {}", parser.Options{}, diag.SynYieldAwaitInParams},
		{"async function f(a = await 1) {}", parser.Options{}, diag.SynYieldAwaitInParams},
	}
	for _, tt := range bad {
		t.Run(tt.src, func(t *testing.T) {
			if err := parseErr(t, tt.src, tt.opts); err.Code != tt.code {
				t.Fatalf("code = %s (%s), want %s", err.Code.ID(), err.Message, tt.code.ID())
			}
		})
	}

	aw := body(t, parseOK(t, "await x", moduleOpts)).(*ast.ExpressionStatement)
	if shape(aw.Expression) != "(await x)" {
		t.Fatalf("top-level await = %s", shape(aw.Expression))
	}
}

func TestLiteralExtras(t *testing.T) {
	file := parseOK(t, "0x1F; 'a\\x41'; 10n", parser.Options{})
	num := file.Program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.NumericLiteral)
	if num.Value != 31 {
		t.Fatalf("value = %v", num.Value)
	}
	if x := file.Extras.Get(num); x == nil || x.Raw != "0x1F" {
		t.Fatalf("raw extra = %+v", x)
	}
	str := file.Program.Body[1].(*ast.ExpressionStatement).Expression.(*ast.StringLiteral)
	if str.Value != "aA" {
		t.Fatalf("string value = %q", str.Value)
	}
	big := file.Program.Body[2].(*ast.ExpressionStatement).Expression.(*ast.BigIntLiteral)
	if big.Value != "10" {
		t.Fatalf("bigint value = %q", big.Value)
	}
}

func TestObjectLiteral(t *testing.T) {
	obj, ok := expr(t, "({a, b: 1, [c]: 2, d() {}, get e() { return 1 }, set e(v) {}, async *f() {}, ...g, 'h': 3, 4: 5,})").(*ast.ObjectExpression)
	if !ok {
		t.Fatal("expected an object")
	}
	want := []string{"ObjectProperty", "ObjectProperty", "ObjectProperty", "ObjectMethod", "ObjectMethod", "ObjectMethod", "ObjectMethod", "SpreadElement", "ObjectProperty", "ObjectProperty"}
	got := make([]string, len(obj.Properties))
	for i, p := range obj.Properties {
		got[i] = p.Base().Type
	}
	if !sameStrings(got, want) {
		t.Fatalf("members = %v", got)
	}
	getter := obj.Properties[4].(*ast.ObjectMethod)
	if getter.Kind != "get" || getter.Method {
		t.Fatalf("getter kind=%s method=%v", getter.Kind, getter.Method)
	}
	gen := obj.Properties[6].(*ast.ObjectMethod)
	if !gen.Async || !gen.Generator {
		t.Fatal("async generator flags lost")
	}
	if !obj.Properties[2].(*ast.ObjectProperty).Computed {
		t.Fatal("computed flag lost")
	}

	for _, src := range []string{"({get a(b) {}})", "({set a() {}})", "({set a(...b) {}})"} {
		if err := parseErr(t, src, parser.Options{}); err.Code != diag.SynInvalidParameters {
			t.Fatalf("%q: code = %s", src, err.Code.ID())
		}
	}
}
