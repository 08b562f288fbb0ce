package parser

import (
	"context"
	"errors"
	"fmt"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/lexer"
	"esparse/internal/source"
	"esparse/internal/token"
	"esparse/internal/trace"
)

// SourceType is the goal symbol of a parse.
type SourceType string

const (
	SourceScript SourceType = "script"
	SourceModule SourceType = "module"
)

// ParseSourceType accepts "script" and "module"; the empty string is script.
func ParseSourceType(s string) (SourceType, error) {
	switch s {
	case "", string(SourceScript):
		return SourceScript, nil
	case string(SourceModule):
		return SourceModule, nil
	}
	return "", fmt.Errorf("unknown source type %q (want script or module)", s)
}

// Options configure a single parse. The zero value parses a sloppy-mode script.
type Options struct {
	SourceType SourceType
	// Strict starts in strict mode code. Modules are always strict.
	Strict                     bool
	AllowReturnOutsideFunction bool
	// AllowHTMLComments enables "<!--" and "-->" comments in scripts.
	AllowHTMLComments bool
	// Tokens fills File.Tokens.
	Tokens     bool
	Extensions []Extension
	// Tracer receives file, statement and expression spans. When nil the
	// tracer of the ParseFile context is used.
	Tracer trace.Tracer
}

func (o Options) module() bool { return o.SourceType == SourceModule }

// Parser is the state of one parse. It is not safe for concurrent use and is
// discarded after Parse returns.
type Parser struct {
	lx     *lexer.Lexer
	opts   Options
	extras *ast.Extras
	fn     funcState

	// potentialArrowAt is the start of the expression that may still turn
	// out to be an arrow function head.
	potentialArrowAt int
	// noArrowAt remembers '(' offsets whose arrow head attempt failed.
	noArrowAt  map[int]bool
	classDepth int
	// exports holds the names exported so far by a module.
	exports map[string]bool

	atoms []AtomParser
	stmts []StatementParser

	tracer trace.Tracer
	spans  []uint64
	gid    uint64
}

// funcState is saved and restored around every function body.
type funcState struct {
	inFunction     bool
	generator      bool
	async          bool
	inParams       bool
	allowSuper     bool
	allowSuperCall bool
	allowNewTarget bool
	// staticBlock forbids await and arguments-like constructs in class
	// static blocks.
	staticBlock bool
}

type bailout struct {
	err *diag.Error
}

// Parse parses input into a File. On failure it returns a *diag.Error and no
// tree.
func Parse(input string, opts Options) (*ast.File, error) {
	return newParser(input, opts).run()
}

// ParseFile parses the content of f. The context is consulted for
// cancellation before the parse starts and supplies the tracer when
// opts.Tracer is nil.
func ParseFile(ctx context.Context, f *source.File, opts Options) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	p := newParser(string(f.Content), opts)
	if sc := trace.CurrentSpan(ctx); sc.SpanID != 0 {
		p.spans = append(p.spans, sc.SpanID)
	}
	return p.run()
}

func newParser(input string, opts Options) *Parser {
	if opts.SourceType == "" {
		opts.SourceType = SourceScript
	}
	strict := opts.Strict || opts.module()
	var readers []lexer.TokenReader
	p := &Parser{
		opts:             opts,
		extras:           ast.NewExtras(),
		potentialArrowAt: -1,
		noArrowAt:        make(map[int]bool),
		exports:          make(map[string]bool),
		tracer:           opts.Tracer,
	}
	if p.tracer == nil {
		p.tracer = trace.Nop
	}
	for _, ext := range opts.Extensions {
		if a, ok := ext.(AtomParser); ok {
			p.atoms = append(p.atoms, a)
		}
		if s, ok := ext.(StatementParser); ok {
			p.stmts = append(p.stmts, s)
		}
		if r, ok := ext.(lexer.TokenReader); ok {
			readers = append(readers, r)
		}
	}
	p.lx = lexer.New(input, lexer.Options{
		HTMLComments: opts.AllowHTMLComments && !opts.module(),
		Strict:       strict,
		Tokens:       opts.Tokens,
		Readers:      readers,
	})
	return p
}

func (p *Parser) run() (file *ast.File, err error) {
	span := p.beginSpan(trace.ScopeFile, "parse")
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			if span != nil {
				span.WithExtra("error", b.err.Message).End("error")
			}
			file, err = nil, b.err
		}
	}()
	file = p.parseTopLevel()
	if span != nil {
		span.WithExtra("nodes", fmt.Sprint(ast.Count(file))).End("ok")
	}
	return file, nil
}

// Lexer exposes the tokenizer to extensions.
func (p *Parser) Lexer() *lexer.Lexer { return p.lx }

// Extras returns the side-table of the tree being built.
func (p *Parser) Extras() *ast.Extras { return p.extras }

func (p *Parser) state() *lexer.State { return p.lx.State() }

func (p *Parser) tok() token.Token { return p.lx.State().Tok }

func (p *Parser) at(k token.Kind) bool { return p.lx.State().Tok.Kind == k }

// isContextual reports whether the current token is the unescaped name word.
func (p *Parser) isContextual(word string) bool {
	s := p.state()
	return s.Tok.Is(word) && !s.ContainsEsc
}

func (p *Parser) strict() bool { return p.state().Strict }

// Next advances to the next token and aborts the parse on a lexical error.
func (p *Parser) Next() {
	if err := p.lx.Next(); err != nil {
		p.fail(err)
	}
}

func (p *Parser) fail(err error) {
	var de *diag.Error
	if !errors.As(err, &de) {
		de = diag.NewError(diag.UnknownCode, p.tok().Loc.Start, err.Error())
	}
	panic(bailout{de})
}

// Eat consumes the current token when it has kind k.
func (p *Parser) Eat(k token.Kind) bool {
	if p.at(k) {
		p.Next()
		return true
	}
	return false
}

// Expect consumes a token of kind k or aborts.
func (p *Parser) Expect(k token.Kind) {
	if !p.Eat(k) {
		p.unexpected(k)
	}
}

func (p *Parser) eatContextual(word string) bool {
	if p.isContextual(word) {
		p.Next()
		return true
	}
	return false
}

func (p *Parser) expectContextual(word string) {
	if !p.eatContextual(word) {
		p.raise(diag.SynExpectedToken, p.tok().Start, "Unexpected token, expected %q", word)
	}
}

// Raise aborts the parse with a syntax error at offset off.
func (p *Parser) Raise(code diag.Code, off int, format string, args ...any) {
	p.raise(code, off, format, args...)
}

func (p *Parser) raise(code diag.Code, off int, format string, args ...any) {
	panic(bailout{diag.NewError(code, p.lx.PositionAt(off), fmt.Sprintf(format, args...))})
}

// unexpected reports the current token, naming the expected kind if any.
func (p *Parser) unexpected(expected ...token.Kind) {
	t := p.tok()
	if len(expected) > 0 {
		p.raise(diag.SynExpectedToken, t.Start, "Unexpected token, expected %q", expected[0].String())
	}
	p.unexpectedAt(t)
}

func (p *Parser) unexpectedAt(t token.Token) {
	switch t.Kind {
	case token.EOF:
		p.raise(diag.SynUnexpectedToken, t.Start, "Unexpected end of input")
	case token.Name, token.PrivateName:
		p.raise(diag.SynUnexpectedToken, t.Start, "Unexpected token %q", t.Text())
	default:
		if t.Kind.IsKeyword() {
			p.raise(diag.SynReservedWord, t.Start, "Unexpected keyword '%s'", t.Kind)
		}
		p.raise(diag.SynUnexpectedToken, t.Start, "Unexpected token")
	}
}

// CanInsertSemicolon reports whether a statement may end before the current
// token.
func (p *Parser) CanInsertSemicolon() bool { return p.lx.CanInsertSemicolon() }

func (p *Parser) isLineTerminator() bool {
	return p.Eat(token.Semicolon) || p.CanInsertSemicolon()
}

// Semicolon ends a statement, explicitly or by insertion.
func (p *Parser) Semicolon() {
	if !p.isLineTerminator() {
		p.raise(diag.SynMissingSemicolon, p.state().LastTokEnd, "Missing semicolon.")
	}
}

// lookahead returns the state after the current token.
func (p *Parser) lookahead() *lexer.State {
	next, err := p.lx.Lookahead()
	if err != nil {
		p.fail(err)
	}
	return next
}

// tryParse runs fn against the live state. If fn aborts, every piece of
// parser and lexer state is put back and the error is returned.
func (p *Parser) tryParse(fn func()) (err *diag.Error) {
	saved := p.lx.Snapshot()
	fs, arrowAt, classDepth, spans := p.fn, p.potentialArrowAt, p.classDepth, len(p.spans)
	extras := p.extras.Mark()
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.extras.Rollback(extras)
			p.lx.Restore(saved)
			p.fn, p.potentialArrowAt, p.classDepth = fs, arrowAt, classDepth
			p.spans = p.spans[:spans]
			err = b.err
		}
	}()
	fn()
	p.extras.Release()
	return nil
}

func (p *Parser) beginSpan(scope trace.Scope, name string) *trace.Span {
	if !p.tracer.Enabled() || !p.tracer.Level().ShouldEmit(scope) {
		return nil
	}
	var parent uint64
	if len(p.spans) > 0 {
		parent = p.spans[len(p.spans)-1]
	}
	if p.gid == 0 {
		p.gid = trace.GoroutineID()
	}
	sp := trace.BeginOn(p.tracer, scope, name, parent, p.gid)
	p.spans = append(p.spans, sp.ID())
	return sp
}

func (p *Parser) endSpan(sp *trace.Span, n ast.Node) {
	if sp == nil {
		return
	}
	p.spans = p.spans[:len(p.spans)-1]
	b := n.Base()
	sp.WithExtra("start", fmt.Sprint(b.Start)).WithExtra("end", fmt.Sprint(b.End)).End(b.Type)
}
