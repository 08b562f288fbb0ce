package lexer

import (
	"fmt"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/source"
	"esparse/internal/token"
)

// Options configure a Lexer.
type Options struct {
	// HTMLComments recognises "<!--" and a line-leading "-->" as line
	// comments. Only valid for the script goal.
	HTMLComments bool
	// Strict starts in strict mode code.
	Strict bool
	// Tokens keeps a log of every produced token, see Lexer.Tokens.
	Tokens bool
	// Readers are consulted before the built-in dispatch.
	Readers []TokenReader
}

// TokenReader lets an extension lex its own tokens. ReadToken reports false
// to decline; when it accepts it must end with FinishToken.
type TokenReader interface {
	ReadToken(lx *Lexer, cp rune) bool
}

// Lexer turns source text into tokens one at a time. All mutable state is in
// State; the comment and token logs are append-only and are truncated back
// when an older state is restored.
type Lexer struct {
	src      string
	opts     Options
	s        *State
	comments []*ast.Comment
	tokens   []token.Token
}

func New(src string, opts Options) *Lexer {
	st := NewState(opts.Strict)
	start := source.NewPosition(1, 0, 0)
	st.Tok.Loc = source.Location{Start: start, End: start}
	return &Lexer{src: src, opts: opts, s: st}
}

// State returns the live state.
func (lx *Lexer) State() *State { return lx.s }

// Tok returns the current token.
func (lx *Lexer) Tok() token.Token { return lx.s.Tok }

func (lx *Lexer) Source() string { return lx.src }

func (lx *Lexer) Options() Options { return lx.opts }

// Comments returns every comment read so far, in source order.
func (lx *Lexer) Comments() []*ast.Comment { return lx.comments }

// Tokens returns the token log. It is empty unless Options.Tokens is set.
func (lx *Lexer) Tokens() []token.Token { return lx.tokens }

// Snapshot returns a detached copy of the current state.
func (lx *Lexer) Snapshot() *State { return lx.s.Clone() }

// Restore makes a copy of st the live state and drops log entries recorded
// after it was taken.
func (lx *Lexer) Restore(st *State) {
	lx.s = st.Clone()
	lx.comments = lx.comments[:lx.s.commentCount]
	lx.tokens = lx.tokens[:lx.s.tokenCount]
}

type lexFailure struct {
	err *diag.Error
}

func catch(err *error) {
	if r := recover(); r != nil {
		f, ok := r.(lexFailure)
		if !ok {
			panic(r)
		}
		*err = f.err
	}
}

// Fail aborts the current Next call with an error at offset off.
func (lx *Lexer) Fail(code diag.Code, off int, format string, args ...any) {
	panic(lexFailure{diag.NewError(code, lx.PositionAt(off), fmt.Sprintf(format, args...))})
}

// Next advances to the next token. On error the state is left at the
// failing token and the error is a *diag.Error.
func (lx *Lexer) Next() (err error) {
	defer catch(&err)
	s := lx.s
	prev := s.Tok.Kind
	s.LastTokStart = s.Tok.Start
	s.LastTokEnd = s.Tok.End
	s.LastTokEndLoc = s.Tok.Loc.End
	// A keyword after '.' or '?.' is a property name, so an operator follows.
	propName := prev.IsKeyword() && (s.LastTokKind == token.Dot || s.LastTokKind == token.QuestionDot)
	s.LastTokKind = prev
	s.ExprAllowed = !propName && (prev == token.Invalid || prev == token.InterpreterDirective || prev.BeforeExpr())
	lx.nextToken()
	return nil
}

// Lookahead returns the state after one more token without moving.
func (lx *Lexer) Lookahead() (*State, error) {
	saved := lx.Snapshot()
	err := lx.Next()
	next := lx.s
	lx.Restore(saved)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// RescanRegexp re-reads the current '/' or '/=' token as a regular
// expression. The parser calls it when such a token appears where an
// expression must start.
func (lx *Lexer) RescanRegexp() (err error) {
	defer catch(&err)
	s := lx.s
	if s.Tok.Kind != token.Slash && s.Tok.Kind != token.DivAssign {
		return nil
	}
	if lx.opts.Tokens && len(lx.tokens) > 0 {
		lx.tokens = lx.tokens[:len(lx.tokens)-1]
		s.tokenCount = len(lx.tokens)
	}
	s.Pos = s.Tok.Start
	lx.readRegexp()
	return nil
}

// CanInsertSemicolon reports whether automatic semicolon insertion applies
// before the current token.
func (lx *Lexer) CanInsertSemicolon() bool {
	k := lx.s.Tok.Kind
	return k == token.EOF || k == token.RBrace || lx.s.HadLineBreak
}

// PushContext and PopContext manage tag frames for extensions.
func (lx *Lexer) PushContext(c Context) {
	lx.s.Context = append(lx.s.Context, c)
}

func (lx *Lexer) PopContext() Context {
	s := lx.s
	if len(s.Context) == 1 {
		return s.Context[0]
	}
	top := s.Context[len(s.Context)-1]
	s.Context = s.Context[:len(s.Context)-1]
	return top
}

func (lx *Lexer) nextToken() {
	s := lx.s
	s.HadLineBreak = false
	if !s.CurContext().PreserveSpace {
		lx.skipSpace()
	}
	s.ContainsEsc = false
	s.Tok.Start = s.Pos
	s.Tok.Value = nil
	s.Tok.Loc = source.Location{Start: s.CurPosition()}
	if s.Pos >= len(lx.src) {
		lx.FinishToken(token.EOF, nil)
		return
	}
	cp, _ := lx.codePointAt(s.Pos)
	for _, r := range lx.opts.Readers {
		if r.ReadToken(lx, cp) {
			return
		}
	}
	lx.readToken(cp)
}

// FinishToken completes the current token at the cursor.
func (lx *Lexer) FinishToken(kind token.Kind, value any) {
	s := lx.s
	s.Tok.Kind = kind
	s.Tok.Value = value
	s.Tok.End = s.Pos
	s.Tok.Loc.End = s.CurPosition()
	if lx.opts.Tokens {
		if kind != token.EOF || len(lx.tokens) == 0 || lx.tokens[len(lx.tokens)-1].Kind != token.EOF {
			lx.tokens = append(lx.tokens, s.Tok)
		}
		s.tokenCount = len(lx.tokens)
	}
}

// Pos returns the cursor offset.
func (lx *Lexer) Pos() int { return lx.s.Pos }

// Advance moves the cursor n bytes forward on the current line.
func (lx *Lexer) Advance(n int) { lx.s.Pos += n }

// PositionAt converts a byte offset into a Position.
func (lx *Lexer) PositionAt(off int) source.Position {
	s := lx.s
	if off >= s.LineStart && off <= len(lx.src) {
		return source.NewPosition(s.CurLine, off-s.LineStart, off)
	}
	line, start := 1, 0
	for i := 0; i < off && i < len(lx.src); {
		if size := terminatorAt(lx.src, i); size > 0 {
			i += size
			line++
			start = i
			continue
		}
		i++
	}
	return source.NewPosition(line, off-start, off)
}

// Tokenize lexes src to the end without a parser. Slashes are read as
// regular expressions wherever the previous token allows an expression.
func Tokenize(src string, opts Options) ([]token.Token, []*ast.Comment, error) {
	opts.Tokens = true
	lx := New(src, opts)
	for {
		if err := lx.Next(); err != nil {
			return lx.tokens, lx.comments, err
		}
		if lx.s.Tok.Kind == token.EOF {
			return lx.tokens, lx.comments, nil
		}
	}
}
