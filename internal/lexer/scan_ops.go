package lexer

import (
	"esparse/internal/diag"
	"esparse/internal/token"
)

// readToken dispatches on the first code point of a token.
func (lx *Lexer) readToken(cp rune) {
	s := lx.s
	switch cp {
	case '(':
		lx.finishPunct(token.LParen)
	case ')':
		lx.finishPunct(token.RParen)
	case ';':
		lx.finishPunct(token.Semicolon)
	case ',':
		lx.finishPunct(token.Comma)
	case '[':
		lx.finishPunct(token.LBracket)
	case ']':
		lx.finishPunct(token.RBracket)
	case ':':
		lx.finishPunct(token.Colon)
	case '@':
		lx.finishPunct(token.At)
	case '{':
		s.CurContext().Braces++
		lx.finishPunct(token.LBrace)
	case '}':
		lx.readRBrace()
	case '.':
		lx.readDot()
	case '?':
		lx.readQuestion()
	case '`':
		lx.readTemplateToken()
	case '0':
		switch lx.peek(1) {
		case 'x', 'X':
			lx.readRadixNumber(16)
		case 'o', 'O':
			lx.readRadixNumber(8)
		case 'b', 'B':
			lx.readRadixNumber(2)
		default:
			lx.readNumber(false)
		}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		lx.readNumber(false)
	case '"', '\'':
		lx.readString(byte(cp))
	case '/':
		if s.ExprAllowed {
			lx.readRegexp()
		} else if lx.peek(1) == '=' {
			lx.finishOp(token.DivAssign, 2)
		} else {
			lx.finishOp(token.Slash, 1)
		}
	case '%':
		lx.readOpEq(token.Percent, token.ModAssign)
	case '*':
		lx.readStar()
	case '|':
		lx.readDoubled('|', token.Pipe, token.OrAssign, token.LogicalOr, token.LogicalOrAssign)
	case '&':
		lx.readDoubled('&', token.Amp, token.AndAssign, token.LogicalAnd, token.LogicalAndAssign)
	case '^':
		lx.readOpEq(token.Caret, token.XorAssign)
	case '+':
		lx.readPlusMinus('+', token.Plus, token.AddAssign, token.Inc)
	case '-':
		lx.readPlusMinus('-', token.Minus, token.SubAssign, token.Dec)
	case '<':
		lx.readLt()
	case '>':
		lx.readGt()
	case '=':
		if lx.peek(1) == '>' {
			lx.finishOp(token.Arrow, 2)
			return
		}
		lx.readEquality(token.Assign, token.Eq, token.StrictEq)
	case '!':
		lx.readEquality(token.Bang, token.NotEq, token.StrictNotEq)
	case '~':
		lx.finishOp(token.Tilde, 1)
	case '#':
		if s.Pos == 0 && lx.peek(1) == '!' {
			lx.readInterpreterDirective()
			return
		}
		lx.readPrivateName()
	case '\\':
		lx.readWord()
	default:
		if IsIdentifierStart(cp) {
			lx.readWord()
			return
		}
		lx.Fail(diag.LexUnexpectedChar, s.Pos, "Unexpected character '%c'", cp)
	}
}

func (lx *Lexer) finishPunct(kind token.Kind) {
	lx.s.Pos++
	lx.FinishToken(kind, nil)
}

func (lx *Lexer) finishOp(kind token.Kind, size int) {
	s := lx.s
	text := lx.src[s.Pos : s.Pos+size]
	s.Pos += size
	lx.FinishToken(kind, text)
}

// readRBrace closes a brace, or an interpolation when no brace opened
// inside it is still open.
func (lx *Lexer) readRBrace() {
	s := lx.s
	ctx := s.CurContext()
	if ctx.Braces > 0 || len(s.Context) == 1 {
		if ctx.Braces > 0 {
			ctx.Braces--
		}
		lx.finishPunct(token.RBrace)
		return
	}
	top := lx.PopContext()
	if top.Kind == CtxInterpolation {
		lx.readTemplateToken()
		return
	}
	lx.finishPunct(token.RBrace)
}

func (lx *Lexer) readDot() {
	switch {
	case isDigit(lx.peek(1)):
		lx.readNumber(true)
	case lx.peek(1) == '.' && lx.peek(2) == '.':
		lx.finishOp(token.Ellipsis, 3)
	default:
		lx.finishPunct(token.Dot)
	}
}

func (lx *Lexer) readQuestion() {
	next, next2 := lx.peek(1), lx.peek(2)
	switch {
	case next == '?' && next2 == '=':
		lx.finishOp(token.NullishAssign, 3)
	case next == '?':
		lx.finishOp(token.Nullish, 2)
	case next == '.' && !isDigit(next2):
		// a?.5:1 is a conditional
		lx.finishOp(token.QuestionDot, 2)
	default:
		lx.finishPunct(token.Question)
	}
}

func (lx *Lexer) readOpEq(plain, assign token.Kind) {
	if lx.peek(1) == '=' {
		lx.finishOp(assign, 2)
		return
	}
	lx.finishOp(plain, 1)
}

func (lx *Lexer) readStar() {
	if lx.peek(1) == '*' {
		if lx.peek(2) == '=' {
			lx.finishOp(token.ExpAssign, 3)
			return
		}
		lx.finishOp(token.Exp, 2)
		return
	}
	lx.readOpEq(token.Star, token.MulAssign)
}

// readDoubled handles | || |= ||= and the '&' family.
func (lx *Lexer) readDoubled(c byte, single, singleAssign, double, doubleAssign token.Kind) {
	if lx.peek(1) == c {
		if lx.peek(2) == '=' {
			lx.finishOp(doubleAssign, 3)
			return
		}
		lx.finishOp(double, 2)
		return
	}
	lx.readOpEq(single, singleAssign)
}

func (lx *Lexer) readPlusMinus(c byte, plain, assign, update token.Kind) {
	if lx.peek(1) == c {
		lx.finishOp(update, 2)
		return
	}
	lx.readOpEq(plain, assign)
}

func (lx *Lexer) readLt() {
	if lx.peek(1) == '<' {
		if lx.peek(2) == '=' {
			lx.finishOp(token.ShlAssign, 3)
			return
		}
		lx.finishOp(token.Shl, 2)
		return
	}
	lx.readOpEq(token.Lt, token.LtEq)
}

func (lx *Lexer) readGt() {
	if lx.peek(1) == '>' {
		if lx.peek(2) == '>' {
			if lx.peek(3) == '=' {
				lx.finishOp(token.UShrAssign, 4)
				return
			}
			lx.finishOp(token.UShr, 3)
			return
		}
		if lx.peek(2) == '=' {
			lx.finishOp(token.ShrAssign, 3)
			return
		}
		lx.finishOp(token.Shr, 2)
		return
	}
	lx.readOpEq(token.Gt, token.GtEq)
}

// readEquality handles = == === and ! != !==.
func (lx *Lexer) readEquality(plain, eq, strictEq token.Kind) {
	if lx.peek(1) == '=' {
		if lx.peek(2) == '=' {
			lx.finishOp(strictEq, 3)
			return
		}
		lx.finishOp(eq, 2)
		return
	}
	lx.finishOp(plain, 1)
}
