package lexer

import (
	"strings"

	"esparse/internal/diag"
	"esparse/internal/token"
)

// readWord1 reads an identifier name, decoding \u escapes.
func (lx *Lexer) readWord1() string {
	s := lx.s
	var b strings.Builder
	chunk := s.Pos
	first := true
	for s.Pos < len(lx.src) {
		cp, size := lx.codePointAt(s.Pos)
		switch {
		case (first && IsIdentifierStart(cp)) || (!first && IsIdentifierChar(cp)):
			s.Pos += size
		case cp == '\\':
			s.ContainsEsc = true
			b.WriteString(lx.src[chunk:s.Pos])
			escStart := s.Pos
			if lx.peek(1) != 'u' {
				lx.Fail(diag.LexInvalidIdentEscape, escStart, "Expecting Unicode escape sequence \\uXXXX")
			}
			s.Pos += 2
			code, bad := lx.readCodePoint()
			if bad != 0 {
				lx.Fail(diag.LexInvalidIdentEscape, escStart, "Invalid Unicode escape")
			}
			r := rune(code)
			if (first && !IsIdentifierStart(r)) || (!first && !IsIdentifierChar(r)) {
				lx.Fail(diag.LexInvalidIdentEscape, escStart, "Invalid Unicode escape")
			}
			b.WriteRune(r)
			chunk = s.Pos
		default:
			b.WriteString(lx.src[chunk:s.Pos])
			return b.String()
		}
		first = false
	}
	b.WriteString(lx.src[chunk:s.Pos])
	return b.String()
}

// readWord reads an identifier or keyword. A word spelled with escapes is
// always a Name token.
func (lx *Lexer) readWord() {
	word := lx.readWord1()
	if kw, ok := token.LookupKeyword(word); ok && !lx.s.ContainsEsc {
		lx.FinishToken(kw, word)
		return
	}
	lx.FinishToken(token.Name, word)
}

func (lx *Lexer) readPrivateName() {
	s := lx.s
	start := s.Pos
	s.Pos++ // '#'
	cp, _ := lx.codePointAt(s.Pos)
	if !IsIdentifierStart(cp) && cp != '\\' {
		lx.Fail(diag.LexUnexpectedChar, start, "Unexpected character '#'")
	}
	lx.FinishToken(token.PrivateName, lx.readWord1())
}

func (lx *Lexer) readInterpreterDirective() {
	s := lx.s
	s.Pos = 2
	for s.Pos < len(lx.src) && terminatorAt(lx.src, s.Pos) == 0 {
		s.Pos++
	}
	lx.FinishToken(token.InterpreterDirective, lx.src[2:s.Pos])
}
