package lexer

import (
	"strings"
	"unicode/utf8"

	"esparse/internal/diag"
	"esparse/internal/token"
)

func (lx *Lexer) readString(quote byte) {
	s := lx.s
	start := s.Pos
	s.Pos++
	var out strings.Builder
	chunk := s.Pos
	for {
		if s.Pos >= len(lx.src) {
			lx.Fail(diag.LexUnterminatedString, start, "Unterminated string constant")
		}
		c := lx.src[s.Pos]
		switch {
		case c == quote:
			out.WriteString(lx.src[chunk:s.Pos])
			s.Pos++
			lx.FinishToken(token.String, out.String())
			return
		case c == '\\':
			out.WriteString(lx.src[chunk:s.Pos])
			lx.readEscapedChar(&out, false)
			chunk = s.Pos
		case c == '\n' || c == '\r':
			lx.Fail(diag.LexUnterminatedString, start, "Unterminated string constant")
		case c == 0xE2 && terminatorAt(lx.src, s.Pos) == 3:
			// U+2028 and U+2029 are allowed in string literals
			s.Pos += 3
			lx.newline()
		default:
			s.Pos++
		}
	}
}

// readEscapedChar decodes the escape sequence at Pos (on the backslash) into
// out. Inside templates an escape that is only legal in tagged templates
// returns false instead of failing; Pos is then past the bad sequence.
func (lx *Lexer) readEscapedChar(out *strings.Builder, inTemplate bool) bool {
	s := lx.s
	escStart := s.Pos
	s.Pos++
	if s.Pos >= len(lx.src) {
		return true
	}
	c := lx.src[s.Pos]
	switch c {
	case 'n':
		out.WriteByte('\n')
	case 'r':
		out.WriteByte('\r')
	case 't':
		out.WriteByte('\t')
	case 'b':
		out.WriteByte('\b')
	case 'v':
		out.WriteByte('\v')
	case 'f':
		out.WriteByte('\f')
	case 'x':
		s.Pos++
		code, ok := lx.readHex(2)
		if !ok {
			if inTemplate {
				return false
			}
			lx.Fail(diag.LexInvalidEscape, escStart, "Bad character escape sequence")
		}
		out.WriteRune(rune(code))
		return true
	case 'u':
		s.Pos++
		code, bad := lx.readCodePoint()
		if bad != 0 {
			if inTemplate {
				return false
			}
			lx.Fail(bad, escStart, "%s", bad.Title())
		}
		out.WriteRune(lx.joinSurrogates(code))
		return true
	case '\r', '\n':
		lx.skipTerminator()
		return true
	case '8', '9':
		if inTemplate {
			s.Pos++
			return false
		}
		lx.noteLegacyOctal(escStart, "The only valid numeric escape in strict mode is '\\0'")
		out.WriteByte(c)
	default:
		if isOctalDigit(c) {
			return lx.readOctalEscape(out, escStart, inTemplate)
		}
		if c >= utf8.RuneSelf {
			if lx.skipTerminator() {
				// line continuation
				return true
			}
			r, size := utf8.DecodeRuneInString(lx.src[s.Pos:])
			out.WriteRune(r)
			s.Pos += size
			return true
		}
		out.WriteByte(c)
	}
	s.Pos++
	return true
}

// readOctalEscape reads up to three octal digits with a value <= 0377.
func (lx *Lexer) readOctalEscape(out *strings.Builder, escStart int, inTemplate bool) bool {
	s := lx.s
	end := s.Pos
	for end < len(lx.src) && end < s.Pos+3 && isOctalDigit(lx.src[end]) {
		end++
	}
	digits := lx.src[s.Pos:end]
	val := 0
	for i := 0; i < len(digits); i++ {
		val = val*8 + int(digits[i]-'0')
	}
	if val > 0377 {
		digits = digits[:len(digits)-1]
		val >>= 3
	}
	s.Pos += len(digits)
	if next := lx.peek(0); digits != "0" || next == '8' || next == '9' {
		if inTemplate {
			return false
		}
		lx.noteLegacyOctal(escStart, "Octal escape sequences are not allowed in strict mode")
	}
	out.WriteRune(rune(val))
	return true
}

// readHex reads exactly n hex digits.
func (lx *Lexer) readHex(n int) (int, bool) {
	s := lx.s
	val := 0
	for i := 0; i < n; i++ {
		if s.Pos >= len(lx.src) {
			return 0, false
		}
		d := digitVal(lx.src[s.Pos])
		if d >= 16 {
			return 0, false
		}
		val = val*16 + d
		s.Pos++
	}
	return val, true
}

// readCodePoint reads XXXX or {X...} after "\u". On failure the code tells
// which error applies.
func (lx *Lexer) readCodePoint() (int, diag.Code) {
	s := lx.s
	if lx.peek(0) != '{' {
		code, ok := lx.readHex(4)
		if !ok {
			return 0, diag.LexInvalidEscape
		}
		return code, 0
	}
	s.Pos++
	val, n := 0, 0
	for s.Pos < len(lx.src) && lx.src[s.Pos] != '}' {
		d := digitVal(lx.src[s.Pos])
		if d >= 16 {
			return 0, diag.LexInvalidEscape
		}
		if val <= 0x10FFFF {
			val = val*16 + d
		}
		n++
		s.Pos++
	}
	if n == 0 || s.Pos >= len(lx.src) {
		return 0, diag.LexInvalidEscape
	}
	s.Pos++ // '}'
	if val > 0x10FFFF {
		return 0, diag.LexInvalidCodePoint
	}
	return val, 0
}

// joinSurrogates combines a \u high surrogate with an immediately following
// \u low surrogate. Unpaired surrogates are not representable in UTF-8 and
// become U+FFFD when written.
func (lx *Lexer) joinSurrogates(code int) rune {
	if code < 0xD800 || code > 0xDBFF {
		return rune(code)
	}
	s := lx.s
	if lx.peek(0) != '\\' || lx.peek(1) != 'u' {
		return rune(code)
	}
	save := s.Pos
	s.Pos += 2
	low, ok := lx.readHex(4)
	if !ok || low < 0xDC00 || low > 0xDFFF {
		s.Pos = save
		return rune(code)
	}
	return rune((code-0xD800)<<10 + (low - 0xDC00) + 0x10000)
}
