package lexer

import (
	"strings"

	"esparse/internal/diag"
	"esparse/internal/token"
)

const regexpFlags = "dgimsuyv"

// readRegexp reads /body/flags with Pos on the opening slash. The body is
// not validated beyond finding its end; '/' inside a class does not close it.
func (lx *Lexer) readRegexp() {
	s := lx.s
	start := s.Pos
	s.Pos++
	escaped, inClass := false, false
scan:
	for {
		if s.Pos >= len(lx.src) || terminatorAt(lx.src, s.Pos) > 0 {
			lx.Fail(diag.LexUnterminatedRegexp, start, "Unterminated regular expression")
		}
		c := lx.src[s.Pos]
		if escaped {
			escaped = false
		} else {
			switch c {
			case '[':
				inClass = true
			case ']':
				inClass = false
			case '/':
				if !inClass {
					break scan
				}
			case '\\':
				escaped = true
			}
		}
		s.Pos++
	}
	pattern := lx.src[start+1 : s.Pos]
	s.Pos++

	flagsStart := s.Pos
	for s.Pos < len(lx.src) {
		cp, size := lx.codePointAt(s.Pos)
		if cp == '\\' {
			lx.Fail(diag.LexInvalidRegexpFlags, s.Pos, "Regular expression flags cannot contain escapes")
		}
		if !IsIdentifierChar(cp) {
			break
		}
		if !strings.ContainsRune(regexpFlags, cp) {
			lx.Fail(diag.LexInvalidRegexpFlags, s.Pos, "Invalid regular expression flag")
		}
		if strings.ContainsRune(lx.src[flagsStart:s.Pos], cp) {
			lx.Fail(diag.LexInvalidRegexpFlags, s.Pos, "Duplicate regular expression flag")
		}
		s.Pos += size
	}
	lx.FinishToken(token.Regexp, token.RegExpValue{Pattern: pattern, Flags: lx.src[flagsStart:s.Pos]})
}
