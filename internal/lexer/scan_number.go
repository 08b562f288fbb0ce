package lexer

import (
	"errors"
	"strconv"
	"strings"

	"esparse/internal/diag"
	"esparse/internal/token"
)

// readDigits consumes digits of the given radix with '_' separators and
// returns their value and count. Separators may not lead, trail or repeat.
func (lx *Lexer) readDigits(radix int) (float64, int) {
	s := lx.s
	total := 0.0
	n := 0
	prevSep := false
	for s.Pos < len(lx.src) {
		c := lx.src[s.Pos]
		if c == '_' {
			if n == 0 || prevSep {
				lx.Fail(diag.LexNumericSeparator, s.Pos, "A numeric separator is only allowed between two digits")
			}
			prevSep = true
			s.Pos++
			continue
		}
		d := digitVal(c)
		if d >= radix {
			break
		}
		total = total*float64(radix) + float64(d)
		n++
		prevSep = false
		s.Pos++
	}
	if prevSep {
		lx.Fail(diag.LexNumericSeparator, s.Pos-1, "A numeric separator is only allowed between two digits")
	}
	return total, n
}

// readRadixNumber reads 0x, 0o and 0b literals.
func (lx *Lexer) readRadixNumber(radix int) {
	s := lx.s
	start := s.Pos
	s.Pos += 2
	val, n := lx.readDigits(radix)
	if n == 0 {
		lx.Fail(diag.LexInvalidNumber, start+2, "Expected number in radix %d", radix)
	}
	if lx.peek(0) == 'n' {
		s.Pos++
		lx.checkNumberEnd()
		lx.FinishToken(token.BigInt, bigIntDigits(lx.src[start:s.Pos]))
		return
	}
	lx.checkNumberEnd()
	lx.FinishToken(token.Num, val)
}

// readNumber reads decimal literals, including legacy octal "0755" and
// legacy decimals such as "0789".
func (lx *Lexer) readNumber(startsWithDot bool) {
	s := lx.s
	start := s.Pos
	if !startsWithDot {
		lx.readDigits(10)
	}
	octal := false
	hasLeadingZero := !startsWithDot && s.Pos-start >= 2 && lx.src[start] == '0'
	if hasLeadingZero {
		integer := lx.src[start:s.Pos]
		if strings.IndexByte(integer, '_') >= 0 {
			lx.Fail(diag.LexNumericSeparator, start, "Numeric separators are not allowed after a leading zero")
		}
		octal = !strings.ContainsAny(integer, "89")
		lx.noteLegacyOctal(start, "Legacy octal literals are not allowed in strict mode")
	}
	isFloat := false
	if startsWithDot || (lx.peek(0) == '.' && !octal) {
		s.Pos++
		lx.readDigits(10)
		isFloat = true
	}
	if c := lx.peek(0); (c == 'e' || c == 'E') && !octal {
		s.Pos++
		if c := lx.peek(0); c == '+' || c == '-' {
			s.Pos++
		}
		if _, n := lx.readDigits(10); n == 0 {
			lx.Fail(diag.LexInvalidNumber, start, "Invalid number")
		}
		isFloat = true
	}
	if lx.peek(0) == 'n' {
		if isFloat || hasLeadingZero {
			lx.Fail(diag.LexInvalidBigInt, start, "Invalid BigIntLiteral")
		}
		s.Pos++
		lx.checkNumberEnd()
		lx.FinishToken(token.BigInt, bigIntDigits(lx.src[start:s.Pos]))
		return
	}
	lx.checkNumberEnd()

	str := strings.ReplaceAll(lx.src[start:s.Pos], "_", "")
	if octal {
		v := 0.0
		for i := 0; i < len(str); i++ {
			v = v*8 + float64(str[i]-'0')
		}
		lx.FinishToken(token.Num, v)
		return
	}
	v, err := strconv.ParseFloat(str, 64)
	// out of range values are already ±Inf or 0
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		lx.Fail(diag.LexInvalidNumber, start, "Invalid number")
	}
	lx.FinishToken(token.Num, v)
}

// checkNumberEnd rejects an identifier glued to a number, as in 3in or 1_a.
func (lx *Lexer) checkNumberEnd() {
	cp, _ := lx.codePointAt(lx.s.Pos)
	if IsIdentifierStart(cp) || cp == '\\' {
		lx.Fail(diag.LexIdentAfterNumber, lx.s.Pos, "Identifier directly after number")
	}
}

func bigIntDigits(raw string) string {
	raw = strings.TrimSuffix(raw, "n")
	return strings.ReplaceAll(raw, "_", "")
}

// noteLegacyOctal rejects legacy octal syntax in strict code and records it
// otherwise, so that a later "use strict" in the same prologue can reject it.
func (lx *Lexer) noteLegacyOctal(off int, msg string) {
	s := lx.s
	if s.Strict {
		lx.Fail(diag.SynStrictOctal, off, "%s", msg)
	}
	s.OctalPositions = append(s.OctalPositions, off)
}
