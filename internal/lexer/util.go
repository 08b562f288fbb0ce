package lexer

import (
	"unicode"
)

const (
	zwnj = 0x200C
	zwj  = 0x200D
)

// IsIdentifierStart reports whether cp may begin an identifier.
func IsIdentifierStart(cp rune) bool {
	switch {
	case cp < 0:
		return false
	case cp < 0x80:
		return cp == '$' || cp == '_' || (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z')
	}
	return isIDStart(cp)
}

// IsIdentifierChar reports whether cp may continue an identifier.
func IsIdentifierChar(cp rune) bool {
	switch {
	case cp < 0:
		return false
	case cp < 0x80:
		return cp == '$' || cp == '_' || (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z') || (cp >= '0' && cp <= '9')
	case cp == zwnj || cp == zwj:
		return true
	}
	return isIDStart(cp) ||
		unicode.In(cp, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// ID_Start: letters, letter numbers and Other_ID_Start, minus pattern characters.
func isIDStart(cp rune) bool {
	if unicode.In(cp, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(cp, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

// digitVal returns the value of c as a digit in base 36, or 99.
func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 99
}
