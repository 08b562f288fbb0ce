package lexer

import (
	"unicode/utf8"
)

func (lx *Lexer) codePointAt(off int) (rune, int) {
	if off >= len(lx.src) {
		return -1, 0
	}
	if c := lx.src[off]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(lx.src[off:])
}

// peek returns the byte at Pos+i or 0 past the end.
func (lx *Lexer) peek(i int) byte {
	if p := lx.s.Pos + i; p < len(lx.src) {
		return lx.src[p]
	}
	return 0
}

// newline records that a line terminator ending at Pos was consumed.
func (lx *Lexer) newline() {
	lx.s.CurLine++
	lx.s.LineStart = lx.s.Pos
}

// terminatorAt returns the length of the line terminator at i, or 0.
func terminatorAt(src string, i int) int {
	switch src[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(src) && src[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		if i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xA8 || src[i+2] == 0xA9) {
			return 3
		}
	}
	return 0
}

// skipTerminator consumes a line terminator at Pos if there is one.
func (lx *Lexer) skipTerminator() bool {
	if lx.s.Pos >= len(lx.src) {
		return false
	}
	n := terminatorAt(lx.src, lx.s.Pos)
	if n == 0 {
		return false
	}
	lx.s.Pos += n
	lx.newline()
	return true
}
