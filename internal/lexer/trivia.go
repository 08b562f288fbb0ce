package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/source"
)

// skipSpace consumes whitespace, line terminators and comments in front of
// the next token. Comments go to the pending list and the comment log.
func (lx *Lexer) skipSpace() {
	s := lx.s
	for s.Pos < len(lx.src) {
		c := lx.src[s.Pos]
		switch {
		case c == ' ' || c == '\t' || c == '\v' || c == '\f':
			s.Pos++
		case c == '\n' || c == '\r':
			lx.skipTerminator()
			s.HadLineBreak = true
		case c == '/' && lx.peek(1) == '*':
			lx.skipBlockComment()
		case c == '/' && lx.peek(1) == '/':
			lx.skipLineComment(2)
		case c == '<' && lx.htmlComments() && strings.HasPrefix(lx.src[s.Pos:], "<!--"):
			lx.skipLineComment(4)
		case c == '-' && lx.htmlComments() && strings.HasPrefix(lx.src[s.Pos:], "-->") &&
			(s.HadLineBreak || s.LastTokEnd == 0):
			lx.skipLineComment(3)
		case c >= utf8.RuneSelf:
			if lx.skipTerminator() {
				s.HadLineBreak = true
				continue
			}
			r, size := utf8.DecodeRuneInString(lx.src[s.Pos:])
			if !isSpaceRune(r) {
				return
			}
			s.Pos += size
		default:
			return
		}
	}
}

func (lx *Lexer) htmlComments() bool { return lx.opts.HTMLComments }

func isSpaceRune(r rune) bool {
	return r == 0xA0 || r == 0xFEFF || unicode.Is(unicode.Zs, r)
}

func (lx *Lexer) skipBlockComment() {
	s := lx.s
	start := s.Pos
	startLoc := s.CurPosition()
	end := strings.Index(lx.src[start+2:], "*/")
	if end < 0 {
		lx.Fail(diag.LexUnterminatedComment, start, "Unterminated comment")
	}
	end += start + 2
	for s.Pos = start + 2; s.Pos < end; {
		if lx.skipTerminator() {
			s.HadLineBreak = true
			continue
		}
		s.Pos++
	}
	s.Pos = end + 2
	lx.pushComment(ast.CommentBlock, lx.src[start+2:end], start, startLoc)
}

func (lx *Lexer) skipLineComment(skip int) {
	s := lx.s
	start := s.Pos
	startLoc := s.CurPosition()
	s.Pos += skip
	for s.Pos < len(lx.src) && terminatorAt(lx.src, s.Pos) == 0 {
		s.Pos++
	}
	lx.pushComment(ast.CommentLine, lx.src[start+skip:s.Pos], start, startLoc)
}

func (lx *Lexer) pushComment(typ, value string, start int, startLoc source.Position) {
	s := lx.s
	c := &ast.Comment{
		Type:  typ,
		Value: value,
		Start: start,
		End:   s.Pos,
		Loc:   source.Location{Start: startLoc, End: s.CurPosition()},
	}
	s.Comments = append(s.Comments, c)
	lx.comments = append(lx.comments, c)
	s.commentCount = len(lx.comments)
}
