package lexer

import (
	"strings"

	"esparse/internal/diag"
	"esparse/internal/token"
)

// readTemplateToken reads a template chunk starting at '`' or at the '}'
// closing an interpolation. A chunk ending in "${" opens a new
// interpolation frame.
func (lx *Lexer) readTemplateToken() {
	s := lx.s
	start := s.Pos
	s.Pos++
	var cooked, raw strings.Builder
	valid := true
	chunk := s.Pos
	flush := func() {
		cooked.WriteString(lx.src[chunk:s.Pos])
		raw.WriteString(lx.src[chunk:s.Pos])
	}
	for {
		if s.Pos >= len(lx.src) {
			lx.Fail(diag.LexUnterminatedTemplate, start, "Unterminated template")
		}
		c := lx.src[s.Pos]
		switch {
		case c == '`':
			flush()
			s.Pos++
			lx.FinishToken(token.TemplateTail, templateValue(&cooked, &raw, valid))
			return
		case c == '$' && lx.peek(1) == '{':
			flush()
			s.Pos += 2
			s.Context = append(s.Context, Context{Kind: CtxInterpolation})
			lx.FinishToken(token.TemplateNonTail, templateValue(&cooked, &raw, valid))
			return
		case c == '\\':
			flush()
			escStart := s.Pos
			if !lx.readEscapedChar(&cooked, true) {
				valid = false
			}
			raw.WriteString(normalizeNewlines(lx.src[escStart:s.Pos]))
			chunk = s.Pos
		case c == '\r':
			flush()
			lx.skipTerminator()
			cooked.WriteByte('\n')
			raw.WriteByte('\n')
			chunk = s.Pos
		case c == '\n' || (c == 0xE2 && terminatorAt(lx.src, s.Pos) == 3):
			lx.skipTerminator()
		default:
			s.Pos++
		}
	}
}

func templateValue(cooked, raw *strings.Builder, valid bool) token.TemplateValue {
	v := token.TemplateValue{Raw: raw.String()}
	if valid {
		c := cooked.String()
		v.Cooked = &c
	}
	return v
}

func normalizeNewlines(s string) string {
	if strings.IndexByte(s, '\r') < 0 {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
