package driver

import (
	"fmt"

	"esparse/internal/diag"
	"esparse/internal/dialect"
	"esparse/internal/lexer"
	"esparse/internal/source"
)

// explainDialect adds a note to d when file looks like a syntax extension
// the parser does not implement. Tokens up to a lexical error still count.
func explainDialect(d diag.Diagnostic, file *source.File, opts lexer.Options) diag.Diagnostic {
	tokens, comments, _ := lexer.Tokenize(string(file.Content), opts)
	ev := dialect.NewEvidence()
	dialect.ObserveTokens(ev, tokens)
	dialect.ObserveComments(ev, comments)

	c := dialect.Classifier{}.Classify(ev)
	if !c.Confident() {
		return d
	}
	h, _ := ev.Strongest(c.Kind)
	msg := fmt.Sprintf("this file looks like %s (%s); only plain JavaScript is supported", c.Kind, h.Reason)
	return d.WithNote(file.SpanOf(h.Start, h.End), msg)
}
