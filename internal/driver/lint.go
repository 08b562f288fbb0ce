package driver

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/source"
)

// LintIdentifiers warns about identifier names that are not in Unicode NFC
// form. Two spellings of such a name look alike but bind different
// variables. It returns the number of warnings reported.
func LintIdentifiers(tree *ast.File, file *source.File, r diag.Reporter) int {
	counter := &countingReporter{next: r}
	// Shorthand properties hold two nodes with the same span.
	dedup := diag.NewDedupReporter(counter)
	ast.Inspect(tree, func(n ast.Node) bool {
		id, ok := n.(*ast.Identifier)
		if !ok || norm.NFC.IsNormalString(id.Name) {
			return true
		}
		msg := fmt.Sprintf("identifier %q is not in NFC form", id.Name)
		diag.ReportWarning(dedup, diag.LexIdentNotNFC, file.SpanOf(id.Start, id.End), msg).
			WithNote(file.SpanOf(id.Start, id.End), fmt.Sprintf("the NFC spelling is %q", norm.NFC.String(id.Name))).
			Emit()
		return true
	})
	return counter.n
}

type countingReporter struct {
	next diag.Reporter
	n    int
}

func (c *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	c.n++
	c.next.Report(code, sev, primary, msg, notes)
}
