package diag

import (
	"errors"
	"fmt"
	"testing"

	"esparse/internal/source"
)

func TestErrorKindFollowsCode(t *testing.T) {
	pos := source.Position{Line: 2, Column: 3, Index: 10}

	lex := NewError(LexUnterminatedString, pos, "Unterminated string constant")
	if lex.Kind != KindLexical {
		t.Fatalf("expected lexical kind, got %v", lex.Kind)
	}
	syn := NewError(SynUnexpectedToken, pos, "Unexpected token")
	if syn.Kind != KindSyntax {
		t.Fatalf("expected syntax kind, got %v", syn.Kind)
	}
	if got := syn.Error(); got != "SyntaxError: Unexpected token (2:3)" {
		t.Fatalf("unexpected message %q", got)
	}
	if syn.Position() != pos {
		t.Fatalf("position lost: %+v", syn.Position())
	}

	var target *Error
	wrapped := fmt.Errorf("parse a.js: %w", syn)
	if !errors.As(wrapped, &target) || target.Code != SynUnexpectedToken {
		t.Fatal("errors.As must recover *Error")
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexInvalidNumber, "LEX1004"},
		{SynIllegalBreak, "SYN2007"},
		{IOLoadFileError, "IO4001"},
		{Code(9999), "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if SynUnknownLabel.String() != "[SYN2006]: Unknown label" {
		t.Errorf("String = %q", SynUnknownLabel.String())
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	bag.Add(NewDiagnostic(SevWarning, LexIdentNotNFC, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(NewDiagnostic(SevError, SynUnexpectedToken, source.Span{Start: 1, End: 2}, "a"))
	if bag.Add(NewDiagnostic(SevError, SynUnexpectedToken, source.Span{}, "c")) {
		t.Fatal("limit not enforced")
	}
	if bag.Dropped() != 1 {
		t.Fatalf("dropped = %d", bag.Dropped())
	}
	bag.Sort()
	if bag.Items()[0].Message != "a" {
		t.Fatalf("sort order wrong: %+v", bag.Items())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("severity queries wrong")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}
	for range 3 {
		ReportWarning(r, LexIdentNotNFC, sp, "same").Emit()
	}
	ReportError(r, LexIdentNotNFC, sp, "same").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 distinct diagnostics, got %d", bag.Len())
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/a.js", []byte("let x;\nfor(;;){ break loop; }\n"))
	f := fs.Get(id)

	err := NewError(SynUnknownLabel, f.Position(22), "Unknown label 'loop'")
	diags := []Diagnostic{
		err.Diagnostic(f).WithNote(f.SpanOf(0, 3), "declared\nhere"),
	}

	got := FormatGoldenDiagnostics(diags, fs, true)
	want := "note SYN2006 dir/a.js:1:1 declared here\n" +
		"error SYN2006 dir/a.js:2:16 Unknown label 'loop'"
	if got != want {
		t.Fatalf("golden mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestSeverityLabels(t *testing.T) {
	tests := []struct {
		sev          Severity
		upper, lower string
		fails        bool
	}{
		{SevInfo, "INFO", "info", false},
		{SevWarning, "WARNING", "warning", false},
		{SevError, "ERROR", "error", true},
		{Severity(9), "UNKNOWN", "info", true},
	}
	for _, tt := range tests {
		t.Run(tt.upper, func(t *testing.T) {
			if tt.sev.String() != tt.upper || tt.sev.Label() != tt.lower || tt.sev.FailsParse() != tt.fails {
				t.Fatalf("%d: %q %q %v", tt.sev, tt.sev.String(), tt.sev.Label(), tt.sev.FailsParse())
			}
		})
	}
}
