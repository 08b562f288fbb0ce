package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"esparse/internal/diag"
	"esparse/internal/parser"
	"esparse/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("dir/test.js", []byte("f(\n  let x = \"open\n"))
	bag := diag.NewBag(10)
	d := diag.NewDiagnostic(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 13, End: 18}, "unterminated string constant")
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 0, End: 1}, "call starts here"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	got := out.Diagnostics[0]
	if got.Severity != "ERROR" || got.Code != "LEX1002" || got.Message != "unterminated string constant" {
		t.Fatalf("diagnostic = %+v", got)
	}
	want := LocationJSON{File: "test.js", StartByte: 13, EndByte: 18, StartLine: 2, StartCol: 11, EndLine: 2, EndCol: 16}
	if got.Location != want {
		t.Fatalf("location = %+v, want %+v", got.Location, want)
	}
	if got.Notes != nil {
		t.Fatal("notes included without IncludeNotes")
	}
}

func TestJSONNotesAndMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.js", []byte("a b c"))
	bag := diag.NewBag(2)
	for i := range uint32(3) {
		d := diag.NewDiagnostic(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 2 * i, End: 2*i + 1}, "w")
		bag.Add(d.WithNote(source.Span{File: fileID}, "n"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true, Max: 1})
	if out.Count != 1 || out.Dropped != 2 {
		t.Fatalf("count %d dropped %d", out.Count, out.Dropped)
	}
	if len(out.Diagnostics[0].Notes) != 1 || out.Diagnostics[0].Notes[0].Message != "n" {
		t.Fatalf("notes = %+v", out.Diagnostics[0].Notes)
	}
	if loc := out.Diagnostics[0].Location; loc.StartLine != 0 || loc.StartCol != 0 {
		t.Fatalf("positions without IncludePositions: %+v", loc)
	}
}

func TestJSONTimingNotesAlwaysIncluded(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.js", []byte("x"))
	bag := diag.NewBag(0)
	d := diag.NewDiagnostic(diag.SevInfo, diag.ObsTimings, source.Span{File: fileID}, "timings")
	bag.Add(d.WithNote(source.Span{File: fileID}, `{"kind":"parse"}`))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(out.Diagnostics[0].Notes) != 1 || out.Diagnostics[0].Code != "OBS6001" {
		t.Fatalf("got %+v", out.Diagnostics[0])
	}
}

func TestParsePathMode(t *testing.T) {
	for _, m := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		got, ok := ParsePathMode(m.String())
		if !ok || got != m {
			t.Errorf("%s: got %v %v", m, got, ok)
		}
	}
	if _, ok := ParsePathMode("short"); ok {
		t.Error("accepted an unknown mode")
	}
}

func TestASTJSONExtra(t *testing.T) {
	file, err := parser.Parse("x = 1e400; y = ('a');", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, file, true); err != nil {
		t.Fatal(err)
	}
	var root struct {
		Program struct {
			Body []struct {
				Expression struct {
					Right struct {
						Type  string         `json:"type"`
						Value any            `json:"value"`
						Extra map[string]any `json:"extra"`
					} `json:"right"`
				} `json:"expression"`
			} `json:"body"`
		} `json:"program"`
	}
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("%v\n%s", err, buf.String())
	}
	body := root.Program.Body
	if len(body) != 2 {
		t.Fatalf("body has %d statements", len(body))
	}

	num := body[0].Expression.Right
	if num.Type != "NumericLiteral" || num.Value != nil {
		t.Errorf("overflowing literal = %+v, want a null value", num)
	}
	if num.Extra["raw"] != "1e400" {
		t.Errorf("number extra = %v", num.Extra)
	}

	str := body[1].Expression.Right
	if str.Type != "StringLiteral" || str.Value != "a" {
		t.Fatalf("string literal = %+v", str)
	}
	want := map[string]any{"raw": "'a'", "rawValue": "a", "parenthesized": true, "parenStart": float64(15)}
	for k, v := range want {
		if str.Extra[k] != v {
			t.Errorf("extra[%q] = %v, want %v", k, str.Extra[k], v)
		}
	}
}
