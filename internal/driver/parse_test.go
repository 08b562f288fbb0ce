package driver_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"esparse/internal/diag"
	"esparse/internal/driver"
	"esparse/internal/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", "var a = 1;\n// tail\n")

	res, err := driver.Parse(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil || res.Bag.Len() != 0 {
		t.Fatalf("unexpected error %v, bag %v", res.Err, res.Bag.Items())
	}
	if res.AST == nil || len(res.AST.Program.Body) != 1 || len(res.AST.Comments) != 1 {
		t.Fatalf("ast = %+v", res.AST)
	}
	if res.Timing != nil {
		t.Fatal("timing without Timings option")
	}

	if _, err := driver.Parse(context.Background(), filepath.Join(dir, "missing.js"), driver.Options{}); err == nil ||
		!strings.Contains(err.Error(), "missing.js") {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestParseSourceSyntaxError(t *testing.T) {
	res, err := driver.ParseSource(context.Background(), "<stdin>", []byte("a = ;"), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.AST != nil || res.Err == nil {
		t.Fatalf("ast %v err %v", res.AST, res.Err)
	}
	if !res.Bag.HasErrors() || res.Bag.Len() != 1 {
		t.Fatalf("bag = %v", res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Primary.Start != 4 || d.Primary.File != res.File.ID {
		t.Fatalf("primary = %+v", d.Primary)
	}
}

func TestParseSourceDialectNote(t *testing.T) {
	src := "interface Point { x: number }\n"
	res, err := driver.ParseSource(context.Background(), "point.js", []byte(src), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Err == nil {
		t.Fatal("expected a syntax error")
	}
	notes := res.Bag.Items()[0].Notes
	if len(notes) != 1 || !strings.Contains(notes[0].Msg, "typescript") {
		t.Fatalf("notes = %+v", notes)
	}
	if notes[0].Span.Start != 0 {
		t.Fatalf("note span = %+v", notes[0].Span)
	}

	plain, err := driver.ParseSource(context.Background(), "plain.js", []byte("a = ;"), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(plain.Bag.Items()[0].Notes); n != 0 {
		t.Fatalf("plain script got %d notes", n)
	}
}

func TestSourceTypeFor(t *testing.T) {
	tests := []struct {
		path string
		def  parser.SourceType
		want parser.SourceType
	}{
		{"a.js", parser.SourceScript, parser.SourceScript},
		{"a.js", parser.SourceModule, parser.SourceModule},
		{"a.mjs", parser.SourceScript, parser.SourceModule},
		{"a.cjs", parser.SourceModule, parser.SourceScript},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.def), func(t *testing.T) {
			if got := driver.SourceTypeFor(tt.path, tt.def); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}

	res, err := driver.ParseSource(context.Background(), "m.mjs", []byte("import a from 'a';"), driver.Options{})
	if err != nil || res.Err != nil {
		t.Fatalf("module by extension: %v %v", err, res.Err)
	}
}

func TestParseTimings(t *testing.T) {
	var (
		mu     sync.Mutex
		events []driver.PhaseEvent
	)
	opts := driver.Options{
		Lint:    true,
		Timings: true,
		Observer: func(ev driver.PhaseEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	}
	res, err := driver.ParseSource(context.Background(), "t.js", []byte("f();"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 2 {
		t.Fatalf("timing = %+v", res.Timing)
	}
	if res.Timing.Phases[0].Name != "parse" || res.Timing.Phases[1].Name != "lint" {
		t.Fatalf("phases = %+v", res.Timing.Phases)
	}
	if len(events) != 4 || events[0].Status != driver.PhaseStart || events[1].Status != driver.PhaseEnd {
		t.Fatalf("events = %+v", events)
	}

	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("bag = %+v", items)
	}
	if len(items[0].Notes) != 1 {
		t.Fatalf("notes = %+v", items[0].Notes)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(items[0].Notes[0].Msg), &payload); err != nil {
		t.Fatalf("timing note is not JSON: %v", err)
	}
	if payload["kind"] != "parse" || payload["path"] != "t.js" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestTokenizeSource(t *testing.T) {
	res, err := driver.TokenizeSource("t.js", []byte("a /* c */ + 1"), driver.LexerOptions(driver.Options{}, "t.js"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil || len(res.Comments) != 1 {
		t.Fatalf("err %v comments %v", res.Err, res.Comments)
	}
	// a + 1 eof
	if len(res.Tokens) != 4 {
		t.Fatalf("tokens = %d", len(res.Tokens))
	}

	res, err = driver.TokenizeSource("t.js", []byte("a 'open"), driver.LexerOptions(driver.Options{}, "t.js"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Err == nil || !res.Bag.HasErrors() || len(res.Tokens) != 1 {
		t.Fatalf("err %v tokens %d", res.Err, len(res.Tokens))
	}
}
