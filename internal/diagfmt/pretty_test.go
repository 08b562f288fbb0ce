package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"esparse/internal/diag"
	"esparse/internal/source"
)

func singleDiag(path string, content string, start, end uint32) (*source.FileSet, *diag.Bag, source.FileID) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	bag.Add(diag.NewDiagnostic(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: start, End: end}, "unterminated string constant"))
	return fs, bag, fileID
}

func TestPathModes(t *testing.T) {
	fs, bag, _ := singleDiag("/home/user/project/src/test.js", "let x = \"unterminated string\n", 8, 28)
	fs.SetBaseDir("/home/user/project")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.js:1:9"},
		{"relative", PathModeRelative, "src/test.js:1:9"},
		{"basename", PathModeBasename, "test.js:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR LEX1002: unterminated string constant") {
				t.Errorf("missing header in:\n%s", out)
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"test.js", "test.js:"},
		{"/very/long/absolute/path/to/some/nested/directory/file.js", "file.js:"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			fs, bag, _ := singleDiag(tt.path, "let x = 42\n", 8, 10)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("got:\n%s", buf.String())
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs, bag, _ := singleDiag("a.js", "first\nlet s = 'abc\nlast\n", 14, 18)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := "a.js:2:9: ERROR LEX1002: unterminated string constant\n" +
		"1 | first\n" +
		"2 | let s = 'abc\n" +
		"  |         ^~~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   uint32
		end     uint32
		caret   string
	}{
		{"wide prefix", "'日本' + x", 9, 10, "  |        ^"},
		{"tab prefix", "\tx y", 3, 4, "  |       ^"},
		{"empty span", "a b", 2, 2, "  |   ^"},
		{"multi-line span", "abc\ndef", 1, 6, "  |  ^~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, bag, _ := singleDiag("c.js", tt.content, tt.start, tt.end)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if got := lines[len(lines)-1]; got != tt.caret {
				t.Fatalf("caret line %q, want %q", got, tt.caret)
			}
		})
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.js", []byte("let e\u0301;"))
	bag := diag.NewBag(4)
	d := diag.NewDiagnostic(diag.SevWarning, diag.LexIdentNotNFC, source.Span{File: fileID, Start: 4, End: 7}, "not NFC")
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 4, End: 7}, "the NFC spelling differs"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes shown without ShowNotes:\n%s", buf.String())
	}
	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: n.js:1:5: the NFC spelling differs") {
		t.Fatalf("got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "WARNING LEX1014") {
		t.Fatalf("got:\n%s", buf.String())
	}
}

func TestPrettyColorAndDropped(t *testing.T) {
	fs, _, fileID := singleDiag("d.js", "x", 0, 1)
	bag := diag.NewBag(1)
	for range 3 {
		bag.Add(diag.NewDiagnostic(diag.SevError, diag.SynUnexpectedToken, source.Span{File: fileID, End: 1}, "unexpected token"))
	}
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("escape codes without Color")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("no escape codes with Color")
	}
	if !strings.Contains(plain.String(), "2 more diagnostics not shown") {
		t.Fatalf("got:\n%s", plain.String())
	}
}

func TestPrettyEmptyFile(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("gone.js", nil)
	bag := diag.NewBag(0)
	bag.Add(diag.NewDiagnostic(diag.SevError, diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if buf.String() != "gone.js:1:1: ERROR IO4001: failed to load file\n" {
		t.Fatalf("got %q", buf.String())
	}
}
