package driver_test

import (
	"context"
	"strings"
	"testing"

	"esparse/internal/diag"
	"esparse/internal/driver"
)

func TestLintIdentifiers(t *testing.T) {
	decomposed := "e\u0301"
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"nfc", "var caf\u00e9 = 1;", 0},
		{"ascii", "var x = y;", 0},
		{"declaration and use", "var " + decomposed + " = 1; " + decomposed + ";", 2},
		{"shorthand reported once", "({" + decomposed + "});", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := driver.ParseSource(context.Background(), "l.js", []byte(tt.src), driver.Options{})
			if err != nil || res.Err != nil {
				t.Fatalf("parse: %v %v", err, res.Err)
			}
			bag := diag.NewBag(0)
			n := driver.LintIdentifiers(res.AST, res.File, diag.BagReporter{Bag: bag})
			if n != tt.want || bag.Len() != tt.want {
				t.Fatalf("got %d reported, %d in bag, want %d", n, bag.Len(), tt.want)
			}
			for _, d := range bag.Items() {
				if d.Code != diag.LexIdentNotNFC || d.Severity != diag.SevWarning {
					t.Fatalf("diagnostic = %+v", d)
				}
				if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "\u00e9") {
					t.Fatalf("notes = %+v", d.Notes)
				}
			}
		})
	}
}

func TestLintRunsInDriver(t *testing.T) {
	src := []byte("let e\u0301;")
	res, err := driver.ParseSource(context.Background(), "l.js", src, driver.Options{Lint: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 || res.Bag.HasErrors() {
		t.Fatalf("bag = %+v", res.Bag.Items())
	}
	if res.Bag.Items()[0].Primary.Start != 4 || res.Bag.Items()[0].Primary.End != 7 {
		t.Fatalf("span = %+v", res.Bag.Items()[0].Primary)
	}
}
