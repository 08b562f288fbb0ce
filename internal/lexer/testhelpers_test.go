package lexer_test

import (
	"errors"
	"testing"

	"esparse/internal/diag"
	"esparse/internal/lexer"
	"esparse/internal/token"
)

// lexAll tokenizes src and fails the test on error. The EOF token is dropped.
func lexAll(t *testing.T, src string, opts lexer.Options) []token.Token {
	t.Helper()
	toks, _, err := lexer.Tokenize(src, opts)
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	if n := len(toks); n == 0 || toks[n-1].Kind != token.EOF {
		t.Fatalf("tokenize %q: missing EOF", src)
	}
	return toks[:len(toks)-1]
}

// lexErr tokenizes src and returns the error it must produce.
func lexErr(t *testing.T, src string, opts lexer.Options) *diag.Error {
	t.Helper()
	_, _, err := lexer.Tokenize(src, opts)
	if err == nil {
		t.Fatalf("tokenize %q: expected an error", src)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("tokenize %q: error %T is not *diag.Error", src, err)
	}
	return de
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func sameKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strPtr(s string) *string { return &s }
