package token_test

import (
	"testing"

	"esparse/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		kind token.Kind
		ok   bool
	}{
		{"function", token.KwFunction, true},
		{"instanceof", token.KwInstanceof, true},
		{"null", token.KwNull, true},
		{"let", token.Invalid, false},
		{"async", token.Invalid, false},
		{"Function", token.Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			k, ok := token.LookupKeyword(tt.word)
			if ok != tt.ok || (ok && k != tt.kind) {
				t.Fatalf("LookupKeyword(%q) = %v, %v", tt.word, k, ok)
			}
		})
	}
}

func TestEveryKeywordRoundTrips(t *testing.T) {
	for k := token.Kind(0); int(k) < token.NumKinds; k++ {
		if !k.IsKeyword() {
			continue
		}
		got, ok := token.LookupKeyword(k.String())
		if !ok || got != k {
			t.Errorf("keyword %v does not round-trip", k)
		}
	}
}

func TestReservedWords(t *testing.T) {
	if !token.IsReservedWord("enum") || !token.IsReservedWord("class") {
		t.Error("enum and class are reserved")
	}
	if token.IsReservedWord("x") || token.IsReservedWord("undefined") {
		t.Error("x and undefined are not reserved")
	}
	if !token.IsStrictReserved("yield") || token.IsStrictReserved("await") {
		t.Error("strict reserved set mismatch")
	}
}
