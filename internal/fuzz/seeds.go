package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
)

// builtinSeeds cover the context sensitive corners of the lexer.
var builtinSeeds = []string{
	"",
	"a\nb",
	"x = a / b / c; y = /re[/]x/gi.test(s)",
	"`a${ `b${c}d` }e` + tag`\\8${x}`",
	"0x1F + 0o17 + 0b101 + 1_000 + 10n + 0755 + 0789 + .5e-3",
	"(a, b) => a ** b ** 2; async (x) => await x",
	"loop: for (;;) { break loop; continue loop }",
	"// doc\nlet x = 1; // trailing\n/* inner */",
	"class A extends B { #x = 1; static { this.#x } get y() { return #x in this } }",
	"a?.b?.[c]?.(d) ?? e; x ||= y &&= z ??= w",
	"'use strict'; function f(a, b = 1, ...c) { return { a, [b]: c, ...d } }",
	"let [a, {b, c: [d] = []}] = e; for (const [k, v] of m) ;",
	"<!-- html\n--> comment\nx",
	"#!/usr/bin/env node\nlet y",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".js", ".mjs", ".cjs":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
