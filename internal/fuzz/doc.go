// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They look for panics, hangs and broken span
// invariants on arbitrary input.
//
// Does not: generate corpora, write files, run the CLI.
//
// Depends on: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/testkit.
package fuzztests
