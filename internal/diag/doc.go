// Package diag defines the error and diagnostic model shared by the lexer,
// the parser and the driver.
//
// # Errors
//
// The parser is fail-fast: the first problem aborts the parse and surfaces as
// an *Error carrying a kind (LexicalError or SyntaxError), a stable Code, a
// message and the absolute offset with its line and column.
//
// # Diagnostics
//
// The driver turns errors and its own lint findings into Diagnostic records
// collected in a Bag through a Reporter (BagReporter, DedupReporter,
// ReportBuilder). Rendering lives in internal/diagfmt.
//
// # Codes
//
// Codes are grouped by phase: LEX1xxx for the tokenizer, SYN2xxx for the
// grammar, IO4xxx for file loading and OBS6xxx for observability output.
// ID() gives the textual form used in golden files and JSON output.
package diag
