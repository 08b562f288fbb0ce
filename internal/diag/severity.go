package diag

// Severity ranks a diagnostic. Syntax and I/O failures are SevError, lint
// findings such as non-NFC identifiers are SevWarning, and timing reports
// are SevInfo. Bags sort higher severities first.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the label used in terminal and JSON output.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case form written to golden files.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return "info"
}

// FailsParse reports whether a diagnostic of this severity makes the file's
// parse count as failed.
func (s Severity) FailsParse() bool { return s >= SevError }
