// Package dialect detects signals that a script is written in a syntax
// extension of JavaScript (TypeScript, JSX, Flow) that the parser does not
// implement. The driver uses the result to explain a syntax error.
//
// Detection never changes how a file is tokenized or parsed.
package dialect
