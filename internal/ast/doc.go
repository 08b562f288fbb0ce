// Package ast defines the located syntax tree produced by the parser.
//
// Every node is a pointer to a struct embedding NodeBase, which carries the
// node type tag, byte offsets, line/column location and attached comments.
// Variant data lives in typed fields; the few rarely needed extras (raw
// literal text, parenthesization, trailing commas) live in the Extras
// side-table of the File, keyed by node identity.
//
// Expression, Statement and Pattern are marker interfaces. Identifier and
// MemberExpression are both expressions and patterns. Custom nodes created by
// parser extensions embed ExtensionNode, which satisfies all three.
package ast
