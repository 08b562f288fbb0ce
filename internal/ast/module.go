package ast

// ImportDeclaration specifiers are *ImportSpecifier, *ImportDefaultSpecifier
// or *ImportNamespaceSpecifier.
type ImportDeclaration struct {
	NodeBase
	Specifiers []Node         `json:"specifiers"`
	Source     *StringLiteral `json:"source"`
}

// ImportSpecifier Imported is an *Identifier or a *StringLiteral.
type ImportSpecifier struct {
	NodeBase
	Imported Node        `json:"imported"`
	Local    *Identifier `json:"local"`
}

type ImportDefaultSpecifier struct {
	NodeBase
	Local *Identifier `json:"local"`
}

type ImportNamespaceSpecifier struct {
	NodeBase
	Local *Identifier `json:"local"`
}

// ExportNamedDeclaration has either a Declaration or Specifiers (with an
// optional Source).
type ExportNamedDeclaration struct {
	NodeBase
	Declaration Statement      `json:"declaration"`
	Specifiers  []Node         `json:"specifiers"`
	Source      *StringLiteral `json:"source"`
}

// ExportSpecifier Local and Exported are *Identifier or *StringLiteral.
type ExportSpecifier struct {
	NodeBase
	Local    Node `json:"local"`
	Exported Node `json:"exported"`
}

// ExportNamespaceSpecifier is `* as name` in an export-from.
type ExportNamespaceSpecifier struct {
	NodeBase
	Exported Node `json:"exported"`
}

// ExportDefaultDeclaration Declaration is a function or class declaration or
// an Expression.
type ExportDefaultDeclaration struct {
	NodeBase
	Declaration Node `json:"declaration"`
}

type ExportAllDeclaration struct {
	NodeBase
	Source *StringLiteral `json:"source"`
}
