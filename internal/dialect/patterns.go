package dialect

import (
	"strings"

	"esparse/internal/ast"
	"esparse/internal/token"
)

// typeNames are the TypeScript and Flow primitive type names.
var typeNames = map[string]bool{
	"string": true, "number": true, "boolean": true, "any": true,
	"unknown": true, "never": true, "void": true, "object": true,
	"bigint": true, "symbol": true,
}

// ObserveTokens records token-pattern evidence over a three token window.
// tokens must be in source order; a prefix of a file is fine.
func ObserveTokens(e *Evidence, tokens []token.Token) {
	if e == nil {
		return
	}
	at := func(i int) token.Token {
		if i < 0 || i >= len(tokens) {
			return token.Token{Kind: token.EOF}
		}
		return tokens[i]
	}
	for i, tok := range tokens {
		prev, next, next2 := at(i-1), at(i+1), at(i+2)
		switch {
		// interface Foo {   /   type Foo =
		case tok.Is("interface") && next.Kind == token.Name && (next2.Kind == token.LBrace || next2.Is("extends")):
			e.Add(Hint{Dialect: TypeScript, Score: 6, Reason: "interface declaration", Start: tok.Start, End: next.End})
		case tok.Is("type") && next.Kind == token.Name && (next2.Kind == token.Assign || next2.Kind == token.Lt) && startsStatement(prev):
			e.Add(Hint{Dialect: TypeScript, Score: 4, Reason: "type alias", Start: tok.Start, End: next.End})
		case tok.Is("enum") && next.Kind == token.Name && next2.Kind == token.LBrace:
			e.Add(Hint{Dialect: TypeScript, Score: 5, Reason: "enum declaration", Start: tok.Start, End: next.End})

		// x: string
		case tok.Kind == token.Colon && next.Kind == token.Name && typeNames[next.Text()] && prev.Kind != token.Question:
			e.Add(Hint{Dialect: TypeScript, Score: 3, Reason: "type annotation ': " + next.Text() + "'", Start: tok.Start, End: next.End})
		// f(): T
		case prev.Kind == token.RParen && tok.Kind == token.Colon && next.Kind == token.Name && next2.Kind == token.LBrace:
			e.Add(Hint{Dialect: TypeScript, Score: 3, Reason: "return type annotation", Start: tok.Start, End: next.End})
		case (tok.Is("private") || tok.Is("public") || tok.Is("protected") || tok.Is("readonly")) && next.Kind == token.Name:
			e.Add(Hint{Dialect: TypeScript, Score: 3, Reason: "'" + tok.Text() + "' modifier", Start: tok.Start, End: next.End})
		case tok.Kind == token.Name && next.Is("as") && next2.Kind == token.Name && typeNames[next2.Text()]:
			e.Add(Hint{Dialect: TypeScript, Score: 3, Reason: "'as' type assertion", Start: next.Start, End: next2.End})

		// import type { T }
		case tok.Kind == token.KwImport && next.Is("type") && (next2.Kind == token.LBrace || next2.Kind == token.Name):
			e.Add(Hint{Dialect: Flow, Score: 3, Reason: "type-only import", Start: tok.Start, End: next.End})

		// <div>, <Foo />, </div>
		case tok.Kind == token.Lt && next.Kind == token.Name && (next2.Kind == token.Gt || next2.Kind == token.Slash) && startsJSX(prev):
			e.Add(Hint{Dialect: JSX, Score: 5, Reason: "JSX element <" + next.Text() + ">", Start: tok.Start, End: next2.End})
		case tok.Kind == token.Lt && next.Kind == token.Name && next2.Kind == token.Name && startsJSX(prev):
			e.Add(Hint{Dialect: JSX, Score: 4, Reason: "JSX element <" + next.Text() + "> with attributes", Start: tok.Start, End: next.End})
		case tok.Kind == token.Lt && next.Kind == token.Gt && startsJSX(prev):
			e.Add(Hint{Dialect: JSX, Score: 4, Reason: "JSX fragment <>", Start: tok.Start, End: next.End})
		}
	}
}

// ObserveComments records pragma comments.
func ObserveComments(e *Evidence, comments []*ast.Comment) {
	for _, c := range comments {
		v := strings.TrimSpace(c.Value)
		switch {
		case strings.HasPrefix(v, "@flow"):
			e.Add(Hint{Dialect: Flow, Score: 8, Reason: "@flow pragma", Start: c.Start, End: c.End})
		case strings.HasPrefix(v, "@jsx"):
			e.Add(Hint{Dialect: JSX, Score: 6, Reason: "@jsx pragma", Start: c.Start, End: c.End})
		case strings.HasPrefix(v, "@ts-"):
			e.Add(Hint{Dialect: TypeScript, Score: 4, Reason: "@ts directive comment", Start: c.Start, End: c.End})
		}
	}
}

// startsStatement reports whether a statement may begin after prev.
func startsStatement(prev token.Token) bool {
	switch prev.Kind {
	case token.EOF, token.Semicolon, token.LBrace, token.RBrace, token.KwExport:
		return true
	}
	return false
}

// startsJSX reports whether an element may begin after prev, that is
// whether prev leaves the parser expecting an expression.
func startsJSX(prev token.Token) bool {
	return prev.Kind == token.EOF || prev.Kind.BeforeExpr()
}
