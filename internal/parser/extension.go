package parser

import (
	"esparse/internal/ast"
)

// Extension is a syntax plugin registered through Options.Extensions. An
// extension implements any of AtomParser, StatementParser and
// lexer.TokenReader; hooks run before the built-in dispatch, in
// registration order.
type Extension interface {
	Name() string
}

// AtomParser may parse a primary expression at the current token. It
// returns nil to decline, leaving the parser untouched.
type AtomParser interface {
	Extension
	ParseAtom(p *Parser) ast.Expression
}

// StatementParser may parse a statement at the current token. It returns
// nil to decline.
type StatementParser interface {
	Extension
	ParseStatement(p *Parser) ast.Statement
}

// ParseExpression parses a full expression, sequences included.
func (p *Parser) ParseExpression() ast.Expression { return p.parseExpression(false, nil) }

// ParseAssign parses an assignment-level expression.
func (p *Parser) ParseAssign() ast.Expression { return p.parseMaybeAssign(false, nil) }

// ParseStatement parses one statement.
func (p *Parser) ParseStatement() ast.Statement { return p.parseStatement(stmtContext{}) }

func (p *Parser) extensionAtom() ast.Expression {
	for _, a := range p.atoms {
		if e := a.ParseAtom(p); e != nil {
			return e
		}
	}
	return nil
}

func (p *Parser) extensionStatement() ast.Statement {
	for _, sp := range p.stmts {
		if st := sp.ParseStatement(p); st != nil {
			return st
		}
	}
	return nil
}
