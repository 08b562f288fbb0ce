package parser

import (
	"esparse/internal/ast"
	"esparse/internal/diag"
	"esparse/internal/token"
)

func (p *Parser) parseImport(m Marker) *ast.ImportDeclaration {
	p.Next()
	imp := &ast.ImportDeclaration{Specifiers: []ast.Node{}}
	if p.at(token.String) {
		imp.Source = p.parseStringLiteral()
		p.Semicolon()
		return Finish(p, imp, "ImportDeclaration", m)
	}

	needMore := true
	if p.at(token.Name) {
		sm := p.StartNode()
		local := p.parseIdent(false)
		p.checkLVal(local, bindLexical)
		imp.Specifiers = append(imp.Specifiers, Finish(p, &ast.ImportDefaultSpecifier{Local: local}, "ImportDefaultSpecifier", sm))
		needMore = p.Eat(token.Comma)
	}
	if needMore {
		switch {
		case p.at(token.Star):
			sm := p.StartNode()
			p.Next()
			p.expectContextual("as")
			local := p.parseIdent(false)
			p.checkLVal(local, bindLexical)
			imp.Specifiers = append(imp.Specifiers, Finish(p, &ast.ImportNamespaceSpecifier{Local: local}, "ImportNamespaceSpecifier", sm))
		case p.at(token.LBrace):
			p.Next()
			for first := true; !p.Eat(token.RBrace); first = false {
				if !first {
					p.Expect(token.Comma)
					if p.Eat(token.RBrace) {
						break
					}
				}
				imp.Specifiers = append(imp.Specifiers, p.parseImportSpecifier())
			}
		default:
			p.unexpected()
		}
	}
	p.expectContextual("from")
	imp.Source = p.parseStringLiteral()
	p.Semicolon()
	return Finish(p, imp, "ImportDeclaration", m)
}

func (p *Parser) parseImportSpecifier() *ast.ImportSpecifier {
	sm := p.StartNode()
	keyword := p.tok().Kind.IsKeyword()
	imported := p.parseModuleExportName()
	spec := &ast.ImportSpecifier{Imported: imported}
	if p.eatContextual("as") {
		spec.Local = p.parseIdent(false)
	} else {
		id, ok := imported.(*ast.Identifier)
		if !ok {
			p.raise(diag.SynUnexpectedToken, imported.Base().Start, "A string literal cannot be used as an imported binding.")
		}
		if keyword {
			p.raise(diag.SynReservedWord, id.Start, "Unexpected keyword '%s'.", id.Name)
		}
		p.checkIdentifier(id.Name, id.Start, false)
		spec.Local = cloneIdent(id)
	}
	p.checkLVal(spec.Local, bindLexical)
	return Finish(p, spec, "ImportSpecifier", sm)
}

// parseModuleExportName parses an identifier name or a string literal.
func (p *Parser) parseModuleExportName() ast.Node {
	if p.at(token.String) {
		return p.parseStringLiteral()
	}
	return p.parseIdent(true)
}

func (p *Parser) parseExport(m Marker) ast.Statement {
	p.Next()
	if p.at(token.Star) {
		sm := p.StartNode()
		p.Next()
		if p.eatContextual("as") {
			exported := p.parseModuleExportName()
			p.declareExport(exported)
			spec := Finish(p, &ast.ExportNamespaceSpecifier{Exported: exported}, "ExportNamespaceSpecifier", sm)
			p.expectContextual("from")
			src := p.parseStringLiteral()
			p.Semicolon()
			return Finish(p, &ast.ExportNamedDeclaration{Specifiers: []ast.Node{spec}, Source: src}, "ExportNamedDeclaration", m)
		}
		p.expectContextual("from")
		src := p.parseStringLiteral()
		p.Semicolon()
		return Finish(p, &ast.ExportAllDeclaration{Source: src}, "ExportAllDeclaration", m)
	}

	if p.at(token.KwDefault) {
		p.exportName("default", p.tok().Start)
		p.Next()
		dm := p.StartNode()
		var decl ast.Node
		switch {
		case p.at(token.KwFunction):
			p.Next()
			decl = p.parseFunctionDeclaration(dm, false, true)
		case p.isAsyncFunction():
			p.Next()
			p.Next()
			decl = p.parseFunctionDeclaration(dm, true, true)
		case p.at(token.KwClass):
			decl = p.parseClassDeclaration(dm, true)
		default:
			decl = p.parseMaybeAssign(false, nil)
			p.Semicolon()
		}
		return Finish(p, &ast.ExportDefaultDeclaration{Declaration: decl}, "ExportDefaultDeclaration", m)
	}

	if p.startsExportDeclaration() {
		decl := p.parseStatement(stmtContext{list: true})
		p.declareExportsOf(decl)
		return Finish(p, &ast.ExportNamedDeclaration{Declaration: decl, Specifiers: []ast.Node{}}, "ExportNamedDeclaration", m)
	}

	exp := &ast.ExportNamedDeclaration{Specifiers: []ast.Node{}}
	p.Expect(token.LBrace)
	for first := true; !p.Eat(token.RBrace); first = false {
		if !first {
			p.Expect(token.Comma)
			if p.Eat(token.RBrace) {
				break
			}
		}
		sm := p.StartNode()
		local := p.parseModuleExportName()
		spec := &ast.ExportSpecifier{Local: local, Exported: cloneName(local)}
		if p.eatContextual("as") {
			spec.Exported = p.parseModuleExportName()
		}
		p.declareExport(spec.Exported)
		exp.Specifiers = append(exp.Specifiers, Finish(p, spec, "ExportSpecifier", sm))
	}
	if p.eatContextual("from") {
		exp.Source = p.parseStringLiteral()
	} else {
		for _, s := range exp.Specifiers {
			switch local := s.(*ast.ExportSpecifier).Local.(type) {
			case *ast.StringLiteral:
				p.raise(diag.SynUnexpectedToken, local.Start, "A string literal cannot be used as an exported binding without `from`.")
			case *ast.Identifier:
				if token.IsReservedWord(local.Name) {
					p.raise(diag.SynReservedWord, local.Start, "Unexpected keyword '%s'.", local.Name)
				}
				p.checkIdentifier(local.Name, local.Start, false)
			}
		}
	}
	p.Semicolon()
	return Finish(p, exp, "ExportNamedDeclaration", m)
}

func (p *Parser) startsExportDeclaration() bool {
	switch p.tok().Kind {
	case token.KwVar, token.KwConst, token.KwFunction, token.KwClass:
		return true
	}
	return p.isContextual("let") || p.isAsyncFunction()
}

func (p *Parser) exportName(name string, off int) {
	if p.exports[name] {
		p.raise(diag.SynDuplicateExport, off, "Duplicate export '%s'.", name)
	}
	p.exports[name] = true
}

func (p *Parser) declareExport(n ast.Node) {
	switch n := n.(type) {
	case *ast.Identifier:
		p.exportName(n.Name, n.Start)
	case *ast.StringLiteral:
		p.exportName(n.Value, n.Start)
	}
}

func (p *Parser) declareExportsOf(decl ast.Statement) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		p.declareExport(d.ID)
	case *ast.ClassDeclaration:
		p.declareExport(d.ID)
	case *ast.VariableDeclaration:
		for _, v := range d.Declarations {
			for _, id := range boundNames(v.ID) {
				p.declareExport(id)
			}
		}
	}
}

// cloneName copies an export name so local and exported are distinct nodes.
func cloneName(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.Identifier:
		return cloneIdent(n)
	case *ast.StringLiteral:
		c := *n
		c.LeadingComments, c.TrailingComments, c.InnerComments = nil, nil, nil
		return &c
	}
	return n
}
