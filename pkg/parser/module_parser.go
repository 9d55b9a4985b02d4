package parser

import (
	"axo/pkg/ast"
	"axo/pkg/token"
)

// parseImportDeclaration covers all four forms named in spec.md §4.2:
// bare `"path"`; default `ident from "path"`; named `{a,b} from "path"`;
// mixed `ident,{a,b} from "path"`.
func (p *Parser) parseImportDeclaration() ast.Statement {
	pos := p.expect(token.KwImport, "import declaration").Pos
	decl := &ast.ImportDeclaration{NodeBase: baseAt(pos)}

	if p.check(token.STRING) {
		decl.Path = p.advance().Lexeme
		p.consumeOptionalSemicolon()
		return decl
	}

	if p.check(token.IDENT) {
		decl.HasDefault = true
		decl.DefaultName = p.advance().Lexeme
		if p.match(token.Comma) {
			decl.NamedImports = p.parseNamedImportList()
		}
	} else if p.check(token.LBrace) {
		decl.NamedImports = p.parseNamedImportList()
	} else {
		p.fail("expected an import binding but found %q", p.cur().Lexeme)
	}

	p.expect(token.KwFrom, "import declaration")
	path := p.expect(token.STRING, "import declaration")
	decl.Path = path.Lexeme
	p.consumeOptionalSemicolon()
	return decl
}

func (p *Parser) parseNamedImportList() []string {
	p.expect(token.LBrace, "named import list")
	var names []string
	if !p.check(token.RBrace) {
		names = append(names, p.expect(token.IDENT, "named import").Lexeme)
		for p.match(token.Comma) {
			names = append(names, p.expect(token.IDENT, "named import").Lexeme)
		}
	}
	p.expect(token.RBrace, "named import list")
	return names
}

// parseUseDeclaration parses `use "path"` — isolated module loading
// (spec.md §4.7).
func (p *Parser) parseUseDeclaration() ast.Statement {
	pos := p.expect(token.KwUse, "use declaration").Pos
	path := p.expect(token.STRING, "use declaration")
	p.consumeOptionalSemicolon()
	return &ast.UseDeclaration{NodeBase: baseAt(pos), Path: path.Lexeme}
}

// parseExportDeclaration covers `export <decl>`, `export default <decl>`,
// and `export {a,b}`.
func (p *Parser) parseExportDeclaration() ast.Statement {
	pos := p.expect(token.KwExport, "export declaration").Pos

	if p.check(token.LBrace) {
		names := p.parseNamedImportList()
		p.consumeOptionalSemicolon()
		return &ast.ExportNamed{NodeBase: baseAt(pos), Names: names}
	}

	isDefault := p.match(token.KwDefault)

	var inner ast.Statement
	switch p.cur().Kind {
	case token.KwFunc:
		inner = p.parseFunctionDeclaration()
	case token.KwProgram:
		inner = p.parseProgramDeclaration()
	case token.KwType:
		inner = p.parseTypeDeclaration()
	case token.KwVar, token.KwConst:
		inner = p.parseVarDeclaration()
		p.consumeOptionalSemicolon()
	default:
		p.fail("expected a declaration after 'export' but found %q", p.cur().Lexeme)
	}
	return &ast.ExportDeclaration{NodeBase: baseAt(pos), Decl: inner, Default: isDefault}
}
