package parser

import (
	"axo/pkg/ast"
	"axo/pkg/token"
)

// parseVarDeclaration parses `var name[:Type] [= expr]` or the `const` form.
func (p *Parser) parseVarDeclaration() *ast.VarDeclaration {
	t := p.advance() // KwVar or KwConst
	isConst := t.Kind == token.KwConst
	name := p.expect(token.IDENT, "variable declaration")
	typeSrc := ""
	if p.match(token.Colon) {
		typeSrc = p.parseTypeSource()
	}
	var init ast.Expression
	if p.match(token.Assign) {
		init = p.parseExpression()
	}
	return &ast.VarDeclaration{NodeBase: baseAt(t.Pos), Name: name.Lexeme, TypeSrc: typeSrc, Const: isConst, Init: init}
}

// parseFunctionDeclaration parses `func name(params) -> T { body }`.
func (p *Parser) parseFunctionDeclaration() ast.Statement {
	pos := p.expect(token.KwFunc, "function declaration").Pos
	name := p.expect(token.IDENT, "function declaration")
	params := p.parseParamList()
	retType := p.parseOptionalReturnType()
	body := p.parseBlock()
	return &ast.FunctionDeclaration{NodeBase: baseAt(pos), Name: name.Lexeme, Params: params, ReturnType: retType, Body: body}
}

// parseProgramDeclaration parses `program name(params) -> T { body }`, a
// declaration kind distinct from func (spec.md §4.4): it lives in its own
// registry and is the only thing `await` may run on a separate task.
func (p *Parser) parseProgramDeclaration() ast.Statement {
	pos := p.expect(token.KwProgram, "program declaration").Pos
	name := p.expect(token.IDENT, "program declaration")
	params := p.parseParamList()
	retType := p.parseOptionalReturnType()
	body := p.parseBlock()
	return &ast.ProgramDeclaration{NodeBase: baseAt(pos), Name: name.Lexeme, Params: params, ReturnType: retType, Body: body}
}

// parseTypeDeclaration parses `type Name = <type grammar>`.
func (p *Parser) parseTypeDeclaration() ast.Statement {
	pos := p.expect(token.KwType, "type declaration").Pos
	name := p.expect(token.IDENT, "type declaration")
	p.expect(token.Assign, "type declaration")
	typeSrc := p.parseTypeSource()
	p.consumeOptionalSemicolon()
	return &ast.TypeDeclaration{NodeBase: baseAt(pos), Name: name.Lexeme, TypeSrc: typeSrc}
}
