package parser

import (
	"axo/pkg/ast"
	"axo/pkg/token"
)

// parseStatement dispatches to the statement-level productions (spec.md
// §4.2-4.6). Top-level declarations (import/use/export/type/func/program)
// are handled by declarations_parser.go / module_parser.go.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.KwImport:
		return p.parseImportDeclaration()
	case token.KwUse:
		return p.parseUseDeclaration()
	case token.KwExport:
		return p.parseExportDeclaration()
	case token.KwType:
		return p.parseTypeDeclaration()
	case token.KwFunc:
		return p.parseFunctionDeclaration()
	case token.KwProgram:
		return p.parseProgramDeclaration()
	case token.KwVar, token.KwConst:
		s := p.parseVarDeclaration()
		p.consumeOptionalSemicolon()
		return s
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwFor:
		return p.parseForStatement()
	case token.KwBreak:
		pos := p.advance().Pos
		p.consumeOptionalSemicolon()
		return &ast.BreakStatement{NodeBase: baseAt(pos)}
	case token.KwContinue:
		pos := p.advance().Pos
		p.consumeOptionalSemicolon()
		return &ast.ContinueStatement{NodeBase: baseAt(pos)}
	case token.KwReturn:
		pos := p.advance().Pos
		var value ast.Expression
		if !p.check(token.Semicolon) && !p.check(token.RBrace) {
			value = p.parseExpression()
		}
		p.consumeOptionalSemicolon()
		return &ast.ReturnStatement{NodeBase: baseAt(pos), Value: value}
	case token.KwThrow:
		pos := p.advance().Pos
		value := p.parseExpression()
		p.consumeOptionalSemicolon()
		return &ast.ThrowStatement{NodeBase: baseAt(pos), Value: value}
	case token.KwTry:
		return p.parseTryStatement()
	case token.KwSwitch:
		return p.parseSwitchStatement()
	case token.KwWhen:
		return p.parseWhenStatement()
	default:
		pos := p.cur().Pos
		expr := p.parseExpression()
		p.consumeOptionalSemicolon()
		return &ast.ExpressionStatement{NodeBase: baseAt(pos), Expr: expr}
	}
}

// consumeOptionalSemicolon allows (but does not require) a trailing `;`.
func (p *Parser) consumeOptionalSemicolon() {
	p.match(token.Semicolon)
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	pos := p.expect(token.LBrace, "block").Pos
	var stmts []ast.Statement
	for !p.check(token.RBrace) && !p.atEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBrace, "block")
	return &ast.BlockStatement{NodeBase: baseAt(pos), Statements: stmts}
}

func (p *Parser) parseIfStatement() ast.Statement {
	pos := p.expect(token.KwIf, "if statement").Pos
	p.expect(token.LParen, "if condition")
	cond := p.parseExpression()
	p.expect(token.RParen, "if condition")
	then := p.parseBlock()
	var elseBranch ast.Statement
	if p.match(token.KwElse) {
		if p.check(token.KwIf) {
			elseBranch = p.parseIfStatement()
		} else {
			elseBranch = p.parseBlock()
		}
	}
	return &ast.IfStatement{NodeBase: baseAt(pos), Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.expect(token.KwWhile, "while statement").Pos
	p.expect(token.LParen, "while condition")
	cond := p.parseExpression()
	p.expect(token.RParen, "while condition")
	body := p.parseBlock()
	return &ast.WhileStatement{NodeBase: baseAt(pos), Cond: cond, Body: body}
}

// parseForStatement parses `for (init; cond; update) { body }`; each clause
// may be empty.
func (p *Parser) parseForStatement() ast.Statement {
	pos := p.expect(token.KwFor, "for statement").Pos
	p.expect(token.LParen, "for clauses")

	var init ast.Statement
	if !p.check(token.Semicolon) {
		if p.check(token.KwVar) || p.check(token.KwConst) {
			init = p.parseVarDeclaration()
		} else {
			ipos := p.cur().Pos
			init = &ast.ExpressionStatement{NodeBase: baseAt(ipos), Expr: p.parseExpression()}
		}
	}
	p.expect(token.Semicolon, "for clauses")

	var cond ast.Expression
	if !p.check(token.Semicolon) {
		cond = p.parseExpression()
	}
	p.expect(token.Semicolon, "for clauses")

	var update ast.Statement
	if !p.check(token.RParen) {
		upos := p.cur().Pos
		update = &ast.ExpressionStatement{NodeBase: baseAt(upos), Expr: p.parseExpression()}
	}
	p.expect(token.RParen, "for clauses")

	body := p.parseBlock()
	return &ast.ForStatement{NodeBase: baseAt(pos), Init: init, Cond: cond, Update: update, Body: body}
}

func (p *Parser) parseTryStatement() ast.Statement {
	pos := p.expect(token.KwTry, "try statement").Pos
	tryBlock := p.parseBlock()
	stmt := &ast.TryStatement{NodeBase: baseAt(pos), Try: tryBlock}
	if p.match(token.KwCatch) {
		stmt.HasCatch = true
		if p.match(token.LParen) {
			name := p.expect(token.IDENT, "catch parameter")
			stmt.CatchParam = name.Lexeme
			p.expect(token.RParen, "catch parameter")
		}
		stmt.Catch = p.parseBlock()
	}
	if p.match(token.KwFinally) {
		stmt.HasFinally = true
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

// parseSwitchStatement parses `switch(discriminant) { case v: ... default: ... }`.
// Cases never auto-break (spec.md §4.3); `break` is an ordinary
// BreakStatement inside the case body.
func (p *Parser) parseSwitchStatement() ast.Statement {
	pos := p.expect(token.KwSwitch, "switch statement").Pos
	p.expect(token.LParen, "switch discriminant")
	disc := p.parseExpression()
	p.expect(token.RParen, "switch discriminant")
	p.expect(token.LBrace, "switch body")

	var cases []ast.SwitchCase
	for !p.check(token.RBrace) && !p.atEnd() {
		var c ast.SwitchCase
		if p.match(token.KwDefault) {
			c.IsDefault = true
		} else {
			p.expect(token.KwCase, "switch case")
			c.Values = append(c.Values, p.parseExpression())
			for p.match(token.Comma) {
				c.Values = append(c.Values, p.parseExpression())
			}
		}
		p.expect(token.Colon, "switch case")
		for !p.check(token.KwCase) && !p.check(token.KwDefault) && !p.check(token.RBrace) && !p.atEnd() {
			c.Body = append(c.Body, p.parseStatement())
		}
		cases = append(cases, c)
	}
	p.expect(token.RBrace, "switch body")
	return &ast.SwitchStatement{NodeBase: baseAt(pos), Discriminant: disc, Cases: cases}
}

// parseWhenStatement parses `when(cond) { body }` — a reactive guard
// registered with the scheduler rather than executed immediately (spec.md §4.6).
func (p *Parser) parseWhenStatement() ast.Statement {
	pos := p.expect(token.KwWhen, "when statement").Pos
	p.expect(token.LParen, "when condition")
	cond := p.parseExpression()
	p.expect(token.RParen, "when condition")
	body := p.parseBlock()
	return &ast.WhenStatement{NodeBase: baseAt(pos), Cond: cond, Body: body}
}
