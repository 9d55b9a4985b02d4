package parser

import (
	"strconv"

	"axo/pkg/ast"
	"axo/pkg/diagnostic"
	"axo/pkg/token"
)

// parsePrimary handles spec.md §4.2's primary productions: literals, array
// and object literals, function expressions, parenthesized expressions,
// and plain identifiers.
func (p *Parser) parsePrimary() ast.Expression {
	t := p.cur()
	switch t.Kind {
	case token.INT:
		p.advance()
		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			panic(diagnostic.New(diagnostic.ParseError, t.Pos, "malformed integer literal %q", t.Lexeme))
		}
		return &ast.IntLiteral{NodeBase: baseAt(t.Pos), Value: v}
	case token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(t.Lexeme, 32)
		if err != nil {
			panic(diagnostic.New(diagnostic.ParseError, t.Pos, "malformed float literal %q", t.Lexeme))
		}
		return &ast.FloatLiteral{NodeBase: baseAt(t.Pos), Value: float32(v)}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{NodeBase: baseAt(t.Pos), Value: t.Lexeme}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLiteral{NodeBase: baseAt(t.Pos), Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLiteral{NodeBase: baseAt(t.Pos), Value: false}
	case token.IDENT:
		p.advance()
		return &ast.Identifier{NodeBase: baseAt(t.Pos), Name: t.Lexeme}
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunc:
		return p.parseFunctionExpression()
	case token.LParen:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RParen, "parenthesized expression")
		return expr
	case token.UNKNOWN:
		panic(diagnostic.New(diagnostic.LexError, t.Pos, "malformed token %q", t.Lexeme))
	default:
		p.fail("unexpected token %q while parsing an expression", t.Lexeme)
		panic("unreachable")
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.expect(token.LBracket, "array literal").Pos
	var elems []ast.Expression
	if !p.check(token.RBracket) {
		elems = append(elems, p.parseExpression())
		for p.match(token.Comma) {
			if p.check(token.RBracket) {
				break
			}
			elems = append(elems, p.parseExpression())
		}
	}
	p.expect(token.RBracket, "array literal")
	return &ast.ArrayLiteral{NodeBase: baseAt(pos), Elements: elems}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	pos := p.expect(token.LBrace, "object literal").Pos
	var fields []ast.ObjectField
	if !p.check(token.RBrace) {
		fields = append(fields, p.parseObjectField())
		for p.match(token.Comma) {
			if p.check(token.RBrace) {
				break
			}
			fields = append(fields, p.parseObjectField())
		}
	}
	p.expect(token.RBrace, "object literal")
	return &ast.ObjectLiteral{NodeBase: baseAt(pos), Fields: fields}
}

func (p *Parser) parseObjectField() ast.ObjectField {
	key := p.expect(token.IDENT, "object literal field name")
	p.expect(token.Colon, "object literal field")
	value := p.parseExpression()
	return ast.ObjectField{Key: key.Lexeme, Value: value}
}

// parseFunctionExpression parses `func(params) -> T { body }`.
func (p *Parser) parseFunctionExpression() ast.Expression {
	pos := p.expect(token.KwFunc, "function expression").Pos
	params := p.parseParamList()
	retType := p.parseOptionalReturnType()
	body := p.parseBlock()
	return &ast.FunctionExpression{NodeBase: baseAt(pos), Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LParen, "parameter list")
	var params []ast.Param
	if !p.check(token.RParen) {
		params = append(params, p.parseParam())
		for p.match(token.Comma) {
			params = append(params, p.parseParam())
		}
	}
	p.expect(token.RParen, "parameter list")
	return params
}

func (p *Parser) parseParam() ast.Param {
	name := p.expect(token.IDENT, "parameter")
	typeSrc := ""
	if p.match(token.Colon) {
		typeSrc = p.parseTypeSource()
	}
	return ast.Param{Name: name.Lexeme, TypeSrc: typeSrc}
}

// parseOptionalReturnType consumes a trailing `-> T` if present.
func (p *Parser) parseOptionalReturnType() string {
	if p.match(token.Arrow) {
		return p.parseTypeSource()
	}
	return ""
}
