package parser

import (
	"axo/pkg/ast"
	"axo/pkg/token"
)

// parseExpression is the precedence-climbing entry point (spec.md §4.2):
// assignment (right-assoc) -> logical-or -> logical-and -> equality ->
// comparison -> additive -> multiplicative -> unary -> postfix -> primary.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	lhs := p.parseLogicalOr()
	if !p.check(token.Assign) {
		return lhs
	}
	pos := p.cur().Pos
	p.advance()
	rhs := p.parseAssignment() // right-associative

	switch target := lhs.(type) {
	case *ast.Identifier:
		return &ast.NameAssignment{NodeBase: baseAt(pos), Name: target.Name, Value: rhs}
	case *ast.IndexExpression:
		return &ast.IndexAssignment{NodeBase: baseAt(pos), Target: target.Target, Index: target.Index, Value: rhs}
	case *ast.FieldExpression:
		return &ast.FieldAssignment{NodeBase: baseAt(pos), Target: target.Target, Field: target.Field, Value: rhs}
	default:
		p.fail("invalid assignment target")
		panic("unreachable")
	}
}

func baseAt(pos token.Position) ast.NodeBase { return ast.NewBase(pos) }

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.check(token.Or) {
		pos := p.advance().Pos
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpression{NodeBase: baseAt(pos), Op: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(token.And) {
		pos := p.advance().Pos
		right := p.parseEquality()
		left = &ast.BinaryExpression{NodeBase: baseAt(pos), Op: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(token.Eq) || p.check(token.NotEq) {
		t := p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpression{NodeBase: baseAt(t.Pos), Op: t.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.check(token.Less) || p.check(token.Greater) || p.check(token.LessEq) || p.check(token.GreaterEq) {
		t := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{NodeBase: baseAt(t.Pos), Op: t.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(token.Plus) || p.check(token.Minus) {
		t := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{NodeBase: baseAt(t.Pos), Op: t.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		t := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpression{NodeBase: baseAt(t.Pos), Op: t.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch {
	case p.check(token.Not), p.check(token.Minus):
		t := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{NodeBase: baseAt(t.Pos), Op: t.Lexeme, Operand: operand}
	case p.check(token.KwTypeof):
		t := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{NodeBase: baseAt(t.Pos), Op: "typeof", Operand: operand}
	case p.check(token.KwAwait):
		t := p.advance()
		operand := p.parseUnary()
		return &ast.AwaitExpression{NodeBase: baseAt(t.Pos), Operand: operand}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(token.LParen):
			pos := p.advance().Pos
			args := p.parseArgList()
			p.expect(token.RParen, "call arguments")
			expr = &ast.CallExpression{NodeBase: baseAt(pos), Callee: expr, Args: args}
		case p.check(token.LBracket):
			pos := p.advance().Pos
			idx := p.parseExpression()
			p.expect(token.RBracket, "index expression")
			expr = &ast.IndexExpression{NodeBase: baseAt(pos), Target: expr, Index: idx}
		case p.check(token.Dot):
			pos := p.advance().Pos
			name := p.expect(token.IDENT, "field access")
			_ = pos
			expr = &ast.FieldExpression{NodeBase: baseAt(name.Pos), Target: expr, Field: name.Lexeme}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(token.RParen) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(token.Comma) {
		args = append(args, p.parseExpression())
	}
	return args
}
