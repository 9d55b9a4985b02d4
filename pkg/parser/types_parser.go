package parser

import (
	"strconv"

	"axo/pkg/token"
	"axo/pkg/types"
)

// parseTypeDescriptor parses a TypeDescriptor (spec.md §3-4.2) directly into
// its structural representation, rather than collecting raw text and
// re-parsing it later — per spec.md §9's design note, the textual form is
// rendered lazily from this structure via Descriptor.String().
//
// Grammar, lowest to highest precedence: union (`|`) binds loosest and is
// left-associative across any number of members; each member is one of a
// base/literal type, `[...]` array-or-tuple, `{...}` structural object,
// `(...)-> R` function type, or a bare identifier naming a custom type.
func (p *Parser) parseTypeDescriptor() *types.Descriptor {
	first := p.parseTypeMember()
	if !p.check(token.Pipe) {
		return first
	}
	members := []*types.Descriptor{first}
	for p.match(token.Pipe) {
		members = append(members, p.parseTypeMember())
	}
	return types.Union(members)
}

func (p *Parser) parseTypeMember() *types.Descriptor {
	t := p.cur()
	switch t.Kind {
	case token.KwInt:
		p.advance()
		return types.Int
	case token.KwFloat:
		p.advance()
		return types.Float
	case token.KwString:
		p.advance()
		return types.String
	case token.KwBool:
		p.advance()
		return types.Bool
	case token.KwObject:
		p.advance()
		return types.Object
	case token.KwAny:
		p.advance()
		return types.Any
	case token.KwTrue:
		p.advance()
		return types.LitBool(true)
	case token.KwFalse:
		p.advance()
		return types.LitBool(false)
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(t.Lexeme, 10, 64)
		return types.LitInt(v)
	case token.STRING:
		p.advance()
		return types.LitStr(t.Lexeme)
	case token.LBracket:
		return p.parseArrayOrTupleType()
	case token.LBrace:
		return p.parseObjectType()
	case token.LParen:
		return p.parseFuncType()
	case token.IDENT:
		p.advance()
		return types.Named(t.Lexeme)
	default:
		p.fail("expected a type but found %q", t.Lexeme)
		panic("unreachable")
	}
}

// parseArrayOrTupleType parses `[T]` (array) or `[T1,T2,...]` (fixed-length
// positional tuple) — the same bracket production disambiguated by whether
// a top-level comma appears, per spec.md §4.5 rule 2.
func (p *Parser) parseArrayOrTupleType() *types.Descriptor {
	p.expect(token.LBracket, "array/tuple type")
	first := p.parseTypeDescriptor()
	if !p.check(token.Comma) {
		p.expect(token.RBracket, "array type")
		return types.Array(first)
	}
	elems := []*types.Descriptor{first}
	for p.match(token.Comma) {
		if p.check(token.RBracket) {
			break
		}
		elems = append(elems, p.parseTypeDescriptor())
	}
	p.expect(token.RBracket, "tuple type")
	return types.Tuple(elems)
}

// parseObjectType parses `{f1:T1, f2:T2, ...}`.
func (p *Parser) parseObjectType() *types.Descriptor {
	p.expect(token.LBrace, "object type")
	var fields []types.Field
	if !p.check(token.RBrace) {
		fields = append(fields, p.parseTypeField())
		for p.match(token.Comma) {
			if p.check(token.RBrace) {
				break
			}
			fields = append(fields, p.parseTypeField())
		}
	}
	p.expect(token.RBrace, "object type")
	return types.Obj(fields)
}

func (p *Parser) parseTypeField() types.Field {
	name := p.expect(token.IDENT, "object type field name")
	p.expect(token.Colon, "object type field")
	t := p.parseTypeDescriptor()
	return types.Field{Name: name.Lexeme, Type: t}
}

// parseFuncType parses `(T1,T2,...)->R`.
func (p *Parser) parseFuncType() *types.Descriptor {
	p.expect(token.LParen, "function type")
	var params []*types.Descriptor
	if !p.check(token.RParen) {
		params = append(params, p.parseTypeDescriptor())
		for p.match(token.Comma) {
			params = append(params, p.parseTypeDescriptor())
		}
	}
	p.expect(token.RParen, "function type")
	p.expect(token.Arrow, "function type")
	ret := p.parseTypeDescriptor()
	return types.Func(params, ret)
}

// parseTypeSource parses a type and immediately renders it back to its
// canonical textual form, which is what ast.Param/VarDeclaration/etc. carry
// (TypeSrc) since the AST layer stays string-based; the interpreter
// re-parses that text into a *types.Descriptor once, at the point where it
// is actually consulted, via types.Parse (called from pkg/interpreter).
// Keeping TypeSrc textual in the AST — rather than threading a
// *types.Descriptor through every Param/VarDeclaration — keeps pkg/ast free
// of any dependency on pkg/types.
func (p *Parser) parseTypeSource() string {
	d := p.parseTypeDescriptor()
	return d.String()
}
