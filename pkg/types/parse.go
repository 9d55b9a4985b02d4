package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse re-parses a type descriptor's canonical textual form (as produced
// by Descriptor.String()) back into a structural Descriptor. The AST layer
// carries type annotations as plain text (ast.Param.TypeSrc,
// ast.VarDeclaration.TypeSrc, ...) so that pkg/ast has no dependency on
// pkg/types; the interpreter calls Parse once, at the point a declared
// type is actually consulted, to recover the structural form the checker
// in pkg/runtime needs. This is a standalone scanner over the type grammar
// only — it cannot reuse pkg/parser, which already depends on pkg/types,
// to avoid an import cycle.
func Parse(src string) (*Descriptor, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Any, nil
	}
	p := &typeScanner{src: src}
	d, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing input in type %q at byte %d", src, p.pos)
	}
	return d, nil
}

type typeScanner struct {
	src string
	pos int
}

func (p *typeScanner) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeScanner) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeScanner) parseUnion() (*Descriptor, error) {
	first, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '|' {
		return first, nil
	}
	members := []*Descriptor{first}
	for p.peek() == '|' {
		p.pos++
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		p.skipSpace()
	}
	return Union(members), nil
}

func (p *typeScanner) parseMember() (*Descriptor, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unexpected end of type descriptor")
	}
	switch c := p.peek(); {
	case c == '[':
		return p.parseArrayOrTuple()
	case c == '{':
		return p.parseObject()
	case c == '(':
		return p.parseFunc()
	case c == '"':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return LitStr(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseIntLiteral()
	default:
		return p.parseWordOrBase()
	}
}

func (p *typeScanner) parseWordOrBase() (*Descriptor, error) {
	start := p.pos
	for p.pos < len(p.src) && isWordByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("unexpected character %q in type descriptor", p.peek())
	}
	word := p.src[start:p.pos]
	switch word {
	case "int", "float", "string", "bool", "object", "any":
		return Base(word), nil
	case "true":
		return LitBool(true), nil
	case "false":
		return LitBool(false), nil
	default:
		return Named(word), nil
	}
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *typeScanner) parseIntLiteral() (*Descriptor, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	v, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed integer-literal type %q", p.src[start:p.pos])
	}
	return LitInt(v), nil
}

func (p *typeScanner) parseQuoted() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	for p.pos < len(p.src) {
		if p.src[p.pos] == '\\' {
			p.pos += 2
			continue
		}
		if p.src[p.pos] == '"' {
			p.pos++
			unquoted, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", fmt.Errorf("malformed string-literal type %q", p.src[start:p.pos])
			}
			return unquoted, nil
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated string-literal type starting at byte %d", start)
}

func (p *typeScanner) parseArrayOrTuple() (*Descriptor, error) {
	p.pos++ // '['
	var elems []*Descriptor
	p.skipSpace()
	if p.peek() != ']' {
		first, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		elems = append(elems, first)
		p.skipSpace()
		for p.peek() == ',' {
			p.pos++
			m, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			elems = append(elems, m)
			p.skipSpace()
		}
	}
	if p.peek() != ']' {
		return nil, fmt.Errorf("expected ']' at byte %d", p.pos)
	}
	p.pos++
	if len(elems) == 1 {
		return Array(elems[0]), nil
	}
	return Tuple(elems), nil
}

func (p *typeScanner) parseObject() (*Descriptor, error) {
	p.pos++ // '{'
	var fields []Field
	p.skipSpace()
	if p.peek() != '}' {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		p.skipSpace()
		for p.peek() == ',' {
			p.pos++
			f, err := p.parseField()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
			p.skipSpace()
		}
	}
	if p.peek() != '}' {
		return nil, fmt.Errorf("expected '}' at byte %d", p.pos)
	}
	p.pos++
	return Obj(fields), nil
}

func (p *typeScanner) parseField() (Field, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isWordByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Field{}, fmt.Errorf("expected field name at byte %d", start)
	}
	name := p.src[start:p.pos]
	p.skipSpace()
	if p.peek() != ':' {
		return Field{}, fmt.Errorf("expected ':' after field %q", name)
	}
	p.pos++
	t, err := p.parseUnion()
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Type: t}, nil
}

func (p *typeScanner) parseFunc() (*Descriptor, error) {
	p.pos++ // '('
	var params []*Descriptor
	p.skipSpace()
	if p.peek() != ')' {
		first, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		params = append(params, first)
		p.skipSpace()
		for p.peek() == ',' {
			p.pos++
			m, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			params = append(params, m)
			p.skipSpace()
		}
	}
	if p.peek() != ')' {
		return nil, fmt.Errorf("expected ')' at byte %d", p.pos)
	}
	p.pos++
	p.skipSpace()
	if p.pos+1 >= len(p.src) || p.src[p.pos] != '-' || p.src[p.pos+1] != '>' {
		return nil, fmt.Errorf("expected '->' after function type parameters")
	}
	p.pos += 2
	ret, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	return Func(params, ret), nil
}
