// Package types implements AXO's TypeDescriptor grammar (spec.md §3); the
// structural `matches` checker that consumes it lives in pkg/runtime
// (match.go). The descriptor is kept
// as a parsed structural representation — per spec.md §9's design note —
// and rendered back to its canonical textual form lazily via String(),
// rather than being built by ad-hoc string splicing twice.
package types

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which grammar production a Descriptor came from.
type Kind int

const (
	KindBase    Kind = iota // int, float, string, bool, object, any
	KindLitInt              // an integer-literal type
	KindLitStr              // a "string-literal" type
	KindLitBool             // true or false as a type
	KindArray               // [T]
	KindTuple               // [T1,T2,...]
	KindObject              // {f1:T1, f2:T2, ...}
	KindUnion               // T1|T2|...
	KindFunc                // (T1,T2)->R
	KindNamed               // a custom type resolved via the registry
)

// Field is one member of an object-shaped Descriptor.
type Field struct {
	Name string
	Type *Descriptor
}

// Descriptor is AXO's TypeDescriptor: a small struct-of-variants selected
// by Kind, mirroring the Value/runtime tagged-union style used elsewhere
// in this interpreter.
type Descriptor struct {
	Kind Kind

	Base string // KindBase

	LitInt  int64  // KindLitInt
	LitStr  string // KindLitStr
	LitBool bool   // KindLitBool

	Elem  *Descriptor   // KindArray
	Tuple []*Descriptor // KindTuple
	Field []Field       // KindObject
	Union []*Descriptor // KindUnion

	Params []*Descriptor // KindFunc
	Return *Descriptor   // KindFunc

	Name string // KindNamed
}

// Base type constructors.
func Base(name string) *Descriptor { return &Descriptor{Kind: KindBase, Base: name} }

var (
	Int    = Base("int")
	Float  = Base("float")
	String = Base("string")
	Bool   = Base("bool")
	Object = Base("object")
	Any    = Base("any")
)

func LitInt(v int64) *Descriptor    { return &Descriptor{Kind: KindLitInt, LitInt: v} }
func LitStr(v string) *Descriptor   { return &Descriptor{Kind: KindLitStr, LitStr: v} }
func LitBool(v bool) *Descriptor    { return &Descriptor{Kind: KindLitBool, LitBool: v} }
func Array(elem *Descriptor) *Descriptor { return &Descriptor{Kind: KindArray, Elem: elem} }
func Tuple(elems []*Descriptor) *Descriptor {
	return &Descriptor{Kind: KindTuple, Tuple: elems}
}
func Obj(fields []Field) *Descriptor { return &Descriptor{Kind: KindObject, Field: fields} }
func Union(members []*Descriptor) *Descriptor {
	return &Descriptor{Kind: KindUnion, Union: members}
}
func Func(params []*Descriptor, ret *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindFunc, Params: params, Return: ret}
}
func Named(name string) *Descriptor { return &Descriptor{Kind: KindNamed, Name: name} }

// String renders the canonical textual form of the descriptor, per
// spec.md §3's grammar: base/literal types verbatim, `[T]`, `[T1,T2]`,
// `{f:T,...}`, `T1|T2`, `(A,B)->R`.
func (d *Descriptor) String() string {
	if d == nil {
		return "any"
	}
	switch d.Kind {
	case KindBase:
		return d.Base
	case KindLitInt:
		return strconv.FormatInt(d.LitInt, 10)
	case KindLitStr:
		return strconv.Quote(d.LitStr)
	case KindLitBool:
		if d.LitBool {
			return "true"
		}
		return "false"
	case KindArray:
		return "[" + d.Elem.String() + "]"
	case KindTuple:
		parts := make([]string, len(d.Tuple))
		for i, t := range d.Tuple {
			parts[i] = t.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindObject:
		parts := make([]string, len(d.Field))
		for i, f := range d.Field {
			parts[i] = f.Name + ":" + f.Type.String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case KindUnion:
		parts := make([]string, len(d.Union))
		for i, m := range d.Union {
			parts[i] = m.String()
		}
		return strings.Join(parts, "|")
	case KindFunc:
		parts := make([]string, len(d.Params))
		for i, p := range d.Params {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ",") + ")->" + d.Return.String()
	case KindNamed:
		return d.Name
	default:
		return "any"
	}
}

// IsComplex reports whether the declared type requires a runtime check on
// plain name-assignment (spec.md §3: "enforcing the declared type only
// when the type is complex — contains |, [, or equals any — simple base
// types skip the check as a deliberate hot-path optimization"). This is
// decided from the rendered textual form, literally, which is why an
// object type like `{name:string}` does NOT count as complex: it renders
// with `{`/`}`, never `[` or `|`. That asymmetry is intentional — it is
// the documented quirk, not a bug.
func (d *Descriptor) IsComplex() bool {
	s := d.String()
	if s == "any" {
		return true
	}
	return strings.ContainsAny(s, "|[")
}

// Registry maps custom type names (declared via `type Name = ...`) to
// their resolved Descriptor.
type Registry struct {
	types map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Descriptor)}
}

func (r *Registry) Define(name string, d *Descriptor) {
	r.types[name] = d
}

func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.types[name]
	return d, ok
}

// Resolve follows KindNamed indirection to the underlying Descriptor,
// guarding against a self-referential or mutually-cyclic registry entry.
func (r *Registry) Resolve(d *Descriptor) *Descriptor {
	seen := map[string]bool{}
	for d != nil && d.Kind == KindNamed {
		if seen[d.Name] {
			return d
		}
		seen[d.Name] = true
		next, ok := r.types[d.Name]
		if !ok {
			return d
		}
		d = next
	}
	return d
}

// Names returns the registry's custom type names, sorted for determinism.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.types))
	for n := range r.types {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
