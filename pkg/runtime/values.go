// Package runtime implements AXO's value model and lexical environment
// (spec.md §3). Values are a tagged union of primitive, array, object, and
// function-reference cases, following the same sum-type-over-virtual-
// dispatch style the teacher uses for its own value model.
package runtime

import (
	"fmt"

	"axo/pkg/ast"
)

// Kind identifies the runtime category of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindArray
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behavior for every AXO runtime value.
type Value interface {
	Kind() Kind
}

type IntValue int64

func (IntValue) Kind() Kind { return KindInt }

type FloatValue float32

func (FloatValue) Kind() Kind { return KindFloat }

type BoolValue bool

func (BoolValue) Kind() Kind { return KindBool }

type StringValue string

func (StringValue) Kind() Kind { return KindString }

// ArrayValue has shared ownership with interior mutability: copying the
// *ArrayValue pointer (as happens whenever the value is assigned to a new
// binding) aliases the same backing slice, per spec.md §3.
type ArrayValue struct {
	Elements []Value
}

func (*ArrayValue) Kind() Kind { return KindArray }

// ObjectValue is an insertion-order-preserving string-keyed map, shared by
// reference like ArrayValue.
type ObjectValue struct {
	keys   []string
	values map[string]Value
}

func NewObject() *ObjectValue {
	return &ObjectValue{values: make(map[string]Value)}
}

func (*ObjectValue) Kind() Kind { return KindObject }

// Set inserts or overwrites a field, preserving first-insertion order.
func (o *ObjectValue) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *ObjectValue) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *ObjectValue) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns field names in insertion order.
func (o *ObjectValue) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *ObjectValue) Len() int { return len(o.keys) }

// Clone returns a shallow copy: a new ObjectValue sharing the same field
// values (per the built-in `clone(v)`'s documented shallow-copy contract).
func (o *ObjectValue) Clone() *ObjectValue {
	c := NewObject()
	for _, k := range o.keys {
		c.Set(k, o.values[k])
	}
	return c
}

// FunctionValue is a non-owning reference to a parsed function/program
// declaration or function expression, paired with its defining closure.
// The AST node it points to outlives every handle, because the module
// loader retains owning roots of all loaded modules for the process
// lifetime (spec.md Invariant I5).
type FunctionValue struct {
	Decl    ast.Node // *ast.FunctionDeclaration, *ast.ProgramDeclaration, or *ast.FunctionExpression
	Closure *Environment
	IsProgram bool
}

func (FunctionValue) Kind() Kind { return KindFunction }

// NativeFunc is a built-in implemented in Go rather than AXO.
type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue wraps a built-in so it can flow through the same
// Value interface as user-defined functions (e.g. for `typeof`).
type NativeFunctionValue struct {
	Name string
	Impl NativeFunc
}

func (NativeFunctionValue) Kind() Kind { return KindFunction }

// UnitValue is the internal plumbing result of evaluating a statement
// (spec.md §4.3: "statements yield the unit value"). Uninitialized
// declarations never default to it, but a call to a function that returns
// no value, or to a built-in such as print, yields it, and that result can
// be bound like any other value. It carries no Kind of its own:
// TypeNameOf reports it as "unknown" and Matches accepts it only for `any`.
type UnitValue struct{}

func (UnitValue) Kind() Kind { return -1 }
