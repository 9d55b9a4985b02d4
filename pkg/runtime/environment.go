package runtime

import (
	"fmt"
	"sort"

	"axo/pkg/types"
)

// Binding is a single variable record: its current value, its declared
// type (nil means untyped / "any"), and whether it was declared const
// (spec.md §4.1 "var declarations").
type Binding struct {
	Value Value
	Type  *types.Descriptor
	Const bool
}

// Environment provides lexical scoping via a linked chain of scope frames,
// each holding name -> Binding records (spec.md §4.1).
type Environment struct {
	values map[string]*Binding
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]*Binding),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Snapshot returns a flattened, independent copy of every binding visible
// from this scope (own scope shadowing ancestors), keyed by name. Used by
// `await program(...)` to hand a captured-at-call-time view of the caller's
// bindings to the goroutine that runs the awaited program (spec.md §5):
// note this copies the binding table only — Array/Object values remain
// shared by reference, per the Value model's reference semantics.
func (e *Environment) Snapshot() map[string]*Binding {
	out := make(map[string]*Binding)
	var chain []*Environment
	for cur := e; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].values {
			cp := *v
			out[k] = &cp
		}
	}
	return out
}

// Define inserts or shadows a binding in the current scope. Declarations
// always carry an explicit value (spec.md default-value rules are applied
// by the caller before Define runs).
func (e *Environment) Define(name string, value Value, typ *types.Descriptor, isConst bool) {
	e.values[name] = &Binding{Value: value, Type: typ, Const: isConst}
}

// lookupBinding finds the scope frame owning name, searching outward.
func (e *Environment) lookupBinding(name string) *Binding {
	if b, ok := e.values[name]; ok {
		return b
	}
	if e.parent != nil {
		return e.parent.lookupBinding(name)
	}
	return nil
}

// Assign updates an existing binding in the scope where it was declared.
// Re-checks the declared type against the new value when the type is
// "complex" (spec.md §3's documented assignment-time check quirk), and
// rejects writes to const bindings. registry resolves named types.
func (e *Environment) Assign(name string, value Value, registry *types.Registry) error {
	b := e.lookupBinding(name)
	if b == nil {
		return fmt.Errorf("undefined variable '%s'", name)
	}
	if b.Const {
		return fmt.Errorf("cannot assign to const variable '%s'", name)
	}
	if b.Type != nil && b.Type.IsComplex() {
		if !Matches(value, b.Type, registry) {
			return fmt.Errorf("value of type %s is not assignable to '%s' of type %s", TypeNameOf(value), name, b.Type.String())
		}
	}
	b.Value = value
	return nil
}

// Get retrieves a binding's value, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	b := e.lookupBinding(name)
	if b == nil {
		return nil, fmt.Errorf("undefined variable '%s'", name)
	}
	return b.Value, nil
}

// GetBinding exposes the full binding record (used by typeof and by the
// pending-when scheduler to compare declared dependency names).
func (e *Environment) GetBinding(name string) (*Binding, bool) {
	b := e.lookupBinding(name)
	if b == nil {
		return nil, false
	}
	return b, true
}

// Keys returns the bindings declared directly in this scope, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a new child scope nested under e.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// FromSnapshot builds a standalone root environment from a Snapshot, for
// handing an awaited program a captured-at-call-time copy of the caller's
// bindings (spec.md §4.4).
func FromSnapshot(snapshot map[string]*Binding) *Environment {
	env := NewEnvironment(nil)
	for name, b := range snapshot {
		cp := *b
		env.values[name] = &cp
	}
	return env
}
