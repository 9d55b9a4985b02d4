package runtime

import (
	"testing"

	"axo/pkg/types"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", IntValue(1), nil, false)
	v, err := env.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != IntValue(1) {
		t.Fatalf("got %v, want 1", v)
	}
}

func TestEnvironmentGetUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	if _, err := env.Get("missing"); err == nil {
		t.Fatalf("expected an error for an undefined name")
	}
}

func TestEnvironmentShadowingAcrossScopes(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("x", IntValue(1), nil, false)
	child := parent.Extend()
	child.Define("x", IntValue(2), nil, false)

	v, _ := child.Get("x")
	if v != IntValue(2) {
		t.Fatalf("child scope should see its own binding, got %v", v)
	}
	pv, _ := parent.Get("x")
	if pv != IntValue(1) {
		t.Fatalf("parent binding should be untouched, got %v", pv)
	}
}

func TestEnvironmentAssignRejectsConst(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", IntValue(1), nil, true)
	registry := types.NewRegistry()
	if err := env.Assign("x", IntValue(2), registry); err == nil {
		t.Fatalf("expected an error assigning to a const binding")
	}
}

func TestEnvironmentAssignEnforcesComplexDeclaredType(t *testing.T) {
	env := NewEnvironment(nil)
	registry := types.NewRegistry()
	arrType := types.Array(types.Int)
	env.Define("xs", &ArrayValue{Elements: []Value{IntValue(1)}}, arrType, false)

	if err := env.Assign("xs", StringValue("nope"), registry); err == nil {
		t.Fatalf("expected an error assigning a string to a declared [int]")
	}
	if err := env.Assign("xs", &ArrayValue{Elements: []Value{IntValue(2)}}, registry); err != nil {
		t.Fatalf("unexpected error assigning a matching array: %v", err)
	}
}

func TestEnvironmentAssignSkipsCheckForSimpleBaseType(t *testing.T) {
	env := NewEnvironment(nil)
	registry := types.NewRegistry()
	env.Define("n", IntValue(1), types.Int, false)
	if err := env.Assign("n", StringValue("not actually an int"), registry); err != nil {
		t.Fatalf("simple base types skip the runtime check as a documented quirk, got error: %v", err)
	}
}

func TestSnapshotAndFromSnapshotAreIndependentOfLaterDefines(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("a", IntValue(1), nil, false)
	child := parent.Extend()
	child.Define("b", IntValue(2), nil, false)

	snap := child.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 bindings in snapshot, got %d", len(snap))
	}

	restored := FromSnapshot(snap)
	child.Define("c", IntValue(3), nil, false)

	if _, err := restored.Get("c"); err == nil {
		t.Fatalf("snapshot taken before 'c' was defined should not see it")
	}
	av, err := restored.Get("a")
	if err != nil || av != IntValue(1) {
		t.Fatalf("expected restored 'a' == 1, got %v, %v", av, err)
	}
}

func TestObjectValuePreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", IntValue(1))
	o.Set("a", IntValue(2))
	o.Set("z", IntValue(3)) // overwrite shouldn't move position

	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("expected insertion order [z a], got %v", keys)
	}
	v, _ := o.Get("z")
	if v != IntValue(3) {
		t.Fatalf("expected overwritten value 3, got %v", v)
	}
}

func TestObjectValueCloneIsShallowAndIndependent(t *testing.T) {
	o := NewObject()
	o.Set("x", IntValue(1))
	c := o.Clone()
	c.Set("y", IntValue(2))

	if o.Len() != 1 {
		t.Fatalf("clone mutation should not affect the original, original has %d fields", o.Len())
	}
}

func TestMatchesStructuralObjectBySuperset(t *testing.T) {
	registry := types.NewRegistry()
	shape := types.Obj([]types.Field{{Name: "name", Type: types.String}})

	o := NewObject()
	o.Set("name", StringValue("ok"))
	o.Set("extra", IntValue(1))

	if !Matches(o, shape, registry) {
		t.Fatalf("object with an extra field should still match a structural subset")
	}

	missing := NewObject()
	if Matches(missing, shape, registry) {
		t.Fatalf("object missing a required field should not match")
	}
}

func TestMatchesUnionAndLiteralTypes(t *testing.T) {
	registry := types.NewRegistry()
	u := types.Union([]*types.Descriptor{types.LitStr("on"), types.LitStr("off")})

	if !Matches(StringValue("on"), u, registry) {
		t.Fatalf("expected 'on' to match the literal union")
	}
	if Matches(StringValue("maybe"), u, registry) {
		t.Fatalf("expected 'maybe' to not match the literal union")
	}
}

func TestTypeNameOfEveryKind(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{IntValue(1), "int"},
		{FloatValue(1), "float"},
		{BoolValue(true), "bool"},
		{StringValue("s"), "string"},
		{&ArrayValue{}, "array"},
		{NewObject(), "object"},
		{NativeFunctionValue{}, "function"},
	}
	for _, tc := range cases {
		if got := TypeNameOf(tc.v); got != tc.want {
			t.Errorf("TypeNameOf(%T) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
