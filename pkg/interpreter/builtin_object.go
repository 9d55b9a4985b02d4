package interpreter

import (
	"fmt"

	"axo/pkg/runtime"
)

func (ip *Interpreter) registerObjectBuiltins(reg func(string, runtime.NativeFunc)) {
	reg("keys", builtinKeys)
	reg("values", builtinValues)
	reg("hasKey", builtinHasKey)
	reg("clone", builtinClone)
	reg("merge", builtinMerge)
}

func asObject(v runtime.Value, who string) (*runtime.ObjectValue, error) {
	o, ok := v.(*runtime.ObjectValue)
	if !ok {
		return nil, fmt.Errorf("%s expects an object", who)
	}
	return o, nil
}

func builtinKeys(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "keys"); err != nil {
		return nil, err
	}
	o, err := asObject(args[0], "keys")
	if err != nil {
		return nil, err
	}
	ks := o.Keys()
	out := make([]runtime.Value, len(ks))
	for i, k := range ks {
		out[i] = runtime.StringValue(k)
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinValues(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "values"); err != nil {
		return nil, err
	}
	o, err := asObject(args[0], "values")
	if err != nil {
		return nil, err
	}
	ks := o.Keys()
	out := make([]runtime.Value, len(ks))
	for i, k := range ks {
		v, _ := o.Get(k)
		out[i] = v
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinHasKey(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "hasKey"); err != nil {
		return nil, err
	}
	o, err := asObject(args[0], "hasKey")
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("hasKey expects a string key")
	}
	_, present := o.Get(string(key))
	return runtime.BoolValue(present), nil
}

func builtinClone(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "clone"); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *runtime.ObjectValue:
		return v.Clone(), nil
	case *runtime.ArrayValue:
		out := make([]runtime.Value, len(v.Elements))
		copy(out, v.Elements)
		return &runtime.ArrayValue{Elements: out}, nil
	default:
		return nil, fmt.Errorf("clone expects an object or array")
	}
}

// builtinMerge returns a new object combining both inputs' fields, with
// the second argument's fields taking precedence on key collision.
func builtinMerge(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "merge"); err != nil {
		return nil, err
	}
	a, err := asObject(args[0], "merge")
	if err != nil {
		return nil, err
	}
	b, err := asObject(args[1], "merge")
	if err != nil {
		return nil, err
	}
	out := runtime.NewObject()
	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		out.Set(k, v)
	}
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		out.Set(k, v)
	}
	return out, nil
}
