package interpreter

import (
	"fmt"
	"sort"
	"strings"

	"axo/pkg/runtime"
	"axo/pkg/token"
)

func (ip *Interpreter) registerArrayBuiltins(reg func(string, runtime.NativeFunc)) {
	reg("push", builtinPush)
	reg("pop", builtinPop)
	reg("slice", builtinSlice)
	reg("reverse", builtinReverse)
	reg("join", ip.builtinJoin)
	reg("sort", ip.builtinSort)
	reg("find", ip.builtinFind)
	reg("includes", builtinIncludes)
}

func asArray(v runtime.Value, who string) (*runtime.ArrayValue, error) {
	a, ok := v.(*runtime.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("%s expects an array", who)
	}
	return a, nil
}

func builtinPush(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "push"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "push")
	if err != nil {
		return nil, err
	}
	a.Elements = append(a.Elements, args[1])
	return runtime.UnitValue{}, nil
}

// builtinPop implements spec.md §8's documented quirk: popping an empty
// array returns the empty string, unmutated, rather than raising an error.
func builtinPop(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "pop"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "pop")
	if err != nil {
		return nil, err
	}
	if len(a.Elements) == 0 {
		return runtime.StringValue(""), nil
	}
	last := a.Elements[len(a.Elements)-1]
	a.Elements = a.Elements[:len(a.Elements)-1]
	return last, nil
}

func builtinSlice(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 3, "slice"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "slice")
	if err != nil {
		return nil, err
	}
	start, ok1 := args[1].(runtime.IntValue)
	length, ok2 := args[2].(runtime.IntValue)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("slice expects (array, start: int, len: int)")
	}
	s := clampIndex(int(start), len(a.Elements))
	e := clampIndex(int(start)+int(length), len(a.Elements))
	if e < s {
		e = s
	}
	out := make([]runtime.Value, e-s)
	copy(out, a.Elements[s:e])
	return &runtime.ArrayValue{Elements: out}, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func builtinReverse(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "reverse"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "reverse")
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, len(a.Elements))
	for i, v := range a.Elements {
		out[len(a.Elements)-1-i] = v
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

func (ip *Interpreter) builtinJoin(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "join"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "join")
	if err != nil {
		return nil, err
	}
	sep, ok := args[1].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("join expects (array, separator: string)")
	}
	parts := make([]string, len(a.Elements))
	for i, v := range a.Elements {
		parts[i] = ip.canonicalString(v)
	}
	return runtime.StringValue(strings.Join(parts, string(sep))), nil
}

// builtinSort sorts lexicographically on the canonical string form
// (spec.md §6), returning a new array.
func (ip *Interpreter) builtinSort(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "sort"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "sort")
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, len(a.Elements))
	copy(out, a.Elements)
	sort.SliceStable(out, func(i, j int) bool {
		return ip.canonicalString(out[i]) < ip.canonicalString(out[j])
	})
	return &runtime.ArrayValue{Elements: out}, nil
}

// builtinFind returns the first element for which the predicate function
// is truthy, or the empty string if none match (mirroring pop's
// empty-array quirk rather than introducing a null value).
func (ip *Interpreter) builtinFind(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "find"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "find")
	if err != nil {
		return nil, err
	}
	for _, el := range a.Elements {
		result, callErr := ip.callValueAsPredicate(args[1], el)
		if callErr != nil {
			return nil, callErr
		}
		if truthy(result) {
			return el, nil
		}
	}
	return runtime.StringValue(""), nil
}

func (ip *Interpreter) callValueAsPredicate(fnVal runtime.Value, arg runtime.Value) (runtime.Value, error) {
	switch fn := fnVal.(type) {
	case runtime.NativeFunctionValue:
		return fn.Impl([]runtime.Value{arg})
	case runtime.FunctionValue:
		return ip.invokeFunction(fn, []runtime.Value{arg}, token.Position{}), nil
	default:
		return nil, fmt.Errorf("find expects a function as its second argument")
	}
}

func builtinIncludes(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "includes"); err != nil {
		return nil, err
	}
	a, err := asArray(args[0], "includes")
	if err != nil {
		return nil, err
	}
	for _, el := range a.Elements {
		if canonicalEquals(el, args[1]) {
			return runtime.BoolValue(true), nil
		}
	}
	return runtime.BoolValue(false), nil
}
