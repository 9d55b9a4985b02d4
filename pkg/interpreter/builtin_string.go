package interpreter

import (
	"fmt"
	"strings"

	"axo/pkg/runtime"
)

func (ip *Interpreter) registerStringBuiltins(reg func(string, runtime.NativeFunc)) {
	reg("substr", builtinSubstr)
	reg("toUpper", builtinToUpper)
	reg("toLower", builtinToLower)
	reg("indexOf", ip.builtinIndexOf)
	reg("contains", builtinContains)
	reg("trim", builtinTrim)
	reg("replace", builtinReplace)
	reg("split", builtinSplit)
	reg("startsWith", builtinStartsWith)
	reg("endsWith", builtinEndsWith)
	reg("repeat", builtinRepeat)
	reg("charAt", builtinCharAt)
	reg("charCodeAt", builtinCharCodeAt)
}

func asString(v runtime.Value, who string) (string, error) {
	s, ok := v.(runtime.StringValue)
	if !ok {
		return "", fmt.Errorf("%s expects a string", who)
	}
	return string(s), nil
}

// builtinSubstr returns the empty string for an out-of-range start,
// matching spec.md §8's "no exceptions for bad slices" convention.
func builtinSubstr(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 3, "substr"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "substr")
	if err != nil {
		return nil, err
	}
	start, ok1 := args[1].(runtime.IntValue)
	length, ok2 := args[2].(runtime.IntValue)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("substr expects (string, start: int, len: int)")
	}
	runes := []rune(s)
	if int(start) < 0 || int(start) > len(runes) {
		return runtime.StringValue(""), nil
	}
	e := clampIndex(int(start)+int(length), len(runes))
	if e < int(start) {
		e = int(start)
	}
	return runtime.StringValue(string(runes[start:e])), nil
}

func builtinToUpper(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "toUpper"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "toUpper")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue(strings.ToUpper(s)), nil
}

func builtinToLower(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "toLower"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "toLower")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue(strings.ToLower(s)), nil
}

// builtinIndexOf is overloaded over strings (substring search) and arrays
// (element search via canonical equality), so that
// `hasKey(o,k)==(indexOf(keys(o),k)!=-1)` (spec.md §8) holds for the array
// case too.
func (ip *Interpreter) builtinIndexOf(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "indexOf"); err != nil {
		return nil, err
	}
	switch haystack := args[0].(type) {
	case runtime.StringValue:
		needle, ok := args[1].(runtime.StringValue)
		if !ok {
			return nil, fmt.Errorf("indexOf on a string expects a string needle")
		}
		idx := strings.Index(string(haystack), string(needle))
		if idx < 0 {
			return runtime.IntValue(-1), nil
		}
		return runtime.IntValue(len([]rune(string(haystack)[:idx]))), nil
	case *runtime.ArrayValue:
		for i, el := range haystack.Elements {
			if canonicalEquals(el, args[1]) {
				return runtime.IntValue(i), nil
			}
		}
		return runtime.IntValue(-1), nil
	default:
		return nil, fmt.Errorf("indexOf expects a string or array")
	}
}

func builtinContains(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "contains"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "contains")
	if err != nil {
		return nil, err
	}
	needle, err := asString(args[1], "contains")
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue(strings.Contains(s, needle)), nil
}

func builtinTrim(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "trim"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "trim")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue(strings.TrimSpace(s)), nil
}

// builtinReplace replaces only the first occurrence, per spec.md §6.
func builtinReplace(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 3, "replace"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "replace")
	if err != nil {
		return nil, err
	}
	from, err := asString(args[1], "replace")
	if err != nil {
		return nil, err
	}
	to, err := asString(args[2], "replace")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue(strings.Replace(s, from, to, 1)), nil
}

func builtinSplit(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "split"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "split")
	if err != nil {
		return nil, err
	}
	sep, err := asString(args[1], "split")
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]runtime.Value, len(parts))
	for i, p := range parts {
		out[i] = runtime.StringValue(p)
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinStartsWith(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "startsWith"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "startsWith")
	if err != nil {
		return nil, err
	}
	prefix, err := asString(args[1], "startsWith")
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue(strings.HasPrefix(s, prefix)), nil
}

func builtinEndsWith(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "endsWith"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "endsWith")
	if err != nil {
		return nil, err
	}
	suffix, err := asString(args[1], "endsWith")
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue(strings.HasSuffix(s, suffix)), nil
}

func builtinRepeat(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "repeat"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "repeat")
	if err != nil {
		return nil, err
	}
	n, ok := args[1].(runtime.IntValue)
	if !ok || n < 0 {
		return nil, fmt.Errorf("repeat expects a non-negative int count")
	}
	return runtime.StringValue(strings.Repeat(s, int(n))), nil
}

func builtinCharAt(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "charAt"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "charAt")
	if err != nil {
		return nil, err
	}
	i, ok := args[1].(runtime.IntValue)
	if !ok {
		return nil, fmt.Errorf("charAt expects an int index")
	}
	runes := []rune(s)
	if int(i) < 0 || int(i) >= len(runes) {
		return runtime.StringValue(""), nil
	}
	return runtime.StringValue(string(runes[i])), nil
}

func builtinCharCodeAt(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "charCodeAt"); err != nil {
		return nil, err
	}
	s, err := asString(args[0], "charCodeAt")
	if err != nil {
		return nil, err
	}
	i, ok := args[1].(runtime.IntValue)
	if !ok {
		return nil, fmt.Errorf("charCodeAt expects an int index")
	}
	runes := []rune(s)
	if int(i) < 0 || int(i) >= len(runes) {
		return runtime.IntValue(-1), nil
	}
	return runtime.IntValue(int64(runes[i])), nil
}
