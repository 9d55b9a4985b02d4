package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"axo/pkg/runtime"
)

// canonicalString renders v's deterministic textual form (spec.md §4.3):
// primitives in their lexical form, arrays as `[e1, e2, ...]`, objects as
// `{k: v, ...}` in insertion order, function handles as `[function]`. A
// visited set guards self-referential arrays/objects so printing always
// terminates (spec.md §9), rendering a revisit as an ellipsis marker.
func (ip *Interpreter) canonicalString(v runtime.Value) string {
	return canonicalStringVisit(v, map[interface{}]bool{})
}

// CanonicalString exposes canonicalString for callers outside the package
// (the REPL, to print an expression-statement's result).
func (ip *Interpreter) CanonicalString(v runtime.Value) string {
	return ip.canonicalString(v)
}

func canonicalStringVisit(v runtime.Value, visited map[interface{}]bool) string {
	switch val := v.(type) {
	case runtime.IntValue:
		return strconv.FormatInt(int64(val), 10)
	case runtime.FloatValue:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case runtime.BoolValue:
		if bool(val) {
			return "true"
		}
		return "false"
	case runtime.StringValue:
		return string(val)
	case *runtime.ArrayValue:
		if visited[val] {
			return "[...]"
		}
		visited[val] = true
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = canonicalStringVisit(el, visited)
		}
		delete(visited, val)
		return "[" + strings.Join(parts, ", ") + "]"
	case *runtime.ObjectValue:
		if visited[val] {
			return "{...}"
		}
		visited[val] = true
		keys := val.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			fv, _ := val.Get(k)
			parts[i] = k + ": " + canonicalStringVisit(fv, visited)
		}
		delete(visited, val)
		return "{" + strings.Join(parts, ", ") + "}"
	case runtime.FunctionValue, runtime.NativeFunctionValue:
		return "[function]"
	case runtime.UnitValue:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truthy implements spec.md §4.3's truthiness rule: bool is itself;
// nonzero numerics are true; nonempty string/array/object are true;
// everything else is false.
func truthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.BoolValue:
		return bool(val)
	case runtime.IntValue:
		return val != 0
	case runtime.FloatValue:
		return val != 0
	case runtime.StringValue:
		return val != ""
	case *runtime.ArrayValue:
		return len(val.Elements) > 0
	case *runtime.ObjectValue:
		return val.Len() > 0
	default:
		return false
	}
}

// canonicalEquals implements spec.md §8's equality law by comparing
// canonical strings for every kind of value, so values of different kinds
// with the same printed form (1 and "1") are equal; unit equals only unit.
func canonicalEquals(a, b runtime.Value) bool {
	_, aUnit := a.(runtime.UnitValue)
	_, bUnit := b.(runtime.UnitValue)
	if aUnit || bUnit {
		return aUnit && bUnit
	}
	return canonicalStringVisit(a, map[interface{}]bool{}) == canonicalStringVisit(b, map[interface{}]bool{})
}
