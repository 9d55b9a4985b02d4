package runtime

import "axo/pkg/types"

// TypeNameOf returns the base type name a runtime value reports to
// `typeof` and to type-mismatch error messages (spec.md §4.5).
func TypeNameOf(v Value) string {
	switch v.(type) {
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case BoolValue:
		return "bool"
	case StringValue:
		return "string"
	case *ArrayValue:
		return "array"
	case *ObjectValue:
		return "object"
	case FunctionValue, NativeFunctionValue:
		return "function"
	default:
		return "unknown"
	}
}

// Matches implements AXO's structural type checker (spec.md §4.5): it
// decides whether value satisfies the shape described by d, resolving
// named types through registry. It lives in pkg/runtime rather than
// pkg/types because it must inspect concrete Value kinds — pkg/types stays
// free of any dependency on pkg/runtime so the two packages don't form an
// import cycle (see DESIGN.md).
func Matches(value Value, d *types.Descriptor, registry *types.Registry) bool {
	if d == nil {
		return true
	}
	d = registry.Resolve(d)
	switch d.Kind {
	case types.KindBase:
		switch d.Base {
		case "any":
			return true
		case "int":
			_, ok := value.(IntValue)
			return ok
		case "float":
			_, ok := value.(FloatValue)
			return ok
		case "bool":
			_, ok := value.(BoolValue)
			return ok
		case "string":
			_, ok := value.(StringValue)
			return ok
		case "object":
			_, ok := value.(*ObjectValue)
			return ok
		default:
			return false
		}
	case types.KindLitInt:
		iv, ok := value.(IntValue)
		return ok && int64(iv) == d.LitInt
	case types.KindLitStr:
		sv, ok := value.(StringValue)
		return ok && string(sv) == d.LitStr
	case types.KindLitBool:
		bv, ok := value.(BoolValue)
		return ok && bool(bv) == d.LitBool
	case types.KindArray:
		av, ok := value.(*ArrayValue)
		if !ok {
			return false
		}
		for _, el := range av.Elements {
			if !Matches(el, d.Elem, registry) {
				return false
			}
		}
		return true
	case types.KindTuple:
		av, ok := value.(*ArrayValue)
		if !ok || len(av.Elements) != len(d.Tuple) {
			return false
		}
		for i, t := range d.Tuple {
			if !Matches(av.Elements[i], t, registry) {
				return false
			}
		}
		return true
	case types.KindObject:
		ov, ok := value.(*ObjectValue)
		if !ok {
			return false
		}
		for _, f := range d.Field {
			fv, present := ov.Get(f.Name)
			if !present {
				return false
			}
			if !Matches(fv, f.Type, registry) {
				return false
			}
		}
		return true
	case types.KindUnion:
		for _, m := range d.Union {
			if Matches(value, m, registry) {
				return true
			}
		}
		return false
	case types.KindFunc:
		switch value.(type) {
		case FunctionValue, NativeFunctionValue:
			return true
		default:
			return false
		}
	default:
		return false
	}
}
