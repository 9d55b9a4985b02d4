package interpreter

import (
	"fmt"
	"math"
	"math/rand"

	"axo/pkg/runtime"
)

func (ip *Interpreter) registerMathBuiltins(reg func(string, runtime.NativeFunc)) {
	reg("sin", unaryFloatFn(math.Sin))
	reg("cos", unaryFloatFn(math.Cos))
	reg("tan", unaryFloatFn(math.Tan))
	reg("asin", unaryFloatFn(math.Asin))
	reg("acos", unaryFloatFn(math.Acos))
	reg("atan", unaryFloatFn(math.Atan))
	reg("atan2", binaryFloatFn(math.Atan2))
	reg("sqrt", unaryFloatFn(math.Sqrt))
	reg("pow", binaryFloatFn(math.Pow))
	reg("abs", builtinAbs)
	reg("floor", unaryFloatFn(math.Floor))
	reg("ceil", unaryFloatFn(math.Ceil))
	reg("round", unaryFloatFn(math.Round))
	reg("min", builtinMin)
	reg("max", builtinMax)
	reg("log", unaryFloatFn(math.Log))
	reg("log10", unaryFloatFn(math.Log10))
	reg("exp", unaryFloatFn(math.Exp))
	reg("clamp", builtinClamp)
	reg("lerp", builtinLerp)
	reg("random", builtinRandom)
}

func toFloat64(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case runtime.IntValue:
		return float64(n), true
	case runtime.FloatValue:
		return float64(n), true
	default:
		return 0, false
	}
}

func unaryFloatFn(f func(float64) float64) runtime.NativeFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		if err := requireArgs(args, 1, "math function"); err != nil {
			return nil, err
		}
		x, ok := toFloat64(args[0])
		if !ok {
			return nil, fmt.Errorf("expects a numeric argument")
		}
		return runtime.FloatValue(float32(f(x))), nil
	}
}

func binaryFloatFn(f func(float64, float64) float64) runtime.NativeFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		if err := requireArgs(args, 2, "math function"); err != nil {
			return nil, err
		}
		x, ok1 := toFloat64(args[0])
		y, ok2 := toFloat64(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("expects two numeric arguments")
		}
		return runtime.FloatValue(float32(f(x, y))), nil
	}
}

// builtinAbs preserves the int/float kind of its argument, unlike the
// trigonometric/rounding group which always yields float.
func builtinAbs(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "abs"); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case runtime.IntValue:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case runtime.FloatValue:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	default:
		return nil, fmt.Errorf("abs expects a numeric argument")
	}
}

func builtinMin(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "min"); err != nil {
		return nil, err
	}
	return numericPick(args[0], args[1], true)
}

func builtinMax(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "max"); err != nil {
		return nil, err
	}
	return numericPick(args[0], args[1], false)
}

// numericPick preserves the int kind when both arguments are int, and
// otherwise promotes to float — mirroring evalArithmetic's fast path.
func numericPick(a, b runtime.Value, wantMin bool) (runtime.Value, error) {
	ai, aok := a.(runtime.IntValue)
	bi, bok := b.(runtime.IntValue)
	if aok && bok {
		if (wantMin && ai < bi) || (!wantMin && ai > bi) {
			return ai, nil
		}
		return bi, nil
	}
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if !aok || !bok {
		return nil, fmt.Errorf("expects two numeric arguments")
	}
	if (wantMin && af < bf) || (!wantMin && af > bf) {
		return runtime.FloatValue(float32(af)), nil
	}
	return runtime.FloatValue(float32(bf)), nil
}

func builtinClamp(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 3, "clamp"); err != nil {
		return nil, err
	}
	x, ok1 := toFloat64(args[0])
	lo, ok2 := toFloat64(args[1])
	hi, ok3 := toFloat64(args[2])
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("clamp expects three numeric arguments")
	}
	if x < lo {
		x = lo
	}
	if x > hi {
		x = hi
	}
	return runtime.FloatValue(float32(x)), nil
}

func builtinLerp(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 3, "lerp"); err != nil {
		return nil, err
	}
	a, ok1 := toFloat64(args[0])
	b, ok2 := toFloat64(args[1])
	t, ok3 := toFloat64(args[2])
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("lerp expects three numeric arguments")
	}
	return runtime.FloatValue(float32(a + (b-a)*t)), nil
}

func builtinRandom(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 0, "random"); err != nil {
		return nil, err
	}
	return runtime.FloatValue(float32(rand.Float64())), nil
}
