package interpreter

import (
	"fmt"
	"strconv"
	"time"

	"axo/pkg/runtime"
)

// registerBuiltins installs every name the evaluator exposes as a callable
// (spec.md §6) into env. Each module root environment gets its own copy —
// builtins carry no state of their own beyond what ip closes over (the
// interpreter's output writer, for `print`).
func (ip *Interpreter) registerBuiltins(env *runtime.Environment) {
	reg := func(name string, fn runtime.NativeFunc) {
		env.Define(name, runtime.NativeFunctionValue{Name: name, Impl: fn}, nil, true)
	}

	reg("print", ip.builtinPrint)
	reg("len", ip.builtinLen)
	reg("toString", ip.builtinToString)
	reg("toInt", builtinToInt)
	reg("toFloat", builtinToFloat)
	reg("toBool", builtinToBool)
	reg("assert", builtinAssert)
	reg("error", builtinError)
	reg("millis", builtinMillis)
	reg("sleep", builtinSleep)

	ip.registerIOBuiltins(reg)
	ip.registerArrayBuiltins(reg)
	ip.registerStringBuiltins(reg)
	ip.registerMathBuiltins(reg)
	ip.registerObjectBuiltins(reg)
}

func requireArgs(args []runtime.Value, n int, name string) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s) but got %d", name, n, len(args))
	}
	return nil
}

func (ip *Interpreter) builtinPrint(args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = ip.canonicalString(a)
	}
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " "
		}
		line += p
	}
	fmt.Fprintln(ip.out, line)
	return runtime.UnitValue{}, nil
}

func (ip *Interpreter) builtinLen(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "len"); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *runtime.ArrayValue:
		return runtime.IntValue(len(v.Elements)), nil
	case *runtime.ObjectValue:
		return runtime.IntValue(v.Len()), nil
	case runtime.StringValue:
		return runtime.IntValue(len([]rune(string(v)))), nil
	default:
		return nil, fmt.Errorf("len expects an array, object, or string")
	}
}

func (ip *Interpreter) builtinToString(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "toString"); err != nil {
		return nil, err
	}
	return runtime.StringValue(ip.canonicalString(args[0])), nil
}

// builtinToInt / builtinToFloat / builtinToBool implement the "conversion"
// group; round-tripping through toString is the spec.md §8 law these
// support (`toInt(toString(n))==n`).
func builtinToInt(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "toInt"); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case runtime.IntValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntValue(int64(v)), nil
	case runtime.StringValue:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return runtime.IntValue(0), nil
		}
		return runtime.IntValue(n), nil
	case runtime.BoolValue:
		if v {
			return runtime.IntValue(1), nil
		}
		return runtime.IntValue(0), nil
	default:
		return runtime.IntValue(0), nil
	}
}

func builtinToFloat(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "toFloat"); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case runtime.FloatValue:
		return v, nil
	case runtime.IntValue:
		return runtime.FloatValue(float32(v)), nil
	case runtime.StringValue:
		f, err := strconv.ParseFloat(string(v), 32)
		if err != nil {
			return runtime.FloatValue(0), nil
		}
		return runtime.FloatValue(float32(f)), nil
	default:
		return runtime.FloatValue(0), nil
	}
}

func builtinToBool(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "toBool"); err != nil {
		return nil, err
	}
	return runtime.BoolValue(truthy(args[0])), nil
}

func builtinAssert(args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("assert expects (cond) or (cond, msg)")
	}
	if truthy(args[0]) {
		return runtime.UnitValue{}, nil
	}
	msg := "assertion failed"
	if len(args) == 2 {
		if s, ok := args[1].(runtime.StringValue); ok {
			msg = string(s)
		}
	}
	return nil, fmt.Errorf("%s", msg)
}

func builtinError(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "error"); err != nil {
		return nil, err
	}
	s, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("error expects a string message")
	}
	return nil, fmt.Errorf("%s", string(s))
}

func builtinMillis(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 0, "millis"); err != nil {
		return nil, err
	}
	return runtime.IntValue(time.Now().UnixMilli()), nil
}

func builtinSleep(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "sleep"); err != nil {
		return nil, err
	}
	ms, ok := args[0].(runtime.IntValue)
	if !ok {
		return nil, fmt.Errorf("sleep expects an int number of milliseconds")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return runtime.UnitValue{}, nil
}
