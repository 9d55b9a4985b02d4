package interpreter

import (
	"strings"

	"axo/pkg/ast"
	"axo/pkg/diagnostic"
	"axo/pkg/lexer"
	"axo/pkg/parser"
	"axo/pkg/runtime"
	"axo/pkg/types"
)

// evalExpr visits one expression node and returns its Value.
func (ip *Interpreter) evalExpr(expr ast.Expression, env *runtime.Environment) runtime.Value {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue(e.Value)
	case *ast.FloatLiteral:
		return runtime.FloatValue(e.Value)
	case *ast.BoolLiteral:
		return runtime.BoolValue(e.Value)
	case *ast.StringLiteral:
		return runtime.StringValue(ip.renderTemplateString(e.Value, env))
	case *ast.Identifier:
		return ip.evalIdentifier(e, env)
	case *ast.ArrayLiteral:
		elems := make([]runtime.Value, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = ip.evalExpr(el, env)
		}
		return &runtime.ArrayValue{Elements: elems}
	case *ast.ObjectLiteral:
		obj := runtime.NewObject()
		for _, f := range e.Fields {
			obj.Set(f.Key, ip.evalExpr(f.Value, env))
		}
		return obj
	case *ast.FunctionExpression:
		return runtime.FunctionValue{Decl: e, Closure: env}
	case *ast.UnaryExpression:
		return ip.evalUnary(e, env)
	case *ast.BinaryExpression:
		return ip.evalBinary(e, env)
	case *ast.CallExpression:
		return ip.evalCall(e, env, false)
	case *ast.IndexExpression:
		return ip.evalIndexGet(e, env)
	case *ast.FieldExpression:
		return ip.evalFieldGet(e, env)
	case *ast.NameAssignment:
		return ip.evalNameAssignment(e, env)
	case *ast.IndexAssignment:
		return ip.evalIndexAssignment(e, env)
	case *ast.FieldAssignment:
		return ip.evalFieldAssignment(e, env)
	case *ast.AwaitExpression:
		return ip.evalAwait(e, env)
	default:
		panic(diagnostic.NewNoPos(diagnostic.KindErrKind, "unhandled expression node %T", expr))
	}
}

// evalIdentifier looks the name up in env and records "last-seen" metadata
// (name + declared type) for a following `typeof` (spec.md §4.3).
func (ip *Interpreter) evalIdentifier(e *ast.Identifier, env *runtime.Environment) runtime.Value {
	b, ok := env.GetBinding(e.Name)
	if !ok {
		panic(diagnostic.New(diagnostic.NameError, e.Pos(), "undefined variable '%s'", e.Name))
	}
	ip.lastSeenName = e.Name
	ip.lastSeenType = b.Type
	ip.lastSeenValid = true
	return b.Value
}

func (ip *Interpreter) evalUnary(e *ast.UnaryExpression, env *runtime.Environment) runtime.Value {
	if e.Op == "typeof" {
		return ip.evalTypeof(e.Operand, env)
	}
	v := ip.evalExpr(e.Operand, env)
	switch e.Op {
	case "-":
		switch n := v.(type) {
		case runtime.IntValue:
			return -n
		case runtime.FloatValue:
			return -n
		default:
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "cannot negate a value of type %s", runtime.TypeNameOf(v)))
		}
	case "!":
		return runtime.BoolValue(!truthy(v))
	default:
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "unknown unary operator %q", e.Op))
	}
}

// evalTypeof returns the declared type of the last-seen identifier if the
// operand is that same identifier and it carries a declared type,
// otherwise the runtime type name; the last-seen metadata is then cleared
// (spec.md §4.3).
func (ip *Interpreter) evalTypeof(operand ast.Expression, env *runtime.Environment) runtime.Value {
	v := ip.evalExpr(operand, env)
	result := runtime.TypeNameOf(v)
	if id, ok := operand.(*ast.Identifier); ok && ip.lastSeenValid && ip.lastSeenName == id.Name && ip.lastSeenType != nil {
		result = ip.lastSeenType.String()
	}
	ip.lastSeenValid = false
	return runtime.StringValue(result)
}

func (ip *Interpreter) evalBinary(e *ast.BinaryExpression, env *runtime.Environment) runtime.Value {
	left := ip.evalExpr(e.Left, env)
	right := ip.evalExpr(e.Right, env)

	switch e.Op {
	case "&&":
		return runtime.BoolValue(truthy(left) && truthy(right))
	case "||":
		return runtime.BoolValue(truthy(left) || truthy(right))
	case "==":
		return runtime.BoolValue(canonicalEquals(left, right))
	case "!=":
		return runtime.BoolValue(!canonicalEquals(left, right))
	}

	if e.Op == "+" {
		if _, lStr := left.(runtime.StringValue); lStr {
			return runtime.StringValue(ip.canonicalString(left) + ip.canonicalString(right))
		}
		if _, rStr := right.(runtime.StringValue); rStr {
			return runtime.StringValue(ip.canonicalString(left) + ip.canonicalString(right))
		}
	}

	switch e.Op {
	case "<", ">", "<=", ">=":
		return ip.evalComparison(e, left, right)
	}
	return ip.evalArithmetic(e, left, right)
}

func (ip *Interpreter) evalComparison(e *ast.BinaryExpression, left, right runtime.Value) runtime.Value {
	lf, lok := toFloatOperand(left)
	rf, rok := toFloatOperand(right)
	if !lok || !rok {
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "cannot compare values of type %s and %s", runtime.TypeNameOf(left), runtime.TypeNameOf(right)))
	}
	switch e.Op {
	case "<":
		return runtime.BoolValue(lf < rf)
	case ">":
		return runtime.BoolValue(lf > rf)
	case "<=":
		return runtime.BoolValue(lf <= rf)
	default:
		return runtime.BoolValue(lf >= rf)
	}
}

func toFloatOperand(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case runtime.IntValue:
		return float64(n), true
	case runtime.FloatValue:
		return float64(n), true
	default:
		return 0, false
	}
}

// evalArithmetic implements the integer and float "fast paths" named in
// spec.md §4.3: both-int stays integer; either-float promotes to float.
func (ip *Interpreter) evalArithmetic(e *ast.BinaryExpression, left, right runtime.Value) runtime.Value {
	li, liok := left.(runtime.IntValue)
	ri, riok := right.(runtime.IntValue)
	if liok && riok {
		switch e.Op {
		case "+":
			return li + ri
		case "-":
			return li - ri
		case "*":
			return li * ri
		case "/":
			if ri == 0 {
				panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "division by zero"))
			}
			return li / ri
		case "%":
			if ri == 0 {
				panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "division by zero"))
			}
			return li % ri
		}
	}

	lf, lok := toFloatOperand(left)
	rf, rok := toFloatOperand(right)
	if !lok || !rok {
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "operator %q cannot be applied to %s and %s", e.Op, runtime.TypeNameOf(left), runtime.TypeNameOf(right)))
	}
	switch e.Op {
	case "+":
		return runtime.FloatValue(lf + rf)
	case "-":
		return runtime.FloatValue(lf - rf)
	case "*":
		return runtime.FloatValue(lf * rf)
	case "/":
		return runtime.FloatValue(lf / rf)
	case "%":
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "%% is only defined for integer operands"))
	default:
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "unknown binary operator %q", e.Op))
	}
}

func (ip *Interpreter) evalIndexGet(e *ast.IndexExpression, env *runtime.Environment) runtime.Value {
	target := ip.evalExpr(e.Target, env)
	idx := ip.evalExpr(e.Index, env)
	switch t := target.(type) {
	case *runtime.ArrayValue:
		i, ok := idx.(runtime.IntValue)
		if !ok {
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "array index must be an int"))
		}
		if int(i) < 0 || int(i) >= len(t.Elements) {
			panic(diagnostic.New(diagnostic.IndexError, e.Pos(), "array index %d out of bounds (length %d)", i, len(t.Elements)))
		}
		return t.Elements[i]
	case *runtime.ObjectValue:
		key, ok := idx.(runtime.StringValue)
		if !ok {
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "object index must be a string"))
		}
		v, present := t.Get(string(key))
		if !present {
			panic(diagnostic.New(diagnostic.NameError, e.Pos(), "object has no field '%s'", key))
		}
		return v
	case runtime.StringValue:
		i, ok := idx.(runtime.IntValue)
		if !ok {
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "string index must be an int"))
		}
		runes := []rune(string(t))
		if int(i) < 0 || int(i) >= len(runes) {
			panic(diagnostic.New(diagnostic.IndexError, e.Pos(), "string index %d out of bounds (length %d)", i, len(runes)))
		}
		return runtime.StringValue(string(runes[i]))
	default:
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "cannot index a value of type %s", runtime.TypeNameOf(target)))
	}
}

func (ip *Interpreter) evalFieldGet(e *ast.FieldExpression, env *runtime.Environment) runtime.Value {
	target := ip.evalExpr(e.Target, env)
	obj, ok := target.(*runtime.ObjectValue)
	if !ok {
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "cannot access field '%s' on a value of type %s", e.Field, runtime.TypeNameOf(target)))
	}
	v, present := obj.Get(e.Field)
	if !present {
		panic(diagnostic.New(diagnostic.NameError, e.Pos(), "object has no field '%s'", e.Field))
	}
	return v
}

// evalNameAssignment updates env, then triggers the reactive scheduler for
// the changed name (spec.md §4.3, §4.6).
func (ip *Interpreter) evalNameAssignment(e *ast.NameAssignment, env *runtime.Environment) runtime.Value {
	v := ip.evalExpr(e.Value, env)
	if err := env.Assign(e.Name, v, ip.Types); err != nil {
		panic(diagnostic.New(diagnostic.TypeError, e.Pos(), "%v", err))
	}
	ip.checkPendingFor(e.Name, env)
	return v
}

func (ip *Interpreter) evalIndexAssignment(e *ast.IndexAssignment, env *runtime.Environment) runtime.Value {
	target := ip.evalExpr(e.Target, env)
	idx := ip.evalExpr(e.Index, env)
	v := ip.evalExpr(e.Value, env)
	switch t := target.(type) {
	case *runtime.ArrayValue:
		i, ok := idx.(runtime.IntValue)
		if !ok {
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "array index must be an int"))
		}
		if int(i) < 0 || int(i) >= len(t.Elements) {
			panic(diagnostic.New(diagnostic.IndexError, e.Pos(), "array index %d out of bounds (length %d)", i, len(t.Elements)))
		}
		if decl := ip.elementTypeOf(e.Target, env); decl != nil && !runtime.Matches(v, decl, ip.Types) {
			panic(diagnostic.New(diagnostic.TypeError, e.Pos(), "cannot assign a value of type %s into an array of %s", runtime.TypeNameOf(v), decl.String()))
		}
		t.Elements[i] = v
	case *runtime.ObjectValue:
		key, ok := idx.(runtime.StringValue)
		if !ok {
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "object index must be a string"))
		}
		t.Set(string(key), v)
	default:
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "cannot index-assign into a value of type %s", runtime.TypeNameOf(target)))
	}
	return v
}

// elementTypeOf reports the declared element type [T] for a target
// expression that is a plain identifier bound to an array of declared type
// [T], so index-assignment can re-check it (spec.md §4.3).
func (ip *Interpreter) elementTypeOf(target ast.Expression, env *runtime.Environment) *types.Descriptor {
	id, ok := target.(*ast.Identifier)
	if !ok {
		return nil
	}
	b, ok := env.GetBinding(id.Name)
	if !ok || b.Type == nil {
		return nil
	}
	resolved := ip.Types.Resolve(b.Type)
	if resolved.Kind != types.KindArray {
		return nil
	}
	return resolved.Elem
}

func (ip *Interpreter) evalFieldAssignment(e *ast.FieldAssignment, env *runtime.Environment) runtime.Value {
	target := ip.evalExpr(e.Target, env)
	obj, ok := target.(*runtime.ObjectValue)
	if !ok {
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "cannot set field '%s' on a value of type %s", e.Field, runtime.TypeNameOf(target)))
	}
	v := ip.evalExpr(e.Value, env)
	obj.Set(e.Field, v)
	return v
}

// evalCall resolves the callee and invokes it (spec.md §4.3): if the callee
// expression is a plain identifier, the program registry is consulted
// first, then the function registry, then the environment; any other
// callee expression must evaluate to a function reference directly.
func (ip *Interpreter) evalCall(e *ast.CallExpression, env *runtime.Environment, awaited bool) runtime.Value {
	args := make([]runtime.Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = ip.evalExpr(a, env)
	}

	callee := ip.resolveCalleeExpr(e.Callee, env)
	switch fn := callee.(type) {
	case runtime.NativeFunctionValue:
		v, err := fn.Impl(args)
		if err != nil {
			if d, ok := err.(*diagnostic.Diagnostic); ok {
				panic(d)
			}
			panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "%v", err))
		}
		return v
	case runtime.FunctionValue:
		if fn.IsProgram && awaited {
			return ip.runProgramAwaited(fn, args, env, e.Pos())
		}
		return ip.invokeFunction(fn, args, e.Pos())
	default:
		panic(diagnostic.New(diagnostic.KindErrKind, e.Pos(), "value of type %s is not callable", runtime.TypeNameOf(callee)))
	}
}

// resolveCalleeExpr implements the identifier branch of spec.md §4.3's
// call-resolution order; any other callee expression is just evaluated.
func (ip *Interpreter) resolveCalleeExpr(callee ast.Expression, env *runtime.Environment) runtime.Value {
	if id, ok := callee.(*ast.Identifier); ok {
		if fn, ok := ip.resolveCallee(id.Name); ok {
			return fn
		}
	}
	return ip.evalExpr(callee, env)
}

// invokeFunction pushes exactly one scope, binds parameters positionally
// (arity must match exactly), executes the body, and pops the scope on
// every exit path including a thrown value (spec.md Invariant I2).
func (ip *Interpreter) invokeFunction(fn runtime.FunctionValue, args []runtime.Value, pos interface{ String() string }) (result runtime.Value) {
	params, body := functionShape(fn.Decl)
	if len(args) != len(params) {
		panic(diagnostic.NewNoPos(diagnostic.TypeError, "function expects %d argument(s) but got %d", len(params), len(args)))
	}
	callEnv := runtime.NewEnvironment(fn.Closure)
	for i, p := range params {
		callEnv.Define(p.Name, args[i], nil, false)
	}
	result = runtime.UnitValue{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if rs, ok := r.(*returnSignal); ok {
					result = rs.Value
					return
				}
				panic(r)
			}
		}()
		result = ip.execBlock(body, callEnv)
	}()
	return result
}

func functionShape(decl ast.Node) ([]ast.Param, *ast.BlockStatement) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		return d.Params, d.Body
	case *ast.ProgramDeclaration:
		return d.Params, d.Body
	case *ast.FunctionExpression:
		return d.Params, d.Body
	default:
		return nil, nil
	}
}

func (ip *Interpreter) evalAwait(e *ast.AwaitExpression, env *runtime.Environment) runtime.Value {
	if call, ok := e.Operand.(*ast.CallExpression); ok {
		return ip.evalCall(call, env, true)
	}
	// Non-program operand: silently evaluate normally (spec.md §9 open
	// question (d)).
	return ip.evalExpr(e.Operand, env)
}

// renderTemplateString re-lexes and re-parses each `${...}` marker the
// lexer preserved verbatim, substituting its canonical string form
// (spec.md §4.2 "Template strings").
func (ip *Interpreter) renderTemplateString(raw string, env *runtime.Environment) string {
	if !strings.Contains(raw, "${") {
		return raw
	}
	var b strings.Builder
	i := 0
	for i < len(raw) {
		start := strings.Index(raw[i:], "${")
		if start == -1 {
			b.WriteString(raw[i:])
			break
		}
		b.WriteString(raw[i : i+start])
		exprStart := i + start + 2
		depth := 1
		j := exprStart
		for j < len(raw) && depth > 0 {
			switch raw[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			b.WriteString(raw[i+start:])
			break
		}
		inner := raw[exprStart : j-1]
		tokens := lexer.Tokenize(inner)
		expr, err := parser.ParseExpressionSource(tokens)
		if err != nil {
			b.WriteString(raw[i+start : j])
		} else {
			b.WriteString(ip.canonicalString(ip.evalExpr(expr, env)))
		}
		i = j
	}
	return b.String()
}
