package interpreter

import (
	"axo/pkg/ast"
	"axo/pkg/diagnostic"
	"axo/pkg/runtime"
	"axo/pkg/types"
)

// execStatement visits one statement node and returns the unit value,
// except that an expression-statement returns the expression's value (the
// REPL uses it to print a result) and a block, `if` or `try` returns the
// value of the last statement it executed.
func (ip *Interpreter) execStatement(stmt ast.Statement, env *runtime.Environment) runtime.Value {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return ip.execBlock(s, runtime.NewEnvironment(env))
	case *ast.VarDeclaration:
		ip.execVarDeclaration(s, env)
		return runtime.UnitValue{}
	case *ast.IfStatement:
		return ip.execIf(s, env)
	case *ast.WhileStatement:
		ip.execWhile(s, env)
		return runtime.UnitValue{}
	case *ast.ForStatement:
		ip.execFor(s, env)
		return runtime.UnitValue{}
	case *ast.BreakStatement:
		panic(&breakSignal{})
	case *ast.ContinueStatement:
		panic(&continueSignal{})
	case *ast.ReturnStatement:
		var v runtime.Value = runtime.UnitValue{}
		if s.Value != nil {
			v = ip.evalExpr(s.Value, env)
		}
		panic(&returnSignal{Value: v})
	case *ast.ThrowStatement:
		panic(&thrownValue{Value: ip.evalExpr(s.Value, env)})
	case *ast.TryStatement:
		return ip.execTry(s, env)
	case *ast.SwitchStatement:
		ip.execSwitch(s, env)
		return runtime.UnitValue{}
	case *ast.WhenStatement:
		ip.pending = append(ip.pending, &PendingWhen{
			Cond:         s.Cond,
			Body:         s.Body,
			Dependencies: collectIdentifiers(s.Cond),
			Env:          env,
		})
		return runtime.UnitValue{}
	case *ast.FunctionDeclaration:
		fn := runtime.FunctionValue{Decl: s, Closure: env, IsProgram: false}
		env.Define(s.Name, fn, nil, true)
		ip.registerFunc(s.Name, fn)
		return runtime.UnitValue{}
	case *ast.ProgramDeclaration:
		fn := runtime.FunctionValue{Decl: s, Closure: env, IsProgram: true}
		env.Define(s.Name, fn, nil, true)
		ip.registerProgram(s.Name, fn)
		return runtime.UnitValue{}
	case *ast.TypeDeclaration:
		d, err := types.Parse(s.TypeSrc)
		if err != nil {
			panic(diagnostic.New(diagnostic.TypeError, s.Pos(), "invalid type declaration %s: %v", s.Name, err))
		}
		ip.Types.Define(s.Name, d)
		return runtime.UnitValue{}
	case *ast.ImportDeclaration:
		ip.execImport(s, env)
		return runtime.UnitValue{}
	case *ast.UseDeclaration:
		ip.execUse(s, env)
		return runtime.UnitValue{}
	case *ast.ExportDeclaration, *ast.ExportNamed:
		// Only meaningful at module top level; execModuleStatement handles
		// these directly and never reaches this dispatch for them.
		return runtime.UnitValue{}
	case *ast.ExpressionStatement:
		v := ip.evalExpr(s.Expr, env)
		ip.checkPendingAfterExpressionStatement(env)
		return v
	default:
		panic(diagnostic.NewNoPos(diagnostic.KindErrKind, "unhandled statement node %T", stmt))
	}
}

func (ip *Interpreter) execBlock(b *ast.BlockStatement, env *runtime.Environment) runtime.Value {
	var last runtime.Value = runtime.UnitValue{}
	for _, stmt := range b.Statements {
		last = ip.execStatement(stmt, env)
	}
	return last
}

// defaultForType yields the zero value spec.md §4.3 assigns to an
// uninitialized declaration: empty object for `object`, empty string for
// `string`, integer zero otherwise.
func defaultForType(typeSrc string) runtime.Value {
	switch typeSrc {
	case "object":
		return runtime.NewObject()
	case "string":
		return runtime.StringValue("")
	default:
		return runtime.IntValue(0)
	}
}

func (ip *Interpreter) execVarDeclaration(s *ast.VarDeclaration, env *runtime.Environment) {
	var declType *types.Descriptor
	if s.TypeSrc != "" {
		d, err := types.Parse(s.TypeSrc)
		if err != nil {
			panic(diagnostic.New(diagnostic.TypeError, s.Pos(), "invalid type for '%s': %v", s.Name, err))
		}
		declType = d
	}

	var value runtime.Value
	if s.Init != nil {
		value = ip.evalExpr(s.Init, env)
		if declType != nil && !runtime.Matches(value, declType, ip.Types) {
			panic(diagnostic.New(diagnostic.TypeError, s.Pos(),
				"cannot initialize '%s' of type %s with a value of type %s",
				s.Name, declType.String(), runtime.TypeNameOf(value)))
		}
	} else {
		value = defaultForType(s.TypeSrc)
	}
	env.Define(s.Name, value, declType, s.Const)
}

func (ip *Interpreter) execIf(s *ast.IfStatement, env *runtime.Environment) runtime.Value {
	if truthy(ip.evalExpr(s.Cond, env)) {
		return ip.execStatement(s.Then, env)
	}
	if s.Else != nil {
		return ip.execStatement(s.Else, env)
	}
	return runtime.UnitValue{}
}

func (ip *Interpreter) execWhile(s *ast.WhileStatement, env *runtime.Environment) {
	for truthy(ip.evalExpr(s.Cond, env)) {
		if ip.runLoopBody(s.Body, env) {
			break
		}
	}
}

func (ip *Interpreter) execFor(s *ast.ForStatement, env *runtime.Environment) {
	loopEnv := runtime.NewEnvironment(env)
	if s.Init != nil {
		ip.execStatement(s.Init, loopEnv)
	}
	for s.Cond == nil || truthy(ip.evalExpr(s.Cond, loopEnv)) {
		if ip.runLoopBody(s.Body, loopEnv) {
			break
		}
		if s.Update != nil {
			ip.execStatement(s.Update, loopEnv)
		}
	}
}

// runLoopBody executes one loop iteration, catching break/continue signals.
// It returns true when the loop should stop (a break fired).
func (ip *Interpreter) runLoopBody(body *ast.BlockStatement, env *runtime.Environment) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			switch r.(type) {
			case *breakSignal:
				stop = true
			case *continueSignal:
				stop = false
			default:
				panic(r)
			}
		}
	}()
	ip.execBlock(body, runtime.NewEnvironment(env))
	return false
}

func (ip *Interpreter) execTry(s *ast.TryStatement, env *runtime.Environment) (result runtime.Value) {
	result = runtime.UnitValue{}
	if s.HasFinally {
		defer ip.execStatement(s.Finally, runtime.NewEnvironment(env))
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				tv, ok := r.(*thrownValue)
				if !ok || !s.HasCatch {
					panic(r)
				}
				catchEnv := runtime.NewEnvironment(env)
				if s.CatchParam != "" {
					catchEnv.Define(s.CatchParam, tv.Value, nil, false)
				}
				result = ip.execBlock(s.Catch, catchEnv)
			}
		}()
		result = ip.execBlock(s.Try, runtime.NewEnvironment(env))
	}()
	return result
}

// execSwitch implements spec.md §4.3's fall-through semantics: cases never
// auto-break; `default` joins the ordered match once reached if nothing
// matched earlier, and fall-through continues into and past it.
func (ip *Interpreter) execSwitch(s *ast.SwitchStatement, env *runtime.Environment) {
	disc := ip.evalExpr(s.Discriminant, env)
	switchEnv := runtime.NewEnvironment(env)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*breakSignal); ok {
				return
			}
			panic(r)
		}
	}()

	matched := false
	for _, c := range s.Cases {
		if !matched {
			if c.IsDefault {
				matched = true
			} else {
				for _, valExpr := range c.Values {
					if canonicalEquals(ip.evalExpr(valExpr, switchEnv), disc) {
						matched = true
						break
					}
				}
			}
		}
		if matched {
			for _, stmt := range c.Body {
				ip.execStatement(stmt, switchEnv)
			}
		}
	}
}
