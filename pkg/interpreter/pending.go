package interpreter

import (
	"axo/pkg/ast"
	"axo/pkg/runtime"
)

// PendingWhen is a registered reactive guard (spec.md §3, §4.6). Its
// condition and body are evaluated in the scope active at fire time, not at
// registration time (spec.md Invariant I4): the checks below receive the
// environment of the assignment or expression statement that triggers them.
// Env records the scope the `when` statement was registered in.
type PendingWhen struct {
	Cond         ast.Expression
	Body         *ast.BlockStatement
	Dependencies []string
	Env          *runtime.Environment
	fired        bool
}

// collectIdentifiers walks an expression tree and gathers every identifier
// name it references, for spec.md §4.6's "syntactically collected
// identifiers" dependency list.
func collectIdentifiers(expr ast.Expression) []string {
	var names []string
	seen := map[string]bool{}
	var visit func(ast.Expression)
	visit = func(e ast.Expression) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case *ast.Identifier:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *ast.UnaryExpression:
			visit(n.Operand)
		case *ast.BinaryExpression:
			visit(n.Left)
			visit(n.Right)
		case *ast.CallExpression:
			visit(n.Callee)
			for _, a := range n.Args {
				visit(a)
			}
		case *ast.IndexExpression:
			visit(n.Target)
			visit(n.Index)
		case *ast.FieldExpression:
			visit(n.Target)
		case *ast.AwaitExpression:
			visit(n.Operand)
		case *ast.ArrayLiteral:
			for _, el := range n.Elements {
				visit(el)
			}
		case *ast.ObjectLiteral:
			for _, f := range n.Fields {
				visit(f.Value)
			}
		}
	}
	visit(expr)
	return names
}

func dependsOn(deps []string, name string) bool {
	if len(deps) == 0 {
		return true
	}
	for _, d := range deps {
		if d == name {
			return true
		}
	}
	return false
}

// checkPendingFor re-checks every pending entry whose dependency list
// mentions name (or is empty) after a name-assignment (spec.md §4.6).
// Condition-evaluation errors are swallowed and the entry retained.
func (ip *Interpreter) checkPendingFor(name string, env *runtime.Environment) {
	ip.runPendingChecks(env, func(p *PendingWhen) bool {
		return dependsOn(p.Dependencies, name)
	})
}

// checkPendingAfterExpressionStatement re-checks entries with empty
// dependency lists after every expression-statement (spec.md §4.6).
func (ip *Interpreter) checkPendingAfterExpressionStatement(env *runtime.Environment) {
	ip.runPendingChecks(env, func(p *PendingWhen) bool {
		return len(p.Dependencies) == 0
	})
}

func (ip *Interpreter) runPendingChecks(env *runtime.Environment, shouldCheck func(*PendingWhen) bool) {
	remaining := ip.pending[:0]
	for _, p := range ip.pending {
		if p.fired || !shouldCheck(p) {
			remaining = append(remaining, p)
			continue
		}
		if ip.evalPendingCondition(p, env) {
			ip.execBlock(p.Body, runtime.NewEnvironment(env))
			p.fired = true
			continue // fire-once: drop from the list
		}
		remaining = append(remaining, p)
	}
	ip.pending = remaining
}

func (ip *Interpreter) evalPendingCondition(p *PendingWhen, env *runtime.Environment) (fired bool) {
	defer func() {
		if r := recover(); r != nil {
			fired = false // condition-evaluation errors are swallowed
		}
	}()
	return truthy(ip.evalExpr(p.Cond, env))
}
