package interpreter

import (
	"axo/pkg/diagnostic"
	"axo/pkg/runtime"
	"axo/pkg/token"
)

// runProgramAwaited executes fn on a separate goroutine over a snapshot of
// env (spec.md §4.4, §5): a single awaited program runs on one additional
// task, the caller blocks on a channel until it completes, and no shared
// mutable variables survive across the task boundary — Environment.Snapshot
// copies only the binding table, so Array/Object values keep their
// reference semantics across the boundary by design.
func (ip *Interpreter) runProgramAwaited(fn runtime.FunctionValue, args []runtime.Value, callerEnv *runtime.Environment, pos token.Position) runtime.Value {
	snapshot := callerEnv.Snapshot()
	taskEnv := runtime.FromSnapshot(snapshot)
	taskClosure := runtime.NewEnvironment(taskEnv)

	type outcome struct {
		value runtime.Value
		err   interface{}
	}
	done := make(chan outcome, 1)

	ip.wg.Add(1)
	go func() {
		defer ip.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: r}
				return
			}
		}()
		scoped := fn
		scoped.Closure = taskClosure
		v := ip.invokeFunction(scoped, args, pos)
		done <- outcome{value: v}
	}()

	result := <-done
	if result.err != nil {
		if d, ok := result.err.(*diagnostic.Diagnostic); ok {
			panic(d)
		}
		panic(diagnostic.New(diagnostic.KindErrKind, pos, "awaited program failed: %v", result.err))
	}
	return result.value
}
