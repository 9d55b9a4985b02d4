// Package interpreter implements AXO's tree-walking evaluator: statement
// and expression execution, the module loader, the built-in library, and
// the reactive pending-when scheduler. Grounded in the teacher's
// interpreter package split (interpreter.go for the struct and top-level
// driving logic, eval_*.go for the recursive visit, executor.go for
// control-flow signals).
package interpreter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"axo/pkg/ast"
	"axo/pkg/diagnostic"
	"axo/pkg/lexer"
	"axo/pkg/module"
	"axo/pkg/parser"
	"axo/pkg/runtime"
	"axo/pkg/types"
)

// ModuleExports holds one module's export surface (spec.md §3 "Module").
type ModuleExports struct {
	Named      map[string]runtime.Value
	HasDefault bool
	Default    runtime.Value
}

// Interpreter owns every piece of process-wide state the evaluator
// consults: the custom-type registry, the module cache, the reactive
// scheduler's pending list, and the wait group joining outstanding
// `await program(...)` tasks.
type Interpreter struct {
	Types   *types.Registry
	modules *module.Cache
	dirs    []string // stack of "current module directory", for relative import resolution

	pending []*PendingWhen
	wg      sync.WaitGroup

	// registryMu guards programs and funcs: spec.md §4.3's call-resolution
	// order (program registry, then function registry, then the
	// environment) puts both registries ahead of lexical scoping, so they
	// are process-wide tables rather than per-scope bindings. A mutex is
	// needed because an `await program(...)` task runs concurrently with
	// its caller and may itself declare a nested func/program.
	registryMu sync.Mutex
	programs   map[string]runtime.FunctionValue
	funcs      map[string]runtime.FunctionValue

	out io.Writer

	// last-seen identifier metadata consulted by `typeof` (spec.md §4.3).
	lastSeenName  string
	lastSeenType  *types.Descriptor
	lastSeenValid bool
}

// New returns an Interpreter that writes built-in `print` output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{
		Types:    types.NewRegistry(),
		modules:  module.NewCache(),
		programs: make(map[string]runtime.FunctionValue),
		funcs:    make(map[string]runtime.FunctionValue),
		out:      out,
	}
}

// registerProgram and registerFunc install a named declaration into its
// registry (spec.md §4.3, §4.4). A later declaration with the same name
// overwrites the earlier one, matching the flat, non-scoped nature of the
// registries.
func (ip *Interpreter) registerProgram(name string, fn runtime.FunctionValue) {
	ip.registryMu.Lock()
	defer ip.registryMu.Unlock()
	ip.programs[name] = fn
}

func (ip *Interpreter) registerFunc(name string, fn runtime.FunctionValue) {
	ip.registryMu.Lock()
	defer ip.registryMu.Unlock()
	ip.funcs[name] = fn
}

// resolveCallee implements spec.md §4.3's identifier call-resolution order:
// program registry, then function registry, then the environment.
func (ip *Interpreter) resolveCallee(name string) (runtime.Value, bool) {
	ip.registryMu.Lock()
	fn, ok := ip.programs[name]
	if !ok {
		fn, ok = ip.funcs[name]
	}
	ip.registryMu.Unlock()
	if ok {
		return fn, true
	}
	return nil, false
}

func (ip *Interpreter) currentDir() string {
	if len(ip.dirs) == 0 {
		return "."
	}
	return ip.dirs[len(ip.dirs)-1]
}

func (ip *Interpreter) pushDir(dir string) { ip.dirs = append(ip.dirs, dir) }
func (ip *Interpreter) popDir()            { ip.dirs = ip.dirs[:len(ip.dirs)-1] }

// RunFile parses and executes path as the entry module, returning the
// first fatal diagnostic encountered (if any). It joins any outstanding
// `await program(...)` tasks before returning, mirroring the teacher-style
// destructor join described in spec.md §4.4.
func (ip *Interpreter) RunFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return diagnostic.NewNoPos(diagnostic.IOError, "resolving %s: %v", path, err)
	}
	defer ip.wg.Wait()
	_, err = ip.loadModule(abs)
	return err
}

// RunSource executes src (a standalone snippet, e.g. one REPL line) against
// env, reusing baseDir to resolve any import/use paths it may contain.
func (ip *Interpreter) RunSource(src string, env *runtime.Environment, baseDir string) (result runtime.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if d, ok := r.(*diagnostic.Diagnostic); ok {
				err = d
				return
			}
			panic(r)
		}
	}()
	tokens := lexer.Tokenize(src)
	mod, perr := parser.Parse(tokens)
	if perr != nil {
		return nil, perr
	}
	ip.registerBuiltins(env)
	ip.pushDir(baseDir)
	defer ip.popDir()
	var last runtime.Value = runtime.UnitValue{}
	for _, stmt := range mod.Statements {
		last = ip.execStatement(stmt, env)
	}
	return last, nil
}

// loadModule resolves, parses, and evaluates resolvedPath exactly once per
// interpretation (spec.md §4.7's cycle guard and "parsed at most once"
// invariant): the cache entry is marked in-progress BEFORE recursion, so a
// cyclic re-entry observes the (possibly still-empty) in-progress exports
// instead of looping or erroring.
func (ip *Interpreter) loadModule(resolvedPath string) (*ModuleExports, error) {
	entry, existed := ip.modules.Begin(resolvedPath)
	if existed {
		if entry.Loading {
			// Cyclic re-entry: hand back the partial export table as-is.
			if exp, ok := entry.Result.(*ModuleExports); ok {
				return exp, nil
			}
			return &ModuleExports{Named: map[string]runtime.Value{}}, nil
		}
		if entry.Err != nil {
			return nil, entry.Err
		}
		return entry.Result.(*ModuleExports), nil
	}

	exports := &ModuleExports{Named: map[string]runtime.Value{}}
	entry.Result = exports

	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		wrapped := diagnostic.NewNoPos(diagnostic.IOError, "reading module %s: %v", resolvedPath, err)
		ip.modules.Finish(resolvedPath, exports, wrapped)
		return nil, wrapped
	}

	tokens := lexer.Tokenize(string(data))
	mod, perr := parser.Parse(tokens)
	if perr != nil {
		ip.modules.Finish(resolvedPath, exports, perr)
		return nil, perr
	}

	env := runtime.NewEnvironment(nil)
	ip.registerBuiltins(env)
	ip.pushDir(filepath.Dir(resolvedPath))
	runErr := ip.evalModuleBody(mod, env, exports)
	ip.popDir()

	ip.modules.Finish(resolvedPath, exports, runErr)
	return exports, runErr
}

// evalModuleBody executes every top-level statement of a module, recording
// exports as `export` declarations are encountered.
func (ip *Interpreter) evalModuleBody(mod *ast.Module, env *runtime.Environment, exports *ModuleExports) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if d, ok := r.(*diagnostic.Diagnostic); ok {
				err = d
				return
			}
			if tv, ok := r.(*thrownValue); ok {
				err = fmt.Errorf("uncaught thrown value at module top level: %s", ip.canonicalString(tv.Value))
				return
			}
			panic(r)
		}
	}()
	for _, stmt := range mod.Statements {
		ip.execModuleStatement(stmt, env, exports)
	}
	return nil
}

// execModuleStatement handles import/use/export at module top level and
// otherwise defers to the ordinary statement evaluator.
func (ip *Interpreter) execModuleStatement(stmt ast.Statement, env *runtime.Environment, exports *ModuleExports) {
	switch s := stmt.(type) {
	case *ast.ImportDeclaration:
		ip.execImport(s, env)
	case *ast.UseDeclaration:
		ip.execUse(s, env)
	case *ast.ExportDeclaration:
		ip.execExportDeclaration(s, env, exports)
	case *ast.ExportNamed:
		for _, name := range s.Names {
			v, err := env.Get(name)
			if err != nil {
				panic(diagnostic.New(diagnostic.NameError, s.Pos(), "cannot export undefined name '%s'", name))
			}
			exports.Named[name] = v
		}
	default:
		ip.execStatement(stmt, env)
	}
}

func (ip *Interpreter) execExportDeclaration(s *ast.ExportDeclaration, env *runtime.Environment, exports *ModuleExports) {
	ip.execStatement(s.Decl, env)
	name := declaredName(s.Decl)
	if name == "" {
		return
	}
	v, err := env.Get(name)
	if err != nil {
		return
	}
	if s.Default {
		exports.HasDefault = true
		exports.Default = v
	} else {
		exports.Named[name] = v
	}
}

func declaredName(s ast.Statement) string {
	switch d := s.(type) {
	case *ast.FunctionDeclaration:
		return d.Name
	case *ast.ProgramDeclaration:
		return d.Name
	case *ast.VarDeclaration:
		return d.Name
	case *ast.TypeDeclaration:
		return d.Name
	default:
		return ""
	}
}

// execImport resolves path, loads the module (or reuses its cached
// result), and copies the requested bindings into env (spec.md §4.7).
func (ip *Interpreter) execImport(decl *ast.ImportDeclaration, env *runtime.Environment) {
	resolved, err := module.Resolve(decl.Path, ip.currentDir())
	if err != nil {
		panic(diagnostic.New(diagnostic.IOError, decl.Pos(), "%v", err))
	}

	if module.IsJSON(resolved) {
		data, rerr := os.ReadFile(resolved)
		if rerr != nil {
			panic(diagnostic.New(diagnostic.IOError, decl.Pos(), "reading %s: %v", resolved, rerr))
		}
		stem := filepath.Base(resolved)
		if ext := filepath.Ext(stem); ext != "" {
			stem = stem[:len(stem)-len(ext)]
		}
		env.Define(stem, runtime.StringValue(string(data)), nil, false)
		return
	}

	exports, lerr := ip.loadModule(resolved)
	if lerr != nil {
		panic(lerr)
	}
	if decl.HasDefault {
		if !exports.HasDefault {
			panic(diagnostic.New(diagnostic.NameError, decl.Pos(), "module %s has no default export", decl.Path))
		}
		env.Define(decl.DefaultName, exports.Default, nil, false)
	}
	for _, name := range decl.NamedImports {
		v, ok := exports.Named[name]
		if !ok {
			panic(diagnostic.New(diagnostic.NameError, decl.Pos(), "module %s has no export named '%s'", decl.Path, name))
		}
		env.Define(name, v, nil, false)
	}
}

// execUse loads a module in isolation: nothing is copied into env, and
// nothing in env is touched (spec.md §4.7).
func (ip *Interpreter) execUse(decl *ast.UseDeclaration, env *runtime.Environment) {
	resolved, err := module.Resolve(decl.Path, ip.currentDir())
	if err != nil {
		panic(diagnostic.New(diagnostic.IOError, decl.Pos(), "%v", err))
	}
	if _, lerr := ip.loadModule(resolved); lerr != nil {
		panic(lerr)
	}
}
