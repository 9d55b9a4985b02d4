package parser

import (
	"testing"

	"axo/pkg/ast"
	"axo/pkg/diagnostic"
	"axo/pkg/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := Parse(lexer.Tokenize(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return mod
}

func TestParseVarDeclaration(t *testing.T) {
	mod := parseSrc(t, `var x: int = 1 + 2;`)
	if len(mod.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Statements))
	}
	decl, ok := mod.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VarDeclaration, got %T", mod.Statements[0])
	}
	if decl.Name != "x" || decl.Const {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	bin, ok := decl.Init.(*ast.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected '+' binary init, got %#v", decl.Init)
	}
}

func TestParseConstDeclaration(t *testing.T) {
	mod := parseSrc(t, `const pi = 3.14;`)
	decl := mod.Statements[0].(*ast.VarDeclaration)
	if !decl.Const {
		t.Fatalf("expected const declaration")
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	mod := parseSrc(t, `func add(a: int, b: int) -> int { return a + b; }`)
	fn, ok := mod.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", mod.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function decl: %+v", fn)
	}
	if fn.Params[0].Name != "a" || fn.Params[0].TypeSrc != "int" {
		t.Fatalf("unexpected param: %+v", fn.Params[0])
	}
}

func TestParseIfElse(t *testing.T) {
	mod := parseSrc(t, `if (x > 0) { y = 1; } else { y = 2; }`)
	ifs, ok := mod.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", mod.Statements[0])
	}
	if ifs.Else == nil {
		t.Fatalf("expected else branch")
	}
}

func TestParseSwitchWithFallthroughAndDefault(t *testing.T) {
	mod := parseSrc(t, `
	switch (x) {
		case 1:
			y = 1;
		default:
			y = 2;
		case 2:
			y = 3;
	}`)
	sw, ok := mod.Statements[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("expected *ast.SwitchStatement, got %T", mod.Statements[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(sw.Cases))
	}
	if !sw.Cases[1].IsDefault {
		t.Fatalf("expected case[1] to be default in lexical position")
	}
}

func TestParseCallAndFieldAndIndex(t *testing.T) {
	mod := parseSrc(t, `foo(bar.baz[0], 1);`)
	stmt := mod.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", stmt.Expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	idx, ok := call.Args[0].(*ast.IndexExpression)
	if !ok {
		t.Fatalf("expected *ast.IndexExpression, got %T", call.Args[0])
	}
	if _, ok := idx.Target.(*ast.FieldExpression); !ok {
		t.Fatalf("expected field expression target, got %T", idx.Target)
	}
}

func TestParseAssignmentShapes(t *testing.T) {
	mod := parseSrc(t, `
	x = 1;
	arr[0] = 2;
	obj.field = 3;
	`)
	if _, ok := mod.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.NameAssignment); !ok {
		t.Fatalf("expected NameAssignment")
	}
	if _, ok := mod.Statements[1].(*ast.ExpressionStatement).Expr.(*ast.IndexAssignment); !ok {
		t.Fatalf("expected IndexAssignment")
	}
	if _, ok := mod.Statements[2].(*ast.ExpressionStatement).Expr.(*ast.FieldAssignment); !ok {
		t.Fatalf("expected FieldAssignment")
	}
}

func TestParseImportForms(t *testing.T) {
	mod := parseSrc(t, `
	import "a.axo";
	import b from "b.axo";
	import {c, d} from "c.axo";
	import e, {f} from "d.axo";
	`)
	bare := mod.Statements[0].(*ast.ImportDeclaration)
	if bare.HasDefault || len(bare.NamedImports) != 0 {
		t.Fatalf("expected bare import, got %+v", bare)
	}
	def := mod.Statements[1].(*ast.ImportDeclaration)
	if !def.HasDefault || def.DefaultName != "b" {
		t.Fatalf("expected default import 'b', got %+v", def)
	}
	named := mod.Statements[2].(*ast.ImportDeclaration)
	if len(named.NamedImports) != 2 {
		t.Fatalf("expected 2 named imports, got %+v", named)
	}
	mixed := mod.Statements[3].(*ast.ImportDeclaration)
	if !mixed.HasDefault || len(mixed.NamedImports) != 1 {
		t.Fatalf("expected mixed import, got %+v", mixed)
	}
}

func TestParseUseDeclaration(t *testing.T) {
	mod := parseSrc(t, `use "side_effects.axo";`)
	use, ok := mod.Statements[0].(*ast.UseDeclaration)
	if !ok {
		t.Fatalf("expected *ast.UseDeclaration, got %T", mod.Statements[0])
	}
	if use.Path != "side_effects.axo" {
		t.Fatalf("unexpected path: %q", use.Path)
	}
}

func TestParseExportDefaultAndNamed(t *testing.T) {
	mod := parseSrc(t, `
	export default func one() -> int { return 1; }
	export {a, b};
	`)
	exp := mod.Statements[0].(*ast.ExportDeclaration)
	if !exp.Default {
		t.Fatalf("expected default export")
	}
	named := mod.Statements[1].(*ast.ExportNamed)
	if len(named.Names) != 2 {
		t.Fatalf("expected 2 named exports, got %+v", named.Names)
	}
}

func TestParseTemplateStringMarkerSurvivesIntoLiteral(t *testing.T) {
	mod := parseSrc(t, `"hi ${name}";`)
	lit := mod.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.StringLiteral)
	if lit.Value != "hi ${name}" {
		t.Fatalf("got %q", lit.Value)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse(lexer.Tokenize(`var x: int = ;`))
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMalformedTokenSurfacesAsLexError(t *testing.T) {
	_, err := Parse(lexer.Tokenize(`var x = 1 # 2;`))
	if err == nil {
		t.Fatalf("expected an error for the malformed '#' byte")
	}
	d, ok := err.(*diagnostic.Diagnostic)
	if !ok {
		t.Fatalf("expected *diagnostic.Diagnostic, got %T", err)
	}
	if d.Kind != diagnostic.LexError {
		t.Fatalf("expected LexError, got %s", d.Kind)
	}
}
