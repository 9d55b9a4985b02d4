package ast

import "axo/pkg/token"

// ---------------------------------------------------------------------------
// Blocks, control flow
// ---------------------------------------------------------------------------

type BlockStatement struct {
	NodeBase
	Statements []Statement
}

func (*BlockStatement) stmtNode() {}

type VarDeclaration struct {
	NodeBase
	Name    string
	TypeSrc string // empty means untyped ("any")
	Const   bool
	Init    Expression // nil if no initializer
}

func (*VarDeclaration) stmtNode() {}

type IfStatement struct {
	NodeBase
	Cond Expression
	Then *BlockStatement
	Else Statement // *IfStatement, *BlockStatement, or nil
}

func (*IfStatement) stmtNode() {}

type WhileStatement struct {
	NodeBase
	Cond Expression
	Body *BlockStatement
}

func (*WhileStatement) stmtNode() {}

type ForStatement struct {
	NodeBase
	Init   Statement // may be nil
	Cond   Expression
	Update Statement // may be nil
	Body   *BlockStatement
}

func (*ForStatement) stmtNode() {}

type BreakStatement struct{ NodeBase }

func (*BreakStatement) stmtNode() {}

type ContinueStatement struct{ NodeBase }

func (*ContinueStatement) stmtNode() {}

type ReturnStatement struct {
	NodeBase
	Value Expression // nil means "return nothing"
}

func (*ReturnStatement) stmtNode() {}

type ThrowStatement struct {
	NodeBase
	Value Expression
}

func (*ThrowStatement) stmtNode() {}

type TryStatement struct {
	NodeBase
	Try        *BlockStatement
	CatchParam string // empty if there is no catch clause
	HasCatch   bool
	Catch      *BlockStatement
	HasFinally bool
	Finally    *BlockStatement
}

func (*TryStatement) stmtNode() {}

type SwitchCase struct {
	Values    []Expression // empty + IsDefault for the default clause
	IsDefault bool
	Body      []Statement
}

type SwitchStatement struct {
	NodeBase
	Discriminant Expression
	Cases        []SwitchCase
}

func (*SwitchStatement) stmtNode() {}

// WhenStatement registers a reactive pending-when guard (spec.md §4.6).
type WhenStatement struct {
	NodeBase
	Cond Expression
	Body *BlockStatement
}

func (*WhenStatement) stmtNode() {}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

type FunctionDeclaration struct {
	NodeBase
	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStatement
}

func (*FunctionDeclaration) stmtNode() {}

// ProgramDeclaration is syntactically a function but lives in its own
// registry; it is invoked via `await callee(args)` or a plain synchronous
// call (spec.md §4.4).
type ProgramDeclaration struct {
	NodeBase
	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStatement
}

func (*ProgramDeclaration) stmtNode() {}

// TypeDeclaration registers a named type in the custom-type registry.
type TypeDeclaration struct {
	NodeBase
	Name    string
	TypeSrc string
}

func (*TypeDeclaration) stmtNode() {}

// ---------------------------------------------------------------------------
// Modules: import / use / export
// ---------------------------------------------------------------------------

// ImportDeclaration covers all four import forms named in spec.md §4.2:
// bare `"path"`; default `ident from "path"`; named `{a,b} from "path"`;
// mixed `ident,{a,b} from "path"`.
type ImportDeclaration struct {
	NodeBase
	Path         string
	HasDefault   bool
	DefaultName  string
	NamedImports []string
}

func (*ImportDeclaration) stmtNode() {}

// UseDeclaration loads a module in isolation: nothing is copied into the
// caller's environment, and the caller's environment is restored after
// execution (spec.md §4.7).
type UseDeclaration struct {
	NodeBase
	Path string
}

func (*UseDeclaration) stmtNode() {}

// ExportDeclaration wraps `export <decl>`; Decl is one of FunctionDeclaration,
// ProgramDeclaration, VarDeclaration, or TypeDeclaration.
type ExportDeclaration struct {
	NodeBase
	Decl    Statement
	Default bool // true for `export default <decl>`
}

func (*ExportDeclaration) stmtNode() {}

// ExportNamed wraps `export {a,b}`: names are looked up in the current
// module scope and recorded in the module's export table.
type ExportNamed struct {
	NodeBase
	Names []string
}

func (*ExportNamed) stmtNode() {}

// Module is the root node produced by parsing a whole source file.
type Module struct {
	Statements []Statement
}

func (m *Module) Pos() token.Position {
	if len(m.Statements) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return m.Statements[0].Pos()
}
