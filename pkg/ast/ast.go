// Package ast defines the tagged-variant AST that the parser produces and
// the evaluator traverses. Nodes are plain structs implementing narrow
// marker interfaces (Node, Expression, Statement) instead of a virtual
// accept/visit dispatch — a type switch in the evaluator plays the role of
// the visitor, per spec.md §9 ("Visitor dispatch").
package ast

import "axo/pkg/token"

// Node is any AST node; every node knows where it started in source.
type Node interface {
	Pos() token.Position
}

// Expression is any node that evaluates to a runtime value.
type Expression interface {
	Node
	exprNode()
}

// Statement is any node executed for effect. Expression statements are
// Expressions used as Statements (Expression embeds Statement-compatible
// behavior via the evaluator's type switch, not via this interface).
type Statement interface {
	Node
	stmtNode()
}

// NodeBase carries the source position shared by every concrete node; it
// is exported so the parser package can construct node literals directly.
type NodeBase struct {
	Position token.Position
}

func (b NodeBase) Pos() token.Position { return b.Position }

// NewBase is a convenience constructor used throughout the parser.
func NewBase(pos token.Position) NodeBase { return NodeBase{Position: pos} }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

type IntLiteral struct {
	NodeBase
	Value int64
}

type FloatLiteral struct {
	NodeBase
	Value float32
}

type BoolLiteral struct {
	NodeBase
	Value bool
}

// StringLiteral holds the lexer's fully escape-processed text, with any
// `${...}` template markers preserved verbatim for on-demand re-lexing by
// the evaluator (spec.md §4.2 "Template strings").
type StringLiteral struct {
	NodeBase
	Value string
}

type Identifier struct {
	NodeBase
	Name string
}

type ArrayLiteral struct {
	NodeBase
	Elements []Expression
}

type ObjectField struct {
	Key   string
	Value Expression
}

type ObjectLiteral struct {
	NodeBase
	Fields []ObjectField
}

// Param is a function parameter: a name with an optional type annotation
// (TypeSrc is the textual type grammar snippet; empty means "any").
type Param struct {
	Name    string
	TypeSrc string
}

// FunctionExpression is an anonymous `func(...) -> T { ... }` literal.
type FunctionExpression struct {
	NodeBase
	Params     []Param
	ReturnType string
	Body       *BlockStatement
}

type UnaryExpression struct {
	NodeBase
	Op      string
	Operand Expression
}

type BinaryExpression struct {
	NodeBase
	Op    string
	Left  Expression
	Right Expression
}

type CallExpression struct {
	NodeBase
	Callee Expression
	Args   []Expression
}

type IndexExpression struct {
	NodeBase
	Target Expression
	Index  Expression
}

type FieldExpression struct {
	NodeBase
	Target Expression
	Field  string
}

// NameAssignment, IndexAssignment, and FieldAssignment are produced by the
// parser's assignment-transformation step (spec.md §4.2): after parsing
// `lhs = rhs`, the shape of lhs decides which of these three nodes results.
type NameAssignment struct {
	NodeBase
	Name  string
	Value Expression
}

type IndexAssignment struct {
	NodeBase
	Target Expression
	Index  Expression
	Value  Expression
}

type FieldAssignment struct {
	NodeBase
	Target Expression
	Field  string
	Value  Expression
}

type AwaitExpression struct {
	NodeBase
	Operand Expression
}

func (*IntLiteral) exprNode()         {}
func (*FloatLiteral) exprNode()       {}
func (*BoolLiteral) exprNode()        {}
func (*StringLiteral) exprNode()      {}
func (*Identifier) exprNode()         {}
func (*ArrayLiteral) exprNode()       {}
func (*ObjectLiteral) exprNode()      {}
func (*FunctionExpression) exprNode() {}
func (*UnaryExpression) exprNode()    {}
func (*BinaryExpression) exprNode()   {}
func (*CallExpression) exprNode()     {}
func (*IndexExpression) exprNode()    {}
func (*FieldExpression) exprNode()    {}
func (*NameAssignment) exprNode()     {}
func (*IndexAssignment) exprNode()    {}
func (*FieldAssignment) exprNode()    {}
func (*AwaitExpression) exprNode()    {}

// ExpressionStatement lets any Expression stand as a Statement.
type ExpressionStatement struct {
	NodeBase
	Expr Expression
}

func (*ExpressionStatement) stmtNode() {}
