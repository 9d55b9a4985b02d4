// Package token defines the lexical token kinds shared by the lexer and parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	UNKNOWN

	// Literals
	INT
	FLOAT
	STRING
	IDENT

	// Keywords
	KwInt
	KwFloat
	KwString
	KwBool
	KwObject
	KwAny
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwFunc
	KwVar
	KwConst
	KwImport
	KwUse
	KwExport
	KwDefault
	KwFrom
	KwTrue
	KwFalse
	KwProgram
	KwAwait
	KwType
	KwTypeof
	KwTry
	KwCatch
	KwFinally
	KwThrow
	KwBreak
	KwContinue
	KwSwitch
	KwCase
	KwWhen

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Eq
	NotEq
	Less
	Greater
	LessEq
	GreaterEq
	And
	Or
	Not
	Pipe
	Arrow

	// Delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
)

var names = map[Kind]string{
	EOF: "EOF", UNKNOWN: "UNKNOWN",
	INT: "INT", FLOAT: "FLOAT", STRING: "STRING", IDENT: "IDENT",
	KwInt: "int", KwFloat: "float", KwString: "string", KwBool: "bool",
	KwObject: "object", KwAny: "any", KwIf: "if", KwElse: "else",
	KwWhile: "while", KwFor: "for", KwReturn: "return", KwFunc: "func",
	KwVar: "var", KwConst: "const", KwImport: "import", KwUse: "use",
	KwExport: "export", KwDefault: "default", KwFrom: "from", KwTrue: "true",
	KwFalse: "false", KwProgram: "program", KwAwait: "await", KwType: "type",
	KwTypeof: "typeof", KwTry: "try", KwCatch: "catch", KwFinally: "finally",
	KwThrow: "throw", KwBreak: "break", KwContinue: "continue",
	KwSwitch: "switch", KwCase: "case", KwWhen: "when",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", Eq: "==", NotEq: "!=", Less: "<", Greater: ">",
	LessEq: "<=", GreaterEq: ">=", And: "&&", Or: "||", Not: "!",
	Pipe: "|", Arrow: "->",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Semicolon: ";", Comma: ",",
	Dot: ".", Colon: ":",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps a lexeme to its keyword Kind. Identifiers not present here
// lex as IDENT.
var Keywords = map[string]Kind{
	"int": KwInt, "float": KwFloat, "string": KwString, "bool": KwBool,
	"object": KwObject, "any": KwAny, "if": KwIf, "else": KwElse,
	"while": KwWhile, "for": KwFor, "return": KwReturn, "func": KwFunc,
	"var": KwVar, "const": KwConst, "import": KwImport, "use": KwUse,
	"export": KwExport, "default": KwDefault, "from": KwFrom,
	"true": KwTrue, "false": KwFalse, "program": KwProgram, "await": KwAwait,
	"type": KwType, "typeof": KwTypeof, "try": KwTry, "catch": KwCatch,
	"finally": KwFinally, "throw": KwThrow, "break": KwBreak,
	"continue": KwContinue, "switch": KwSwitch, "case": KwCase,
	"when": KwWhen,
}

// Position is a 1-based line/column location within a source file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Column)
}

// Token carries a lexical kind, its raw text, and the position it started at.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) @ %s", t.Kind, t.Lexeme, t.Pos)
}
