package lexer

import (
	"testing"

	"axo/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	src := `func when switch case default typeof await -> | == != <=`
	toks := Tokenize(src)
	want := []token.Kind{
		token.KwFunc, token.KwWhen, token.KwSwitch, token.KwCase, token.KwDefault,
		token.KwTypeof, token.KwAwait, token.Arrow, token.Pipe, token.Eq,
		token.NotEq, token.LessEq, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks := Tokenize("42 3.14 0")
	if toks[0].Kind != token.INT || toks[0].Lexeme != "42" {
		t.Fatalf("unexpected int token: %+v", toks[0])
	}
	if toks[1].Kind != token.FLOAT || toks[1].Lexeme != "3.14" {
		t.Fatalf("unexpected float token: %+v", toks[1])
	}
	if toks[2].Kind != token.INT || toks[2].Lexeme != "0" {
		t.Fatalf("unexpected int token: %+v", toks[2])
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks := Tokenize(`"a\nb\t\"c\\d"`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	want := "a\nb\t\"c\\d"
	if toks[0].Lexeme != want {
		t.Fatalf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestLexStringPreservesTemplateMarkerVerbatim(t *testing.T) {
	toks := Tokenize(`"hello ${name + "!"} world"`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	want := `hello ${name + "!"} world`
	if toks[0].Lexeme != want {
		t.Fatalf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestLexStringUnbalancedTemplateMarkerFallsBackToLiteral(t *testing.T) {
	toks := Tokenize(`"broken ${oops"`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	if toks[0].Lexeme != "broken ${oops" {
		t.Fatalf("got %q", toks[0].Lexeme)
	}
}

func TestSkipLineComments(t *testing.T) {
	toks := Tokenize("1 // comment here\n2")
	got := kinds(toks)
	want := []token.Kind{token.INT, token.INT, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnknownByteProducesUnknownTokenAndMakesProgress(t *testing.T) {
	toks := Tokenize("1 # 2")
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens (INT, UNKNOWN, INT, EOF), got %d: %v", len(toks), toks)
	}
	if toks[1].Kind != token.UNKNOWN {
		t.Fatalf("expected UNKNOWN for '#', got %s", toks[1].Kind)
	}
}

func TestIdentifierVsKeyword(t *testing.T) {
	toks := Tokenize("func iffy if")
	if toks[0].Kind != token.KwFunc {
		t.Fatalf("expected KwFunc, got %s", toks[0].Kind)
	}
	if toks[1].Kind != token.IDENT || toks[1].Lexeme != "iffy" {
		t.Fatalf("expected IDENT 'iffy', got %+v", toks[1])
	}
	if toks[2].Kind != token.KwIf {
		t.Fatalf("expected KwIf, got %s", toks[2].Kind)
	}
}

func TestPositionsTrackLinesAndColumns(t *testing.T) {
	toks := Tokenize("1\n  2")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Fatalf("unexpected pos for first token: %+v", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 3 {
		t.Fatalf("unexpected pos for second token: %+v", toks[1].Pos)
	}
}
