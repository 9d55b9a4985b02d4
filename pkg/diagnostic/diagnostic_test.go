package diagnostic

import (
	"errors"
	"strings"
	"testing"

	"axo/pkg/token"
)

func TestErrorFormatsKindMessageAndPosition(t *testing.T) {
	d := New(ParseError, token.Position{Line: 3, Column: 5}, "unexpected %q", "}")
	got := d.Error()
	want := `ParseError: unexpected "}" (line 3, col 5)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNewNoPosOmitsPosition(t *testing.T) {
	d := NewNoPos(IOError, "reading %s: failed", "x.axo")
	if d.HasPos {
		t.Fatalf("expected HasPos to be false")
	}
	if !strings.HasPrefix(d.Error(), "IOError: reading x.axo: failed") {
		t.Fatalf("got %q", d.Error())
	}
}

func TestNewDiagnosticIsFatalByDefault(t *testing.T) {
	d := New(KindErrKind, token.Position{}, "division by zero")
	if !d.Fatal() {
		t.Fatalf("expected diagnostics to be fatal by default")
	}
}

func TestSourceExcerptRendersCaretAtColumn(t *testing.T) {
	src := "var x = ;\nvar y = 1;"
	excerpt := SourceExcerpt(src, token.Position{Line: 1, Column: 9})
	lines := strings.Split(excerpt, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), excerpt)
	}
	if lines[0] != "var x = ;" {
		t.Fatalf("got first line %q", lines[0])
	}
	if lines[1] != "        ^" {
		t.Fatalf("expected caret under column 9, got %q (len %d)", lines[1], len(lines[1]))
	}
}

func TestSourceExcerptOutOfRangeLineReturnsEmpty(t *testing.T) {
	if got := SourceExcerpt("one line", token.Position{Line: 5, Column: 1}); got != "" {
		t.Fatalf("expected empty excerpt for an out-of-range line, got %q", got)
	}
}

func TestFormatFallsBackToPlainErrorForNonDiagnostic(t *testing.T) {
	plain := errors.New("boom")
	if got := Format(plain, "some source"); got != "boom" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatIncludesExcerptWhenSourceProvided(t *testing.T) {
	d := New(ParseError, token.Position{Line: 1, Column: 1}, "bad token")
	got := Format(d, "oops")
	if !strings.Contains(got, "oops") || !strings.Contains(got, "^") {
		t.Fatalf("expected formatted output to include source and caret, got %q", got)
	}
}

func TestFormatOmitsExcerptWhenSourceEmpty(t *testing.T) {
	d := New(ParseError, token.Position{Line: 1, Column: 1}, "bad token")
	got := Format(d, "")
	if strings.Contains(got, "^") {
		t.Fatalf("expected no caret line when src is empty, got %q", got)
	}
}
