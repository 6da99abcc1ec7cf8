package lexer

import (
	"testing"

	"github.com/loxrun/lox/internal/diagnostics"
)

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	got := kinds(New(`(){},.-+;*/ ! != = == < <= > >=`).Scan())
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS, PLUS,
		SEMICOLON, STAR, SLASH,
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
		EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanLineComment(t *testing.T) {
	toks := New("1 // ignored\n2").Scan()
	if len(toks) != 3 || toks[0].Type != NUMBER || toks[1].Type != NUMBER || toks[2].Type != EOF {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if toks[1].Line != 2 {
		t.Errorf("got line %d, want 2", toks[1].Line)
	}
}

func TestScanString(t *testing.T) {
	toks := New(`"hello world"`).Scan()
	if toks[0].Type != STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	if toks[0].Literal != "hello world" {
		t.Errorf("got literal %q", toks[0].Literal)
	}
}

func TestScanMultilineString(t *testing.T) {
	toks := New("\"a\nb\"\n1").Scan()
	if toks[0].Type != STRING || toks[0].Literal != "a\nb" {
		t.Fatalf("unexpected string token: %+v", toks[0])
	}
	if toks[1].Line != 3 {
		t.Errorf("got line %d, want 3", toks[1].Line)
	}
}

type recordingSink struct {
	messages []string
}

func (r *recordingSink) Report(d diagnostics.Diagnostic) {
	r.messages = append(r.messages, d.Message)
}

func TestScanUnterminatedString(t *testing.T) {
	sink := &recordingSink{}
	toks := New(`"unterminated`, WithSink(sink)).Scan()
	if len(toks) != 1 || toks[0].Type != EOF {
		t.Fatalf("expected only EOF, got %v", toks)
	}
	if len(sink.messages) != 1 || sink.messages[0] != "Unterminated string." {
		t.Fatalf("got messages %v", sink.messages)
	}
}

func TestScanNumber(t *testing.T) {
	toks := New("123 1.5 1.").Scan()
	if toks[0].Literal.(float64) != 123 {
		t.Errorf("got %v", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 1.5 {
		t.Errorf("got %v", toks[1].Literal)
	}
	// trailing dot is not consumed: "1" NUMBER then "." DOT
	if toks[2].Literal.(float64) != 1 || toks[3].Type != DOT {
		t.Fatalf("trailing dot mishandled: %v %v", toks[2], toks[3])
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := New("var x = orchid and orb").Scan()
	want := []TokenType{VAR, IDENTIFIER, EQUAL, IDENTIFIER, AND, IDENTIFIER, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestScanUnexpectedCharacterContinues(t *testing.T) {
	sink := &recordingSink{}
	toks := New("1 @ 2", WithSink(sink)).Scan()
	if len(sink.messages) != 1 || sink.messages[0] != "Unexpected character: @" {
		t.Fatalf("got messages %v", sink.messages)
	}
	if len(toks) != 3 || toks[0].Type != NUMBER || toks[1].Type != NUMBER || toks[2].Type != EOF {
		t.Fatalf("scanning should continue past the bad char: %v", toks)
	}
}
