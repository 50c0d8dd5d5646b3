package lexer

import (
	"testing"

	"github.com/golox/lox/internal/token"
	"github.com/google/go-cmp/cmp"
)

func kinds(tokens []token.Token) []token.Type {
	out := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestConsumeAll_Punctuation(t *testing.T) {
	got := kinds(New("(){},.-+;*/ ! != = == > >= < <=").ConsumeAll())
	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.Bang, token.BangEqual, token.Equal,
		token.EqualEqual, token.Greater, token.GreaterEqual, token.Less,
		token.LessEqual, token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestConsumeAll_KeywordsVsIdentifiers(t *testing.T) {
	l := New("class fun var classy")
	got := kinds(l.ConsumeAll())
	want := []token.Type{token.Class, token.Fun, token.Var, token.Identifier, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestConsumeAll_LineTracking(t *testing.T) {
	l := New("var a = 1;\nvar b = 2;\nprint a + b;")
	tokens := l.ConsumeAll()
	var printLine int
	for _, tok := range tokens {
		if tok.Kind == token.Print {
			printLine = tok.Line
		}
	}
	if printLine != 3 {
		t.Fatalf("expected print on line 3, got %d", printLine)
	}
}

func TestConsumeAll_StringLiteral(t *testing.T) {
	tokens := New(`"Hello, World!"`).ConsumeAll()
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens (string + EOF), got %d", len(tokens))
	}
	if tokens[0].Kind != token.String || tokens[0].Literal != "Hello, World!" {
		t.Fatalf("unexpected string token: %+v", tokens[0])
	}
}

func TestConsumeAll_StringSpansLinesWithoutEscapes(t *testing.T) {
	l := New("\"line one\nline two\"\nprint 1;")
	tokens := l.ConsumeAll()
	if tokens[0].Literal != "line one\nline two" {
		t.Fatalf("unexpected literal %q", tokens[0].Literal)
	}
	var printLine int
	for _, tok := range tokens {
		if tok.Kind == token.Print {
			printLine = tok.Line
		}
	}
	if printLine != 3 {
		t.Fatalf("expected print on line 3 after 2-line string, got %d", printLine)
	}
}

func TestConsumeAll_UnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	l.ConsumeAll()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated string error")
	}
}

func TestConsumeAll_Numbers(t *testing.T) {
	tokens := New("123 45.67 0.5").ConsumeAll()
	want := []float64{123, 45.67, 0.5}
	for i, w := range want {
		if tokens[i].Kind != token.Number || tokens[i].Literal.(float64) != w {
			t.Fatalf("token %d: expected number %v, got %+v", i, w, tokens[i])
		}
	}
}

func TestConsumeAll_LineComment(t *testing.T) {
	tokens := kinds(New("// a whole comment line\nprint 1;").ConsumeAll())
	want := []token.Type{token.Print, token.Number, token.Semicolon, token.EOF}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestConsumeAll_NestedBlockComments(t *testing.T) {
	tokens := New("/* /* x */ */").ConsumeAll()
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Fatalf("expected only EOF for a fully-nested comment, got %+v", tokens)
	}
}

func TestConsumeAll_UnterminatedNestedBlockComment(t *testing.T) {
	l := New("/* /* */")
	l.ConsumeAll()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated comment error for '/* /* */'")
	}
}

func TestConsumeAll_BlockCommentCountsNewlines(t *testing.T) {
	l := New("/* line1\nline2\nline3 */\nprint 1;")
	tokens := l.ConsumeAll()
	var printLine int
	for _, tok := range tokens {
		if tok.Kind == token.Print {
			printLine = tok.Line
		}
	}
	if printLine != 4 {
		t.Fatalf("expected print on line 4, got %d", printLine)
	}
}

func TestConsumeAll_UnexpectedCharacter(t *testing.T) {
	l := New("@")
	l.ConsumeAll()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unexpected character error")
	}
}
