package lexer

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestLexer(t *testing.T, source string) *Lexer {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.t")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write temp source: %v", err)
	}
	fm, err := OpenFileMap(path)
	if err != nil {
		t.Fatalf("OpenFileMap: %v", err)
	}
	t.Cleanup(func() { fm.Close() })
	return New(fm)
}

func TestLexer_Keywords(t *testing.T) {
	l := newTestLexer(t, "module import opaque struct union enum typedef if else while")

	want := []TokenKind{Module, Import, Opaque, Struct, Union, Enum, Typedef, If, Else, While, EOF}
	for i, k := range want {
		tok := l.Next()
		if tok.Kind != k {
			t.Errorf("token %d: expected %v, got %v", i, k, tok.Kind)
		}
	}
}

func TestLexer_Identifiers(t *testing.T) {
	l := newTestLexer(t, "foo bar _temp myVar123")
	for _, want := range []string{"foo", "bar", "_temp", "myVar123"} {
		tok := l.Next()
		if tok.Kind != Ident || tok.Value != want {
			t.Errorf("expected identifier %q, got %v %q", want, tok.Kind, tok.Value)
		}
	}
}

func TestLexer_IntegerRadixes(t *testing.T) {
	tests := []struct {
		source string
		kind   TokenKind
	}{
		{"0", LitInt0},
		{"42", LitIntD},
		{"0b101", LitIntB},
		{"0377", LitIntO},
		{"017", LitIntO},
		{"0xFF", LitIntH},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			l := newTestLexer(t, tt.source)
			tok := l.Next()
			if tok.Kind != tt.kind {
				t.Errorf("expected %v, got %v", tt.kind, tok.Kind)
			}
		})
	}
}

func TestLexer_Float(t *testing.T) {
	l := newTestLexer(t, "3.14 2.5e-3")
	for _, want := range []string{"3.14", "2.5e-3"} {
		tok := l.Next()
		if tok.Kind != LitFloat || tok.Value != want {
			t.Errorf("expected float %q, got %v %q", want, tok.Kind, tok.Value)
		}
	}
}

func TestLexer_Strings(t *testing.T) {
	l := newTestLexer(t, `"hello" "with\"quotes"`)
	for _, want := range []string{"hello", `with"quotes`} {
		tok := l.Next()
		if tok.Kind != LitString || tok.Value != want {
			t.Errorf("expected %q, got %v %q", want, tok.Kind, tok.Value)
		}
	}
}

func TestLexer_UnterminatedStringIsBad(t *testing.T) {
	l := newTestLexer(t, "\"oops\n")
	tok := l.Next()
	if tok.Kind != BadString {
		t.Errorf("expected BadString, got %v", tok.Kind)
	}
}

func TestLexer_Operators(t *testing.T) {
	l := newTestLexer(t, "+ - * / == != < <= > >= && || ! = += <=> :: >>>")
	want := []TokenKind{Plus, Minus, Star, Slash, Eq, Neq, LAngle, LtEq, RAngle,
		GtEq, LAnd, LOr, Bang, Assign, AddAssign, Spaceship, Scope, LRShift, EOF}
	for i, k := range want {
		tok := l.Next()
		if tok.Kind != k {
			t.Errorf("token %d: expected %v, got %v", i, k, tok.Kind)
		}
	}
}

func TestLexer_Comments(t *testing.T) {
	l := newTestLexer(t, "// line comment\n/* block /* nested */ comment */\nfoo")
	tok := l.Next()
	if tok.Kind != Ident || tok.Value != "foo" {
		t.Errorf("expected identifier foo, got %v %q", tok.Kind, tok.Value)
	}
}

func TestLexer_PositionTracking(t *testing.T) {
	l := newTestLexer(t, "foo\nbar")

	tok1 := l.Next()
	if tok1.Position.Line != 1 || tok1.Position.Column != 1 {
		t.Errorf("expected 1:1, got %d:%d", tok1.Position.Line, tok1.Position.Column)
	}

	tok2 := l.Next()
	if tok2.Position.Line != 2 || tok2.Position.Column != 1 {
		t.Errorf("expected 2:1, got %d:%d", tok2.Position.Line, tok2.Position.Column)
	}
}

func TestLexer_UnlexOnce(t *testing.T) {
	l := newTestLexer(t, "foo bar")
	tok1 := l.Next()
	l.Unlex(tok1)
	replayed := l.Next()
	if replayed.Value != tok1.Value {
		t.Errorf("expected replay of %q, got %q", tok1.Value, replayed.Value)
	}
	tok2 := l.Next()
	if tok2.Value != "bar" {
		t.Errorf("expected bar, got %q", tok2.Value)
	}
}

func TestLexer_DoubleUnlexPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on double Unlex")
		}
	}()
	l := newTestLexer(t, "foo bar")
	tok := l.Next()
	l.Unlex(tok)
	l.Unlex(tok)
}
