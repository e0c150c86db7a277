package lexer

import "testing"

func TestToken_String(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{
			name: "identifier token",
			token: Token{
				Kind:     Ident,
				Value:    "foo",
				Position: Position{Filename: "test.t", Line: 1, Column: 1},
			},
			expected: "identifier(foo) at test.t:1:1",
		},
		{
			name: "decimal literal token",
			token: Token{
				Kind:     LitIntD,
				Value:    "42",
				Position: Position{Filename: "test.t", Line: 5, Column: 10},
			},
			expected: "decimal literal(42) at test.t:5:10",
		},
		{
			name: "keyword token carries no value",
			token: Token{
				Kind:     If,
				Position: Position{Filename: "test.t", Line: 2, Column: 3},
			},
			expected: "if at test.t:2:3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.token.String()
			if result != tt.expected {
				t.Errorf("Token.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	tests := []struct {
		name     string
		k        TokenKind
		expected string
	}{
		{"EOF", EOF, "EOF"},
		{"Ident", Ident, "identifier"},
		{"LitIntD", LitIntD, "decimal literal"},
		{"LitIntO", LitIntO, "octal literal"},
		{"If keyword", If, "if"},
		{"Plus operator", Plus, "+"},
		{"LParen", LParen, "("},
		{"BadNumber", BadNumber, "malformed numeric literal"},
		{"unknown kind", TokenKind(9999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.k.String()
			if result != tt.expected {
				t.Errorf("TokenKind.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		expected   TokenKind
	}{
		{"if keyword", "if", If},
		{"else keyword", "else", Else},
		{"for keyword", "for", For},
		{"while keyword", "while", While},
		{"struct keyword", "struct", Struct},
		{"true keyword", "true", True},
		{"false keyword", "false", False},
		{"null keyword", "null", Null},
		{"not a keyword", "foobar", Ident},
		{"case sensitive - If", "If", Ident},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LookupKeyword(tt.identifier)
			if result != tt.expected {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.identifier, result, tt.expected)
			}
		})
	}
}

func TestTokenKind_IsTypeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		k        TokenKind
		expected bool
	}{
		{"void", Void, true},
		{"int", Int, true},
		{"bool", Bool, true},
		{"if keyword", If, false},
		{"identifier", Ident, false},
		{"plus operator", Plus, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.k.IsTypeKeyword()
			if result != tt.expected {
				t.Errorf("TokenKind.IsTypeKeyword() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestTokenKind_IsLiteral(t *testing.T) {
	tests := []struct {
		name     string
		k        TokenKind
		expected bool
	}{
		{"decimal literal", LitIntD, true},
		{"string literal", LitString, true},
		{"char literal", LitChar, true},
		{"bad number", BadNumber, true},
		{"identifier", Ident, false},
		{"plus operator", Plus, false},
		{"if keyword", If, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.k.IsLiteral()
			if result != tt.expected {
				t.Errorf("TokenKind.IsLiteral() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"valid position", Position{Filename: "test.t", Line: 42, Column: 15}, "test.t:42:15"},
		{"zero position", Position{}, ":0:0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("Position.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPosition_IsValid(t *testing.T) {
	if (Position{}).IsValid() {
		t.Error("zero Position should be invalid")
	}
	if !(Position{Line: 1}).IsValid() {
		t.Error("Position with Line 1 should be valid")
	}
}

func TestPosition_BeforeAfter(t *testing.T) {
	a := Position{Offset: 10}
	b := Position{Offset: 20}
	if !a.Before(b) || a.After(b) {
		t.Errorf("expected %v before %v", a, b)
	}
	if !b.After(a) || b.Before(a) {
		t.Errorf("expected %v after %v", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("a position should be neither before nor after itself")
	}
}

func TestTokenKind_IsIntLiteral(t *testing.T) {
	tests := []struct {
		name     string
		k        TokenKind
		expected bool
	}{
		{"isolated zero", LitInt0, true},
		{"binary", LitIntB, true},
		{"octal", LitIntO, true},
		{"decimal", LitIntD, true},
		{"hex", LitIntH, true},
		{"float", LitFloat, false},
		{"string", LitString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.k.IsIntLiteral()
			if result != tt.expected {
				t.Errorf("TokenKind.IsIntLiteral() = %v, want %v", result, tt.expected)
			}
		})
	}
}
