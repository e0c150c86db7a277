package parser

import (
	"testing"

	"github.com/hassan/tcompiler/internal/lexer"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenKind
		expected Precedence
	}{
		// Assignment (lowest)
		{"assign", lexer.Assign, PrecAssignment},
		{"plus equals", lexer.AddAssign, PrecAssignment},
		{"minus equals", lexer.SubAssign, PrecAssignment},
		{"shift-left equals", lexer.LShiftAssign, PrecAssignment},

		// Ternary
		{"question", lexer.Question, PrecTernary},

		// Logical OR / AND
		{"logical or", lexer.LOr, PrecLogicalOr},
		{"logical and", lexer.LAnd, PrecLogicalAnd},

		// Bitwise
		{"bit or", lexer.Bar, PrecBitOr},
		{"bit xor", lexer.Caret, PrecBitXor},
		{"bit and", lexer.Amp, PrecBitAnd},

		// Equality
		{"equal", lexer.Eq, PrecEquality},
		{"not equal", lexer.Neq, PrecEquality},
		{"spaceship", lexer.Spaceship, PrecEquality},

		// Comparison
		{"less than", lexer.LAngle, PrecComparison},
		{"less equal", lexer.LtEq, PrecComparison},
		{"greater than", lexer.RAngle, PrecComparison},
		{"greater equal", lexer.GtEq, PrecComparison},

		// Shift
		{"shift left", lexer.LShift, PrecShift},
		{"arithmetic shift right", lexer.ARShift, PrecShift},
		{"logical shift right", lexer.LRShift, PrecShift},

		// Term
		{"plus", lexer.Plus, PrecTerm},
		{"minus", lexer.Minus, PrecTerm},

		// Factor
		{"star", lexer.Star, PrecFactor},
		{"slash", lexer.Slash, PrecFactor},
		{"percent", lexer.Percent, PrecFactor},

		// Call/postfix (highest binding infix forms)
		{"dot", lexer.Dot, PrecCall},
		{"arrow", lexer.Arrow, PrecCall},
		{"left bracket", lexer.LSquare, PrecCall},
		{"left paren", lexer.LParen, PrecCall},
		{"postfix inc", lexer.Inc, PrecCall},
		{"postfix dec", lexer.Dec, PrecCall},

		// Non-operators
		{"identifier", lexer.Ident, PrecNone},
		{"decimal literal", lexer.LitIntD, PrecNone},
		{"semicolon", lexer.Semi, PrecNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getPrecedence(tt.token)
			if result != tt.expected {
				t.Errorf("getPrecedence(%v) = %v, want %v", tt.token, result, tt.expected)
			}
		})
	}
}

func TestIsRightAssociative(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenKind
		expected bool
	}{
		// Right-associative
		{"assign", lexer.Assign, true},
		{"plus equals", lexer.AddAssign, true},
		{"shift-left equals", lexer.LShiftAssign, true},
		{"ternary", lexer.Question, true},

		// Left-associative
		{"plus", lexer.Plus, false},
		{"minus", lexer.Minus, false},
		{"star", lexer.Star, false},
		{"slash", lexer.Slash, false},
		{"equal", lexer.Eq, false},
		{"logical and", lexer.LAnd, false},
		{"logical or", lexer.LOr, false},
		{"dot", lexer.Dot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isRightAssociative(tt.token)
			if result != tt.expected {
				t.Errorf("isRightAssociative(%v) = %v, want %v", tt.token, result, tt.expected)
			}
		})
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	if PrecAssignment >= PrecTernary {
		t.Error("Assignment should have lower precedence than ternary")
	}
	if PrecTernary >= PrecLogicalOr {
		t.Error("Ternary should have lower precedence than logical-or")
	}
	if PrecLogicalOr >= PrecLogicalAnd {
		t.Error("Logical-or should have lower precedence than logical-and")
	}
	if PrecLogicalAnd >= PrecBitOr {
		t.Error("Logical-and should have lower precedence than bit-or")
	}
	if PrecBitOr >= PrecBitXor {
		t.Error("BitOr should have lower precedence than BitXor")
	}
	if PrecBitXor >= PrecBitAnd {
		t.Error("BitXor should have lower precedence than BitAnd")
	}
	if PrecBitAnd >= PrecEquality {
		t.Error("BitAnd should have lower precedence than Equality")
	}
	if PrecEquality >= PrecComparison {
		t.Error("Equality should have lower precedence than Comparison")
	}
	if PrecComparison >= PrecShift {
		t.Error("Comparison should have lower precedence than Shift")
	}
	if PrecShift >= PrecTerm {
		t.Error("Shift should have lower precedence than Term")
	}
	if PrecTerm >= PrecFactor {
		t.Error("Term should have lower precedence than Factor")
	}
	if PrecFactor >= PrecUnary {
		t.Error("Factor should have lower precedence than Unary")
	}
	if PrecUnary >= PrecCall {
		t.Error("Unary should have lower precedence than Call")
	}
	if PrecCall >= PrecPrimary {
		t.Error("Call should have lower precedence than Primary")
	}
}
