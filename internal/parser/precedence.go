package parser

import (
	"github.com/hassan/tcompiler/internal/lexer"
)

// Precedence is a binding-power level for the expression-parsing ladder.
// Lower values bind more loosely. Levels are numbered consecutively by
// iota, with no gaps between them.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =, +=, -=, *=, /=, %=, &=, |=, ^=, <<=, >>=, >>>=, &&=, ||=
	PrecTernary               // ?:
	PrecLogicalOr             // ||
	PrecLogicalAnd            // &&
	PrecBitOr                 // |
	PrecBitXor                // ^
	PrecBitAnd                // &
	PrecEquality              // ==, !=, <=>
	PrecComparison            // <, <=, >, >=
	PrecShift                 // <<, >>, >>>
	PrecTerm                  // +, -
	PrecFactor                // *, /, %
	PrecUnary                 // !, -, ~, ++, --, &, *, cast, sizeof
	PrecCall                  // ., ->, [], (), postfix ++, --
	PrecPrimary
)

// assignmentOps is the full compound-assignment set; all are
// right-associative and bind at PrecAssignment.
var assignmentOps = map[lexer.TokenKind]bool{
	lexer.Assign:         true,
	lexer.AddAssign:      true,
	lexer.SubAssign:      true,
	lexer.MulAssign:      true,
	lexer.DivAssign:      true,
	lexer.ModAssign:      true,
	lexer.AndAssign:      true,
	lexer.OrAssign:       true,
	lexer.XorAssign:      true,
	lexer.LShiftAssign:   true,
	lexer.ARShiftAssign:  true,
	lexer.LRShiftAssign:  true,
	lexer.LAndAssign:     true,
	lexer.LOrAssign:      true,
}

// getPrecedence returns the binding power of tok when it appears as an
// infix/postfix operator; PrecNone if tok never does.
func getPrecedence(tok lexer.TokenKind) Precedence {
	if assignmentOps[tok] {
		return PrecAssignment
	}
	switch tok {
	case lexer.Question:
		return PrecTernary
	case lexer.LOr:
		return PrecLogicalOr
	case lexer.LAnd:
		return PrecLogicalAnd
	case lexer.Bar:
		return PrecBitOr
	case lexer.Caret:
		return PrecBitXor
	case lexer.Amp:
		return PrecBitAnd
	case lexer.Eq, lexer.Neq, lexer.Spaceship:
		return PrecEquality
	case lexer.LAngle, lexer.LtEq, lexer.RAngle, lexer.GtEq:
		return PrecComparison
	case lexer.LShift, lexer.ARShift, lexer.LRShift:
		return PrecShift
	case lexer.Plus, lexer.Minus:
		return PrecTerm
	case lexer.Star, lexer.Slash, lexer.Percent:
		return PrecFactor
	case lexer.Dot, lexer.Arrow, lexer.LSquare, lexer.LParen, lexer.Inc, lexer.Dec:
		return PrecCall
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether tok associates right-to-left: the
// assignment family (x = y = z means x = (y = z)) and the ternary's
// else-branch (a ? b : c ? d : e means a ? b : (c ? d : e)).
func isRightAssociative(tok lexer.TokenKind) bool {
	if assignmentOps[tok] {
		return true
	}
	return tok == lexer.Question
}
