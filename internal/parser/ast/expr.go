package ast

import (
	"github.com/hassan/tcompiler/internal/lexer"
)

// BinaryExpr is a binary operation: left op right.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *BinaryExpr) Pos() lexer.Position { return e.Left.Pos() }
func (e *BinaryExpr) End() lexer.Position { return e.Right.End() }
func (e *BinaryExpr) exprNode()           {}
func (e *BinaryExpr) Accept(v Visitor) (interface{}, error) { return v.VisitBinaryExpr(e) }

// LogicalExpr is && or ||, kept distinct from BinaryExpr because the type
// checker short-circuits evaluation and always yields bool.
type LogicalExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *LogicalExpr) Pos() lexer.Position { return e.Left.Pos() }
func (e *LogicalExpr) End() lexer.Position { return e.Right.End() }
func (e *LogicalExpr) exprNode()           {}
func (e *LogicalExpr) Accept(v Visitor) (interface{}, error) { return v.VisitLogicalExpr(e) }

// UnaryExpr is a prefix or postfix unary operation: -x, !x, ~x, *x, &x,
// ++x, --x, x++, x--. IsPostfix distinguishes the pre/post increment and
// decrement forms, the only operators this grammar admits in both
// positions.
type UnaryExpr struct {
	BaseNode
	Operator  lexer.Token
	Operand   Expr
	IsPostfix bool
}

func (e *UnaryExpr) End() lexer.Position { return e.Operand.End() }
func (e *UnaryExpr) exprNode()           {}
func (e *UnaryExpr) Accept(v Visitor) (interface{}, error) { return v.VisitUnaryExpr(e) }

// LiteralExpr is any scalar literal: integer (any radix), float, char,
// wchar, string, wstring, true/false, or null.
type LiteralExpr struct {
	BaseNode
	Kind  lexer.TokenKind
	Value string
}

func (e *LiteralExpr) exprNode() {}
func (e *LiteralExpr) Accept(v Visitor) (interface{}, error) { return v.VisitLiteralExpr(e) }

// IdentifierExpr is a bare (unscoped) identifier reference. Entry is nil
// until internal/check resolves the name against a scope; it then holds
// the *symtab.Symbol the name refers to (typed interface{} here to avoid
// an import cycle between ast and symtab).
type IdentifierExpr struct {
	BaseNode
	Name  string
	Entry interface{}
}

func (e *IdentifierExpr) exprNode() {}
func (e *IdentifierExpr) Accept(v Visitor) (interface{}, error) { return v.VisitIdentifierExpr(e) }

// ScopedIdentifierExpr is a module-qualified reference: foo::bar::baz.
// Entry is filled in the same way as IdentifierExpr.Entry, once resolved.
type ScopedIdentifierExpr struct {
	BaseNode
	Parts []string
	Entry interface{}
}

func (e *ScopedIdentifierExpr) exprNode() {}
func (e *ScopedIdentifierExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitScopedIdentifierExpr(e)
}

// CallExpr is a function call: callee(args...).
type CallExpr struct {
	BaseNode
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) exprNode() {}
func (e *CallExpr) Accept(v Visitor) (interface{}, error) { return v.VisitCallExpr(e) }

// IndexExpr is an array/pointer index: array[index].
type IndexExpr struct {
	BaseNode
	Array Expr
	Index Expr
}

func (e *IndexExpr) exprNode() {}
func (e *IndexExpr) Accept(v Visitor) (interface{}, error) { return v.VisitIndexExpr(e) }

// MemberExpr is field access: object.field or object->field. Arrow
// distinguishes the two surface forms; the type checker requires Object
// to already be a pointer when Arrow is true.
type MemberExpr struct {
	BaseNode
	Object Expr
	Field  string
	Arrow  bool
}

func (e *MemberExpr) exprNode() {}
func (e *MemberExpr) Accept(v Visitor) (interface{}, error) { return v.VisitMemberExpr(e) }

// AssignmentExpr is =, or a compound assignment (+=, -=, etc).
type AssignmentExpr struct {
	Target   Expr
	Operator lexer.Token
	Value    Expr
}

func (e *AssignmentExpr) Pos() lexer.Position { return e.Target.Pos() }
func (e *AssignmentExpr) End() lexer.Position { return e.Value.End() }
func (e *AssignmentExpr) exprNode()           {}
func (e *AssignmentExpr) Accept(v Visitor) (interface{}, error) { return v.VisitAssignmentExpr(e) }

// TernaryExpr is cond ? then : else.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (e *TernaryExpr) Pos() lexer.Position { return e.Cond.Pos() }
func (e *TernaryExpr) End() lexer.Position { return e.Else.End() }
func (e *TernaryExpr) exprNode()           {}
func (e *TernaryExpr) Accept(v Visitor) (interface{}, error) { return v.VisitTernaryExpr(e) }

// GroupingExpr is a parenthesized expression, kept as its own node (rather
// than discarded during parsing) so its Pos/End reflect the parens.
type GroupingExpr struct {
	BaseNode
	Inner Expr
}

func (e *GroupingExpr) exprNode() {}
func (e *GroupingExpr) Accept(v Visitor) (interface{}, error) { return v.VisitGroupingExpr(e) }

// CastExpr is an explicit cast<Target>(Operand).
type CastExpr struct {
	BaseNode
	Target  TypeExpr
	Operand Expr
}

func (e *CastExpr) exprNode() {}
func (e *CastExpr) Accept(v Visitor) (interface{}, error) { return v.VisitCastExpr(e) }

// SizeofExpr is sizeof(Operand) or sizeof(TargetType); exactly one of
// Operand/TargetType is set, matching the grammar's two sizeof forms.
type SizeofExpr struct {
	BaseNode
	Operand    Expr
	TargetType TypeExpr
}

func (e *SizeofExpr) exprNode() {}
func (e *SizeofExpr) Accept(v Visitor) (interface{}, error) { return v.VisitSizeofExpr(e) }

// AggregateInitExpr is a bracket-enclosed aggregate initializer:
// [e1, e2, ...], used for struct and array literals.
type AggregateInitExpr struct {
	BaseNode
	Elements []Expr
}

func (e *AggregateInitExpr) exprNode() {}
func (e *AggregateInitExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitAggregateInitExpr(e)
}
