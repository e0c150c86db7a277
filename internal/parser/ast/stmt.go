package ast

import (
	"github.com/hassan/tcompiler/internal/lexer"
)

// ExprStmt is an expression used as a statement: foo(); x = 5;
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) Pos() lexer.Position { return s.Expression.Pos() }
func (s *ExprStmt) End() lexer.Position { return s.Expression.End() }
func (s *ExprStmt) stmtNode()           {}
func (s *ExprStmt) Accept(v Visitor) error { return v.VisitExprStmt(s) }

// BlockStmt is a brace-enclosed sequence of statements, introducing a
// fresh lexical scope.
type BlockStmt struct {
	BaseNode
	Stmts []Stmt
}

func (s *BlockStmt) stmtNode() {}
func (s *BlockStmt) Accept(v Visitor) error { return v.VisitBlockStmt(s) }

// IfStmt is if (Cond) Then [else Else]; Else is nil when there is no
// else-clause.
type IfStmt struct {
	BaseNode
	Cond Expr
	Then Stmt
	Else Stmt
}

func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Accept(v Visitor) error { return v.VisitIfStmt(s) }

// WhileStmt is while (Cond) Body.
type WhileStmt struct {
	BaseNode
	Cond Expr
	Body Stmt
}

func (s *WhileStmt) stmtNode() {}
func (s *WhileStmt) Accept(v Visitor) error { return v.VisitWhileStmt(s) }

// DoWhileStmt is do Body while (Cond);
type DoWhileStmt struct {
	BaseNode
	Body Stmt
	Cond Expr
}

func (s *DoWhileStmt) stmtNode() {}
func (s *DoWhileStmt) Accept(v Visitor) error { return v.VisitDoWhileStmt(s) }

// ForStmt is for (Init; Cond; Post) Body. Init, Cond, and Post are each
// independently optional.
type ForStmt struct {
	BaseNode
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

func (s *ForStmt) stmtNode() {}
func (s *ForStmt) Accept(v Visitor) error { return v.VisitForStmt(s) }

// CaseClause is one `case Value:` or `default:` arm of a switch; Value is
// nil for the default arm.
type CaseClause struct {
	BaseNode
	Value Expr
	Stmts []Stmt
}

// SwitchStmt is switch (Cond) { Cases... }.
type SwitchStmt struct {
	BaseNode
	Cond  Expr
	Cases []*CaseClause
}

func (s *SwitchStmt) stmtNode() {}
func (s *SwitchStmt) Accept(v Visitor) error { return v.VisitSwitchStmt(s) }

// ReturnStmt is return [Value];. Value is nil for a void return.
type ReturnStmt struct {
	BaseNode
	Value Expr
}

func (s *ReturnStmt) stmtNode() {}
func (s *ReturnStmt) Accept(v Visitor) error { return v.VisitReturnStmt(s) }

// BreakStmt is break;.
type BreakStmt struct {
	BaseNode
}

func (s *BreakStmt) stmtNode() {}
func (s *BreakStmt) Accept(v Visitor) error { return v.VisitBreakStmt(s) }

// ContinueStmt is continue;.
type ContinueStmt struct {
	BaseNode
}

func (s *ContinueStmt) stmtNode() {}
func (s *ContinueStmt) Accept(v Visitor) error { return v.VisitContinueStmt(s) }

// NullStmt is a bare ';', performing no action; accepted anywhere a
// statement is.
type NullStmt struct {
	BaseNode
}

func (s *NullStmt) stmtNode() {}
func (s *NullStmt) Accept(v Visitor) error { return v.VisitNullStmt(s) }

// AsmStmt is asm("...");  a raw assembly string the type checker accepts
// as-is (it carries no semantic content beyond "this is a string literal";
// assembler emission itself is out of scope for this front end).
type AsmStmt struct {
	BaseNode
	Source string
}

func (s *AsmStmt) stmtNode() {}
func (s *AsmStmt) Accept(v Visitor) error { return v.VisitAsmStmt(s) }
