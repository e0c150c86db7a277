// Package ast defines the Abstract Syntax Tree for the T language: module/
// import declarations, opaque/struct/union/enum/typedef/function/variable
// declarations, the full statement and expression grammar, and the
// unparsed-function-body node the two-phase parser uses to defer work.
//
// DESIGN CHOICE: interfaces (Expr, Stmt, Decl, TypeExpr) plus the visitor
// pattern, carried over from the teacher's AST package: a closed sum type
// modeled as an interface with unexported marker methods, traversed via
// Accept(Visitor) rather than type switches, so the compiler enforces that
// every visitor implements every node kind.
package ast

import (
	"github.com/hassan/tcompiler/internal/lexer"
)

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() lexer.Position
	End() lexer.Position
}

// Expr is an expression: a piece of syntax that produces a value.
type Expr interface {
	Node
	Accept(v Visitor) (interface{}, error)
	exprNode()
}

// Stmt is a statement: a piece of syntax that performs an action.
type Stmt interface {
	Node
	Accept(v Visitor) error
	stmtNode()
}

// Decl is a top-level or block-scoped declaration. Declarations are also
// statements (they may appear in statement position inside a function body).
type Decl interface {
	Stmt
	declNode()
}

// TypeExpr is a type as written in source, before stab construction
// resolves it to a internal/types.Type. Kept distinct from Expr because a
// type expression never produces a runtime value.
type TypeExpr interface {
	Node
	Accept(v Visitor) (interface{}, error)
	typeExprNode()
}

// Visitor is the interface for AST traversal; one method per node kind.
type Visitor interface {
	// Expressions
	VisitBinaryExpr(e *BinaryExpr) (interface{}, error)
	VisitUnaryExpr(e *UnaryExpr) (interface{}, error)
	VisitLiteralExpr(e *LiteralExpr) (interface{}, error)
	VisitIdentifierExpr(e *IdentifierExpr) (interface{}, error)
	VisitScopedIdentifierExpr(e *ScopedIdentifierExpr) (interface{}, error)
	VisitCallExpr(e *CallExpr) (interface{}, error)
	VisitIndexExpr(e *IndexExpr) (interface{}, error)
	VisitMemberExpr(e *MemberExpr) (interface{}, error)
	VisitAssignmentExpr(e *AssignmentExpr) (interface{}, error)
	VisitLogicalExpr(e *LogicalExpr) (interface{}, error)
	VisitTernaryExpr(e *TernaryExpr) (interface{}, error)
	VisitGroupingExpr(e *GroupingExpr) (interface{}, error)
	VisitCastExpr(e *CastExpr) (interface{}, error)
	VisitSizeofExpr(e *SizeofExpr) (interface{}, error)
	VisitAggregateInitExpr(e *AggregateInitExpr) (interface{}, error)

	// Statements
	VisitExprStmt(s *ExprStmt) error
	VisitBlockStmt(s *BlockStmt) error
	VisitIfStmt(s *IfStmt) error
	VisitWhileStmt(s *WhileStmt) error
	VisitDoWhileStmt(s *DoWhileStmt) error
	VisitForStmt(s *ForStmt) error
	VisitSwitchStmt(s *SwitchStmt) error
	VisitReturnStmt(s *ReturnStmt) error
	VisitBreakStmt(s *BreakStmt) error
	VisitContinueStmt(s *ContinueStmt) error
	VisitAsmStmt(s *AsmStmt) error
	VisitNullStmt(s *NullStmt) error

	// Declarations
	VisitVarDecl(d *VarDecl) error
	VisitFuncDecl(d *FuncDecl) error
	VisitOpaqueDecl(d *OpaqueDecl) error
	VisitStructDecl(d *StructDecl) error
	VisitUnionDecl(d *UnionDecl) error
	VisitEnumDecl(d *EnumDecl) error
	VisitTypedefDecl(d *TypedefDecl) error

	// Type expressions
	VisitKeywordTypeExpr(t *KeywordTypeExpr) (interface{}, error)
	VisitNamedTypeExpr(t *NamedTypeExpr) (interface{}, error)
	VisitQualifiedTypeExpr(t *QualifiedTypeExpr) (interface{}, error)
	VisitPointerTypeExpr(t *PointerTypeExpr) (interface{}, error)
	VisitArrayTypeExpr(t *ArrayTypeExpr) (interface{}, error)
	VisitFuncPtrTypeExpr(t *FuncPtrTypeExpr) (interface{}, error)
}

// File is the AST root for a single compiled source file. IsCode
// distinguishes a .tc code file (may define function bodies and variable
// initializers) from a .td declaration file (forward declarations only);
// stab construction uses it to tell apart the two files of one module
// when they share a module name, rather than treating that as a
// redeclaration error.
type File struct {
	ModuleDecl *ModuleDecl
	Imports    []*ImportDecl
	Decls      []Decl
	Filename   string
	IsCode     bool
}

// ModuleDecl names the module this file belongs to (module foo::bar;).
type ModuleDecl struct {
	BaseNode
	ScopedName []string
}

// ImportDecl brings another module's exported names into scope
// (import foo::bar;).
type ImportDecl struct {
	BaseNode
	ScopedName []string
}

// BaseNode supplies Pos/End for every node via embedding, the way the
// teacher's AST package does; nodes whose span needs computing from a
// child override End directly.
type BaseNode struct {
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (b *BaseNode) Pos() lexer.Position { return b.StartPos }
func (b *BaseNode) End() lexer.Position { return b.EndPos }

// StringifyID joins a scoped identifier's parts with "::", the same
// rendering original_source's nameUtils.c stringifyId produces, used
// wherever a scoped name must appear in a diagnostic.
func StringifyID(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}
