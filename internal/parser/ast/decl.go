package ast

import (
	"github.com/hassan/tcompiler/internal/lexer"
)

// Param is one function parameter.
type Param struct {
	Name string
	Type TypeExpr
}

// VarDecl declares one or more variables of the same type:
// Type name1 [= init1], name2 [= init2], ...;
type VarDecl struct {
	BaseNode
	Type  TypeExpr
	Names []string
	Inits []Expr // parallel to Names; nil entry means no initializer
}

func (d *VarDecl) stmtNode() {}
func (d *VarDecl) declNode() {}
func (d *VarDecl) Accept(v Visitor) error { return v.VisitVarDecl(d) }

// FuncDecl declares a function. Body holds the parsed statement list once
// pass 3 (the late parser) has run; Unparsed holds the raw captured token
// vector in between skim and late parsing, and Body is nil until then —
// this is the deferred-body mechanism central to the two-phase design:
// pass 1 captures the token span without interpreting it so that a
// whole-program symbol table exists before any function body is
// meaningfully parsed.
type FuncDecl struct {
	BaseNode
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Unparsed   []lexer.Token
	Body       *BlockStmt
}

func (d *FuncDecl) stmtNode() {}
func (d *FuncDecl) declNode() {}
func (d *FuncDecl) Accept(v Visitor) error { return v.VisitFuncDecl(d) }

// OpaqueDecl declares an opaque type: opaque Name; — a forward
// declaration with no known structure until some translation unit
// provides a matching concrete struct/union/enum/typedef.
type OpaqueDecl struct {
	BaseNode
	Name string
}

func (d *OpaqueDecl) stmtNode() {}
func (d *OpaqueDecl) declNode() {}
func (d *OpaqueDecl) Accept(v Visitor) error { return v.VisitOpaqueDecl(d) }

// StructDecl declares a struct's field list.
type StructDecl struct {
	BaseNode
	Name   string
	Fields []FieldDecl
}

// FieldDecl is one struct/union field.
type FieldDecl struct {
	Name string
	Type TypeExpr
}

func (d *StructDecl) stmtNode() {}
func (d *StructDecl) declNode() {}
func (d *StructDecl) Accept(v Visitor) error { return v.VisitStructDecl(d) }

// UnionDecl declares a union's alternative list (same shape as a struct,
// kept as a distinct node because unions admit different completeness and
// recursion rules than structs).
type UnionDecl struct {
	BaseNode
	Name   string
	Fields []FieldDecl
}

func (d *UnionDecl) stmtNode() {}
func (d *UnionDecl) declNode() {}
func (d *UnionDecl) Accept(v Visitor) error { return v.VisitUnionDecl(d) }

// EnumConstant is one `name [= value]` entry of an enum.
type EnumConstant struct {
	Name  string
	Value Expr // nil when the value is implicit (previous + 1, or 0)
}

// EnumDecl declares an enum's constant list.
type EnumDecl struct {
	BaseNode
	Name      string
	Constants []EnumConstant
}

func (d *EnumDecl) stmtNode() {}
func (d *EnumDecl) declNode() {}
func (d *EnumDecl) Accept(v Visitor) error { return v.VisitEnumDecl(d) }

// TypedefDecl declares a type alias: typedef Type Name;
type TypedefDecl struct {
	BaseNode
	Name string
	Type TypeExpr
}

func (d *TypedefDecl) stmtNode() {}
func (d *TypedefDecl) declNode() {}
func (d *TypedefDecl) Accept(v Visitor) error { return v.VisitTypedefDecl(d) }
