package ast

import (
	"github.com/hassan/tcompiler/internal/lexer"
)

// KeywordTypeExpr is a bare primitive type keyword: int, void, bool, ...
type KeywordTypeExpr struct {
	BaseNode
	Keyword lexer.TokenKind
}

func (t *KeywordTypeExpr) typeExprNode() {}
func (t *KeywordTypeExpr) Accept(v Visitor) (interface{}, error) { return v.VisitKeywordTypeExpr(t) }

// NamedTypeExpr references a struct/union/enum/typedef/opaque type by its
// (possibly scoped) name; which aggregate kind it actually names is
// resolved during stab construction, not by the parser.
type NamedTypeExpr struct {
	BaseNode
	ScopedName []string
}

func (t *NamedTypeExpr) typeExprNode() {}
func (t *NamedTypeExpr) Accept(v Visitor) (interface{}, error) { return v.VisitNamedTypeExpr(t) }

// QualifiedTypeExpr is Base followed by a postfix const/volatile qualifier.
// The grammar allows either qualifier after any type form — a keyword, a
// named type, a pointer, or an array — so qualification is modeled as a
// wrapper rather than a flag on each base form; flattening nested
// qualifiers onto one layer happens when this is resolved to a
// internal/types.Type.
type QualifiedTypeExpr struct {
	BaseNode
	Base     TypeExpr
	Const    bool
	Volatile bool
}

func (t *QualifiedTypeExpr) typeExprNode() {}
func (t *QualifiedTypeExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitQualifiedTypeExpr(t)
}

// PointerTypeExpr is Base *.
type PointerTypeExpr struct {
	BaseNode
	Base TypeExpr
}

func (t *PointerTypeExpr) typeExprNode() {}
func (t *PointerTypeExpr) Accept(v Visitor) (interface{}, error) { return v.VisitPointerTypeExpr(t) }

// ArrayTypeExpr is Base[Length]; Length is nil for an unsized array type
// expression (valid only in restricted contexts, e.g. a function
// parameter written as an array).
type ArrayTypeExpr struct {
	BaseNode
	Element TypeExpr
	Length  Expr
}

func (t *ArrayTypeExpr) typeExprNode() {}
func (t *ArrayTypeExpr) Accept(v Visitor) (interface{}, error) { return v.VisitArrayTypeExpr(t) }

// FuncPtrTypeExpr is ReturnType(ParamTypes...), the function-pointer type
// form; any parameter names written alongside the types are accepted by
// the parser and discarded (they document the signature but aren't part
// of the type).
type FuncPtrTypeExpr struct {
	BaseNode
	ReturnType TypeExpr
	ParamTypes []TypeExpr
}

func (t *FuncPtrTypeExpr) typeExprNode() {}
func (t *FuncPtrTypeExpr) Accept(v Visitor) (interface{}, error) { return v.VisitFuncPtrTypeExpr(t) }
