package check

import (
	"strings"

	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

func (c *Checker) VisitLiteralExpr(e *ast.LiteralExpr) (interface{}, error) {
	switch e.Kind {
	case lexer.True, lexer.False:
		return types.Bool, nil
	case lexer.Null:
		return &types.PointerType{Pointee: types.Void}, nil
	case lexer.LitChar:
		return types.Char, nil
	case lexer.LitWchar:
		return types.Wchar, nil
	case lexer.LitString:
		return &types.PointerType{Pointee: types.Char}, nil
	case lexer.LitWstring:
		return &types.PointerType{Pointee: types.Wchar}, nil
	case lexer.LitFloat:
		if strings.HasSuffix(strings.ToLower(e.Value), "f") {
			return types.Float, nil
		}
		return types.Double, nil
	case lexer.LitInt0, lexer.LitIntB, lexer.LitIntO, lexer.LitIntD, lexer.LitIntH:
		return types.Int, nil
	default:
		// Bad* tokens: the lexer already set the errored flag for these.
		return types.Invalid, nil
	}
}

func (c *Checker) VisitIdentifierExpr(e *ast.IdentifierExpr) (interface{}, error) {
	sym := c.lookup(e.Name)
	if sym == nil {
		c.bag.Errorf(e.Pos(), "undeclared identifier '%s'", e.Name)
		return types.Invalid, nil
	}
	sym.MarkUsed()
	e.Entry = sym
	if isTypeSymbol(sym.Kind) {
		c.bag.Errorf(e.Pos(), "'%s' names a type, not a value", e.Name)
		return types.Invalid, nil
	}
	return sym.Type, nil
}

func (c *Checker) VisitScopedIdentifierExpr(e *ast.ScopedIdentifierExpr) (interface{}, error) {
	sym := c.res.LookupScoped(e.Parts)
	if sym == nil {
		c.bag.Errorf(e.Pos(), "no such name '%s'", ast.StringifyID(e.Parts))
		return types.Invalid, nil
	}
	sym.MarkUsed()
	e.Entry = sym
	if isTypeSymbol(sym.Kind) {
		c.bag.Errorf(e.Pos(), "'%s' names a type, not a value", ast.StringifyID(e.Parts))
		return types.Invalid, nil
	}
	return sym.Type, nil
}

func (c *Checker) VisitGroupingExpr(e *ast.GroupingExpr) (interface{}, error) {
	return c.exprType(e.Inner), nil
}

func (c *Checker) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	calleeType := c.exprType(e.Callee)
	sig, ok := calleeType.(*types.FuncPtrType)
	if !ok {
		if calleeType != types.Invalid {
			c.bag.Errorf(e.Pos(), "called value is not a function")
		}
		for _, a := range e.Args {
			c.exprType(a)
		}
		return types.Invalid, nil
	}
	if len(e.Args) != len(sig.ParamTypes) {
		c.bag.Errorf(e.Pos(), "expected %d argument(s), got %d", len(sig.ParamTypes), len(e.Args))
	}
	for i, a := range e.Args {
		argType := c.exprType(a)
		if i >= len(sig.ParamTypes) {
			continue
		}
		if !types.ImplicitlyConvertible(argType, sig.ParamTypes[i]) {
			c.bag.Errorf(a.Pos(), "cannot pass a value of type '%s' as argument %d of type '%s'", argType, i+1, sig.ParamTypes[i])
		}
	}
	return sig.ReturnType, nil
}

func (c *Checker) VisitIndexExpr(e *ast.IndexExpr) (interface{}, error) {
	arrType := c.exprType(e.Array)
	idxType := c.exprType(e.Index)
	if !types.IsIntegral(idxType) {
		c.bag.Errorf(e.Index.Pos(), "array index must be an integral type, got '%s'", idxType)
	}
	elem, ok := types.Dereferenced(arrType)
	if !ok {
		if arrType != types.Invalid {
			c.bag.Errorf(e.Pos(), "cannot index a value of type '%s'", arrType)
		}
		return types.Invalid, nil
	}
	return elem, nil
}

func (c *Checker) VisitMemberExpr(e *ast.MemberExpr) (interface{}, error) {
	objType := c.exprType(e.Object)
	base := objType
	if e.Arrow {
		ptr, ok := types.Dereferenced(objType)
		if !ok || !types.IsCompound(ptr) {
			if objType != types.Invalid {
				c.bag.Errorf(e.Pos(), "'->' requires a pointer to struct or union, got '%s'", objType)
			}
			return types.Invalid, nil
		}
		base = ptr
	} else if !types.IsCompound(objType) {
		if objType != types.Invalid {
			c.bag.Errorf(e.Pos(), "'.' requires a struct or union value, got '%s'", objType)
		}
		return types.Invalid, nil
	}

	sym := c.compoundSymbol(base)
	if sym == nil {
		return types.Invalid, nil
	}
	field := sym.Fields[e.Field]
	if field == nil {
		c.bag.Errorf(e.Pos(), "'%s' has no field '%s'", sym.Name, e.Field)
		return types.Invalid, nil
	}
	return types.CopyCV(base, field.Type), nil
}

// compoundSymbol unwraps a (possibly cv-qualified) struct/union reference
// type down to the symtab.Symbol carrying its field list.
func (c *Checker) compoundSymbol(t types.Type) *symtab.Symbol {
	ref, ok := t.(*types.ReferenceType)
	if !ok {
		if q, ok2 := t.(*types.QualifiedType); ok2 {
			return c.compoundSymbol(q.Base)
		}
		return nil
	}
	sym, _ := ref.Entry.(*symtab.Symbol)
	return sym
}

func (c *Checker) VisitAssignmentExpr(e *ast.AssignmentExpr) (interface{}, error) {
	targetType := c.exprType(e.Target)
	valueType := c.exprType(e.Value)

	if !c.isLvalue(e.Target) {
		c.bag.Errorf(e.Pos(), "assignment target is not an lvalue")
		return targetType, nil
	}
	if isConstQualified(targetType) {
		c.bag.Errorf(e.Pos(), "cannot assign to a const-qualified value")
		return targetType, nil
	}

	if e.Operator.Kind == lexer.Assign {
		if !types.ImplicitlyConvertible(valueType, targetType) {
			c.bag.Errorf(e.Pos(), "cannot assign a value of type '%s' to a target of type '%s'", valueType, targetType)
		}
	} else {
		result := c.compoundAssignResult(e.Operator.Kind, targetType, valueType, e.Pos())
		if result != types.Invalid && !types.ImplicitlyConvertible(result, targetType) {
			c.bag.Errorf(e.Pos(), "compound assignment result of type '%s' does not convert to target type '%s'", result, targetType)
		}
	}

	if root := c.rootSymbol(e.Target); root != nil {
		root.MarkUsed()
	}
	return targetType, nil
}

func (c *Checker) compoundAssignResult(op lexer.TokenKind, target, value types.Type, pos lexer.Position) types.Type {
	switch op {
	case lexer.AddAssign, lexer.SubAssign:
		if types.IsPointer(target) && types.IsIntegral(value) {
			return target
		}
		if types.IsNumeric(target) && types.IsNumeric(value) {
			return types.Merge(target, value)
		}
	case lexer.LShiftAssign, lexer.ARShiftAssign, lexer.LRShiftAssign:
		if types.IsIntegral(target) && types.IsIntegral(value) {
			return target
		}
	default:
		if types.IsNumeric(target) && types.IsNumeric(value) {
			return types.Merge(target, value)
		}
		if types.IsIntegral(target) && types.IsIntegral(value) {
			return types.Merge(target, value)
		}
	}
	c.bag.Errorf(pos, "invalid operand types ('%s', '%s') to compound assignment", target, value)
	return types.Invalid
}

func (c *Checker) VisitLogicalExpr(e *ast.LogicalExpr) (interface{}, error) {
	l := c.exprType(e.Left)
	r := c.exprType(e.Right)
	if !types.ImplicitlyConvertible(l, types.Bool) {
		c.bag.Errorf(e.Left.Pos(), "operand of '%s' must be convertible to bool, got '%s'", e.Operator.Kind, l)
	}
	if !types.ImplicitlyConvertible(r, types.Bool) {
		c.bag.Errorf(e.Right.Pos(), "operand of '%s' must be convertible to bool, got '%s'", e.Operator.Kind, r)
	}
	return types.Bool, nil
}

func (c *Checker) VisitTernaryExpr(e *ast.TernaryExpr) (interface{}, error) {
	condType := c.exprType(e.Cond)
	if !types.ImplicitlyConvertible(condType, types.Bool) {
		c.bag.Errorf(e.Cond.Pos(), "ternary condition must be convertible to bool, got '%s'", condType)
	}
	thenType := c.exprType(e.Then)
	elseType := c.exprType(e.Else)
	return ternaryMerge(thenType, elseType), nil
}

// ternaryMerge is typeMerge's ternary-specific form (§4.6): the
// initialisability relation tried in both directions, falling back to the
// usual arithmetic merge for two numeric branches.
func ternaryMerge(a, b types.Type) types.Type {
	if a.Equals(b) {
		return a
	}
	if types.ImplicitlyConvertible(a, b) {
		return b
	}
	if types.ImplicitlyConvertible(b, a) {
		return a
	}
	if types.IsNumeric(a) && types.IsNumeric(b) {
		return types.Merge(a, b)
	}
	return types.Invalid
}

func (c *Checker) VisitCastExpr(e *ast.CastExpr) (interface{}, error) {
	target := c.resolveTypeExpr(e.Target)
	operand := c.exprType(e.Operand)
	if !types.Castable(operand, target) {
		c.bag.Errorf(e.Pos(), "cannot cast a value of type '%s' to '%s'", operand, target)
	}
	return target, nil
}

func (c *Checker) VisitSizeofExpr(e *ast.SizeofExpr) (interface{}, error) {
	var t types.Type
	if e.TargetType != nil {
		t = c.resolveTypeExpr(e.TargetType)
	} else {
		t = c.exprType(e.Operand)
	}
	if !types.IsComplete(t) {
		c.bag.Errorf(e.Pos(), "sizeof applied to an incomplete type '%s'", t)
	}
	return types.Ulong, nil
}

func (c *Checker) VisitAggregateInitExpr(e *ast.AggregateInitExpr) (interface{}, error) {
	elems := make([]types.Type, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = c.exprType(el)
	}
	return &types.TupleType{Elements: elems}, nil
}

func (c *Checker) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	l := c.exprType(e.Left)
	r := c.exprType(e.Right)
	op := e.Operator.Kind

	switch op {
	case lexer.Plus:
		if types.IsNumeric(l) && types.IsNumeric(r) {
			return types.Merge(l, r), nil
		}
		if types.IsPointer(l) && types.IsIntegral(r) {
			return l, nil
		}
		if types.IsIntegral(l) && types.IsPointer(r) {
			return r, nil
		}
	case lexer.Minus:
		if types.IsNumeric(l) && types.IsNumeric(r) {
			return types.Merge(l, r), nil
		}
		if types.IsPointer(l) && types.IsIntegral(r) {
			return l, nil
		}
		if types.IsPointer(l) && types.IsPointer(r) {
			lp, _ := types.Dereferenced(l)
			rp, _ := types.Dereferenced(r)
			if lp.Equals(rp) {
				return types.Long, nil
			}
		}
	case lexer.Star, lexer.Slash:
		if types.IsNumeric(l) && types.IsNumeric(r) {
			return types.Merge(l, r), nil
		}
	case lexer.Percent:
		if types.IsIntegral(l) && types.IsIntegral(r) {
			return types.Merge(l, r), nil
		}
	case lexer.Bar, lexer.Caret, lexer.Amp:
		if types.IsIntegral(l) && types.IsIntegral(r) {
			return types.Merge(l, r), nil
		}
	case lexer.LShift, lexer.LRShift:
		if types.IsIntegral(l) && types.IsUnsigned(r) {
			return l, nil
		}
	case lexer.ARShift:
		if types.IsSigned(l) && types.IsUnsigned(r) {
			return l, nil
		}
	case lexer.Eq, lexer.Neq, lexer.LAngle, lexer.RAngle, lexer.LtEq, lexer.GtEq, lexer.Spaceship:
		if comparisonOk(l, r) {
			return types.Bool, nil
		}
	}

	if l != types.Invalid && r != types.Invalid {
		c.bag.Errorf(e.Pos(), "invalid operand types ('%s', '%s') to '%s'", l, r, op)
	}
	return types.Invalid, nil
}

// comparisonOk is comparisonTypeMerge's boolean form: two numeric
// operands, two pointers to the same stripped base, or one pointer and
// one integral operand (a null-check idiom), are comparable.
func comparisonOk(l, r types.Type) bool {
	if types.IsNumeric(l) && types.IsNumeric(r) {
		return true
	}
	if types.IsPointer(l) && types.IsPointer(r) {
		lp, _ := types.Dereferenced(l)
		rp, _ := types.Dereferenced(r)
		return lp.Equals(rp) || isVoidPointer(l) || isVoidPointer(r)
	}
	if (types.IsPointer(l) && types.IsIntegral(r)) || (types.IsIntegral(l) && types.IsPointer(r)) {
		return true
	}
	return false
}

func isVoidPointer(t types.Type) bool {
	p, ok := t.(*types.PointerType)
	return ok && p.Pointee.Equals(types.Void)
}

func (c *Checker) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	operand := c.exprType(e.Operand)
	op := e.Operator.Kind

	switch op {
	case lexer.Minus:
		if types.IsNumeric(operand) {
			return operand, nil
		}
	case lexer.Bang:
		if types.ImplicitlyConvertible(operand, types.Bool) {
			return types.Bool, nil
		}
	case lexer.Tilde:
		if types.IsIntegral(operand) {
			return operand, nil
		}
	case lexer.Star:
		if elem, ok := types.Dereferenced(operand); ok {
			return elem, nil
		}
	case lexer.Amp:
		if !c.isLvalue(e.Operand) {
			c.bag.Errorf(e.Pos(), "cannot take the address of a non-lvalue")
			return types.Invalid, nil
		}
		if root := c.rootSymbol(e.Operand); root != nil {
			root.Escapes = true
		}
		return &types.PointerType{Pointee: operand}, nil
	case lexer.Inc, lexer.Dec:
		if !c.isLvalue(e.Operand) {
			c.bag.Errorf(e.Pos(), "increment/decrement operand must be an lvalue")
			return operand, nil
		}
		if types.IsIntegral(operand) || types.IsPointer(operand) {
			return operand, nil
		}
	}

	if operand != types.Invalid {
		c.bag.Errorf(e.Pos(), "invalid operand type '%s' to '%s'", operand, op)
	}
	return types.Invalid, nil
}

// isLvalue reports whether e denotes an addressable location, per §4.6's
// lvalue definition.
func (c *Checker) isLvalue(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.IdentifierExpr, *ast.ScopedIdentifierExpr:
		return true
	case *ast.GroupingExpr:
		return c.isLvalue(n.Inner)
	case *ast.MemberExpr:
		if n.Arrow {
			return true
		}
		return c.isLvalue(n.Object)
	case *ast.IndexExpr:
		return true
	case *ast.AssignmentExpr:
		return true
	case *ast.UnaryExpr:
		return n.Operator.Kind == lexer.Star && !n.IsPostfix
	default:
		return false
	}
}

// rootSymbol finds the symbol table entry an lvalue expression ultimately
// names, for escape marking; nil when the lvalue is not rooted at a named
// entry (e.g. *p has no symbol of its own to mark).
func (c *Checker) rootSymbol(e ast.Expr) *symtab.Symbol {
	switch n := e.(type) {
	case *ast.IdentifierExpr:
		sym, _ := n.Entry.(*symtab.Symbol)
		return sym
	case *ast.ScopedIdentifierExpr:
		sym, _ := n.Entry.(*symtab.Symbol)
		return sym
	case *ast.GroupingExpr:
		return c.rootSymbol(n.Inner)
	case *ast.MemberExpr:
		if n.Arrow {
			return nil
		}
		return c.rootSymbol(n.Object)
	case *ast.IndexExpr:
		return c.rootSymbol(n.Array)
	default:
		return nil
	}
}

// isConstQualified reports whether t is a QualifiedType with Const set.
func isConstQualified(t types.Type) bool {
	q, ok := t.(*types.QualifiedType)
	return ok && q.Const
}
