package check

import (
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// LookupScoped resolves a module-qualified name's final component against
// the named module's own top-level scope — the last step of `A::B::C`
// resolution, mirroring stab's resolveNamedType but open to any symbol
// kind rather than just type names.
func (r *Resolver) LookupScoped(parts []string) *symtab.Symbol {
	if len(parts) < 2 {
		return nil
	}
	modName := ast.StringifyID(parts[:len(parts)-1])
	name := parts[len(parts)-1]
	mod, ok := r.Modules[modName]
	if !ok {
		return nil
	}
	return mod.Scope.LookupLocal(name)
}

// resolveTypeExpr turns a type expression written inside a function body
// (a local variable's declared type, a cast target, a sizeof target, a
// nested struct/union field, a nested typedef's aliasee) into a
// internal/types.Type, resolving named references against the current
// scope chain first and the module's imports second — the chain that
// also reaches a type declared earlier in the same block.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr) types.Type {
	v, _ := te.Accept(c)
	t, ok := v.(types.Type)
	if !ok || t == nil {
		return types.Invalid
	}
	return t
}

func (c *Checker) VisitKeywordTypeExpr(t *ast.KeywordTypeExpr) (interface{}, error) {
	if typ, ok := keywordTypes[t.Keyword]; ok {
		return typ, nil
	}
	return types.Invalid, nil
}

func (c *Checker) VisitNamedTypeExpr(t *ast.NamedTypeExpr) (interface{}, error) {
	parts := t.ScopedName
	if len(parts) == 0 {
		return types.Invalid, nil
	}
	var sym *symtab.Symbol
	if len(parts) == 1 {
		sym = c.lookup(parts[0])
	} else {
		sym = c.res.LookupScoped(parts)
	}
	if sym == nil || !isTypeSymbol(sym.Kind) {
		c.bag.Errorf(t.Pos(), "no such type '%s'", ast.StringifyID(parts))
		return types.Invalid, nil
	}
	return refTypeFor(sym), nil
}

func (c *Checker) VisitQualifiedTypeExpr(t *ast.QualifiedTypeExpr) (interface{}, error) {
	base := c.resolveTypeExpr(t.Base)
	return types.Qualify(base, t.Const, t.Volatile), nil
}

func (c *Checker) VisitPointerTypeExpr(t *ast.PointerTypeExpr) (interface{}, error) {
	return &types.PointerType{Pointee: c.resolveTypeExpr(t.Base)}, nil
}

func (c *Checker) VisitArrayTypeExpr(t *ast.ArrayTypeExpr) (interface{}, error) {
	length := int64(-1)
	if t.Length != nil {
		if n, ok := c.evalConstIntExpr(t.Length); ok {
			length = n
		} else {
			c.bag.Errorf(t.Length.Pos(), "array length must be a constant integer expression")
		}
	}
	return &types.ArrayType{ElementType: c.resolveTypeExpr(t.Element), Length: length}, nil
}

func (c *Checker) VisitFuncPtrTypeExpr(t *ast.FuncPtrTypeExpr) (interface{}, error) {
	params := make([]types.Type, len(t.ParamTypes))
	for i, pt := range t.ParamTypes {
		params[i] = c.resolveTypeExpr(pt)
	}
	return &types.FuncPtrType{ReturnType: c.resolveTypeExpr(t.ReturnType), ParamTypes: params}, nil
}

// evalConstIntExpr evaluates the one constant-integer-expression shape an
// array length actually needs: a bare integer literal, matching stab's
// own array-length handling (a named-constant or arithmetic array bound
// is left to a later constant-folding pass).
func (c *Checker) evalConstIntExpr(e ast.Expr) (int64, bool) {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok || !lit.Kind.IsIntLiteral() {
		return 0, false
	}
	return parseIntLiteral(lit)
}
