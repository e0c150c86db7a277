package stab

import (
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/types"
)

// keywordTypes maps a type-keyword token directly to its singleton Type,
// one explicit entry per primitive keyword.
var keywordTypes = map[lexer.TokenKind]types.Type{
	lexer.Void: types.Void, lexer.Ubyte: types.Ubyte, lexer.Byte: types.Byte,
	lexer.Char: types.Char, lexer.Ushort: types.Ushort, lexer.Short: types.Short,
	lexer.Uint: types.Uint, lexer.Int: types.Int, lexer.Wchar: types.Wchar,
	lexer.Ulong: types.Ulong, lexer.Long: types.Long, lexer.Float: types.Float,
	lexer.Double: types.Double, lexer.Bool: types.Bool,
}

// resolveTypeExpr turns a parsed type expression into a internal/types
// Type, resolving named references against mod's own top-level scope and
// the modules it imports — the two places a bare or scoped type name may
// live once stage B has populated every module's top-level entries.
func (b *Builder) resolveTypeExpr(mod *Module, te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.KeywordTypeExpr:
		if typ, ok := keywordTypes[t.Keyword]; ok {
			return typ
		}
		return types.Invalid

	case *ast.NamedTypeExpr:
		return b.resolveNamedType(mod, t)

	case *ast.QualifiedTypeExpr:
		base := b.resolveTypeExpr(mod, t.Base)
		return types.Qualify(base, t.Const, t.Volatile)

	case *ast.PointerTypeExpr:
		return &types.PointerType{Pointee: b.resolveTypeExpr(mod, t.Base)}

	case *ast.ArrayTypeExpr:
		length := int64(-1)
		if t.Length != nil {
			if n, ok := evalConstIntExpr(t.Length); ok {
				length = n
			} else {
				b.bag.Errorf(t.Length.Pos(), "array length must be a constant integer expression")
			}
		}
		return &types.ArrayType{ElementType: b.resolveTypeExpr(mod, t.Element), Length: length}

	case *ast.FuncPtrTypeExpr:
		params := make([]types.Type, len(t.ParamTypes))
		for i, pt := range t.ParamTypes {
			params[i] = b.resolveTypeExpr(mod, pt)
		}
		return &types.FuncPtrType{ReturnType: b.resolveTypeExpr(mod, t.ReturnType), ParamTypes: params}

	default:
		return types.Invalid
	}
}

// resolveNamedType resolves a bare identifier (looked up in mod's own
// scope, falling back to each imported module's top-level scope, the
// same chain a plain reference would walk at statement position) or a
// module-qualified name (module parts resolved against b.Modules, final
// part looked up in that module's top-level scope only).
func (b *Builder) resolveNamedType(mod *Module, t *ast.NamedTypeExpr) types.Type {
	parts := t.ScopedName
	if len(parts) == 0 {
		return types.Invalid
	}

	if len(parts) == 1 {
		name := parts[0]
		if sym := mod.Scope.LookupLocal(name); sym != nil && isTypeSymbol(sym.Kind) {
			return refTypeFor(sym)
		}
		for _, imp := range mod.Imported {
			if sym := imp.Scope.LookupLocal(name); sym != nil && isTypeSymbol(sym.Kind) {
				return refTypeFor(sym)
			}
		}
		b.bag.Errorf(t.Pos(), "no such type '%s'", name)
		return types.Invalid
	}

	modName := ast.StringifyID(parts[:len(parts)-1])
	typeName := parts[len(parts)-1]
	target, ok := b.Modules[modName]
	if !ok {
		b.bag.Errorf(t.Pos(), "no such module '%s'", modName)
		return types.Invalid
	}
	sym := target.Scope.LookupLocal(typeName)
	if sym == nil || !isTypeSymbol(sym.Kind) {
		b.bag.Errorf(t.Pos(), "no such type '%s::%s'", modName, typeName)
		return types.Invalid
	}
	return refTypeFor(sym)
}

// evalConstIntExpr evaluates an array-length expression that is a bare
// integer literal; anything more elaborate (a named constant, an
// arithmetic expression of constants) is left to a later constant-
// folding pass and is not required for the Open Questions this front end
// resolves.
func evalConstIntExpr(e ast.Expr) (int64, bool) {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return 0, false
	}
	return parseIntLiteral(lit)
}
