package check

import (
	"strconv"
	"strings"

	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// keywordTypes mirrors internal/stab's table of the same name: a type-
// keyword token maps directly to its singleton Type. Kept as its own copy
// here (rather than exported from stab) since check resolves local type
// expressions against its own scope chain, not a stab.Builder.
var keywordTypes = map[lexer.TokenKind]types.Type{
	lexer.Void: types.Void, lexer.Ubyte: types.Ubyte, lexer.Byte: types.Byte,
	lexer.Char: types.Char, lexer.Ushort: types.Ushort, lexer.Short: types.Short,
	lexer.Uint: types.Uint, lexer.Int: types.Int, lexer.Wchar: types.Wchar,
	lexer.Ulong: types.Ulong, lexer.Long: types.Long, lexer.Float: types.Float,
	lexer.Double: types.Double, lexer.Bool: types.Bool,
}

// isTypeSymbol reports whether kind names one of the four declared-type
// forms or the opaque forward form.
func isTypeSymbol(kind symtab.SymbolKind) bool {
	switch kind {
	case symtab.SymbolStruct, symtab.SymbolUnion, symtab.SymbolEnum,
		symtab.SymbolTypedef, symtab.SymbolOpaque:
		return true
	default:
		return false
	}
}

var symbolToAggKind = map[symtab.SymbolKind]types.AggregateKind{
	symtab.SymbolStruct:  types.AggStruct,
	symtab.SymbolUnion:   types.AggUnion,
	symtab.SymbolEnum:    types.AggEnum,
	symtab.SymbolOpaque:  types.AggOpaque,
	symtab.SymbolTypedef: types.AggTypedef,
}

// refTypeFor builds the ReferenceType a use site sees for a named-type
// symbol, the same construction stab.refTypeFor performs at the top
// level, reused here for types named inside a function body.
func refTypeFor(sym *symtab.Symbol) types.Type {
	return &types.ReferenceType{ScopedName: sym.Name, Kind_: symbolToAggKind[sym.Kind], Entry: sym}
}

// parseIntLiteral parses an integer LiteralExpr's token text per its
// radix kind; duplicated from stab's helper of the same name since it is
// unexported there and check needs it for local array-length and enum-
// value expressions.
func parseIntLiteral(lit *ast.LiteralExpr) (int64, bool) {
	text := lit.Value
	switch lit.Kind {
	case lexer.LitInt0:
		return 0, true
	case lexer.LitIntB:
		n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B"), 2, 64)
		return n, err == nil
	case lexer.LitIntO:
		n, err := strconv.ParseInt(strings.TrimPrefix(text, "0"), 8, 64)
		return n, err == nil
	case lexer.LitIntD:
		n, err := strconv.ParseInt(text, 10, 64)
		return n, err == nil
	case lexer.LitIntH:
		n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X"), 16, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
