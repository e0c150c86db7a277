package stab

import (
	"strconv"
	"strings"

	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// isTypeSymbol reports whether kind names one of the four declared-type
// forms or the opaque forward form — the symbol kinds a type expression
// may resolve to.
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
// symbol; the field/underlying-type data stage D fills in is reachable
// through Entry once that stage has run.
func refTypeFor(sym *symtab.Symbol) types.Type {
	return &types.ReferenceType{ScopedName: sym.Name, Kind_: symbolToAggKind[sym.Kind], Entry: sym}
}

// parseIntLiteral parses an integer LiteralExpr's token text per its
// radix kind, matching the reference lexer's LitInt0/B/O/D/H partition.
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
