// Package symtab implements symbol table management for name resolution
// and scoping: per-scope symbol maps, a scope tree mirroring lexical
// nesting, and the top-level entry kinds stage B of stab construction
// creates (variables, functions, and the four named-type declaration
// forms: struct, union, enum, typedef, plus the opaque forward form).
package symtab

import (
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/types"
)

// SymbolKind is what kind of named entity a Symbol represents.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
	SymbolOpaque
	SymbolStruct
	SymbolUnion
	SymbolEnum
	SymbolTypedef
	SymbolEnumConst
	SymbolField
	SymbolModule
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolOpaque:
		return "opaque type"
	case SymbolStruct:
		return "struct"
	case SymbolUnion:
		return "union"
	case SymbolEnum:
		return "enum"
	case SymbolTypedef:
		return "typedef"
	case SymbolEnumConst:
		return "enum constant"
	case SymbolField:
		return "field"
	case SymbolModule:
		return "module"
	default:
		return "unknown"
	}
}

// Symbol is a named entity: a variable, function, parameter, one of the
// four named-type declaration forms, an enum constant, or a struct/union
// field.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Type  types.Type
	Pos   lexer.Position
	Scope *Scope

	Constant bool
	Used     bool
	Value    interface{} // resolved enum-constant value, when Kind == SymbolEnumConst

	// Signed records a signedness flag: for a SymbolEnumConst, the
	// constant's own signedness after stage C's sign-normalisation pass;
	// for a SymbolEnum, the enum's resolved backingType (Long if signed,
	// Ulong if not) — both are only meaningful once that pass has run.
	Signed bool

	// Escapes records whether a variable or parameter had its address taken
	// (&x), set by internal/check while it walks a function body. A
	// non-escaping local may be kept in a register by a later codegen
	// stage; this front end only records the fact.
	Escapes bool

	Fields map[string]*Symbol // struct/union field symbols, keyed by field name
	// FieldOrder records the same fields' names in declaration order,
	// alongside Fields, since an aggregate-initialiser literal checks
	// positionally against a struct's field list.
	FieldOrder []string
	Index      int
}

func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.Type.String() + " at " + s.Pos.String()
}

// IsGlobal reports whether the symbol was declared at module (global) scope.
func (s *Symbol) IsGlobal() bool { return s.Scope != nil && s.Scope.IsGlobal() }

// IsLocal reports the complement of IsGlobal.
func (s *Symbol) IsLocal() bool { return !s.IsGlobal() }

// CanAssign reports whether the symbol may appear as an assignment target:
// true for non-const variables and parameters, false for everything else
// (functions, types, enum constants, const-qualified bindings).
func (s *Symbol) CanAssign() bool {
	if s.Constant {
		return false
	}
	if q, ok := s.Type.(*types.QualifiedType); ok && q.Const {
		return false
	}
	switch s.Kind {
	case SymbolVariable, SymbolParameter:
		return true
	default:
		return false
	}
}

// MarkUsed records that the symbol was referenced.
func (s *Symbol) MarkUsed() { s.Used = true }

// BackingType returns the 64-bit integer type an enum's constants are
// stored as once stage C's sign-normalisation pass has set Signed: long
// if any constant came out signed, ulong otherwise. Only meaningful for
// a SymbolEnum.
func (s *Symbol) BackingType() types.Type {
	if s.Signed {
		return types.Long
	}
	return types.Ulong
}

// LookupField looks up a field on a struct/union symbol; nil for any
// other symbol kind or an unknown field name.
func (s *Symbol) LookupField(name string) *Symbol {
	if s.Kind != SymbolStruct && s.Kind != SymbolUnion {
		return nil
	}
	return s.Fields[name]
}
