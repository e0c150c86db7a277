package stab

import (
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// stageBBuildTopLevel is buildSymbolTable's top-level entry creation: one
// symtab.Symbol per module-scope declaration. Named-type forms (opaque,
// struct, union, enum, typedef) are entered in a first sub-pass so that a
// function or variable declared earlier in the file can still reference
// a type declared later in it — the skim pass already has the whole
// file's AST, so nothing stops this beyond doing the two sub-passes in
// the right order. An opaque declaration followed later by its concrete
// form completes the same Symbol in place rather than erroring as a
// duplicate; completion itself (enum constants in stage C, Fields in
// stage D) happens once every module's placeholders exist.
func (b *Builder) stageBBuildTopLevel(mod *Module) {
	for _, decl := range mod.AllDecls() {
		switch d := decl.(type) {
		case *ast.OpaqueDecl:
			b.defineOpaque(mod, d)
		case *ast.StructDecl:
			b.defineOrCompleteNamedType(mod, d.Name, symtab.SymbolStruct, d.Pos())
		case *ast.UnionDecl:
			b.defineOrCompleteNamedType(mod, d.Name, symtab.SymbolUnion, d.Pos())
		case *ast.EnumDecl:
			b.defineOrCompleteNamedType(mod, d.Name, symtab.SymbolEnum, d.Pos())
		case *ast.TypedefDecl:
			b.defineOrCompleteNamedType(mod, d.Name, symtab.SymbolTypedef, d.Pos())
		}
	}

	for _, decl := range mod.AllDecls() {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			b.defineFunc(mod, d)
		case *ast.VarDecl:
			b.defineVars(mod, d)
		}
	}
}

func (b *Builder) defineOpaque(mod *Module, d *ast.OpaqueDecl) {
	if existing := mod.Scope.LookupLocal(d.Name); existing != nil {
		if existing.Kind == symtab.SymbolOpaque {
			b.bag.Errorf(d.Pos(), "'%s' redeclared as opaque (already declared at %s)", d.Name, existing.Pos)
		}
		// a concrete form already present: the forward declaration is
		// redundant and harmless, matching a header-style forward decl.
		return
	}
	sym := &symtab.Symbol{Name: d.Name, Kind: symtab.SymbolOpaque, Pos: d.Pos()}
	sym.Type = &types.ReferenceType{ScopedName: d.Name, Kind_: types.AggOpaque, Entry: sym}
	if err := mod.Scope.Define(sym); err != nil {
		b.bag.Errorf(d.Pos(), "%s", err)
	}
}

// defineOrCompleteNamedType enters a fresh named-type symbol, or, if an
// opaque placeholder by this name already exists, upgrades it in place.
func (b *Builder) defineOrCompleteNamedType(mod *Module, name string, kind symtab.SymbolKind, pos lexer.Position) {
	if existing := mod.Scope.LookupLocal(name); existing != nil {
		if existing.Kind != symtab.SymbolOpaque {
			b.bag.Errorf(pos, "'%s' redeclared (already declared at %s)", name, existing.Pos)
			return
		}
		existing.Kind = kind
		existing.Type = &types.ReferenceType{ScopedName: name, Kind_: symbolToAggKind[kind], Entry: existing}
		return
	}
	sym := &symtab.Symbol{Name: name, Kind: kind, Pos: pos}
	sym.Type = &types.ReferenceType{ScopedName: name, Kind_: symbolToAggKind[kind], Entry: sym}
	if err := mod.Scope.Define(sym); err != nil {
		b.bag.Errorf(pos, "%s", err)
	}
}

func (b *Builder) defineFunc(mod *Module, d *ast.FuncDecl) {
	retType := b.resolveTypeExpr(mod, d.ReturnType)
	paramTypes := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		paramTypes[i] = b.resolveTypeExpr(mod, p.Type)
	}
	sym := &symtab.Symbol{
		Name: d.Name,
		Kind: symtab.SymbolFunction,
		Type: &types.FuncPtrType{ReturnType: retType, ParamTypes: paramTypes},
		Pos:  d.Pos(),
	}
	if existing := mod.Scope.LookupLocal(d.Name); existing != nil {
		if existing.Kind != symtab.SymbolFunction || !existing.Type.Equals(sym.Type) {
			b.bag.Errorf(d.Pos(), "'%s' redeclared with a different signature (already declared at %s)", d.Name, existing.Pos)
		}
		return
	}
	if err := mod.Scope.Define(sym); err != nil {
		b.bag.Errorf(d.Pos(), "%s", err)
	}
}

func (b *Builder) defineVars(mod *Module, d *ast.VarDecl) {
	typ := b.resolveTypeExpr(mod, d.Type)
	for _, name := range d.Names {
		sym := &symtab.Symbol{Name: name, Kind: symtab.SymbolVariable, Type: typ, Pos: d.Pos()}
		if err := mod.Scope.Define(sym); err != nil {
			b.bag.Errorf(d.Pos(), "%s", err)
		}
	}
}
