package stab

import (
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// stageDCompleteAggregates is buildSymbolTable's aggregate/type
// completion: resolve every struct/union field's type expression and
// record it on the aggregate's Symbol (LookupField serves it from
// there), and resolve a typedef's underlying type. Both run after every
// module's stage B, so a field or typedef may reference any named type
// in the whole program, including one declared later in its own file.
func (b *Builder) stageDCompleteAggregates(mod *Module) {
	for _, decl := range mod.AllDecls() {
		switch d := decl.(type) {
		case *ast.StructDecl:
			b.completeFields(mod, d.Name, d.Fields)
		case *ast.UnionDecl:
			b.completeFields(mod, d.Name, d.Fields)
		case *ast.TypedefDecl:
			b.completeTypedef(mod, d)
		}
	}
}

func (b *Builder) completeFields(mod *Module, name string, fields []ast.FieldDecl) {
	aggSym := mod.Scope.LookupLocal(name)
	if aggSym == nil {
		return
	}
	aggSym.Fields = map[string]*symtab.Symbol{}
	for _, f := range fields {
		typ := b.resolveTypeExpr(mod, f.Type)
		if containsAggregateDirectly(typ, name) {
			b.bag.Errorf(aggSym.Pos, "field '%s' of '%s' directly contains '%s', which is infinite in size", f.Name, name, name)
			continue
		}
		if _, dup := aggSym.Fields[f.Name]; dup {
			b.bag.Errorf(aggSym.Pos, "field '%s' already declared in '%s'", f.Name, name)
			continue
		}
		aggSym.Fields[f.Name] = &symtab.Symbol{Name: f.Name, Kind: symtab.SymbolField, Type: typ, Pos: aggSym.Pos}
		aggSym.FieldOrder = append(aggSym.FieldOrder, f.Name)
	}
}

func (b *Builder) completeTypedef(mod *Module, d *ast.TypedefDecl) {
	sym := mod.Scope.LookupLocal(d.Name)
	if sym == nil {
		return
	}
	underlying := b.resolveTypeExpr(mod, d.Type)
	if ref, ok := underlying.(*types.ReferenceType); ok && ref.ScopedName == d.Name {
		b.bag.Errorf(d.Pos(), "typedef '%s' aliases itself", d.Name)
		return
	}
	sym.Type = underlying
}

// containsAggregateDirectly reports whether t is (ignoring cv
// qualification) a bare reference to the aggregate named name, or an
// array of one at any depth — the shapes of self-reference that make the
// aggregate's size unresolvable, since a pointer or array-of-pointer
// indirection bounds the size regardless of how deep the nesting goes.
func containsAggregateDirectly(t types.Type, name string) bool {
	if q, ok := t.(*types.QualifiedType); ok {
		return containsAggregateDirectly(q.Base, name)
	}
	if arr, ok := t.(*types.ArrayType); ok {
		return containsAggregateDirectly(arr.ElementType, name)
	}
	ref, ok := t.(*types.ReferenceType)
	return ok && ref.ScopedName == name
}
