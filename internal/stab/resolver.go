package stab

import "github.com/hassan/tcompiler/internal/parser"

// TypeResolverFor builds the parser.TypeResolver pass 3 installs before
// re-parsing a function body declared in mod: an identifier names a type
// if it resolves, in mod's own scope or one of its imports, to one of
// the four named-type symbol kinds or the opaque forward form.
func (b *Builder) TypeResolverFor(mod *Module) parser.TypeResolver {
	return func(name string) bool {
		if sym := mod.Scope.LookupLocal(name); sym != nil {
			return isTypeSymbol(sym.Kind)
		}
		for _, imp := range mod.Imported {
			if sym := imp.Scope.LookupLocal(name); sym != nil {
				return isTypeSymbol(sym.Kind)
			}
		}
		return false
	}
}
