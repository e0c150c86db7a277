package stab

// stageECheckCollisions is buildStab's scoped-identifier collision check:
// if a module imports two other modules that both export a top-level
// name the importing module does not itself redeclare, a bare reference
// to that name would be ambiguous — reported once for each further
// module exporting the name, rather than waiting for the first use site
// to trip over it.
func (b *Builder) stageECheckCollisions() {
	for _, mod := range b.Modules {
		if len(mod.Imported) < 2 || mod.File.ModuleDecl == nil {
			continue
		}
		owner := map[string]*Module{}
		for _, imp := range mod.Imported {
			for name := range imp.Scope.Symbols {
				if mod.Scope.LookupLocal(name) != nil {
					continue // shadowed by the importing module's own declaration
				}
				if prior, seen := owner[name]; seen {
					if prior == imp {
						continue
					}
					b.bag.Errorf(mod.File.ModuleDecl.Pos(), "'%s' is ambiguous: imported from both '%s' and '%s'", name, prior.Name, imp.Name)
					continue
				}
				owner[name] = imp
			}
		}
	}
}
