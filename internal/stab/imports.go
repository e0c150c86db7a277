package stab

import (
	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
)

// DuplicateImport is the warning class the policy dial controls for a
// repeated `import` line within one file, matching
// original_source/buildStab.c's options.duplicateImport (-Wduplicate-
// import / -Werror=duplicate-import).
const DuplicateImport diag.Class = "duplicate-import"

// stageAResolveImports is buildStab's resolveImports: detect two files
// declaring the same module, then link each file's import lines to the
// module they name, warning (per policy) on a repeated import and
// erroring on one that names an unknown module.
func (b *Builder) stageAResolveImports(files []*ast.File) {
	for _, f := range files {
		if f.ModuleDecl == nil {
			continue // pass 1 already reported this file's missing module line
		}
		name := ast.StringifyID(f.ModuleDecl.ScopedName)
		existing, ok := b.Modules[name]
		switch {
		case !ok:
			b.Modules[name] = &Module{Name: name, File: f, Scope: symtab.NewScope(symtab.ScopeGlobal, nil)}
		case existing.File.IsCode == f.IsCode:
			// two code files, or two declaration files, naming the same
			// module: a genuine redeclaration, not a code/declaration pair.
			b.bag.Errorf(f.ModuleDecl.Pos(), "module '%s' declared in multiple files (already declared in %s)", name, existing.File.Filename)
		default:
			// the code file and its implicit-import declaration file: share
			// one module, one scope.
			existing.Extra = append(existing.Extra, f)
		}
	}

	for _, mod := range b.Modules {
		seen := map[string]*ast.ImportDecl{}
		for _, imp := range mod.AllImports() {
			name := ast.StringifyID(imp.ScopedName)
			if prior, dup := seen[name]; dup {
				b.bag.Warnf(imp.Pos(), DuplicateImport, "'%s' imported multiple times (first imported at %s)", name, prior.Pos())
				continue
			}
			seen[name] = imp

			target, ok := b.Modules[name]
			if !ok {
				b.bag.Errorf(imp.Pos(), "no such module '%s'", name)
				continue
			}
			mod.Imported = append(mod.Imported, target)
		}
	}
}
