// Package stab builds the whole-program symbol table between the skim
// and late parsing passes: resolving imports, creating one global-scope
// entry per top-level declaration, solving enum-constant values, filling
// in aggregate field/constant types, and checking for name collisions —
// the five stages original_source/buildStab.c and
// typecheck/buildSymbolTable.c run over the file list as a unit, since a
// function body cannot be late-parsed until every module's exported
// names are known.
package stab

import (
	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
)

// Module is one compiled translation unit's symbol-table view: its
// module-scoped name, the file(s) it came from, and the global scope its
// top-level declarations populate. A module name is normally declared by
// two files — a .td declaration file and the matching .tc code file, the
// code file's "implicit import" (spec glossary) — so File holds whichever
// of the pair was seen first and Extra holds the other; both contribute
// declarations and imports to the same shared Scope, which is what makes
// a code file's implicit import of its own declaration file a no-op here
// rather than a separate resolution step.
type Module struct {
	Name  string
	File  *ast.File
	Extra []*ast.File
	Scope *symtab.Scope

	// Imported is the set of modules this module's `import` lines bring
	// into its lookup chain, in source order.
	Imported []*Module
}

// Files returns every AST file contributing to this module, File first.
func (m *Module) Files() []*ast.File {
	return append([]*ast.File{m.File}, m.Extra...)
}

// AllDecls returns every top-level declaration across the module's files
// (declaration file and code file alike), in file order.
func (m *Module) AllDecls() []ast.Decl {
	var out []ast.Decl
	for _, f := range m.Files() {
		out = append(out, f.Decls...)
	}
	return out
}

// AllImports returns every import line across the module's files.
func (m *Module) AllImports() []*ast.ImportDecl {
	var out []*ast.ImportDecl
	for _, f := range m.Files() {
		out = append(out, f.Imports...)
	}
	return out
}

// Builder runs the five construction stages over a whole file list,
// accumulating diagnostics into bag rather than stopping at the first
// error — matching the reference compiler's "keep going, report
// everything" error model.
type Builder struct {
	bag     *diag.Bag
	Modules map[string]*Module
}

// NewBuilder creates a Builder reporting into bag.
func NewBuilder(bag *diag.Bag) *Builder {
	return &Builder{bag: bag, Modules: map[string]*Module{}}
}

// Build runs all five stages over files in order, returning the modules
// keyed by their scoped name. Each stage runs over every module before
// the next stage begins. Stage C's enum solver resolves a name in a
// constant's initialiser only among the constants of the same enum; it
// does not look into other enums or imported modules.
func (b *Builder) Build(files []*ast.File) map[string]*Module {
	b.stageAResolveImports(files)
	for _, mod := range b.Modules {
		b.stageBBuildTopLevel(mod)
	}
	for _, mod := range b.Modules {
		b.stageCResolveEnumConstants(mod)
	}
	for _, mod := range b.Modules {
		b.stageDCompleteAggregates(mod)
	}
	b.stageECheckCollisions()
	return b.Modules
}
