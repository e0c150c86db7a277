// Package check implements the type checker: the pass 3 component that
// runs once a function body has been late-parsed, resolving every
// identifier against the live symbol table, tagging each expression with
// its result type, and validating every statement and operator contract
// against §4.6's rules.
//
// DESIGN CHOICE: Checker implements ast.Visitor directly, the same
// exhaustiveness-enforcing dispatch internal/parser/ast's other
// consumers use, rather than a type switch. Diagnostics accumulate into
// a diag.Bag instead of being returned as Go errors — every Visit
// method's error return is always nil, matching the "accumulate and
// continue" error model of internal/stab and the reference compiler.
package check

import (
	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/stab"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// VoidReturn is the policy-controlled warning class for a bare `return;`
// inside a function whose return type is not void.
const VoidReturn diag.Class = "void-return"

// ConstReturn is the policy-controlled warning class for a function
// declared to return a const-qualified type, mirroring the reference
// compiler's options.constReturn dial.
const ConstReturn diag.Class = "const-return"

// Checker type-checks one function body at a time against a shared
// Resolver (the whole-program module map) and a diag.Bag.
type Checker struct {
	bag   *diag.Bag
	res   *Resolver
	mod   *stab.Module
	scope *symtab.Scope

	fnReturnType types.Type
}

// Resolver is the whole-program view check needs beyond its own module: a
// scoped identifier `A::B::C` names a member of a module reached only
// through the full module map stab.Builder.Build produces.
type Resolver struct {
	Modules map[string]*stab.Module
}

// NewChecker creates a Checker for one module, reporting into bag.
func NewChecker(bag *diag.Bag, res *Resolver, mod *stab.Module) *Checker {
	return &Checker{bag: bag, res: res, mod: mod, scope: mod.Scope}
}

// CheckFunction type-checks one function definition: it pushes a function
// scope holding the parameter symbols, then walks the (already late-
// parsed) body as a block, with fnSym's signature supplying the expected
// return type for every ReturnStmt underneath.
func (c *Checker) CheckFunction(d *ast.FuncDecl, fnSym *symtab.Symbol) {
	if d.Body == nil {
		return // an unparsed body means pass 3 never reached this function
	}
	sig, ok := fnSym.Type.(*types.FuncPtrType)
	if !ok {
		return
	}

	fnScope := symtab.NewScope(symtab.ScopeFunction, c.scope)
	fnScope.Function = fnSym
	for i, p := range d.Params {
		if i >= len(sig.ParamTypes) {
			break
		}
		sym := &symtab.Symbol{Name: p.Name, Kind: symtab.SymbolParameter, Type: sig.ParamTypes[i], Pos: p.Type.Pos()}
		if err := fnScope.Define(sym); err != nil {
			c.bag.Errorf(p.Type.Pos(), "%s", err)
		}
	}

	saved := c.scope
	savedRet := c.fnReturnType
	c.scope = fnScope
	c.fnReturnType = sig.ReturnType
	d.Body.Accept(c)
	c.scope = saved
	c.fnReturnType = savedRet

	if q, ok := sig.ReturnType.(*types.QualifiedType); ok && q.Const {
		c.bag.Warnf(d.Pos(), ConstReturn, "function '%s' returns a const-qualified type", d.Name)
	}
}

// lookup resolves a bare name against the current scope chain (function/
// block scopes up to the module's global scope), falling back to each
// imported module's top-level scope — the same two-tier chain
// stab.Builder.resolveNamedType walks for type expressions, generalized
// to any symbol kind.
func (c *Checker) lookup(name string) *symtab.Symbol {
	if sym := c.scope.Lookup(name); sym != nil {
		return sym
	}
	for _, imp := range c.mod.Imported {
		if sym := imp.Scope.LookupLocal(name); sym != nil {
			return sym
		}
	}
	return nil
}

// pushScope opens a new scope of kind nested under the current one, runs
// fn with it current, then restores the prior scope.
func (c *Checker) pushScope(kind symtab.ScopeKind, fn func(*symtab.Scope)) {
	child := symtab.NewScope(kind, c.scope)
	saved := c.scope
	c.scope = child
	fn(child)
	c.scope = saved
}

// exprType evaluates e's type by visiting it, folding a non-Type or
// failed result to types.Invalid so callers never see a nil Type.
func (c *Checker) exprType(e ast.Expr) types.Type {
	v, _ := e.Accept(c)
	t, ok := v.(types.Type)
	if !ok || t == nil {
		return types.Invalid
	}
	return t
}
