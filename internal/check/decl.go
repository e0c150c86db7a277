package check

import (
	"math"

	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
	"github.com/hassan/tcompiler/internal/types"
)

// VisitVarDecl checks a local variable declaration: the declared type must
// be complete, and each initializer (if present) must be implicitly
// convertible to it. Unlike stab's module-scope defineVars, this runs
// against the live block scope and actually evaluates initializer
// expressions.
func (c *Checker) VisitVarDecl(d *ast.VarDecl) error {
	typ := c.resolveTypeExpr(d.Type)
	if !types.IsComplete(typ) {
		c.bag.Errorf(d.Pos(), "variable of incomplete type '%s'", typ)
	}
	for i, name := range d.Names {
		if i < len(d.Inits) && d.Inits[i] != nil {
			initType := c.exprType(d.Inits[i])
			if tuple, ok := initType.(*types.TupleType); ok {
				if arr, ok2 := typ.(*types.ArrayType); ok2 {
					if !types.TupleInitializesArray(tuple, arr) {
						c.bag.Errorf(d.Inits[i].Pos(), "aggregate initializer does not match array type '%s'", typ)
					}
				} else if !c.tupleInitializesStruct(tuple, typ) {
					c.bag.Errorf(d.Inits[i].Pos(), "aggregate initializer does not match type '%s'", typ)
				}
			} else if !types.ImplicitlyConvertible(initType, typ) {
				c.bag.Errorf(d.Inits[i].Pos(), "cannot initialize '%s' with a value of type '%s'", typ, initType)
			}
		}
		sym := &symtab.Symbol{Name: name, Kind: symtab.SymbolVariable, Type: typ, Pos: d.Pos()}
		if err := c.scope.Define(sym); err != nil {
			c.bag.Errorf(d.Pos(), "%s", err)
		}
	}
	return nil
}

// tupleInitializesStruct checks a bracketed aggregate initializer against a
// struct type positionally, in field declaration order, per §4.6's
// aggregate-initializer rule.
func (c *Checker) tupleInitializesStruct(t *types.TupleType, target types.Type) bool {
	sym := c.compoundSymbol(target)
	if sym == nil || sym.Kind != symtab.SymbolStruct {
		return false
	}
	if len(t.Elements) != len(sym.FieldOrder) {
		return false
	}
	for i, fname := range sym.FieldOrder {
		field := sym.Fields[fname]
		if field == nil || !types.ImplicitlyConvertible(t.Elements[i], field.Type) {
			return false
		}
	}
	return true
}

// VisitFuncDecl exists only to satisfy ast.Visitor; the grammar never
// nests a function definition inside a block, so encountering one here
// means the late parser produced a malformed body.
func (c *Checker) VisitFuncDecl(d *ast.FuncDecl) error {
	c.bag.Errorf(d.Pos(), "nested function definitions are not permitted")
	return nil
}

// VisitOpaqueDecl defines a local forward type declaration. Local nested
// types are a rarely-used corner of the grammar (most opaque/struct/union/
// enum/typedef forms appear at module scope, where stab already handles
// the full two-subpass forward-reference dance); here a single sequential
// pass suffices since a local type is only visible to the statements after
// its declaration within the same block.
func (c *Checker) VisitOpaqueDecl(d *ast.OpaqueDecl) error {
	if existing := c.scope.LookupLocal(d.Name); existing != nil {
		c.bag.Errorf(d.Pos(), "'%s' redeclared (already declared at %s)", d.Name, existing.Pos)
		return nil
	}
	sym := &symtab.Symbol{Name: d.Name, Kind: symtab.SymbolOpaque, Pos: d.Pos()}
	sym.Type = &types.ReferenceType{ScopedName: d.Name, Kind_: types.AggOpaque, Entry: sym}
	if err := c.scope.Define(sym); err != nil {
		c.bag.Errorf(d.Pos(), "%s", err)
	}
	return nil
}

func (c *Checker) VisitStructDecl(d *ast.StructDecl) error {
	c.defineLocalAggregate(d.Name, symtab.SymbolStruct, d.Fields, d.Pos())
	return nil
}

func (c *Checker) VisitUnionDecl(d *ast.UnionDecl) error {
	c.defineLocalAggregate(d.Name, symtab.SymbolUnion, d.Fields, d.Pos())
	return nil
}

func (c *Checker) defineLocalAggregate(name string, kind symtab.SymbolKind, fields []ast.FieldDecl, pos0 lexer.Position) {
	sym := c.scope.LookupLocal(name)
	if sym == nil {
		sym = &symtab.Symbol{Name: name, Kind: kind, Pos: pos0}
		sym.Type = &types.ReferenceType{ScopedName: name, Kind_: symbolToAggKind[kind], Entry: sym}
		if err := c.scope.Define(sym); err != nil {
			c.bag.Errorf(pos0, "%s", err)
			return
		}
	} else if sym.Kind != symtab.SymbolOpaque {
		c.bag.Errorf(pos0, "'%s' redeclared (already declared at %s)", name, sym.Pos)
		return
	} else {
		sym.Kind = kind
		sym.Type = &types.ReferenceType{ScopedName: name, Kind_: symbolToAggKind[kind], Entry: sym}
	}

	sym.Fields = map[string]*symtab.Symbol{}
	sym.FieldOrder = nil
	for _, f := range fields {
		ftype := c.resolveTypeExpr(f.Type)
		if _, dup := sym.Fields[f.Name]; dup {
			c.bag.Errorf(pos0, "field '%s' already declared in '%s'", f.Name, name)
			continue
		}
		sym.Fields[f.Name] = &symtab.Symbol{Name: f.Name, Kind: symtab.SymbolField, Type: ftype, Pos: pos0}
		sym.FieldOrder = append(sym.FieldOrder, f.Name)
	}
}

func (c *Checker) VisitEnumDecl(d *ast.EnumDecl) error {
	sym := c.scope.LookupLocal(d.Name)
	if sym == nil {
		sym = &symtab.Symbol{Name: d.Name, Kind: symtab.SymbolEnum, Pos: d.Pos()}
		sym.Type = &types.ReferenceType{ScopedName: d.Name, Kind_: types.AggEnum, Entry: sym}
		if err := c.scope.Define(sym); err != nil {
			c.bag.Errorf(d.Pos(), "%s", err)
			return nil
		}
	} else if sym.Kind != symtab.SymbolOpaque {
		c.bag.Errorf(d.Pos(), "'%s' redeclared (already declared at %s)", d.Name, sym.Pos)
		return nil
	} else {
		sym.Kind = symtab.SymbolEnum
		sym.Type = &types.ReferenceType{ScopedName: d.Name, Kind_: types.AggEnum, Entry: sym}
	}

	// Local enum constants resolve sequentially (previous + 1, or an
	// explicit integer literal): the full dependency-graph solver stab
	// runs for module-scope enums is unneeded here since a local enum's
	// constants may only reference an earlier constant of the same enum
	// by literal value, never a forward or cross-module reference. The
	// successor rule still preserves signedness, flipping to unsigned 0
	// when the previous constant was signed -1, matching stab's enums.go.
	next := int64(0)
	signed := false
	overflowed := false
	anySigned := false
	for _, ec := range d.Constants {
		val := next
		valSigned := signed
		if ec.Value != nil {
			if n, ok := c.evalConstIntExpr(ec.Value); ok {
				val, valSigned = n, false
				overflowed = false
			} else {
				c.bag.Errorf(ec.Value.Pos(), "enum constant '%s' must have a constant integer value", ec.Name)
			}
		} else if overflowed {
			c.bag.Errorf(d.Pos(), "enum constant '%s' overflows past the maximum representable value", ec.Name)
		}
		if valSigned {
			anySigned = true
		}
		constSym := &symtab.Symbol{
			Name: ec.Name, Kind: symtab.SymbolEnumConst, Type: sym.Type, Pos: d.Pos(),
			Constant: true, Value: val, Signed: valSigned,
		}
		if err := c.scope.Define(constSym); err != nil {
			c.bag.Errorf(d.Pos(), "%s", err)
		}
		if valSigned && val == -1 {
			next, signed, overflowed = 0, false, false
		} else if val == math.MaxInt64 {
			next, signed, overflowed = val, valSigned, true
		} else {
			next, signed, overflowed = val+1, valSigned, false
		}
	}
	sym.Signed = anySigned
	return nil
}

func (c *Checker) VisitTypedefDecl(d *ast.TypedefDecl) error {
	underlying := c.resolveTypeExpr(d.Type)
	if ref, ok := underlying.(*types.ReferenceType); ok && ref.ScopedName == d.Name {
		c.bag.Errorf(d.Pos(), "typedef '%s' aliases itself", d.Name)
		return nil
	}
	if existing := c.scope.LookupLocal(d.Name); existing != nil {
		c.bag.Errorf(d.Pos(), "'%s' redeclared (already declared at %s)", d.Name, existing.Pos)
		return nil
	}
	sym := &symtab.Symbol{Name: d.Name, Kind: symtab.SymbolTypedef, Type: underlying, Pos: d.Pos()}
	if err := c.scope.Define(sym); err != nil {
		c.bag.Errorf(d.Pos(), "%s", err)
	}
	return nil
}
