package stab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
)

func pos(line int) lexer.Position {
	return lexer.Position{Filename: "test.t", Line: line, Column: 1}
}

func moduleFile(name string, decls ...ast.Decl) *ast.File {
	return &ast.File{
		Filename:   name + ".t",
		ModuleDecl: &ast.ModuleDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, ScopedName: []string{name}},
		Decls:      decls,
	}
}

func kw(k lexer.TokenKind) ast.TypeExpr {
	return &ast.KeywordTypeExpr{Keyword: k}
}

func named(parts ...string) ast.TypeExpr {
	return &ast.NamedTypeExpr{ScopedName: parts}
}

func TestBuild_SimpleModule(t *testing.T) {
	f := moduleFile("math",
		&ast.FuncDecl{Name: "add", ReturnType: kw(lexer.Int), Params: []ast.Param{
			{Name: "a", Type: kw(lexer.Int)}, {Name: "b", Type: kw(lexer.Int)},
		}},
		&ast.VarDecl{BaseNode: ast.BaseNode{StartPos: pos(2)}, Type: kw(lexer.Int), Names: []string{"counter"}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.False(t, bag.HasErrors(), bag.String())
	mod := mods["math"]
	require.NotNil(t, mod)

	fn := mod.Scope.LookupLocal("add")
	require.NotNil(t, fn)
	assert.Equal(t, "int (*)(int, int)", fn.Type.String())

	v := mod.Scope.LookupLocal("counter")
	require.NotNil(t, v)
	assert.True(t, v.CanAssign())
}

func TestBuild_DuplicateModuleName(t *testing.T) {
	a := moduleFile("shared")
	b2 := moduleFile("shared")

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	b.Build([]*ast.File{a, b2})

	assert.True(t, bag.HasErrors())
}

func TestBuild_ImportLinksModules(t *testing.T) {
	lib := moduleFile("lib", &ast.FuncDecl{Name: "helper", ReturnType: kw(lexer.Void)})
	main := &ast.File{
		Filename:   "main.t",
		ModuleDecl: &ast.ModuleDecl{ScopedName: []string{"main"}},
		Imports:    []*ast.ImportDecl{{ScopedName: []string{"lib"}}},
	}

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{lib, main})

	require.False(t, bag.HasErrors(), bag.String())
	require.Len(t, mods["main"].Imported, 1)
	assert.Equal(t, "lib", mods["main"].Imported[0].Name)
}

func TestBuild_UnknownImportErrors(t *testing.T) {
	main := &ast.File{
		Filename:   "main.t",
		ModuleDecl: &ast.ModuleDecl{ScopedName: []string{"main"}},
		Imports:    []*ast.ImportDecl{{ScopedName: []string{"nope"}}},
	}

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	b.Build([]*ast.File{main})

	assert.True(t, bag.HasErrors())
}

func TestBuild_DuplicateImportWarnsByDefault(t *testing.T) {
	lib := moduleFile("lib")
	main := &ast.File{
		Filename:   "main.t",
		ModuleDecl: &ast.ModuleDecl{ScopedName: []string{"main"}},
		Imports: []*ast.ImportDecl{
			{ScopedName: []string{"lib"}},
			{ScopedName: []string{"lib"}},
		},
	}

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	b.Build([]*ast.File{lib, main})

	require.False(t, bag.HasErrors())
	diags := bag.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Warning, diags[0].Severity)
}

func TestBuild_DuplicateImportEscalatesUnderErrorPolicy(t *testing.T) {
	lib := moduleFile("lib")
	main := &ast.File{
		Filename:   "main.t",
		ModuleDecl: &ast.ModuleDecl{ScopedName: []string{"main"}},
		Imports: []*ast.ImportDecl{
			{ScopedName: []string{"lib"}},
			{ScopedName: []string{"lib"}},
		},
	}

	bag := diag.NewBag(diag.Policy{Classes: map[diag.Class]diag.Action{DuplicateImport: diag.ActionError}})
	b := NewBuilder(bag)
	b.Build([]*ast.File{lib, main})

	assert.True(t, bag.HasErrors())
}

func TestBuild_OpaqueCompletedByConcreteStruct(t *testing.T) {
	f := moduleFile("geo",
		&ast.OpaqueDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "Point"},
		&ast.StructDecl{BaseNode: ast.BaseNode{StartPos: pos(2)}, Name: "Point", Fields: []ast.FieldDecl{
			{Name: "x", Type: kw(lexer.Int)},
			{Name: "y", Type: kw(lexer.Int)},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.False(t, bag.HasErrors(), bag.String())
	sym := mods["geo"].Scope.LookupLocal("Point")
	require.NotNil(t, sym)
	assert.NotEqual(t, 0, len(sym.Fields))
	assert.NotNil(t, sym.LookupField("x"))
	assert.NotNil(t, sym.LookupField("y"))
}

func TestBuild_SelfContainingStructErrors(t *testing.T) {
	f := moduleFile("bad",
		&ast.StructDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "Node", Fields: []ast.FieldDecl{
			{Name: "self", Type: named("Node")},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	b.Build([]*ast.File{f})

	assert.True(t, bag.HasErrors())
}

func TestBuild_PointerToSelfIsFine(t *testing.T) {
	f := moduleFile("list",
		&ast.StructDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "Node", Fields: []ast.FieldDecl{
			{Name: "next", Type: &ast.PointerTypeExpr{Base: named("Node")}},
			{Name: "value", Type: kw(lexer.Int)},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.False(t, bag.HasErrors(), bag.String())
	sym := mods["list"].Scope.LookupLocal("Node")
	require.NotNil(t, sym)
	require.NotNil(t, sym.LookupField("next"))
}

func TestBuild_EnumAutoIncrement(t *testing.T) {
	f := moduleFile("color",
		&ast.EnumDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "Color", Constants: []ast.EnumConstant{
			{Name: "Red"},
			{Name: "Green"},
			{Name: "Blue"},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.False(t, bag.HasErrors(), bag.String())
	scope := mods["color"].Scope
	assert.Equal(t, int64(0), scope.LookupLocal("Red").Value)
	assert.Equal(t, int64(1), scope.LookupLocal("Green").Value)
	assert.Equal(t, int64(2), scope.LookupLocal("Blue").Value)
}

func TestBuild_EnumExplicitValueAndResume(t *testing.T) {
	f := moduleFile("flags",
		&ast.EnumDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "Flag", Constants: []ast.EnumConstant{
			{Name: "A"},
			{Name: "B", Value: &ast.LiteralExpr{Kind: lexer.LitIntD, Value: "10"}},
			{Name: "C"},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.False(t, bag.HasErrors(), bag.String())
	scope := mods["flags"].Scope
	assert.Equal(t, int64(0), scope.LookupLocal("A").Value)
	assert.Equal(t, int64(10), scope.LookupLocal("B").Value)
	assert.Equal(t, int64(11), scope.LookupLocal("C").Value)
}

func TestBuild_EnumSelfReferenceCycleErrors(t *testing.T) {
	f := moduleFile("cyclic",
		&ast.EnumDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "E", Constants: []ast.EnumConstant{
			{Name: "A", Value: &ast.IdentifierExpr{Name: "B"}},
			{Name: "B", Value: &ast.IdentifierExpr{Name: "A"}},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	b.Build([]*ast.File{f})

	assert.True(t, bag.HasErrors())
}

func TestBuild_EnumSignNormalisation(t *testing.T) {
	f := moduleFile("e",
		&ast.EnumDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "E", Constants: []ast.EnumConstant{
			{Name: "A"},
			{Name: "B", Value: &ast.UnaryExpr{
				Operator: lexer.Token{Kind: lexer.Minus},
				Operand:  &ast.LiteralExpr{Kind: lexer.LitIntD, Value: "1"},
			}},
			{Name: "C"},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.False(t, bag.HasErrors(), bag.String())
	scope := mods["e"].Scope
	a, bb, c := scope.LookupLocal("A"), scope.LookupLocal("B"), scope.LookupLocal("C")
	assert.Equal(t, int64(0), a.Value)
	assert.Equal(t, int64(-1), bb.Value)
	assert.Equal(t, int64(0), c.Value)
	assert.True(t, a.Signed, "A widened to signed once B forces the enum signed")
	assert.True(t, bb.Signed)
	assert.True(t, c.Signed, "C (the -1 successor) also widened to signed")
	assert.True(t, scope.LookupLocal("E").Signed)
}

func TestBuild_EnumImplicitSuccessorOverflowRejected(t *testing.T) {
	f := moduleFile("f",
		&ast.EnumDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "F", Constants: []ast.EnumConstant{
			{Name: "A"},
			{Name: "B", Value: &ast.LiteralExpr{Kind: lexer.LitIntD, Value: "9223372036854775807"}},
			{Name: "C"},
		}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	require.True(t, bag.HasErrors(), "C's implicit successor must overflow past the maximum representable value")
	scope := mods["f"].Scope
	assert.Equal(t, int64(9223372036854775807), scope.LookupLocal("B").Value)
	assert.False(t, scope.LookupLocal("B").Signed)
}

func TestBuild_AmbiguousImportCollision(t *testing.T) {
	a := moduleFile("a", &ast.FuncDecl{Name: "frob", ReturnType: kw(lexer.Void)})
	b2 := moduleFile("b", &ast.FuncDecl{Name: "frob", ReturnType: kw(lexer.Void)})
	main := &ast.File{
		Filename:   "main.t",
		ModuleDecl: &ast.ModuleDecl{ScopedName: []string{"main"}},
		Imports: []*ast.ImportDecl{
			{ScopedName: []string{"a"}},
			{ScopedName: []string{"b"}},
		},
	}

	bag := diag.NewBag(diag.Policy{})
	builder := NewBuilder(bag)
	builder.Build([]*ast.File{a, b2, main})

	assert.True(t, bag.HasErrors())
}

func TestTypeResolverFor(t *testing.T) {
	f := moduleFile("shapes",
		&ast.StructDecl{BaseNode: ast.BaseNode{StartPos: pos(1)}, Name: "Shape"},
		&ast.VarDecl{BaseNode: ast.BaseNode{StartPos: pos(2)}, Type: kw(lexer.Int), Names: []string{"count"}},
	)

	bag := diag.NewBag(diag.Policy{})
	b := NewBuilder(bag)
	mods := b.Build([]*ast.File{f})

	resolve := b.TypeResolverFor(mods["shapes"])
	assert.True(t, resolve("Shape"))
	assert.False(t, resolve("count"))
	assert.False(t, resolve("nonexistent"))
}
