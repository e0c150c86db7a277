package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/stab"
	"github.com/hassan/tcompiler/internal/symtab"
)

func pos(line int) lexer.Position {
	return lexer.Position{Filename: "test.t", Line: line, Column: 1}
}

func kw(k lexer.TokenKind) ast.TypeExpr { return &ast.KeywordTypeExpr{Keyword: k} }

func ident(name string) ast.Expr { return &ast.IdentifierExpr{Name: name} }

func lit(kind lexer.TokenKind, value string) ast.Expr {
	return &ast.LiteralExpr{Kind: kind, Value: value}
}

func tok(k lexer.TokenKind) lexer.Token { return lexer.Token{Kind: k} }

// build runs stab over a single function-holding module and returns a
// Checker/FuncDecl/Symbol triple ready for CheckFunction, mirroring the
// shape internal/compile.Pipeline wires in production.
func build(t *testing.T, bag *diag.Bag, fn *ast.FuncDecl, extraDecls ...ast.Decl) (*Checker, *ast.FuncDecl) {
	t.Helper()
	f := &ast.File{
		Filename:   "test.t",
		ModuleDecl: &ast.ModuleDecl{ScopedName: []string{"m"}},
		Decls:      append([]ast.Decl{fn}, extraDecls...),
	}
	b := stab.NewBuilder(bag)
	mods := b.Build([]*ast.File{f})
	require.False(t, bag.HasErrors(), bag.String())

	mod := mods["m"]
	require.NotNil(t, mod)

	c := NewChecker(bag, &Resolver{Modules: mods}, mod)
	return c, fn
}

func block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{Stmts: stmts}
}

func TestCheckFunction_ValidReturn(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "addOne",
		ReturnType: kw(lexer.Int),
		Params:     []ast.Param{{Name: "x", Type: kw(lexer.Int)}},
		Body: block(
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Left: ident("x"), Operator: tok(lexer.Plus), Right: lit(lexer.LitIntD, "1")}},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("addOne")
	require.NotNil(t, sym)

	c.CheckFunction(fd, sym)
	assert.False(t, bag.HasErrors(), bag.String())
}

func TestCheckFunction_ReturnTypeMismatch(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "bad",
		ReturnType: kw(lexer.Int),
		Body: block(
			&ast.ReturnStmt{Value: lit(lexer.LitString, "oops")},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("bad")
	c.CheckFunction(fd, sym)
	assert.True(t, bag.HasErrors())
}

func TestCheckFunction_UndeclaredIdentifier(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "useUndeclared",
		ReturnType: kw(lexer.Void),
		Body: block(
			&ast.ExprStmt{Expression: ident("nope")},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("useUndeclared")
	c.CheckFunction(fd, sym)
	assert.True(t, bag.HasErrors())
}

func TestCheckFunction_AssignToConstIsError(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "assignConst",
		ReturnType: kw(lexer.Void),
		Params:     []ast.Param{{Name: "p", Type: &ast.QualifiedTypeExpr{Base: kw(lexer.Int), Const: true}}},
		Body: block(
			&ast.ExprStmt{Expression: &ast.AssignmentExpr{Target: ident("p"), Operator: tok(lexer.Assign), Value: lit(lexer.LitIntD, "1")}},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("assignConst")
	c.CheckFunction(fd, sym)
	assert.True(t, bag.HasErrors())
}

func TestCheckFunction_BreakOutsideLoopIsError(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "badBreak",
		ReturnType: kw(lexer.Void),
		Body:       block(&ast.BreakStmt{}),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("badBreak")
	c.CheckFunction(fd, sym)
	assert.True(t, bag.HasErrors())
}

func TestCheckFunction_BreakInsideWhileIsOk(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "loopy",
		ReturnType: kw(lexer.Void),
		Body: block(
			&ast.WhileStmt{Cond: lit(lexer.True, ""), Body: block(&ast.BreakStmt{})},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("loopy")
	c.CheckFunction(fd, sym)
	assert.False(t, bag.HasErrors(), bag.String())
}

func TestCheckFunction_AddressOfMarksEscape(t *testing.T) {
	operand := &ast.IdentifierExpr{Name: "local"}
	fn := &ast.FuncDecl{
		Name:       "escaper",
		ReturnType: kw(lexer.Void),
		Body: block(
			&ast.VarDecl{Type: kw(lexer.Int), Names: []string{"local"}},
			&ast.ExprStmt{Expression: &ast.UnaryExpr{Operator: tok(lexer.Amp), Operand: operand}},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("escaper")
	c.CheckFunction(fd, sym)
	require.False(t, bag.HasErrors(), bag.String())
	local, ok := operand.Entry.(*symtab.Symbol)
	require.True(t, ok)
	assert.True(t, local.Escapes)
}

func TestCheckFunction_SwitchDuplicateCase(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "switcher",
		ReturnType: kw(lexer.Void),
		Params:     []ast.Param{{Name: "x", Type: kw(lexer.Int)}},
		Body: block(
			&ast.SwitchStmt{
				Cond: ident("x"),
				Cases: []*ast.CaseClause{
					{Value: lit(lexer.LitIntD, "1")},
					{Value: lit(lexer.LitIntD, "1")},
				},
			},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("switcher")
	c.CheckFunction(fd, sym)
	assert.True(t, bag.HasErrors())
}

func TestVisitBinaryExpr_PointerArithmetic(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "ptrMath",
		ReturnType: kw(lexer.Void),
		Params: []ast.Param{
			{Name: "p", Type: &ast.PointerTypeExpr{Base: kw(lexer.Int)}},
			{Name: "n", Type: kw(lexer.Int)},
		},
		Body: block(
			&ast.ExprStmt{Expression: &ast.BinaryExpr{Left: ident("p"), Operator: tok(lexer.Plus), Right: ident("n")}},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("ptrMath")
	c.CheckFunction(fd, sym)
	assert.False(t, bag.HasErrors(), bag.String())
}

func TestVisitBinaryExpr_InvalidOperandsIsError(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "badAdd",
		ReturnType: kw(lexer.Void),
		Params:     []ast.Param{{Name: "p", Type: &ast.PointerTypeExpr{Base: kw(lexer.Int)}}},
		Body: block(
			&ast.ExprStmt{Expression: &ast.BinaryExpr{Left: ident("p"), Operator: tok(lexer.Plus), Right: ident("p")}},
		),
	}

	bag := diag.NewBag(diag.Policy{})
	c, fd := build(t, bag, fn)
	sym := c.mod.Scope.LookupLocal("badAdd")
	c.CheckFunction(fd, sym)
	assert.True(t, bag.HasErrors())
}
