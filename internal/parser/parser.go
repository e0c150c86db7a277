// Package parser implements the two-phase recursive-descent parser: pass 1
// (this file) skims a file into a top-level AST with function bodies
// captured as raw, unparsed token vectors; pass 3, in functionbody.go,
// re-enters those vectors once a whole-program symbol table exists. Both
// passes share the same statement/expression/type grammar, since a
// function body late-parsed against live symbols and a top-level
// initializer expression skimmed without one obey the same precedence
// ladder — they differ only in how far identifier resolution can go.
package parser

import (
	"fmt"

	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
)

// TokenSource is anything the parser can pull a token stream from: the
// real lexer during pass 1, or a replay of a captured token vector during
// pass 3. *lexer.Lexer already satisfies this.
type TokenSource interface {
	Next() lexer.Token
}

// TypeResolver reports whether name is known to be a type-kind symbol
// (struct/union/enum/typedef/opaque) in the parser's current scope, the
// context needed to tell the type operand of `sizeof(x)` from a value, and
// a declaration from an expression statement. A parenthesised expression
// is always parsed as an expression. Pass 1 runs without one (top-
// level initializers essentially never need it); pass 3 supplies one
// backed by the live symbol table.
type TypeResolver func(name string) bool

// Parser converts a token stream into an AST, one statement/declaration
// at a time, accumulating diagnostics into a shared Bag rather than
// stopping at the first error.
type Parser struct {
	tokens TokenSource
	bag    *diag.Bag

	current  lexer.Token
	previous lexer.Token

	panicMode bool

	resolveType TypeResolver
}

// New creates a parser reading from ts, reporting into bag.
func New(ts TokenSource, bag *diag.Bag) *Parser {
	p := &Parser{tokens: ts, bag: bag}
	p.advance()
	return p
}

// SetTypeResolver installs the live-symbol-table-backed resolver pass 3
// uses to disambiguate type-operand contexts; pass 1 leaves this nil.
func (p *Parser) SetTypeResolver(r TypeResolver) { p.resolveType = r }

// ParseFile parses one complete translation unit: a module line, zero or
// more imports, and a sequence of top-level declarations. filename is
// recorded into every token position error already carries (the lexer
// stamps it); isCode controls whether a function may carry a body.
func (p *Parser) ParseFile(filename string, isCode bool) *ast.File {
	file := &ast.File{Filename: filename, IsCode: isCode}

	if p.match(lexer.Module) {
		file.ModuleDecl = p.parseModuleDecl()
	} else {
		p.error("expected 'module' declaration at start of file")
		p.panicTopLevel()
	}

	for p.check(lexer.Import) {
		p.advance()
		file.Imports = append(file.Imports, p.parseImportDecl())
	}

	for !p.isAtEnd() {
		decl := p.parseTopLevelDecl(isCode)
		if decl != nil {
			file.Decls = append(file.Decls, decl)
		}
	}

	return file
}

func (p *Parser) parseModuleDecl() *ast.ModuleDecl {
	start := p.previous.Position
	names := p.parseScopedName()
	end := p.previous.Position
	p.consume(lexer.Semi, "expected ';' after module declaration")
	return &ast.ModuleDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: end}, ScopedName: names}
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.previous.Position
	names := p.parseScopedName()
	end := p.previous.Position
	p.consume(lexer.Semi, "expected ';' after import declaration")
	return &ast.ImportDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: end}, ScopedName: names}
}

// parseScopedName parses Ident ('::' Ident)*.
func (p *Parser) parseScopedName() []string {
	var parts []string
	if !p.check(lexer.Ident) {
		p.error("expected identifier")
		return parts
	}
	parts = append(parts, p.current.Value)
	p.advance()
	for p.match(lexer.Scope) {
		if !p.check(lexer.Ident) {
			p.error("expected identifier after '::'")
			break
		}
		parts = append(parts, p.current.Value)
		p.advance()
	}
	return parts
}

// parseTopLevelDecl parses one top-level form, recovering to the next
// top-level form on a parse error.
func (p *Parser) parseTopLevelDecl(isCode bool) (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			p.panicTopLevel()
			decl = nil
		}
	}()

	switch {
	case p.match(lexer.Opaque):
		return p.parseOpaqueDecl()
	case p.match(lexer.Struct):
		return p.parseStructDecl()
	case p.match(lexer.Union):
		return p.parseUnionDecl()
	case p.match(lexer.Enum):
		return p.parseEnumDecl()
	case p.match(lexer.Typedef):
		return p.parseTypedefDecl()
	default:
		typ := p.parseTypeExpr()
		if !p.check(lexer.Ident) {
			p.error("expected declaration name")
			panic("parser: invalid top-level declaration")
		}
		name := p.current
		p.advance()
		if p.check(lexer.LParen) {
			return p.parseFuncRest(typ, name, isCode)
		}
		return p.parseVarDeclRest(typ, name)
	}
}

func (p *Parser) parseOpaqueDecl() *ast.OpaqueDecl {
	start := p.previous.Position
	if !p.check(lexer.Ident) {
		p.error("expected opaque type name")
		panic("parser: invalid opaque declaration")
	}
	name := p.current.Value
	p.advance()
	p.consume(lexer.Semi, "expected ';' after opaque declaration")
	return &ast.OpaqueDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Name: name}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.previous.Position
	name := p.expectIdentValue("expected struct name")
	fields := p.parseFieldList()
	return &ast.StructDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Name: name, Fields: fields}
}

func (p *Parser) parseUnionDecl() *ast.UnionDecl {
	start := p.previous.Position
	name := p.expectIdentValue("expected union name")
	fields := p.parseFieldList()
	return &ast.UnionDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Name: name, Fields: fields}
}

// parseFieldList parses the brace-enclosed field/option list shared by
// struct and union declarations, recovering to the next field (at a
// statement-terminating ';') on error.
func (p *Parser) parseFieldList() []ast.FieldDecl {
	p.consume(lexer.LBrace, "expected '{' before aggregate body")

	var fields []ast.FieldDecl
	for !p.check(lexer.RBrace) && !p.isAtEnd() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.panicAggregateBody()
				}
			}()
			typ := p.parseTypeExpr()
			name := p.expectIdentValue("expected field name")
			fields = append(fields, ast.FieldDecl{Name: name, Type: typ})
			p.consume(lexer.Semi, "expected ';' after field declaration")
		}()
	}

	p.consume(lexer.RBrace, "expected '}' after aggregate body")
	return fields
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	start := p.previous.Position
	name := p.expectIdentValue("expected enum name")
	p.consume(lexer.LBrace, "expected '{' before enum body")

	var constants []ast.EnumConstant
	for !p.check(lexer.RBrace) && !p.isAtEnd() {
		constants = append(constants, p.parseEnumConstant())
		if !p.match(lexer.Comma) {
			break
		}
	}

	p.consume(lexer.RBrace, "expected '}' after enum body")
	return &ast.EnumDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Name: name, Constants: constants}
}

func (p *Parser) parseEnumConstant() (ec ast.EnumConstant) {
	defer func() {
		if r := recover(); r != nil {
			p.panicEnumBody()
		}
	}()
	name := p.expectIdentValue("expected enum constant name")
	ec.Name = name
	if p.match(lexer.Assign) {
		ec.Value = p.parseExpression()
	}
	return ec
}

func (p *Parser) parseTypedefDecl() *ast.TypedefDecl {
	start := p.previous.Position
	typ := p.parseTypeExpr()
	name := p.expectIdentValue("expected typedef name")
	p.consume(lexer.Semi, "expected ';' after typedef declaration")
	return &ast.TypedefDecl{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Name: name, Type: typ}
}

// parseFuncRest finishes a function declaration or definition once the
// return type and name have already been parsed and '(' is the lookahead.
func (p *Parser) parseFuncRest(retType ast.TypeExpr, name lexer.Token, isCode bool) *ast.FuncDecl {
	start := name.Position
	p.advance() // consume '('
	params := p.parseParams()
	p.consume(lexer.RParen, "expected ')' after parameters")

	fd := &ast.FuncDecl{Name: name.Value, Params: params, ReturnType: retType}

	switch {
	case p.match(lexer.Semi):
		fd.BaseNode = ast.BaseNode{StartPos: start, EndPos: p.previous.Position}
	case p.check(lexer.LBrace) && isCode:
		fd.Unparsed = p.captureBody()
		fd.BaseNode = ast.BaseNode{StartPos: start, EndPos: p.previous.Position}
	case p.check(lexer.LBrace):
		p.error("a declaration file's function may not have a body")
		p.captureBody()
		fd.BaseNode = ast.BaseNode{StartPos: start, EndPos: p.previous.Position}
	default:
		p.error("expected ';' or a function body")
		panic("parser: invalid function declaration")
	}
	return fd
}

// parseParams parses a parenthesized parameter list, '(' already consumed.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.check(lexer.RParen) {
		return params
	}
	for {
		typ := p.parseTypeExpr()
		name := p.expectIdentValue("expected parameter name")
		params = append(params, ast.Param{Name: name, Type: typ})
		if !p.match(lexer.Comma) {
			break
		}
	}
	return params
}

// captureBody records the token stream between a matched pair of braces
// without interpreting it, the deferred-body mechanism central to the
// two-phase design; the opening '{' must be the current token, the
// closing '}' is consumed but not stored.
func (p *Parser) captureBody() []lexer.Token {
	p.advance() // consume '{'
	depth := 1
	var toks []lexer.Token
	for depth > 0 {
		if p.isAtEnd() {
			p.error("unterminated function body")
			break
		}
		switch p.current.Kind {
		case lexer.LBrace:
			depth++
		case lexer.RBrace:
			depth--
			if depth == 0 {
				p.advance()
				return toks
			}
		}
		toks = append(toks, p.current)
		p.advance()
	}
	return toks
}

func (p *Parser) parseVarDeclRest(typ ast.TypeExpr, first lexer.Token) *ast.VarDecl {
	start := first.Position
	names := []string{first.Value}
	var inits []ast.Expr
	inits = append(inits, p.parseOptionalInit())

	for p.match(lexer.Comma) {
		name := p.expectIdentValue("expected variable name")
		names = append(names, name)
		inits = append(inits, p.parseOptionalInit())
	}

	p.consume(lexer.Semi, "expected ';' after variable declaration")
	return &ast.VarDecl{
		BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position},
		Type:     typ,
		Names:    names,
		Inits:    inits,
	}
}

func (p *Parser) parseOptionalInit() ast.Expr {
	if p.match(lexer.Assign) {
		return p.parseExpression()
	}
	return nil
}

// Type expressions

// parseTypeExpr parses a type: a keyword or named base, followed by any
// number of postfix modifiers — const/volatile qualification, '*'
// pointer, '[len]' array, or '(argTypes)' function-pointer — applied
// left to right, matching the reference grammar's postfix-modifier loop.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	start := p.current.Position
	var typ ast.TypeExpr

	switch {
	case p.current.Kind.IsTypeKeyword():
		kw := p.current.Kind
		p.advance()
		typ = &ast.KeywordTypeExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Keyword: kw}
	case p.check(lexer.Ident):
		names := p.parseScopedName()
		typ = &ast.NamedTypeExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, ScopedName: names}
	default:
		p.error(fmt.Sprintf("expected a type, got %s", p.current.Kind))
		panic("parser: invalid type expression")
	}

	for {
		switch {
		case p.match(lexer.Const):
			typ = &ast.QualifiedTypeExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Base: typ, Const: true}
		case p.match(lexer.Volatile):
			typ = &ast.QualifiedTypeExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Base: typ, Volatile: true}
		case p.match(lexer.Star):
			typ = &ast.PointerTypeExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Base: typ}
		case p.match(lexer.LSquare):
			var length ast.Expr
			if !p.check(lexer.RSquare) {
				length = p.parseExpression()
			}
			p.consume(lexer.RSquare, "expected ']' after array length")
			typ = &ast.ArrayTypeExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Element: typ, Length: length}
		case p.match(lexer.LParen):
			typ = p.parseFuncPtrRest(typ, start)
		default:
			return typ
		}
	}
}

// parseFuncPtrRest finishes a function-pointer type, '(' already consumed.
// Each parameter type may be followed by an identifier, which the
// reference grammar accepts purely as documentation and discards.
func (p *Parser) parseFuncPtrRest(retType ast.TypeExpr, start lexer.Position) ast.TypeExpr {
	var argTypes []ast.TypeExpr
	if !p.check(lexer.RParen) {
		for {
			argTypes = append(argTypes, p.parseTypeExpr())
			if p.check(lexer.Ident) {
				p.advance() // discard the documentary parameter name
			}
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RParen, "expected ')' after function-pointer parameter types")
	return &ast.FuncPtrTypeExpr{
		BaseNode:   ast.BaseNode{StartPos: start, EndPos: p.previous.Position},
		ReturnType: retType,
		ParamTypes: argTypes,
	}
}

// looksLikeTypeStart reports whether the current token could begin a type
// expression — used to decide, at statement position, whether a leading
// identifier starts a variable declaration or an expression statement,
// and, inside `sizeof(...)`, whether the operand is a type or a value.
func (p *Parser) looksLikeTypeStart() bool {
	if p.current.Kind.IsTypeKeyword() {
		return true
	}
	if p.current.Kind == lexer.Ident && p.resolveType != nil {
		return p.resolveType(p.current.Value)
	}
	return false
}

// Helper methods

func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.tokens.Next()
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.current.Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.TokenKind, message string) {
	if p.check(kind) {
		p.advance()
		return
	}
	p.error(message)
	panic(message)
}

func (p *Parser) expectIdentValue(message string) string {
	if !p.check(lexer.Ident) {
		p.error(message)
		panic(message)
	}
	name := p.current.Value
	p.advance()
	return name
}

func (p *Parser) isAtEnd() bool {
	return p.current.Kind == lexer.EOF
}

func (p *Parser) error(message string) {
	p.bag.Errorf(p.current.Position, "%s", message)
	p.panicMode = true
}

// panicTopLevel skips tokens until a plausible start of the next top-level
// form, or EOF.
func (p *Parser) panicTopLevel() {
	p.panicMode = false
	for !p.isAtEnd() {
		switch p.current.Kind {
		case lexer.Opaque, lexer.Struct, lexer.Union, lexer.Enum, lexer.Typedef,
			lexer.Void, lexer.Ubyte, lexer.Byte, lexer.Char, lexer.Ushort,
			lexer.Short, lexer.Uint, lexer.Int, lexer.Wchar, lexer.Ulong,
			lexer.Long, lexer.Float, lexer.Double, lexer.Bool, lexer.Ident:
			return
		}
		if p.previous.Kind == lexer.Semi || p.previous.Kind == lexer.RBrace {
			return
		}
		p.advance()
	}
}

// panicStatement skips tokens until a statement boundary: ';', a
// statement-starting keyword, '{', '}', or EOF.
func (p *Parser) panicStatement() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.previous.Kind == lexer.Semi {
			return
		}
		switch p.current.Kind {
		case lexer.If, lexer.While, lexer.Do, lexer.For, lexer.Switch,
			lexer.Break, lexer.Continue, lexer.Return, lexer.Asm,
			lexer.LBrace, lexer.RBrace:
			return
		}
		p.advance()
	}
}

// panicAggregateBody skips tokens until ';', a field-type start, '}', or EOF.
func (p *Parser) panicAggregateBody() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.previous.Kind == lexer.Semi {
			return
		}
		if p.current.Kind.IsTypeKeyword() || p.current.Kind == lexer.Ident || p.current.Kind == lexer.RBrace {
			return
		}
		p.advance()
	}
}

// panicEnumBody skips tokens until ',', '}', or EOF.
func (p *Parser) panicEnumBody() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.current.Kind == lexer.Comma || p.current.Kind == lexer.RBrace {
			return
		}
		p.advance()
	}
}

// panicSwitchBody skips tokens until a statement-starting keyword, 'case',
// 'default', or EOF.
func (p *Parser) panicSwitchBody() {
	p.panicMode = false
	for !p.isAtEnd() {
		switch p.current.Kind {
		case lexer.Case, lexer.Default, lexer.If, lexer.While, lexer.Do,
			lexer.For, lexer.Switch, lexer.Break, lexer.Continue,
			lexer.Return, lexer.Asm, lexer.RBrace:
			return
		}
		p.advance()
	}
}
