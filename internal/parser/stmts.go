package parser

import (
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
)

// parseStmt parses any statement, recovering to the next statement
// boundary if parsing panics.
func (p *Parser) parseStmt() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.panicStatement()
			stmt = nil
		}
	}()

	switch {
	case p.check(lexer.LBrace):
		return p.parseBlockStmt()
	case p.match(lexer.Semi):
		return &ast.NullStmt{BaseNode: ast.BaseNode{StartPos: p.previous.Position, EndPos: p.previous.Position}}
	case p.match(lexer.If):
		return p.parseIfStmt()
	case p.match(lexer.While):
		return p.parseWhileStmt()
	case p.match(lexer.Do):
		return p.parseDoWhileStmt()
	case p.match(lexer.For):
		return p.parseForStmt()
	case p.match(lexer.Switch):
		return p.parseSwitchStmt()
	case p.match(lexer.Return):
		return p.parseReturnStmt()
	case p.match(lexer.Break):
		return p.parseBreakStmt()
	case p.match(lexer.Continue):
		return p.parseContinueStmt()
	case p.match(lexer.Asm):
		return p.parseAsmStmt()
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
	case p.looksLikeTypeStart():
		typ := p.parseTypeExpr()
		name := p.expectIdentValueToken("expected variable name")
		return p.parseVarDeclRest(typ, name)
	default:
		return p.parseExprStmt()
	}
}

// parseBlockStmt parses a brace-enclosed statement sequence.
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.current.Position
	p.consume(lexer.LBrace, "expected '{'")

	var stmts []ast.Stmt
	for !p.check(lexer.RBrace) && !p.isAtEnd() {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
	}

	p.consume(lexer.RBrace, "expected '}'")
	return &ast.BlockStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Stmts: stmts}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.previous.Position
	p.consume(lexer.LParen, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(lexer.RParen, "expected ')' after condition")
	then := p.parseStmt()

	var elseStmt ast.Stmt
	if p.match(lexer.Else) {
		elseStmt = p.parseStmt()
	}

	return &ast.IfStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.previous.Position
	p.consume(lexer.LParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(lexer.RParen, "expected ')' after condition")
	body := p.parseStmt()
	return &ast.WhileStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt() *ast.DoWhileStmt {
	start := p.previous.Position
	body := p.parseStmt()
	p.consume(lexer.While, "expected 'while' after 'do' body")
	p.consume(lexer.LParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(lexer.RParen, "expected ')' after condition")
	p.consume(lexer.Semi, "expected ';' after do-while statement")
	return &ast.DoWhileStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Body: body, Cond: cond}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.previous.Position
	p.consume(lexer.LParen, "expected '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(lexer.Semi):
	case p.looksLikeTypeStart():
		typ := p.parseTypeExpr()
		name := p.expectIdentValueToken("expected variable name")
		init = p.parseVarDeclRest(typ, name)
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if !p.check(lexer.Semi) {
		cond = p.parseExpression()
	}
	p.consume(lexer.Semi, "expected ';' after loop condition")

	var post ast.Expr
	if !p.check(lexer.RParen) {
		post = p.parseExpression()
	}
	p.consume(lexer.RParen, "expected ')' after for clauses")

	body := p.parseStmt()
	return &ast.ForStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseSwitchStmt() *ast.SwitchStmt {
	start := p.previous.Position
	p.consume(lexer.LParen, "expected '(' after 'switch'")
	cond := p.parseExpression()
	p.consume(lexer.RParen, "expected ')' after switch value")
	p.consume(lexer.LBrace, "expected '{' before switch body")

	var cases []*ast.CaseClause
	for !p.check(lexer.RBrace) && !p.isAtEnd() {
		cases = append(cases, p.parseCaseClause())
	}

	p.consume(lexer.RBrace, "expected '}' after switch body")
	return &ast.SwitchStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Cond: cond, Cases: cases}
}

func (p *Parser) parseCaseClause() (cc *ast.CaseClause) {
	defer func() {
		if r := recover(); r != nil {
			p.panicSwitchBody()
			cc = nil
		}
	}()

	start := p.current.Position
	var value ast.Expr
	switch {
	case p.match(lexer.Case):
		value = p.parseExpression()
	case p.match(lexer.Default):
	default:
		p.error("expected 'case' or 'default'")
		panic("parser: invalid case clause")
	}
	p.consume(lexer.Colon, "expected ':' after case label")

	var stmts []ast.Stmt
	for !p.check(lexer.Case) && !p.check(lexer.Default) && !p.check(lexer.RBrace) && !p.isAtEnd() {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
	}

	return &ast.CaseClause{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Value: value, Stmts: stmts}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.previous.Position
	var value ast.Expr
	if !p.check(lexer.Semi) {
		value = p.parseExpression()
	}
	p.consume(lexer.Semi, "expected ';' after return statement")
	return &ast.ReturnStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Value: value}
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	start := p.previous.Position
	p.consume(lexer.Semi, "expected ';' after 'break'")
	return &ast.BreakStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}}
}

func (p *Parser) parseContinueStmt() *ast.ContinueStmt {
	start := p.previous.Position
	p.consume(lexer.Semi, "expected ';' after 'continue'")
	return &ast.ContinueStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}}
}

// parseAsmStmt parses asm("source text");. The operand must be a plain
// string literal; it is carried verbatim and never interpreted by this
// front end.
func (p *Parser) parseAsmStmt() *ast.AsmStmt {
	start := p.previous.Position
	p.consume(lexer.LParen, "expected '(' after 'asm'")
	if !p.check(lexer.LitString) {
		p.error("expected a string literal as the asm operand")
		panic("parser: invalid asm statement")
	}
	source := p.current.Value
	p.advance()
	p.consume(lexer.RParen, "expected ')' after asm operand")
	p.consume(lexer.Semi, "expected ';' after asm statement")
	return &ast.AsmStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Source: source}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpression()
	p.consume(lexer.Semi, "expected ';' after expression")
	return &ast.ExprStmt{Expression: expr}
}

// expectIdentValueToken is expectIdentValue but returns the full token
// (needed where the caller also wants its position, e.g. a var decl's
// first name feeding parseVarDeclRest).
func (p *Parser) expectIdentValueToken(message string) lexer.Token {
	if !p.check(lexer.Ident) {
		p.error(message)
		panic(message)
	}
	tok := p.current
	p.advance()
	return tok
}
