package parser

import (
	"fmt"

	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
)

// parseExpression parses a full expression at the lowest (assignment)
// precedence — the entry point used wherever the grammar wants one
// expression, e.g. an initializer, an array length, a call argument.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment)
}

// parsePrecedence is the precedence-climbing core: parse one prefix
// expression, then keep folding in infix/postfix operators as long as
// their precedence meets the floor.
func (p *Parser) parsePrecedence(min Precedence) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		p.error(fmt.Sprintf("expected an expression, got %s", p.current.Kind))
		panic("parser: invalid expression")
	}

	for {
		prec := getPrecedence(p.current.Kind)
		if prec == PrecNone || prec < min {
			return left
		}
		left = p.parseInfix(left, prec)
	}
}

// parsePrefix parses a prefix-position expression: a literal, identifier,
// grouping, aggregate initializer, `sizeof`, `cast<T>`, or a prefix unary
// operator.
func (p *Parser) parsePrefix() ast.Expr {
	switch {
	case p.current.Kind.IsLiteral(), p.current.Kind == lexer.True,
		p.current.Kind == lexer.False, p.current.Kind == lexer.Null:
		return p.parseLiteral()

	case p.check(lexer.Ident):
		return p.parseIdentifierExpr()

	case p.match(lexer.LParen):
		start := p.previous.Position
		inner := p.parseExpression()
		p.consume(lexer.RParen, "expected ')' after expression")
		return &ast.GroupingExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Inner: inner}

	case p.match(lexer.LSquare):
		return p.parseAggregateInit()

	case p.match(lexer.Sizeof):
		return p.parseSizeof()

	case p.match(lexer.Cast):
		return p.parseCast()

	case p.current.Kind == lexer.Minus, p.current.Kind == lexer.Bang,
		p.current.Kind == lexer.Tilde, p.current.Kind == lexer.Star,
		p.current.Kind == lexer.Amp, p.current.Kind == lexer.Inc,
		p.current.Kind == lexer.Dec:
		return p.parseUnary()

	default:
		return nil
	}
}

func (p *Parser) parseLiteral() ast.Expr {
	tok := p.current
	p.advance()
	return &ast.LiteralExpr{
		BaseNode: ast.BaseNode{StartPos: tok.Position, EndPos: tok.Position},
		Kind:     tok.Kind,
		Value:    tok.Value,
	}
}

// parseIdentifierExpr parses a plain or scoped identifier reference:
// foo, or foo::bar::baz.
func (p *Parser) parseIdentifierExpr() ast.Expr {
	start := p.current.Position
	first := p.current.Value
	p.advance()

	if !p.check(lexer.Scope) {
		return &ast.IdentifierExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: start}, Name: first}
	}

	parts := []string{first}
	for p.match(lexer.Scope) {
		if !p.check(lexer.Ident) {
			p.error("expected identifier after '::'")
			break
		}
		parts = append(parts, p.current.Value)
		p.advance()
	}
	return &ast.ScopedIdentifierExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Parts: parts}
}

// parseAggregateInit parses a bracket-enclosed aggregate initializer,
// '[' already consumed: [e1, e2, ...].
func (p *Parser) parseAggregateInit() ast.Expr {
	start := p.previous.Position
	var elems []ast.Expr
	if !p.check(lexer.RSquare) {
		for {
			elems = append(elems, p.parseExpression())
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RSquare, "expected ']' after aggregate initializer")
	return &ast.AggregateInitExpr{BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position}, Elements: elems}
}

// parseSizeof parses sizeof(expr) or sizeof(type); which form depends on
// whether the parenthesized content looks like a type (a type keyword, or
// — with a live type resolver — an identifier naming a known type).
func (p *Parser) parseSizeof() ast.Expr {
	start := p.previous.Position
	p.consume(lexer.LParen, "expected '(' after 'sizeof'")
	n := &ast.SizeofExpr{}
	if p.looksLikeTypeStart() {
		n.TargetType = p.parseTypeExpr()
	} else {
		n.Operand = p.parseExpression()
	}
	p.consume(lexer.RParen, "expected ')' after sizeof operand")
	n.BaseNode = ast.BaseNode{StartPos: start, EndPos: p.previous.Position}
	return n
}

// parseCast parses cast<Target>(operand), 'cast' already consumed.
func (p *Parser) parseCast() ast.Expr {
	start := p.previous.Position
	p.consume(lexer.LAngle, "expected '<' after 'cast'")
	target := p.parseTypeExpr()
	p.consume(lexer.RAngle, "expected '>' after cast target type")
	p.consume(lexer.LParen, "expected '(' before cast operand")
	operand := p.parseExpression()
	p.consume(lexer.RParen, "expected ')' after cast operand")
	return &ast.CastExpr{
		BaseNode: ast.BaseNode{StartPos: start, EndPos: p.previous.Position},
		Target:   target,
		Operand:  operand,
	}
}

func (p *Parser) parseUnary() ast.Expr {
	op := p.current
	p.advance()
	operand := p.parsePrecedence(PrecUnary)
	return &ast.UnaryExpr{
		BaseNode: ast.BaseNode{StartPos: op.Position, EndPos: operand.End()},
		Operator: op,
		Operand:  operand,
	}
}

// parseInfix parses an infix or postfix continuation of left, given that
// p.current's precedence already cleared the caller's floor.
func (p *Parser) parseInfix(left ast.Expr, prec Precedence) ast.Expr {
	switch {
	case assignmentOps[p.current.Kind]:
		op := p.current
		p.advance()
		value := p.parsePrecedence(PrecAssignment)
		return &ast.AssignmentExpr{Target: left, Operator: op, Value: value}

	case p.current.Kind == lexer.Question:
		p.advance()
		then := p.parseExpression()
		p.consume(lexer.Colon, "expected ':' in ternary expression")
		elseExpr := p.parsePrecedence(PrecTernary)
		return &ast.TernaryExpr{Cond: left, Then: then, Else: elseExpr}

	case p.current.Kind == lexer.LOr || p.current.Kind == lexer.LAnd:
		op := p.current
		p.advance()
		right := p.parsePrecedence(prec + 1)
		return &ast.LogicalExpr{Left: left, Operator: op, Right: right}

	case p.current.Kind == lexer.Inc || p.current.Kind == lexer.Dec:
		op := p.current
		p.advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{StartPos: left.Pos(), EndPos: op.Position}, Operator: op, Operand: left, IsPostfix: true}

	case p.current.Kind == lexer.Dot || p.current.Kind == lexer.Arrow:
		arrow := p.current.Kind == lexer.Arrow
		p.advance()
		field := p.expectIdentValue("expected a field name")
		return &ast.MemberExpr{BaseNode: ast.BaseNode{StartPos: left.Pos(), EndPos: p.previous.Position}, Object: left, Field: field, Arrow: arrow}

	case p.current.Kind == lexer.LSquare:
		p.advance()
		index := p.parseExpression()
		p.consume(lexer.RSquare, "expected ']' after index")
		return &ast.IndexExpr{BaseNode: ast.BaseNode{StartPos: left.Pos(), EndPos: p.previous.Position}, Array: left, Index: index}

	case p.current.Kind == lexer.LParen:
		p.advance()
		var args []ast.Expr
		if !p.check(lexer.RParen) {
			for {
				args = append(args, p.parseExpression())
				if !p.match(lexer.Comma) {
					break
				}
			}
		}
		p.consume(lexer.RParen, "expected ')' after call arguments")
		return &ast.CallExpr{BaseNode: ast.BaseNode{StartPos: left.Pos(), EndPos: p.previous.Position}, Callee: left, Args: args}

	default:
		op := p.current
		p.advance()
		right := p.parsePrecedence(prec + 1)
		return &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
}
