package parser

import (
	"github.com/hassan/tcompiler/internal/diag"
	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
)

// tokenSlice replays a captured token vector as a TokenSource, letting
// functionbody re-enter parser.go/exprs.go/stmts.go's grammar over a
// function body captured during the skim pass, rather than duplicating it.
type tokenSlice struct {
	toks []lexer.Token
	pos  int
	eof  lexer.Position
}

func (t *tokenSlice) Next() lexer.Token {
	if t.pos >= len(t.toks) {
		return lexer.Token{Kind: lexer.EOF, Position: t.eof}
	}
	tok := t.toks[t.pos]
	t.pos++
	return tok
}

// newBodySource builds a TokenSource over a function's captured tokens.
// Unparsed never includes the enclosing braces (captureBody strips them),
// so the replayed stream ends at EOF rather than '}'.
func newBodySource(toks []lexer.Token) *tokenSlice {
	eof := lexer.Position{}
	if len(toks) > 0 {
		eof = toks[len(toks)-1].Position
	}
	return &tokenSlice{toks: toks, eof: eof}
}

// ParseFunctionBody is pass 3: it re-parses decl.Unparsed — captured
// verbatim by the skim pass — now that a whole-program symbol table
// exists, and installs the result as decl.Body. resolver should report
// whether an identifier names a type, backed by the symbol table scope
// enclosing this function; it lets a sizeof operand and a statement-start
// identifier be classified as a type or a value.
//
// A declaration-only FuncDecl (Unparsed nil, no body was ever captured)
// is left untouched.
func ParseFunctionBody(decl *ast.FuncDecl, bag *diag.Bag, resolver TypeResolver) {
	if decl.Unparsed == nil {
		return
	}

	src := newBodySource(decl.Unparsed)
	p := New(src, bag)
	p.SetTypeResolver(resolver)

	start := decl.Pos()
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
	}

	decl.Body = &ast.BlockStmt{BaseNode: ast.BaseNode{StartPos: start, EndPos: decl.End()}, Stmts: stmts}
}
