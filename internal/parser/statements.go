package parser

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/token"
)

// parseStatement dispatches on the first token. Every statement leaves
// curToken on its last token; a following ';' is consumed.
func (p *Parser) parseStatement() ast.Statement {
	var stmt ast.Statement

	switch p.curToken.Type {
	case token.FUNC:
		stmt = p.parseFunctionStatement(p.curToken, false)
	case token.ASYNC:
		tok := p.curToken
		if !p.expectPeek(token.FUNC) {
			return nil
		}
		stmt = p.parseFunctionStatement(tok, true)
	case token.IF:
		stmt = p.parseIfStatement()
	case token.WHILE:
		stmt = p.parseWhileStatement()
	case token.FOR:
		stmt = p.parseForStatement()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.TRY:
		stmt = p.parseTryStatement()
	case token.THROW:
		stmt = p.parseThrowStatement()
	case token.IMPORT:
		stmt = p.parseImportStatement()
	case token.IMPORTDLL:
		stmt = p.parseImportDLLStatement()
	case token.NAMESPACE:
		stmt = p.parseNamespaceStatement()
	case token.PROCESS, token.INJECT, token.HOOK, token.SCAN, token.WINDOW, token.THREAD:
		stmt = p.parseSugarStatement()
	default:
		stmt = p.parseExpressionStatement()
	}

	if p.failed {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

// parseBlockStatement is entered with curToken on '{' and leaves it on '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.NewError(diagnostics.ErrP002, p.curToken,
				describe(token.RBRACE), p.curToken.Kind(), p.curToken.Lexeme))
			return nil
		}
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if p.failed {
			return nil
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

// parseBody expects the next token to open a block and parses it.
func (p *Parser) parseBody() *ast.BlockStatement {
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	return p.parseBlockStatement()
}

// parseFunctionStatement is entered with curToken on 'func'; tok is the
// first token of the declaration ('func' or 'async').
func (p *Parser) parseFunctionStatement(tok token.Token, async bool) ast.Statement {
	fn := &ast.FunctionStatement{Token: tok, Async: async}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params

	if fn.Body = p.parseBody(); fn.Body == nil {
		return nil
	}
	return fn
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	if !p.expectPeek(token.IDENT) {
		return nil, false
	}
	params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// import "path"
func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	stmt.Path = p.parseStringLiteral().(*ast.StringLiteral)
	return stmt
}

// ImportDLL("lib", "symbol"[, "alias"])
func (p *Parser) parseImportDLLStatement() ast.Statement {
	stmt := &ast.ImportDLLStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	if len(args) < 2 || len(args) > 3 {
		p.syntaxError(stmt.Token, "ImportDLL expects a library path, a symbol name and an optional alias")
		return nil
	}
	stmt.Path, stmt.Symbol = args[0], args[1]
	if len(args) == 3 {
		stmt.Alias = args[2]
	}
	return stmt
}

// namespace name { ... }
func (p *Parser) parseNamespaceStatement() ast.Statement {
	stmt := &ast.NamespaceStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if stmt.Body = p.parseBody(); stmt.Body == nil {
		return nil
	}
	return stmt
}
