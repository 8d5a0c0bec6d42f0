package parser

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/token"
)

// Memory primitives are keywords but parse as ordinary primaries, so
// p = alloc(8) and print(read(p, 0, "u8")) both work.

func (p *Parser) parseAllocExpression() ast.Expression {
	exp := &ast.AllocExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	exp.Size = p.parseExpression(LOWEST)
	if exp.Size == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseFreeExpression() ast.Expression {
	exp := &ast.FreeExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	exp.Pointer = p.parseExpression(LOWEST)
	if exp.Pointer == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// read(ptr, offset, "type")
func (p *Parser) parseReadExpression() ast.Expression {
	exp := &ast.ReadExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if exp.Pointer = p.parseArgument(); exp.Pointer == nil || !p.expectPeek(token.COMMA) {
		return nil
	}
	if exp.Offset = p.parseArgument(); exp.Offset == nil || !p.expectPeek(token.COMMA) {
		return nil
	}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	exp.TypeName = p.curToken.Literal.(string)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// write(ptr, offset, value, "type")
func (p *Parser) parseWriteExpression() ast.Expression {
	exp := &ast.WriteExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if exp.Pointer = p.parseArgument(); exp.Pointer == nil || !p.expectPeek(token.COMMA) {
		return nil
	}
	if exp.Offset = p.parseArgument(); exp.Offset == nil || !p.expectPeek(token.COMMA) {
		return nil
	}
	if exp.Value = p.parseArgument(); exp.Value == nil || !p.expectPeek(token.COMMA) {
		return nil
	}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	exp.TypeName = p.curToken.Literal.(string)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// syscall(code, a1, ..., a6)
func (p *Parser) parseSyscallExpression() ast.Expression {
	exp := &ast.SyscallExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	if len(args) == 0 {
		p.syntaxError(exp.Token, "syscall requires a code")
		return nil
	}
	exp.Code = args[0]
	exp.Arguments = args[1:]
	return exp
}

// parseArgument advances past the current token and parses one expression.
func (p *Parser) parseArgument() ast.Expression {
	p.nextToken()
	return p.parseExpression(LOWEST)
}
