package parser

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(float64)
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNull() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

// parseArrayLiteral handles both [a, b, c] and the comprehension form
// [expr for x in iterable if cond].
func (p *Parser) parseArrayLiteral() ast.Expression {
	startToken := p.curToken

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ArrayLiteral{Token: startToken, Elements: []ast.Expression{}}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.FOR) {
		p.nextToken()
		return p.parseListComprehension(startToken, first)
	}

	elements := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACKET) {
			break // trailing comma
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayLiteral{Token: startToken, Elements: elements}
}

// parseListComprehension is entered with curToken on 'for'.
func (p *Parser) parseListComprehension(startToken token.Token, output ast.Expression) ast.Expression {
	lc := &ast.ListComprehension{Token: startToken, Output: output}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	lc.Variable = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	lc.Iterable = p.parseExpression(LOWEST)
	if lc.Iterable == nil {
		return nil
	}

	if p.peekTokenIs(token.IF) {
		p.nextToken()
		p.nextToken()
		lc.Condition = p.parseExpression(LOWEST)
		if lc.Condition == nil {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return lc
}

func (p *Parser) parseDictLiteral() ast.Expression {
	dict := &ast.DictLiteral{Token: p.curToken, Pairs: []ast.DictPair{}}

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		if !p.curTokenIs(token.STRING) {
			p.addError(diagnostics.NewError(diagnostics.ErrP004, p.curToken))
			return nil
		}
		key := p.parseStringLiteral().(*ast.StringLiteral)

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		dict.Pairs = append(dict.Pairs, ast.DictPair{Key: key, Value: value})

		if !p.peekTokenIs(token.RBRACE) && !p.expectPeek(token.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return dict
}
