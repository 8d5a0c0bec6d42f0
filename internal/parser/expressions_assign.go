package parser

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/diagnostics"
)

// parseAssignExpression is right-associative: a = b = 1 assigns both.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	if !isAssignable(left) {
		p.addError(diagnostics.NewError(diagnostics.ErrP003, p.curToken))
		return nil
	}

	tok := p.curToken
	p.nextToken() // consume '='
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}

	return &ast.AssignExpression{Token: tok, Target: left, Value: value}
}

func isAssignable(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.IndexExpression, *ast.MemberExpression:
		return true
	}
	return false
}
