package ast

import "github.com/funvibe/ollang/internal/token"

// ListComprehension represents a list comprehension expression.
// Syntax: [output for variable in iterable if condition]
// Example: [x * 2 for x in [1, 2, 3] if x > 1]
type ListComprehension struct {
	Token     token.Token // The '[' token
	Output    Expression  // The output expression (e.g., x * 2)
	Variable  *Identifier
	Iterable  Expression
	Condition Expression // optional filter, nil when absent
}

func (lc *ListComprehension) Accept(v Visitor)     { v.VisitListComprehension(lc) }
func (lc *ListComprehension) expressionNode()      {}
func (lc *ListComprehension) TokenLiteral() string { return lc.Token.Lexeme }
func (lc *ListComprehension) GetToken() token.Token {
	if lc == nil {
		return token.Token{}
	}
	return lc.Token
}
