package ast

import "github.com/funvibe/ollang/internal/token"

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Visitor has one method per node kind. Adding a node kind without a
// visit method fails to compile for every visitor.
type Visitor interface {
	VisitProgram(n *Program)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitBlockStatement(n *BlockStatement)
	VisitFunctionStatement(n *FunctionStatement)
	VisitIfStatement(n *IfStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitForStatement(n *ForStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitThrowStatement(n *ThrowStatement)
	VisitTryStatement(n *TryStatement)
	VisitImportStatement(n *ImportStatement)
	VisitImportDLLStatement(n *ImportDLLStatement)
	VisitNamespaceStatement(n *NamespaceStatement)

	VisitIdentifier(n *Identifier)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
	VisitArrayLiteral(n *ArrayLiteral)
	VisitListComprehension(n *ListComprehension)
	VisitDictLiteral(n *DictLiteral)
	VisitPrefixExpression(n *PrefixExpression)
	VisitInfixExpression(n *InfixExpression)
	VisitAssignExpression(n *AssignExpression)
	VisitCallExpression(n *CallExpression)
	VisitIndexExpression(n *IndexExpression)
	VisitMemberExpression(n *MemberExpression)
	VisitAwaitExpression(n *AwaitExpression)
	VisitAllocExpression(n *AllocExpression)
	VisitFreeExpression(n *FreeExpression)
	VisitReadExpression(n *ReadExpression)
	VisitWriteExpression(n *WriteExpression)
	VisitSyscallExpression(n *SyscallExpression)
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	} else {
		return ""
	}
}
