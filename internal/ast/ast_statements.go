package ast

import "github.com/funvibe/ollang/internal/token"

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

type BlockStatement struct {
	Token      token.Token // the { token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// FunctionStatement declares a named function.
// func name(a, b) { ... } or async func name() { ... }
type FunctionStatement struct {
	Token      token.Token // The 'func' token (or 'async')
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
	Async      bool
}

func (fs *FunctionStatement) Accept(v Visitor)     { v.VisitFunctionStatement(fs) }
func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

type IfStatement struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else; else-if nests an IfStatement
}

func (is *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

type WhileStatement struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// ForStatement iterates an array by element or a string by character.
// for item in iterable { ... }
type ForStatement struct {
	Token    token.Token // The 'for' token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) Accept(v Visitor)     { v.VisitForStatement(fs) }
func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression  // nil for a bare return
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

type ThrowStatement struct {
	Token token.Token // The 'throw' token
	Value Expression
}

func (ts *ThrowStatement) Accept(v Visitor)     { v.VisitThrowStatement(ts) }
func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *ThrowStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// TryStatement: try { ... } catch (e) { ... }
type TryStatement struct {
	Token    token.Token // The 'try' token
	Body     *BlockStatement
	CatchVar *Identifier
	Handler  *BlockStatement
}

func (ts *TryStatement) Accept(v Visitor)     { v.VisitTryStatement(ts) }
func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// ImportStatement represents a flat file inclusion.
// import "path/to/module"
type ImportStatement struct {
	Token token.Token // The 'import' token
	Path  *StringLiteral
}

func (is *ImportStatement) Accept(v Visitor)     { v.VisitImportStatement(is) }
func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// ImportDLLStatement binds a native library symbol.
// ImportDLL("lib.so", "symbol", "alias")
type ImportDLLStatement struct {
	Token  token.Token // The 'ImportDLL' token
	Path   Expression
	Symbol Expression
	Alias  Expression // optional
}

func (is *ImportDLLStatement) Accept(v Visitor)     { v.VisitImportDLLStatement(is) }
func (is *ImportDLLStatement) statementNode()       {}
func (is *ImportDLLStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportDLLStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// NamespaceStatement evaluates its body in a fresh frame and binds the
// frame's final contents as a dictionary.
type NamespaceStatement struct {
	Token token.Token // The 'namespace' token
	Name  *Identifier
	Body  *BlockStatement
}

func (ns *NamespaceStatement) Accept(v Visitor)     { v.VisitNamespaceStatement(ns) }
func (ns *NamespaceStatement) statementNode()       {}
func (ns *NamespaceStatement) TokenLiteral() string { return ns.Token.Lexeme }
func (ns *NamespaceStatement) GetToken() token.Token {
	if ns == nil {
		return token.Token{}
	}
	return ns.Token
}
