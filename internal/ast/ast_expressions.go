package ast

import "github.com/funvibe/ollang/internal/token"

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) Accept(v Visitor)      { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) Accept(v Visitor)      { v.VisitNullLiteral(n) }
func (n *NullLiteral) expressionNode()       {}
func (n *NullLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token { return n.Token }

type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) Accept(v Visitor)      { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// DictPair keeps source order; keys are string literals.
type DictPair struct {
	Key   *StringLiteral
	Value Expression
}

type DictLiteral struct {
	Token token.Token // the '{' token
	Pairs []DictPair
}

func (dl *DictLiteral) Accept(v Visitor)      { v.VisitDictLiteral(dl) }
func (dl *DictLiteral) expressionNode()       {}
func (dl *DictLiteral) TokenLiteral() string  { return dl.Token.Lexeme }
func (dl *DictLiteral) GetToken() token.Token { return dl.Token }

type PrefixExpression struct {
	Token    token.Token // The prefix token, e.g. ! or -
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)      { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)      { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// AssignExpression: target = value. Target is an *Identifier,
// *IndexExpression or *MemberExpression; the parser rejects anything else.
type AssignExpression struct {
	Token  token.Token // The '=' token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) Accept(v Visitor)      { v.VisitAssignExpression(ae) }
func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression  // Identifier or any callable expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// IndexExpression represents accessing an element by index.
// arr[0] or dict["key"]
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) Accept(v Visitor)      { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// MemberExpression represents dictionary member access.
// obj.member
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) Accept(v Visitor)      { v.VisitMemberExpression(me) }
func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

type AwaitExpression struct {
	Token token.Token // The 'await' token
	Value Expression
}

func (ae *AwaitExpression) Accept(v Visitor)      { v.VisitAwaitExpression(ae) }
func (ae *AwaitExpression) expressionNode()       {}
func (ae *AwaitExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AwaitExpression) GetToken() token.Token { return ae.Token }

// Memory sandbox primitives.

type AllocExpression struct {
	Token token.Token // The 'alloc' token
	Size  Expression
}

func (ae *AllocExpression) Accept(v Visitor)      { v.VisitAllocExpression(ae) }
func (ae *AllocExpression) expressionNode()       {}
func (ae *AllocExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AllocExpression) GetToken() token.Token { return ae.Token }

type FreeExpression struct {
	Token   token.Token // The 'free' token
	Pointer Expression
}

func (fe *FreeExpression) Accept(v Visitor)      { v.VisitFreeExpression(fe) }
func (fe *FreeExpression) expressionNode()       {}
func (fe *FreeExpression) TokenLiteral() string  { return fe.Token.Lexeme }
func (fe *FreeExpression) GetToken() token.Token { return fe.Token }

// ReadExpression: read(ptr, offset, "i32")
type ReadExpression struct {
	Token    token.Token // The 'read' token
	Pointer  Expression
	Offset   Expression
	TypeName string
}

func (re *ReadExpression) Accept(v Visitor)      { v.VisitReadExpression(re) }
func (re *ReadExpression) expressionNode()       {}
func (re *ReadExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *ReadExpression) GetToken() token.Token { return re.Token }

// WriteExpression: write(ptr, offset, value, "i32")
type WriteExpression struct {
	Token    token.Token // The 'write' token
	Pointer  Expression
	Offset   Expression
	Value    Expression
	TypeName string
}

func (we *WriteExpression) Accept(v Visitor)      { v.VisitWriteExpression(we) }
func (we *WriteExpression) expressionNode()       {}
func (we *WriteExpression) TokenLiteral() string  { return we.Token.Lexeme }
func (we *WriteExpression) GetToken() token.Token { return we.Token }

type SyscallExpression struct {
	Token     token.Token // The 'syscall' token
	Code      Expression
	Arguments []Expression
}

func (se *SyscallExpression) Accept(v Visitor)      { v.VisitSyscallExpression(se) }
func (se *SyscallExpression) expressionNode()       {}
func (se *SyscallExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SyscallExpression) GetToken() token.Token { return se.Token }
