package parser

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/pipeline"
	"github.com/funvibe/ollang/internal/token"
)

// MaxRecursionDepth bounds expression nesting so hostile input cannot
// exhaust the Go stack.
const MaxRecursionDepth = 1000

// Precedence ladder, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN     // =
	LOGICAL    // && || & | ^
	COMPARISON // < > <= >= == !=
	SUM        // + - << >>
	PRODUCT    // * / %
	POWER      // **
	PREFIX     // -X !X ~X await X
	CALL       // f(x) a[i] a.b
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:   ASSIGN,
	token.AND:      LOGICAL,
	token.OR:       LOGICAL,
	token.AMPER:    LOGICAL,
	token.PIPE:     LOGICAL,
	token.CARET:    LOGICAL,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.LTE:      COMPARISON,
	token.GTE:      COMPARISON,
	token.EQ:       COMPARISON,
	token.NOT_EQ:   COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.LSHIFT:   SUM,
	token.RSHIFT:   SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.POWER:    POWER,
	token.LPAREN:   CALL,
	token.LBRACKET: CALL,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	depth int

	// failed is set by the first error; there is no recovery.
	failed bool

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.NUMBER:    p.parseNumberLiteral,
		token.STRING:    p.parseStringLiteral,
		token.TRUE:      p.parseBoolean,
		token.FALSE:     p.parseBoolean,
		token.NULL:      p.parseNull,
		token.BANG:      p.parsePrefixExpression,
		token.MINUS:     p.parsePrefixExpression,
		token.TILDE:     p.parsePrefixExpression,
		token.AWAIT:     p.parseAwaitExpression,
		token.LPAREN:    p.parseGroupedExpression,
		token.LBRACKET:  p.parseArrayLiteral,
		token.LBRACE:    p.parseDictLiteral,
		token.ALLOC:     p.parseAllocExpression,
		token.FREE:      p.parseFreeExpression,
		token.READ:      p.parseReadExpression,
		token.WRITE:     p.parseWriteExpression,
		token.SYSCALL:   p.parseSyscallExpression,
		token.IMPORTDLL: p.parseImportDLLCall,
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tt, prec := range precedences {
		switch prec {
		case LOGICAL, COMPARISON, SUM, PRODUCT:
			p.infixParseFns[tt] = p.parseInfixExpression
		}
	}
	p.infixParseFns[token.POWER] = p.parseRightAssocInfixExpression
	p.infixParseFns[token.ASSIGN] = p.parseAssignExpression
	p.infixParseFns[token.LPAREN] = p.parseCallExpression
	p.infixParseFns[token.LBRACKET] = p.parseIndexExpression
	p.infixParseFns[token.DOT] = p.parseMemberExpression

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// ParseProgram parses statements until EOF or the first error.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) && !p.failed {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if p.failed {
			break
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		// Past the end: keep yielding EOF at the last known position.
		p.peekToken = token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token has type t and records a
// P002 error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(err *diagnostics.DiagnosticError) {
	if p.failed {
		return
	}
	p.failed = true
	p.ctx.Errors = append(p.ctx.Errors, err)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.NewError(diagnostics.ErrP002, p.peekToken,
		describe(t), p.peekToken.Kind(), p.peekToken.Lexeme))
}

func (p *Parser) unexpected(tok token.Token) {
	p.addError(diagnostics.NewError(diagnostics.ErrP001, tok, tok.Kind(), tok.Lexeme))
}

func (p *Parser) syntaxError(tok token.Token, msg string) {
	p.addError(diagnostics.NewError(diagnostics.ErrP006, tok, msg))
}

// describe renders an expected token type for P002 messages.
func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.STRING:
		return "string"
	case token.NUMBER:
		return "number"
	}
	if token.IsKeyword(t) {
		return "keyword '" + keywordText(t) + "'"
	}
	return "'" + string(t) + "'"
}

func keywordText(t token.TokenType) string {
	for _, kw := range token.Keywords() {
		if token.LookupIdent(kw) == t {
			return kw
		}
	}
	return string(t)
}
