package parser

import (
	"fmt"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/token"
)

type sugarForm struct {
	target string
	arity  int
}

// sugarForms maps "keyword action" to the builtin the statement lowers to.
// inject has no action word.
var sugarForms = map[token.TokenType]map[string]sugarForm{
	token.PROCESS: {
		"find":  {config.FindProcessFuncName, 1},
		"open":  {config.OpenProcessFuncName, 2},
		"close": {config.CloseHandleFuncName, 1},
	},
	token.INJECT: {
		"": {config.InjectDLLFuncName, 2},
	},
	token.HOOK: {
		"jmp":  {config.WriteJmpFuncName, 2},
		"call": {config.WriteCallFuncName, 2},
	},
	token.SCAN: {
		"memory": {config.ScanMemoryFuncName, 5},
	},
	token.WINDOW: {
		"find":   {config.FindWindowFuncName, 2},
		"getpid": {config.WindowPidFuncName, 1},
	},
	token.THREAD: {
		"create":  {config.CreateThreadFuncName, 2},
		"suspend": {config.SuspendThreadName, 1},
		"resume":  {config.ResumeThreadName, 1},
	},
}

// parseSugarStatement lowers an OS statement form into a plain call:
// process find("x") becomes find_process("x").
func (p *Parser) parseSugarStatement() ast.Statement {
	kw := p.curToken
	forms := sugarForms[kw.Type]

	action := ""
	if kw.Type != token.INJECT {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		action = p.curToken.Lexeme
	}

	form, ok := forms[action]
	if !ok {
		p.syntaxError(p.curToken, fmt.Sprintf("Unknown %s action: %s", kw.Lexeme, action))
		return nil
	}

	callee := &ast.Identifier{Token: p.curToken, Value: form.target}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	call := p.parseCallExpression(callee)
	if call == nil {
		return nil
	}
	if n := len(call.(*ast.CallExpression).Arguments); n != form.arity {
		p.syntaxError(kw, fmt.Sprintf("%s expects %d argument(s), got %d",
			sugarName(kw.Lexeme, action), form.arity, n))
		return nil
	}

	return &ast.ExpressionStatement{Token: kw, Expression: call}
}

func sugarName(kw, action string) string {
	if action == "" {
		return kw
	}
	return kw + " " + action
}
