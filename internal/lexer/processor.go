package lexer

import (
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/pipeline"
	"github.com/funvibe/ollang/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	strict := true
	if ctx.Settings != nil {
		strict = ctx.Settings.Lexer.Strict
	}

	ctx.TokenStream = Tokenize(ctx.SourceCode, strict)

	for _, tok := range ctx.TokenStream {
		if tok.Type != token.ILLEGAL {
			continue
		}
		var err *diagnostics.DiagnosticError
		if msg, ok := tok.Literal.(string); ok && msg != tok.Lexeme {
			err = diagnostics.NewError(diagnostics.ErrL002, tok, msg)
		} else {
			err = diagnostics.NewError(diagnostics.ErrL001, tok, "'"+tok.Lexeme+"'")
		}
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		// First lexical error aborts, like a parse error.
		break
	}
	return ctx
}
