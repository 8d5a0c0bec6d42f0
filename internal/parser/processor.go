package parser

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/lexer"
	"github.com/funvibe/ollang/internal/pipeline"
	"github.com/funvibe/ollang/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// The lexer always runs first; this guards direct callers.
		err := diagnostics.NewError(diagnostics.ErrP006, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	prog := parser.ParseProgram()
	prog.File = ctx.FilePath
	ctx.AstRoot = prog

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}

// ParseSource runs the lexer and parser over source and returns the
// program or the combined diagnostics.
func ParseSource(source, file string, strict bool) (*ast.Program, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = file
	ctx.Settings.Lexer.Strict = strict

	ctx = pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx.AstRoot.(*ast.Program), nil
}
