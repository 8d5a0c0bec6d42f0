package backend

import (
	"errors"

	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/evaluator"
	"github.com/funvibe/ollang/internal/pipeline"
	"github.com/funvibe/ollang/internal/token"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

// Process runs the program. The run's value, or the *ExitSignal when the
// script called exit(), lands in ctx.Result; an uncaught error becomes an
// R001 diagnostic.
func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	result, err := p.Backend.Run(ctx)
	if err != nil {
		p.handleError(ctx, err)
		return ctx
	}
	ctx.Result = result
	return ctx
}

func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	var exit *evaluator.ExitSignal
	if errors.As(err, &exit) {
		ctx.Result = exit
		return
	}

	var fatal *evaluator.FatalError
	if errors.As(err, &fatal) {
		diag := diagnostics.NewError(diagnostics.ErrR002, token.Token{}, fatal.Value)
		if len(fatal.Stack) > 0 {
			diag.Msg += "\n" + string(fatal.Stack)
		}
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		return
	}

	var runErr *evaluator.RunError
	if errors.As(err, &runErr) {
		p.handleEvaluatorError(ctx, runErr.Err)
		return
	}

	diag := diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error())
	diag.File = ctx.FilePath
	ctx.Errors = append(ctx.Errors, diag)
}

func (p *ExecutionProcessor) handleEvaluatorError(ctx *pipeline.PipelineContext, err *evaluator.Error) {
	tok := token.Token{Line: err.Line, Column: err.Column}
	errMsg := err.Message

	file := ctx.FilePath
	if file == "" {
		file = "<stdin>"
	}
	if trace := err.FormatStack(file); trace != "" {
		errMsg += "\n" + trace
	}

	diag := diagnostics.NewError(diagnostics.ErrR001, tok, errMsg)
	diag.File = ctx.FilePath
	ctx.Errors = append(ctx.Errors, diag)
}
