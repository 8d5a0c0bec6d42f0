package pipeline

import (
	"github.com/hashicorp/go-multierror"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the state threaded through the stages.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	Settings    *config.Settings
	TokenStream []token.Token
	AstRoot     ast.Node
	Errors      []*diagnostics.DiagnosticError

	// Result is set by the execution stage on success.
	Result interface{}
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Settings:   config.DefaultSettings(),
		Errors:     []*diagnostics.DiagnosticError{},
	}
}

// Err combines every collected diagnostic into a single error, or nil.
func (ctx *PipelineContext) Err() error {
	var result *multierror.Error
	for _, err := range ctx.Errors {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
