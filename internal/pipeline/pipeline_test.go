package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/token"
)

type stage struct {
	name  string
	fail  bool
	trace *[]string
}

func (s stage) Process(ctx *PipelineContext) *PipelineContext {
	*s.trace = append(*s.trace, s.name)
	if s.fail {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrP006, token.Token{Line: 1, Column: 2}, s.name+" failed"))
	}
	return ctx
}

func TestRunStopsAtFirstFailingStage(t *testing.T) {
	var trace []string
	p := New(stage{name: "lex", trace: &trace}, stage{name: "parse", fail: true, trace: &trace}, stage{name: "exec", trace: &trace})

	ctx := p.Run(NewPipelineContext("x"))
	assert.Equal(t, []string{"lex", "parse"}, trace)
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, "[P006] parse failed at line 1:2", ctx.Errors[0].Error())
}

func TestErrCombinesDiagnostics(t *testing.T) {
	ctx := NewPipelineContext("")
	assert.NoError(t, ctx.Err())

	first := diagnostics.NewError(diagnostics.ErrL001, token.Token{Line: 3, Column: 4}, "'@'")
	first.File = "main.oll"
	ctx.Errors = append(ctx.Errors, first, diagnostics.NewError(diagnostics.ErrP003, token.Token{}))

	err := ctx.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "main.oll: [L001] unexpected character '@' at line 3:4")
	assert.Contains(t, err.Error(), "[P003] Invalid assignment target")

	var diag *diagnostics.DiagnosticError
	require.True(t, errors.As(err, &diag))
	assert.Equal(t, "unexpected character '@' at line 3:4", diag.Message())
}
