package backend

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/evaluator"
	"github.com/funvibe/ollang/internal/pipeline"
)

// TreeWalkBackend runs programs on one evaluator. The global frame is
// created on first use and kept, so successive runs (REPL lines) see
// each other's bindings, imports and allocations.
type TreeWalkBackend struct {
	Evaluator *evaluator.Evaluator
	Env       *evaluator.Environment
}

// NewTreeWalk wraps e, or a fresh evaluator when e is nil.
func NewTreeWalk(e *evaluator.Evaluator) *TreeWalkBackend {
	if e == nil {
		e = evaluator.New()
	}
	return &TreeWalkBackend{Evaluator: e}
}

func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no AST to execute")
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("cannot execute %T", ctx.AstRoot)
	}

	if ctx.FilePath != "" {
		b.Evaluator.BaseDir = filepath.Dir(ctx.FilePath)
		b.Evaluator.CurrentFile = ctx.FilePath
	}
	return b.RunProgram(program)
}

// RunProgram evaluates program in the backend's global frame.
func (b *TreeWalkBackend) RunProgram(program *ast.Program) (evaluator.Object, error) {
	if b.Env == nil {
		b.Env = b.Evaluator.NewGlobalEnvironment()
	}
	return b.Evaluator.Run(program, b.Env)
}

// RunProgramWithContext runs program until it finishes or ctx is done.
func (b *TreeWalkBackend) RunProgramWithContext(ctx context.Context, program *ast.Program) (evaluator.Object, error) {
	prev := b.Evaluator.Context
	b.Evaluator.Context = ctx
	defer func() { b.Evaluator.Context = prev }()
	return b.RunProgram(program)
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
