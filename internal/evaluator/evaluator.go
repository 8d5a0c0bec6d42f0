package evaluator

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/modules"
	"github.com/funvibe/ollang/internal/native"
)

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name   string // Function name
	File   string // Source file
	Line   int    // Line number
	Column int    // Column number
}

// ModuleLoader resolves and parses imported files.
type ModuleLoader interface {
	Load(importPath, baseDir string) (*modules.Module, error)
}

// NativeResolver turns a library path and symbol into a callable.
type NativeResolver interface {
	Resolve(path, symbol string) (func(args []uint64) (uint64, error), error)
	Close() error
}

// Evaluator walks the AST. One Evaluator runs on one goroutine; async
// tasks get their own via Clone and share only the synchronized parts
// (output, arena, loader, natives, global frame).
type Evaluator struct {
	// Context for cancellation
	Context context.Context

	Log      zerolog.Logger
	Settings *config.Settings

	Output *OutputSink
	// Out receives input() prompts.
	Out io.Writer
	In  *bufio.Reader

	Loader  ModuleLoader
	Arena   *Arena
	Natives NativeResolver

	// BaseDir for import resolution
	BaseDir     string
	CurrentFile string

	GlobalEnv  *Environment
	CurrentEnv *Environment

	CallStack []CallFrame
	Started   time.Time

	evalDepth int
	maxDepth  int
}

func New() *Evaluator {
	return NewWithSettings(config.DefaultSettings())
}

// NewWithSettings builds an evaluator with its own arena, loader, native
// registry and output buffer.
func NewWithSettings(s *config.Settings) *Evaluator {
	if s == nil {
		s = config.DefaultSettings()
	}
	log := zerolog.Nop()
	loader := modules.NewLoaderFromSettings(s)
	loader.Log = log
	natives := native.NewRegistry()
	natives.Log = log
	return &Evaluator{
		Context:  context.Background(),
		Log:      log,
		Settings: s,
		Output:   NewOutputSink(nil),
		Out:      os.Stdout,
		In:       bufio.NewReader(os.Stdin),
		Loader:   loader,
		Arena:    NewArena(s.Sandbox.MaxBytes, log),
		Natives:  natives,
		BaseDir:  ".",
		Started:  time.Now(),
		maxDepth: s.Eval.MaxDepth,
	}
}

// SetLogger propagates l to every component that logs.
func (e *Evaluator) SetLogger(l zerolog.Logger) {
	e.Log = l
	if e.Arena != nil {
		e.Arena.log = l
	}
	if loader, ok := e.Loader.(*modules.Loader); ok {
		loader.Log = l
	}
	if reg, ok := e.Natives.(*native.Registry); ok {
		reg.Log = l
	}
}

// Clone returns an evaluator for another goroutine. The call stack is
// copied; everything shared is already safe for concurrent use.
func (e *Evaluator) Clone() *Evaluator {
	c := *e
	c.CallStack = append([]CallFrame(nil), e.CallStack...)
	c.evalDepth = 0
	return &c
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	if e.maxDepth > 0 && e.evalDepth > e.maxDepth {
		e.evalDepth--
		return newError(ExecutionLimit, "maximum recursion depth exceeded")
	}

	// Check for cancellation
	if e.Context != nil {
		select {
		case <-e.Context.Done():
			e.evalDepth--
			return newError(ExecutionLimit, "execution cancelled: %v", e.Context.Err())
		default:
		}
	}

	oldEnv := e.CurrentEnv
	e.CurrentEnv = env
	defer func() {
		e.CurrentEnv = oldEnv
		e.evalDepth--
	}()

	obj := e.evalCore(node, env)
	if err, ok := obj.(*Error); ok {
		if err.Line == 0 && node != nil {
			if provider, ok := node.(ast.TokenProvider); ok {
				tok := provider.GetToken()
				err.Line = tok.Line
				err.Column = tok.Column
			}
		}
	}
	return obj
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, NewEnclosedEnvironment(env))
	case *ast.FunctionStatement:
		return e.evalFunctionStatement(node, env)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(node, env)
	case *ast.IfStatement:
		return e.evalIfStatement(node, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(node, env)
	case *ast.ForStatement:
		return e.evalForStatement(node, env)
	case *ast.ThrowStatement:
		return e.evalThrowStatement(node, env)
	case *ast.TryStatement:
		return e.evalTryStatement(node, env)
	case *ast.ImportStatement:
		return e.evalImportStatement(node, env)
	case *ast.ImportDLLStatement:
		return e.evalImportDLLStatement(node, env)
	case *ast.NamespaceStatement:
		return e.evalNamespaceStatement(node, env)

	// Expressions
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.NumberLiteral:
		return &Number{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.NullLiteral:
		return NULL
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node, env)
	case *ast.DictLiteral:
		return e.evalDictLiteral(node, env)
	case *ast.ListComprehension:
		return e.evalListComprehension(node, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.AssignExpression:
		return e.evalAssignExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, env)
	case *ast.AwaitExpression:
		return e.evalAwaitExpression(node, env)
	case *ast.AllocExpression:
		return e.evalAllocExpression(node, env)
	case *ast.FreeExpression:
		return e.evalFreeExpression(node, env)
	case *ast.ReadExpression:
		return e.evalReadExpression(node, env)
	case *ast.WriteExpression:
		return e.evalWriteExpression(node, env)
	case *ast.SyscallExpression:
		return e.evalSyscallExpression(node, env)
	}
	return newError(InvalidOperation, "unknown node type %T", node)
}
