package evaluator

import (
	"errors"
	"runtime/debug"
	"strings"

	"github.com/funvibe/ollang/internal/ast"
)

// NewGlobalEnvironment returns a frame with every builtin registered.
func (e *Evaluator) NewGlobalEnvironment() *Environment {
	env := NewEnvironment()
	RegisterBuiltins(env)
	e.GlobalEnv = env
	return env
}

// Run evaluates program against env. An uncaught runtime error comes back
// as a *RunError, exit() as an *ExitSignal and a Go panic as a
// *FatalError; the result is then nil.
func (e *Evaluator) Run(program *ast.Program, env *Environment) (result Object, err error) {
	defer e.recoverFatal(&result, &err)
	if env == nil {
		env = e.GlobalEnv
	}
	if env == nil {
		env = e.NewGlobalEnvironment()
	}
	if e.GlobalEnv == nil {
		e.GlobalEnv = env
	}
	if program.File != "" && e.CurrentFile == "" {
		e.CurrentFile = program.File
	}

	return hostResult(e.Eval(program, env))
}

// Call applies fn to args from host code, with the same error mapping
// as Run.
func (e *Evaluator) Call(fn Object, args []Object) (result Object, err error) {
	defer e.recoverFatal(&result, &err)
	return hostResult(e.ApplyFunction(fn, args))
}

func hostResult(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Error:
		return nil, &RunError{Err: obj}
	case *ExitSignal:
		return nil, obj
	}
	return obj, nil
}

// recoverFatal is deferred by the host entry points. The call stack and
// depth counter are reset so the evaluator stays usable.
func (e *Evaluator) recoverFatal(result *Object, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e.Log.Error().Interface("panic", r).Msg("evaluator panic")
	e.CallStack = nil
	e.evalDepth = 0
	*result = nil
	*err = &FatalError{Value: r, Stack: debug.Stack()}
}

// FormatRun renders a run the way hosts print it: the output lines, or
// the error line when the run failed.
func FormatRun(output []string, err error) string {
	var exit *ExitSignal
	if err != nil && !errors.As(err, &exit) {
		return err.Error()
	}
	return strings.Join(output, "\n")
}
