package evaluator

import (
	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/token"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	function := e.Eval(node.Function, env)
	if isError(function) {
		return function
	}
	args := e.evalExpressions(node.Arguments, env)
	if len(args) == 1 && isError(args[0]) {
		return args[0]
	}
	return e.applyFunction(function, args, env, node.Token)
}

// ApplyFunction calls fn from Go code, e.g. a builtin taking a callback.
// User functions get their frame on top of the current environment.
func (e *Evaluator) ApplyFunction(fn Object, args []Object) Object {
	env := e.CurrentEnv
	if env == nil {
		env = e.GlobalEnv
	}
	if env == nil {
		env = NewEnvironment()
	}
	return e.applyFunction(fn, args, env, token.Token{})
}

func (e *Evaluator) applyFunction(fn Object, args []Object, env *Environment, at token.Token) Object {
	switch fn := fn.(type) {
	case *Function:
		if err := checkFunctionArity(fn, args); err != nil {
			return err
		}
		if fn.Async {
			return e.spawnAsync(fn, args)
		}
		return e.callFunction(fn, args, env, at)
	case *Builtin:
		return fn.Fn(e, args...)
	case *NativeFunction:
		return e.callNative(fn, args)
	}
	return newError(NotCallable, "Not a function: %s", typeName(fn))
}

func checkFunctionArity(fn *Function, args []Object) *Error {
	if len(args) != len(fn.Parameters) {
		return newError(ArityMismatch, "function %s expects %d arguments, got %d",
			fn.Name, len(fn.Parameters), len(args))
	}
	return nil
}

// callFunction pushes a frame on env seeded with the closure snapshot and
// then the parameters, and runs the body in it.
func (e *Evaluator) callFunction(fn *Function, args []Object, env *Environment, at token.Token) Object {
	frame := NewEnclosedEnvironment(env)
	for name, val := range fn.Snapshot {
		frame.Set(name, val)
	}
	for i, param := range fn.Parameters {
		frame.Set(param.Value, args[i])
	}

	file := e.CurrentFile
	e.PushCall(fn.Name, file, at.Line, at.Column)
	result := e.evalBlockStatement(fn.Body, frame)
	if err, ok := result.(*Error); ok && err.StackTrace == nil {
		err.StackTrace = e.stackTrace()
	}
	e.PopCall()

	return unwrapReturnValue(result)
}

func (e *Evaluator) callNative(fn *NativeFunction, args []Object) Object {
	raw := make([]uint64, len(args))
	for i, arg := range args {
		switch arg := arg.(type) {
		case *Number:
			raw[i] = uint64(toInt64(arg.Value))
		case *MemoryHandle:
			raw[i] = arg.Address()
		case *Boolean:
			if arg.Value {
				raw[i] = 1
			}
		case *Null:
		default:
			return newError(TypeMismatch, "%s: native arguments must be numbers or pointers, got %s",
				fn.Name, typeName(arg))
		}
	}
	ret, err := fn.Call(raw)
	if err != nil {
		return newError(NativeLibraryFailure, "%s: %v", fn.Name, err)
	}
	return &Number{Value: float64(ret)}
}
