package evaluator

import (
	"errors"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/modules"
)

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = NULL
	for _, statement := range program.Statements {
		result = e.Eval(statement, env)
		switch result := result.(type) {
		case *ReturnValue:
			return result.Value
		case *Error, *ExitSignal:
			return result
		}
	}
	return result
}

// evalStatements runs stmts in env without pushing a frame. A return,
// error or exit stops the list and is handed to the caller unchanged.
func (e *Evaluator) evalStatements(stmts []ast.Statement, env *Environment) Object {
	var result Object = NULL
	for _, statement := range stmts {
		result = e.Eval(statement, env)
		if isAbrupt(result) {
			return result
		}
	}
	return result
}

// evalBlockStatement runs a block in frame, which the caller has already
// pushed.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, frame *Environment) Object {
	if block == nil {
		return NULL
	}
	return e.evalStatements(block.Statements, frame)
}

func (e *Evaluator) evalFunctionStatement(node *ast.FunctionStatement, env *Environment) Object {
	fn := &Function{
		Name:       node.Name.Value,
		Parameters: node.Parameters,
		Body:       node.Body,
		Async:      node.Async,
		File:       e.CurrentFile,
		Snapshot:   env.GetStore(),
	}
	// The function sees itself, so recursion does not depend on the caller.
	fn.Snapshot[fn.Name] = fn
	env.Set(fn.Name, fn)
	return NULL
}

func (e *Evaluator) evalReturnStatement(node *ast.ReturnStatement, env *Environment) Object {
	if node.Value == nil {
		return &ReturnValue{Value: NULL}
	}
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	return &ReturnValue{Value: val}
}

func (e *Evaluator) evalThrowStatement(node *ast.ThrowStatement, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	return e.newErrorWithStack(UserError, "%s", val.Inspect())
}

func (e *Evaluator) evalTryStatement(node *ast.TryStatement, env *Environment) Object {
	result := e.evalBlockStatement(node.Body, NewEnclosedEnvironment(env))
	err, ok := result.(*Error)
	if !ok || err.Kind == ExecutionLimit {
		return result
	}
	frame := NewEnclosedEnvironment(env)
	frame.Set(node.CatchVar.Value, &String{Value: err.Message})
	return e.evalBlockStatement(node.Handler, frame)
}

func (e *Evaluator) evalNamespaceStatement(node *ast.NamespaceStatement, env *Environment) Object {
	frame := NewEnclosedEnvironment(env)
	result := e.evalBlockStatement(node.Body, frame)
	if isError(result) {
		return result
	}
	env.Set(node.Name.Value, &Dict{Pairs: frame.GetStore()})
	if result.Type() == RETURN_VALUE_OBJ {
		return result
	}
	return NULL
}

// evalImportStatement runs the module's cached program in the importing
// frame. Re-importing the same path executes it again without reparsing.
func (e *Evaluator) evalImportStatement(node *ast.ImportStatement, env *Environment) Object {
	path := node.Path.Value
	if e.Loader == nil {
		return newError(ImportFailure, "Cannot import module: %s", path)
	}
	mod, err := e.Loader.Load(path, e.BaseDir)
	if err != nil {
		if errors.Is(err, modules.ErrModuleNotFound) {
			return newError(ImportFailure, "Cannot import module: %s", path)
		}
		return newError(ImportFailure, "Cannot import module: %s: %v", path, err)
	}

	oldDir, oldFile := e.BaseDir, e.CurrentFile
	e.BaseDir, e.CurrentFile = mod.Dir, mod.Path
	defer func() {
		e.BaseDir, e.CurrentFile = oldDir, oldFile
	}()

	e.Log.Debug().Str("path", mod.Path).Msg("import execute")
	for _, statement := range mod.Program.Statements {
		result := e.Eval(statement, env)
		if isError(result) {
			return result
		}
		if result.Type() == RETURN_VALUE_OBJ {
			break
		}
	}
	return NULL
}

func (e *Evaluator) evalImportDLLStatement(node *ast.ImportDLLStatement, env *Environment) Object {
	args := []ast.Expression{node.Path, node.Symbol}
	if node.Alias != nil {
		args = append(args, node.Alias)
	}
	values := e.evalExpressions(args, env)
	if len(values) == 1 && isError(values[0]) {
		return values[0]
	}
	result := e.importNative(env, values...)
	if isError(result) {
		return result
	}
	return NULL
}
