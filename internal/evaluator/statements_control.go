package evaluator

import (
	"github.com/funvibe/ollang/internal/ast"
)

// Each branch and each loop iteration runs in a frame of its own. Since
// assignment writes to the innermost frame, a loop body cannot rebind a
// variable of the enclosing scope; mutation of shared arrays and dicts is
// visible as usual.

func (e *Evaluator) evalIfStatement(node *ast.IfStatement, env *Environment) Object {
	condition := e.Eval(node.Condition, env)
	if isError(condition) {
		return condition
	}
	if isTruthy(condition) {
		return e.evalBlockStatement(node.Consequence, NewEnclosedEnvironment(env))
	}
	if node.Alternative != nil {
		return e.evalBlockStatement(node.Alternative, NewEnclosedEnvironment(env))
	}
	return NULL
}

func (e *Evaluator) evalWhileStatement(node *ast.WhileStatement, env *Environment) Object {
	var result Object = NULL
	for {
		condition := e.Eval(node.Condition, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return result
		}
		result = e.evalBlockStatement(node.Body, NewEnclosedEnvironment(env))
		if isAbrupt(result) {
			return result
		}
	}
}

func (e *Evaluator) evalForStatement(node *ast.ForStatement, env *Environment) Object {
	iterable := e.Eval(node.Iterable, env)
	if isError(iterable) {
		return iterable
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return err
	}
	var result Object = NULL
	for _, item := range items {
		frame := NewEnclosedEnvironment(env)
		frame.Set(node.Variable.Value, item)
		result = e.evalBlockStatement(node.Body, frame)
		if isAbrupt(result) {
			return result
		}
	}
	return result
}

// iterationItems lists what for-in and comprehensions walk over: array
// elements as they are at loop entry, or the characters of a string.
func iterationItems(obj Object) ([]Object, *Error) {
	switch obj := obj.(type) {
	case *Array:
		return append([]Object(nil), obj.Elements...), nil
	case *String:
		runes := []rune(obj.Value)
		items := make([]Object, len(runes))
		for i, r := range runes {
			items[i] = &String{Value: string(r)}
		}
		return items, nil
	}
	return nil, newError(TypeMismatch, "Cannot iterate over %s", typeName(obj))
}
