package evaluator

import (
	"github.com/funvibe/ollang/internal/ast"
)

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return newError(UndefinedVariable, "Undefined variable: %s", node.Value)
}

// evalExpressions evaluates exps left to right. On error it returns a
// one-element slice holding the error.
func (e *Evaluator) evalExpressions(exps []ast.Expression, env *Environment) []Object {
	result := make([]Object, 0, len(exps))
	for _, exp := range exps {
		evaluated := e.Eval(exp, env)
		if isError(evaluated) {
			return []Object{evaluated}
		}
		result = append(result, evaluated)
	}
	return result
}

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *Environment) Object {
	elements := e.evalExpressions(node.Elements, env)
	if len(elements) == 1 && isError(elements[0]) {
		return elements[0]
	}
	return &Array{Elements: elements}
}

func (e *Evaluator) evalDictLiteral(node *ast.DictLiteral, env *Environment) Object {
	dict := NewDict()
	for _, pair := range node.Pairs {
		val := e.Eval(pair.Value, env)
		if isError(val) {
			return val
		}
		dict.Pairs[pair.Key.Value] = val
	}
	return dict
}

// evalListComprehension binds the loop variable in a fresh frame per
// element, like for-in.
func (e *Evaluator) evalListComprehension(node *ast.ListComprehension, env *Environment) Object {
	iterable := e.Eval(node.Iterable, env)
	if isError(iterable) {
		return iterable
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return err
	}

	result := &Array{Elements: make([]Object, 0, len(items))}
	for _, item := range items {
		frame := NewEnclosedEnvironment(env)
		frame.Set(node.Variable.Value, item)
		if node.Condition != nil {
			cond := e.Eval(node.Condition, frame)
			if isError(cond) {
				return cond
			}
			if !isTruthy(cond) {
				continue
			}
		}
		val := e.Eval(node.Output, frame)
		if isError(val) {
			return val
		}
		result.Elements = append(result.Elements, val)
	}
	return result
}
