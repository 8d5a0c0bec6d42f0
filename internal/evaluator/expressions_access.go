package evaluator

import (
	"math"

	"github.com/funvibe/ollang/internal/ast"
)

func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	index := e.Eval(node.Index, env)
	if isError(index) {
		return index
	}
	return indexValue(left, index)
}

func indexValue(left, index Object) Object {
	switch left := left.(type) {
	case *Array:
		idx, ok := indexNumber(index)
		if !ok {
			return newError(TypeMismatch, "Array index must be a number")
		}
		if idx < 0 || idx >= len(left.Elements) {
			return newError(IndexOutOfBounds, "Array index out of bounds")
		}
		return left.Elements[idx]
	case *String:
		idx, ok := indexNumber(index)
		if !ok {
			return newError(TypeMismatch, "String index must be a number")
		}
		runes := []rune(left.Value)
		if idx < 0 || idx >= len(runes) {
			return newError(IndexOutOfBounds, "String index out of bounds")
		}
		return &String{Value: string(runes[idx])}
	case *Dict:
		key := index.Inspect()
		val, ok := left.Pairs[key]
		if !ok {
			return newError(KeyNotFound, "Key not found: %s", key)
		}
		return val
	}
	return newError(TypeMismatch, "Cannot index this type")
}

// indexNumber truncates a numeric index. Non-finite values map to -1 so
// they fail the bounds check.
func indexNumber(obj Object) (int, bool) {
	n, ok := obj.(*Number)
	if !ok {
		return 0, false
	}
	if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) || n.Value < 0 || n.Value > math.MaxInt32 {
		return -1, true
	}
	return int(n.Value), true
}

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	dict, ok := left.(*Dict)
	if !ok {
		return newError(TypeMismatch, "Cannot access member of this type")
	}
	val, ok := dict.Pairs[node.Member.Value]
	if !ok {
		return newError(KeyNotFound, "Key not found: %s", node.Member.Value)
	}
	return val
}

func (e *Evaluator) evalAssignExpression(node *ast.AssignExpression, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		env.Set(target.Value, val)
		return val

	case *ast.IndexExpression:
		container := e.Eval(target.Left, env)
		if isError(container) {
			return container
		}
		index := e.Eval(target.Index, env)
		if isError(index) {
			return index
		}
		if err := e.assignIndex(container, index, val); err != nil {
			return err
		}
		return val

	case *ast.MemberExpression:
		container := e.Eval(target.Left, env)
		if isError(container) {
			return container
		}
		dict, ok := container.(*Dict)
		if !ok {
			return newError(TypeMismatch, "Cannot access member of this type")
		}
		dict.Pairs[target.Member.Value] = val
		return val
	}
	return newError(InvalidOperation, "Invalid assignment target")
}

// assignIndex stores val; writing past the end of an array pads the gap
// with null, up to the configured array length limit.
func (e *Evaluator) assignIndex(container, index, val Object) *Error {
	switch c := container.(type) {
	case *Array:
		idx, ok := indexNumber(index)
		if !ok {
			return newError(TypeMismatch, "Array index must be a number")
		}
		if idx < 0 {
			return newError(IndexOutOfBounds, "Array index out of bounds")
		}
		if idx >= len(c.Elements) {
			if err := e.checkArrayLen(idx + 1); err != nil {
				return err
			}
			grown := make([]Object, idx+1)
			for i := copy(grown, c.Elements); i < idx; i++ {
				grown[i] = NULL
			}
			c.Elements = grown
		}
		c.Elements[idx] = val
		return nil
	case *Dict:
		c.Pairs[index.Inspect()] = val
		return nil
	}
	return newError(TypeMismatch, "Cannot index this type")
}
