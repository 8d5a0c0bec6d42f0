package evaluator

import (
	"math"

	"github.com/funvibe/ollang/internal/ast"
)

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *Environment) Object {
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	switch node.Operator {
	case "!":
		return nativeBoolToBooleanObject(!isTruthy(right))
	case "-":
		n, ok := right.(*Number)
		if !ok {
			return newError(TypeMismatch, "Unary minus requires a number, got %s", typeName(right))
		}
		return &Number{Value: -n.Value}
	case "~":
		n, ok := right.(*Number)
		if !ok {
			return newError(TypeMismatch, "Bitwise not requires a number, got %s", typeName(right))
		}
		return &Number{Value: float64(^toInt64(n.Value))}
	}
	return newError(InvalidOperation, "Invalid unary operator: %s", node.Operator)
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	// && and || evaluate the right side only when needed.
	if node.Operator == "&&" || node.Operator == "||" {
		return e.evalLogicalExpression(node, env)
	}

	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	return evalBinaryOp(node.Operator, left, right)
}

func (e *Evaluator) evalLogicalExpression(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	if node.Operator == "&&" && !isTruthy(left) {
		return FALSE
	}
	if node.Operator == "||" && isTruthy(left) {
		return TRUE
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	return nativeBoolToBooleanObject(isTruthy(right))
}

func evalBinaryOp(op string, left, right Object) Object {
	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if lok && rok {
		return evalNumberInfix(op, ln.Value, rn.Value)
	}

	switch op {
	case "+":
		return &String{Value: left.Inspect() + right.Inspect()}
	case "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	case "**":
		return newError(TypeMismatch, "Power operator (**) requires number operands. Got %s and %s",
			typeName(left), typeName(right))
	}
	return newError(InvalidOperation, "Invalid operation: '%s' between %s and %s",
		op, typeName(left), typeName(right))
}

func evalNumberInfix(op string, a, b float64) Object {
	switch op {
	case "+":
		return &Number{Value: a + b}
	case "-":
		return &Number{Value: a - b}
	case "*":
		return &Number{Value: a * b}
	case "/":
		if b == 0 {
			return &Number{Value: 0}
		}
		return &Number{Value: a / b}
	case "%":
		return &Number{Value: math.Mod(a, b)}
	case "**":
		return &Number{Value: math.Pow(a, b)}
	case "<":
		return nativeBoolToBooleanObject(a < b)
	case ">":
		return nativeBoolToBooleanObject(a > b)
	case "<=":
		return nativeBoolToBooleanObject(a <= b)
	case ">=":
		return nativeBoolToBooleanObject(a >= b)
	case "==":
		return nativeBoolToBooleanObject(a == b)
	case "!=":
		return nativeBoolToBooleanObject(a != b)
	case "&":
		return &Number{Value: float64(toInt64(a) & toInt64(b))}
	case "|":
		return &Number{Value: float64(toInt64(a) | toInt64(b))}
	case "^":
		return &Number{Value: float64(toInt64(a) ^ toInt64(b))}
	case "<<":
		return &Number{Value: float64(toInt64(a) << uint64(toInt64(b)))}
	case ">>":
		return &Number{Value: float64(toInt64(a) >> uint64(toInt64(b)))}
	}
	return newError(InvalidOperation, "Invalid operation: '%s' between number and number", op)
}
