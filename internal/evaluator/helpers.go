package evaluator

import (
	"fmt"

	"github.com/funvibe/ollang/internal/config"
)

func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// PushCall adds a call frame to the stack
func (e *Evaluator) PushCall(name string, file string, line, column int) {
	e.CallStack = append(e.CallStack, CallFrame{
		Name:   name,
		File:   file,
		Line:   line,
		Column: column,
	})
}

// PopCall removes the top call frame
func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

func (e *Evaluator) stackTrace() []StackFrame {
	if len(e.CallStack) == 0 {
		return nil
	}
	trace := make([]StackFrame, len(e.CallStack))
	for i, frame := range e.CallStack {
		trace[i] = StackFrame{
			Name:   frame.Name,
			File:   frame.File,
			Line:   frame.Line,
			Column: frame.Column,
		}
	}
	return trace
}

// newErrorWithStack creates an error with the current stack trace
func (e *Evaluator) newErrorWithStack(kind ErrorKind, format string, a ...interface{}) *Error {
	err := newError(kind, format, a...)
	err.StackTrace = e.stackTrace()
	return err
}

// isError reports whether obj stops evaluation: runtime errors and exit
// signals both unwind to the top.
func isError(obj Object) bool {
	if obj != nil {
		t := obj.Type()
		return t == ERROR_OBJ || t == EXIT_OBJ
	}
	return false
}

// isAbrupt also counts a pending return.
func isAbrupt(obj Object) bool {
	return isError(obj) || (obj != nil && obj.Type() == RETURN_VALUE_OBJ)
}

func unwrapReturnValue(obj Object) Object {
	if returnValue, ok := obj.(*ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}

func checkArity(name string, args []Object, n int) *Error {
	if len(args) != n {
		return newError(ArityMismatch, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func checkArityRange(name string, args []Object, min, max int) *Error {
	if len(args) < min || len(args) > max {
		return newError(ArityMismatch, "%s expects %d to %d argument(s), got %d", name, min, max, len(args))
	}
	return nil
}

func numberArg(name string, obj Object) (float64, *Error) {
	n, ok := obj.(*Number)
	if !ok {
		return 0, newError(TypeMismatch, "%s requires number, got %s", name, typeName(obj))
	}
	return n.Value, nil
}

func stringArg(name string, obj Object) (string, *Error) {
	s, ok := obj.(*String)
	if !ok {
		return "", newError(TypeMismatch, "%s requires string, got %s", name, typeName(obj))
	}
	return s.Value, nil
}

func arrayArg(name string, obj Object) (*Array, *Error) {
	a, ok := obj.(*Array)
	if !ok {
		return nil, newError(TypeMismatch, "%s requires array, got %s", name, typeName(obj))
	}
	return a, nil
}

// checkArrayLen rejects growing an array to n elements past the
// configured limit.
func (e *Evaluator) checkArrayLen(n int) *Error {
	limit := config.DefaultMaxArrayLen
	if e.Settings != nil {
		limit = e.Settings.Eval.MaxArrayLen
	}
	if limit > 0 && n > limit {
		return newError(IndexOutOfBounds, "Array length %d exceeds limit of %d", n, limit)
	}
	return nil
}
