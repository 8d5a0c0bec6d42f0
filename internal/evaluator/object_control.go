package evaluator

import (
	"fmt"
	"strings"
)

// ErrorKind classifies runtime errors. try/catch only sees the message.
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	TypeMismatch
	ArityMismatch
	IndexOutOfBounds
	KeyNotFound
	InvalidOperation
	NotCallable
	ImportFailure
	NativeLibraryFailure
	MemorySandboxViolation
	UserError
	ExecutionLimit
)

var errorKindNames = map[ErrorKind]string{
	UndefinedVariable:      "UndefinedVariable",
	TypeMismatch:           "TypeMismatch",
	ArityMismatch:          "ArityMismatch",
	IndexOutOfBounds:       "IndexOutOfBounds",
	KeyNotFound:            "KeyNotFound",
	InvalidOperation:       "InvalidOperation",
	NotCallable:            "NotCallable",
	ImportFailure:          "ImportFailure",
	NativeLibraryFailure:   "NativeLibraryFailure",
	MemorySandboxViolation: "MemorySandboxViolation",
	UserError:              "UserError",
	ExecutionLimit:         "ExecutionLimit",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a runtime error travelling in-band through evaluation.
type Error struct {
	Kind       ErrorKind
	Message    string
	Line       int
	Column     int
	StackTrace []StackFrame
}

// StackFrame for error stack traces
type StackFrame struct {
	Name   string
	File   string
	Line   int
	Column int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	var result string
	if e.Line > 0 {
		result = fmt.Sprintf("ERROR at %d:%d: %s", e.Line, e.Column, e.Message)
	} else {
		result = "ERROR: " + e.Message
	}
	if trace := e.FormatStack(""); trace != "" {
		result += "\n" + trace
	}
	return result
}

// FormatStack renders the call chain innermost first. defaultFile fills
// frames whose file is unknown.
func (e *Error) FormatStack(defaultFile string) string {
	if len(e.StackTrace) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Stack trace:")
	for i := len(e.StackTrace) - 1; i >= 0; i-- {
		frame := e.StackTrace[i]
		file := frame.File
		if file == "" {
			file = defaultFile
		}
		fmt.Fprintf(&sb, "\n  at %s:%d (called %s)", file, frame.Line, frame.Name)
	}
	return sb.String()
}

// FatalError is a Go panic recovered at the host boundary.
type FatalError struct {
	Value interface{}
	Stack []byte
}

func (f *FatalError) Error() string {
	return fmt.Sprintf("Fatal Error: %v", f.Value)
}

// RunError is an uncaught runtime error at the host boundary.
type RunError struct {
	Err *Error
}

func (r *RunError) Error() string {
	return "Error: " + r.Err.Message
}

// Kind reports the kind of the underlying error.
func (r *RunError) Kind() ErrorKind {
	return r.Err.Kind
}
