package diagnostics

import (
	"fmt"

	"github.com/funvibe/ollang/internal/token"
)

type ErrorCode string

const (
	// Lexical
	ErrL001 ErrorCode = "L001" // unexpected character
	ErrL002 ErrorCode = "L002" // malformed literal

	// Parse
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token
	ErrP003 ErrorCode = "P003" // invalid assignment target
	ErrP004 ErrorCode = "P004" // invalid dictionary key
	ErrP005 ErrorCode = "P005" // nesting too deep
	ErrP006 ErrorCode = "P006" // other syntax errors

	// Import / module
	ErrM001 ErrorCode = "M001"

	// Runtime
	ErrR001 ErrorCode = "R001"
	ErrR002 ErrorCode = "R002" // recovered Go panic
)

var messages = map[ErrorCode]string{
	ErrL001: "unexpected character %s",
	ErrL002: "%s",
	ErrP001: "Unexpected token '%s' '%s'",
	ErrP002: "Expected %s but got '%s' '%s'",
	ErrP003: "Invalid assignment target",
	ErrP004: "Dictionary keys must be string literals",
	ErrP005: "%s",
	ErrP006: "%s",
	ErrM001: "%s",
	ErrR001: "%s",
	ErrR002: "Fatal Error: %v",
}

// DiagnosticError is a located error produced by a pipeline stage.
type DiagnosticError struct {
	Code  ErrorCode
	Token token.Token
	File  string
	Msg   string
}

// NewError formats the message registered for code with args.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	format, ok := messages[code]
	if !ok {
		format = "%v"
	}
	return &DiagnosticError{
		Code:  code,
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.Token.Line > 0 {
		loc = fmt.Sprintf(" at line %d:%d", e.Token.Line, e.Token.Column)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: [%s] %s%s", e.File, e.Code, e.Msg, loc)
	}
	return fmt.Sprintf("[%s] %s%s", e.Code, e.Msg, loc)
}

// Message returns the message with its location, without code or file.
func (e *DiagnosticError) Message() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s at line %d:%d", e.Msg, e.Token.Line, e.Token.Column)
	}
	return e.Msg
}
