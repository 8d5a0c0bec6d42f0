package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/ollang/internal/ast"
)

type ObjectType string

const (
	NUMBER_OBJ       = "NUMBER"
	STRING_OBJ       = "STRING"
	BOOLEAN_OBJ      = "BOOLEAN"
	NULL_OBJ         = "NULL"
	ARRAY_OBJ        = "ARRAY"
	DICT_OBJ         = "DICT"
	FUNCTION_OBJ     = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	NATIVE_OBJ       = "NATIVE"
	POINTER_OBJ      = "POINTER"
	PROMISE_OBJ      = "PROMISE"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	ERROR_OBJ        = "ERROR"
	EXIT_OBJ         = "EXIT"
)

// Object is any runtime value. Values are shared by pointer: assignment
// copies the handle, so arrays, dicts and memory handles mutate in place.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return formatNumber(n.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type Dict struct {
	Pairs map[string]Object
}

func NewDict() *Dict {
	return &Dict{Pairs: make(map[string]Object)}
}

func (d *Dict) Type() ObjectType { return DICT_OBJ }
func (d *Dict) Inspect() string {
	keys := d.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + d.Pairs[k].Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Keys returns the keys in sorted order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, len(d.Pairs))
	for k := range d.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Function is a user-defined function. Snapshot holds the bindings of the
// defining frame as they were at definition time.
type Function struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Snapshot   map[string]Object
	Async      bool
	File       string
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	if f.Async {
		return "<async function " + f.Name + ">"
	}
	return "<function " + f.Name + ">"
}

type BuiltinFunction func(e *Evaluator, args ...Object) Object

type Builtin struct {
	Fn   BuiltinFunction
	Name string
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<builtin " + b.Name + ">" }

// NativeFunction is a symbol resolved from a native library.
type NativeFunction struct {
	Name    string
	Library string
	Call    func(args []uint64) (uint64, error)
}

func (n *NativeFunction) Type() ObjectType { return NATIVE_OBJ }
func (n *NativeFunction) Inspect() string  { return "<native " + n.Name + ">" }

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// ExitSignal ends the current run with a process exit code. It unwinds
// like an error, but try/catch does not intercept it.
type ExitSignal struct {
	Code int
}

func (s *ExitSignal) Type() ObjectType { return EXIT_OBJ }
func (s *ExitSignal) Inspect() string  { return fmt.Sprintf("exit(%d)", s.Code) }
func (s *ExitSignal) Error() string    { return fmt.Sprintf("exit status %d", s.Code) }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NULL  = &Null{}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// typeName is the name the type() builtin reports.
func typeName(obj Object) string {
	switch obj.(type) {
	case *Number:
		return "number"
	case *String:
		return "string"
	case *Boolean:
		return "boolean"
	case *Null:
		return "null"
	case *Array:
		return "array"
	case *Dict:
		return "dict"
	case *Function:
		return "function"
	case *Builtin, *NativeFunction:
		return "builtin"
	case *MemoryHandle:
		return "pointer"
	case *AsyncHandle:
		return "promise"
	case nil:
		return "null"
	}
	return strings.ToLower(string(obj.Type()))
}
