package evaluator

import (
	"os"
	"time"

	"github.com/funvibe/ollang/internal/ast"
)

// SyscallFailure is returned for unknown codes and when syscalls are
// disabled.
const SyscallFailure = 0xC0000000

const syscallArgs = 6

const (
	SysWriteFile = 1
	SysReadFile  = 2
	SysDelete    = 3
	SysGetPid    = 4
	SysTicks     = 5
)

func (e *Evaluator) evalSyscallExpression(node *ast.SyscallExpression, env *Environment) Object {
	values := e.evalExpressions(append([]ast.Expression{node.Code}, node.Arguments...), env)
	if len(values) == 1 && isError(values[0]) {
		return values[0]
	}
	code, ok := values[0].(*Number)
	if !ok {
		return newError(TypeMismatch, "syscall code must be a number")
	}
	if len(values)-1 > syscallArgs {
		return newError(ArityMismatch, "syscall takes at most %d arguments, got %d", syscallArgs, len(values)-1)
	}

	var args [syscallArgs]uint64
	for i, v := range values[1:] {
		switch v := v.(type) {
		case *Number:
			args[i] = uint64(toInt64(v.Value))
		case *MemoryHandle:
			args[i] = v.Address()
		default:
			return newError(TypeMismatch, "syscall arguments must be numbers or pointers, got %s", typeName(v))
		}
	}

	ret, err := e.Syscall(toInt64(code.Value), args)
	if err != nil {
		return err
	}
	return &Number{Value: float64(ret)}
}

// Syscall dispatches one entry of the fixed code table. Path and content
// arguments are sandbox addresses.
func (e *Evaluator) Syscall(code int64, a [syscallArgs]uint64) (uint64, *Error) {
	if e.Settings != nil && !e.Settings.Sandbox.AllowSyscalls {
		return SyscallFailure, nil
	}

	switch code {
	case SysWriteFile:
		path, err := e.Arena.CString(a[0])
		if err != nil {
			return 0, err
		}
		data, err := e.Arena.ReadBytes(a[1], int(a[2]))
		if err != nil {
			return 0, err
		}
		if os.WriteFile(path, data, 0o644) != nil {
			return 0, nil
		}
		return 1, nil

	case SysReadFile:
		path, err := e.Arena.CString(a[0])
		if err != nil {
			return 0, err
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return 0, nil
		}
		if uint64(len(data)) > a[2] {
			data = data[:a[2]]
		}
		if err := e.Arena.WriteBytes(a[1], data); err != nil {
			return 0, err
		}
		return uint64(len(data)), nil

	case SysDelete:
		path, err := e.Arena.CString(a[0])
		if err != nil {
			return 0, err
		}
		if os.Remove(path) != nil {
			return 0, nil
		}
		return 1, nil

	case SysGetPid:
		return uint64(os.Getpid()), nil

	case SysTicks:
		return uint64(time.Since(e.Started).Milliseconds()), nil
	}
	return SyscallFailure, nil
}
