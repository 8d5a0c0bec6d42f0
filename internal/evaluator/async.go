package evaluator

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/token"
)

// AsyncHandle is the result of an async call. It resolves exactly once;
// every await after that returns the cached value.
type AsyncHandle struct {
	ID   string
	Name string

	done   chan struct{}
	once   sync.Once
	result Object
}

func newAsyncHandle(name string) *AsyncHandle {
	return &AsyncHandle{
		ID:   uuid.NewString(),
		Name: name,
		done: make(chan struct{}),
	}
}

func (h *AsyncHandle) Type() ObjectType { return PROMISE_OBJ }
func (h *AsyncHandle) Inspect() string {
	state := "pending"
	if h.Resolved() {
		state = "resolved"
	}
	return fmt.Sprintf("<async handle %s %s>", h.ID, state)
}

func (h *AsyncHandle) Resolved() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *AsyncHandle) resolve(result Object) {
	h.once.Do(func() {
		h.result = result
		close(h.done)
	})
}

// Wait blocks until the task has finished.
func (h *AsyncHandle) Wait() Object {
	<-h.done
	return h.result
}

// spawnAsync starts fn on its own goroutine with a cloned evaluator. The
// task's frames hang off the global frame, never off the caller's.
func (e *Evaluator) spawnAsync(fn *Function, args []Object) *AsyncHandle {
	handle := newAsyncHandle(fn.Name)
	task := e.Clone()
	base := e.GlobalEnv
	if base == nil {
		base = NewEnvironment()
	}
	e.Log.Debug().Str("task", handle.ID).Str("fn", fn.Name).Msg("task spawn")

	go func() {
		defer func() {
			if r := recover(); r != nil {
				handle.resolve(newError(InvalidOperation, "async task %s panicked: %v", fn.Name, r))
			}
		}()
		result := task.callFunction(fn, args, NewEnclosedEnvironment(base), token.Token{})
		task.Log.Debug().Str("task", handle.ID).Str("fn", fn.Name).Msg("task resolve")
		handle.resolve(result)
	}()
	return handle
}

// sleepAsync resolves to null after d, or earlier when the run is
// cancelled.
func (e *Evaluator) sleepAsync(d time.Duration) *AsyncHandle {
	handle := newAsyncHandle("async_sleep")
	ctx := e.Context
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		if ctx == nil {
			<-timer.C
			handle.resolve(NULL)
			return
		}
		select {
		case <-timer.C:
			handle.resolve(NULL)
		case <-ctx.Done():
			handle.resolve(newError(ExecutionLimit, "execution cancelled: %v", ctx.Err()))
		}
	}()
	return handle
}

func (e *Evaluator) evalAwaitExpression(node *ast.AwaitExpression, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if isError(val) {
		return val
	}
	return e.await(val)
}

func (e *Evaluator) await(val Object) Object {
	switch val := val.(type) {
	case *AsyncHandle:
		return e.wait(val)
	case *Function:
		if !val.Async {
			break
		}
		if err := checkFunctionArity(val, nil); err != nil {
			return err
		}
		return e.wait(e.spawnAsync(val, nil))
	}
	return newError(TypeMismatch, "Cannot await non-promise value")
}

func (e *Evaluator) wait(h *AsyncHandle) Object {
	if e.Context == nil {
		return h.Wait()
	}
	select {
	case <-h.done:
		return h.result
	case <-e.Context.Done():
		return newError(ExecutionLimit, "execution cancelled: %v", e.Context.Err())
	}
}
