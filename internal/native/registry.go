// Package native resolves symbols from shared libraries for ImportDLL.
package native

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrCgoRequired is returned by builds without cgo.
var ErrCgoRequired = errors.New("native libraries require cgo")

// LoadError reports a library that could not be opened.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return "Failed to load library: " + e.Path }
func (e *LoadError) Unwrap() error { return e.Err }

// SymbolError reports a symbol missing from an opened library.
type SymbolError struct {
	Library string
	Symbol  string
	Err     error
}

func (e *SymbolError) Error() string { return "Function not found in library: " + e.Symbol }
func (e *SymbolError) Unwrap() error { return e.Err }

// Func is a resolved symbol taking and returning raw 64-bit words.
type Func = func(args []uint64) (uint64, error)

// library is what the platform layer hands back for an opened path.
type library interface {
	symbol(name string) (Func, error)
	close() error
}

type entry struct {
	lib  library
	refs int
}

// Registry owns the libraries opened by one interpreter. Each path is
// opened once and reference counted; Close releases everything.
type Registry struct {
	mu      sync.Mutex
	libs    map[string]*entry
	started time.Time

	Log zerolog.Logger
}

func NewRegistry() *Registry {
	return &Registry{
		libs:    make(map[string]*entry),
		started: time.Now(),
		Log:     zerolog.Nop(),
	}
}

// Resolve returns a callable for symbol in the library at path. A few
// process-level symbols are answered in Go without opening anything.
func (r *Registry) Resolve(path, symbol string) (func(args []uint64) (uint64, error), error) {
	if shim, ok := r.shim(symbol); ok {
		r.Log.Debug().Str("path", path).Str("symbol", symbol).Msg("native shim")
		return shim, nil
	}
	if err := r.Open(path); err != nil {
		return nil, err
	}
	return r.Symbol(path, symbol)
}

// Open loads path, or adds a reference when it is already loaded.
func (r *Registry) Open(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.libs[path]; ok {
		e.refs++
		r.Log.Debug().Str("path", path).Int("refs", e.refs).Msg("native library load")
		return nil
	}
	lib, err := openLibrary(path)
	if err != nil {
		if errors.Is(err, ErrCgoRequired) {
			return err
		}
		return &LoadError{Path: path, Err: err}
	}
	r.libs[path] = &entry{lib: lib, refs: 1}
	r.Log.Debug().Str("path", path).Int("refs", 1).Msg("native library load")
	return nil
}

// Symbol looks name up in an already opened library.
func (r *Registry) Symbol(path, name string) (Func, error) {
	r.mu.Lock()
	e, ok := r.libs[path]
	r.mu.Unlock()
	if !ok {
		return nil, &LoadError{Path: path}
	}
	fn, err := e.lib.symbol(name)
	if err != nil {
		return nil, &SymbolError{Library: path, Symbol: name, Err: err}
	}
	return fn, nil
}

// Release drops one reference to path and closes it at zero.
func (r *Registry) Release(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.libs[path]
	if !ok {
		return nil
	}
	e.refs--
	r.Log.Debug().Str("path", path).Int("refs", e.refs).Msg("native library release")
	if e.refs > 0 {
		return nil
	}
	delete(r.libs, path)
	return e.lib.close()
}

// Refs reports the reference count of path.
func (r *Registry) Refs(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.libs[path]; ok {
		return e.refs
	}
	return 0
}

// Close releases every library regardless of its count.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for path, e := range r.libs {
		r.Log.Debug().Str("path", path).Int("refs", 0).Msg("native library release")
		if err := e.lib.close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.libs, path)
	}
	return errors.Join(errs...)
}

func (r *Registry) shim(symbol string) (Func, bool) {
	switch symbol {
	case "GetCurrentProcessId", "getpid":
		return func([]uint64) (uint64, error) { return uint64(os.Getpid()), nil }, true
	case "GetCurrentThreadId", "gettid":
		return func([]uint64) (uint64, error) { return uint64(ThreadID()), nil }, true
	case "GetTickCount", "GetTickCount64":
		return func([]uint64) (uint64, error) {
			return uint64(time.Since(r.started).Milliseconds()), nil
		}, true
	case "Sleep":
		return func(args []uint64) (uint64, error) {
			if len(args) > 0 {
				time.Sleep(time.Duration(args[0]) * time.Millisecond)
			}
			return 0, nil
		}, true
	}
	return nil, false
}
