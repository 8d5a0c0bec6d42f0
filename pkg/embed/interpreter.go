// Package ollang embeds the OLLang interpreter in Go programs.
package ollang

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/rs/zerolog"

	"github.com/funvibe/ollang/internal/backend"
	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/evaluator"
	"github.com/funvibe/ollang/internal/lexer"
	"github.com/funvibe/ollang/internal/parser"
	"github.com/funvibe/ollang/internal/pipeline"
)

// Interpreter is one OLLang instance: a global frame, an import cache, a
// memory arena and a native library registry. Calls are serialized.
type Interpreter struct {
	mu         sync.Mutex
	settings   *config.Settings
	backend    *backend.TreeWalkBackend
	marshaller *Marshaller
}

func New() *Interpreter {
	return NewWithSettings(config.DefaultSettings())
}

func NewWithSettings(s *config.Settings) *Interpreter {
	if s == nil {
		s = config.DefaultSettings()
	}
	e := evaluator.NewWithSettings(s)
	b := backend.NewTreeWalk(e)
	b.Env = e.NewGlobalEnvironment()
	return &Interpreter{
		settings:   s,
		backend:    b,
		marshaller: NewMarshaller(),
	}
}

// Evaluator exposes the underlying evaluator, e.g. to redirect input.
func (i *Interpreter) Evaluator() *evaluator.Evaluator {
	return i.backend.Evaluator
}

func (i *Interpreter) Settings() *config.Settings {
	return i.settings
}

// SetLogger routes interpreter debug events to l.
func (i *Interpreter) SetLogger(l zerolog.Logger) {
	i.backend.Evaluator.SetLogger(l)
}

// SetOutput streams printed lines to w instead of buffering them.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.backend.Evaluator.Output = evaluator.NewOutputSink(w)
}

// Output returns and clears the buffered printed lines.
func (i *Interpreter) Output() []string {
	return i.backend.Evaluator.Output.Drain()
}

// Bind makes a Go function or value available to scripts as a global.
func (i *Interpreter) Bind(name string, val interface{}) error {
	var obj evaluator.Object
	if v := reflect.ValueOf(val); v.Kind() == reflect.Func && !v.IsNil() {
		obj = i.marshaller.hostFunction(name, v)
	} else {
		var err error
		if obj, err = i.marshaller.ToValue(val); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.backend.Env.Set(name, obj)
	return nil
}

// Set sets a global variable. Functions are bound as with Bind.
func (i *Interpreter) Set(name string, val interface{}) error {
	return i.Bind(name, val)
}

// Get retrieves a global variable as a Go value.
func (i *Interpreter) Get(name string) (interface{}, error) {
	i.mu.Lock()
	obj, ok := i.backend.Env.Get(name)
	i.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return i.marshaller.FromValue(obj, nil)
}

// Call calls a global function (script-defined or bound) by name. An
// async function yields its handle; await it from a script.
func (i *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fnObj, ok := i.backend.Env.Get(funcName)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}

	callArgs := make([]evaluator.Object, len(args))
	for n, arg := range args {
		obj, err := i.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", n+1, err)
		}
		callArgs[n] = obj
	}

	e := i.backend.Evaluator
	e.CurrentEnv = i.backend.Env
	result, err := e.Call(fnObj, callArgs)
	if err != nil {
		return nil, err
	}
	return i.marshaller.FromValue(result, nil)
}

// Eval runs code in the global frame and returns the value of its last
// statement.
func (i *Interpreter) Eval(code string) (interface{}, error) {
	obj, err := i.exec(code, "")
	if err != nil {
		return nil, err
	}
	return i.marshaller.FromValue(obj, nil)
}

// Run executes source and renders the outcome as text: the printed lines
// joined by newlines, or the error line when the run failed.
func (i *Interpreter) Run(source string) string {
	_, err := i.exec(source, "")
	var diag *diagnostics.DiagnosticError
	if errors.As(err, &diag) {
		i.Output()
		return "Error: " + diag.Message()
	}
	return evaluator.FormatRun(i.Output(), err)
}

// LoadFile executes a script file. Its imports resolve relative to the
// file's directory.
func (i *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	_, err = i.exec(string(content), abs)
	return err
}

// Close releases native libraries the scripts opened.
func (i *Interpreter) Close() error {
	return i.backend.Evaluator.Natives.Close()
}

func (i *Interpreter) exec(code, file string) (evaluator.Object, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	program, err := parser.ParseSource(code, file, i.settings.Lexer.Strict)
	if err != nil {
		return nil, err
	}
	if file != "" {
		e := i.backend.Evaluator
		oldDir, oldFile := e.BaseDir, e.CurrentFile
		e.BaseDir, e.CurrentFile = filepath.Dir(file), file
		defer func() { e.BaseDir, e.CurrentFile = oldDir, oldFile }()
	}
	return i.backend.RunProgram(program)
}

// Pipeline returns the lexer, parser and execution stages bound to this
// interpreter, for hosts that want the diagnostics rather than an error.
func (i *Interpreter) Pipeline() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		backend.NewExecutionProcessor(i.backend),
	)
}
