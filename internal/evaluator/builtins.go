package evaluator

import (
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/funvibe/ollang/internal/config"
)

// Builtins is the registry installed into every global frame. Entries are
// read-only after package initialization.
var Builtins = map[string]*Builtin{}

func init() {
	groups := []map[string]BuiltinFunction{
		coreBuiltins(),
		mathBuiltins(),
		stringBuiltins(),
		arrayBuiltins(),
		fileBuiltins(),
		systemBuiltins(),
		memoryBuiltins(),
		dataBuiltins(),
	}
	for _, group := range groups {
		for name, fn := range group {
			Builtins[name] = &Builtin{Name: name, Fn: fn}
		}
	}
}

// RegisterBuiltins binds every builtin and constant in env.
func RegisterBuiltins(env *Environment) {
	for name, builtin := range Builtins {
		env.Set(name, builtin)
	}
	env.Set("PI", &Number{Value: math.Pi})
	env.Set("E", &Number{Value: math.E})
}

func coreBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		config.PrintFuncName:      builtinPrint,
		config.PrintlnFuncName:    builtinPrint,
		config.TypeFuncName:       builtinType,
		config.LenFuncName:        builtinLen,
		config.ThrowFuncName:      builtinThrow,
		config.ExitFuncName:       builtinExit,
		config.AsyncSleepFuncName: builtinAsyncSleep,
		config.ImportDLLFuncName:  builtinImportDLL,
		"input":                   builtinInput,
		"uuid":                    builtinUUID,
	}
}

// print joins the display forms with spaces and emits one line.
func builtinPrint(e *Evaluator, args ...Object) Object {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	e.Output.WriteLine(strings.Join(parts, " "))
	return NULL
}

func builtinType(e *Evaluator, args ...Object) Object {
	if err := checkArity(config.TypeFuncName, args, 1); err != nil {
		return err
	}
	return &String{Value: typeName(args[0])}
}

func builtinLen(e *Evaluator, args ...Object) Object {
	if err := checkArity(config.LenFuncName, args, 1); err != nil {
		return err
	}
	switch arg := args[0].(type) {
	case *Array:
		return &Number{Value: float64(len(arg.Elements))}
	case *String:
		return &Number{Value: float64(utf8.RuneCountInString(arg.Value))}
	case *Dict:
		return &Number{Value: float64(len(arg.Pairs))}
	}
	return newError(TypeMismatch, "len requires array, string or dict, got %s", typeName(args[0]))
}

func builtinThrow(e *Evaluator, args ...Object) Object {
	if err := checkArity(config.ThrowFuncName, args, 1); err != nil {
		return err
	}
	return e.newErrorWithStack(UserError, "%s", args[0].Inspect())
}

func builtinExit(e *Evaluator, args ...Object) Object {
	if err := checkArityRange(config.ExitFuncName, args, 0, 1); err != nil {
		return err
	}
	code := 0
	if len(args) == 1 {
		n, err := numberArg(config.ExitFuncName, args[0])
		if err != nil {
			return err
		}
		code = int(n)
	}
	return &ExitSignal{Code: code}
}

func builtinAsyncSleep(e *Evaluator, args ...Object) Object {
	if err := checkArity(config.AsyncSleepFuncName, args, 1); err != nil {
		return err
	}
	ms, err := numberArg(config.AsyncSleepFuncName, args[0])
	if err != nil {
		return err
	}
	return e.sleepAsync(time.Duration(ms * float64(time.Millisecond)))
}

func builtinImportDLL(e *Evaluator, args ...Object) Object {
	if err := checkArityRange(config.ImportDLLFuncName, args, 2, 3); err != nil {
		return err
	}
	env := e.CurrentEnv
	if env == nil {
		env = e.GlobalEnv
	}
	return e.importNative(env, args...)
}

// input reads one line, without its terminator. At end of input it
// returns what was read, or null when nothing was.
func builtinInput(e *Evaluator, args ...Object) Object {
	if err := checkArityRange("input", args, 0, 1); err != nil {
		return err
	}
	if len(args) == 1 && e.Out != nil {
		io.WriteString(e.Out, args[0].Inspect())
	}
	if e.In == nil {
		return NULL
	}
	line, err := e.In.ReadString('\n')
	if err != nil && line == "" {
		return NULL
	}
	line = strings.TrimRight(line, "\r\n")
	return &String{Value: line}
}

func builtinUUID(e *Evaluator, args ...Object) Object {
	if err := checkArity("uuid", args, 0); err != nil {
		return err
	}
	return &String{Value: uuid.NewString()}
}
