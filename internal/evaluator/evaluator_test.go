package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/parser"
)

// runSource parses and runs src on a fresh evaluator and returns the
// printed lines with the run error.
func runSource(t *testing.T, src string) ([]string, error) {
	t.Helper()
	return runWith(t, New(), src)
}

func runWith(t *testing.T, e *Evaluator, src string) ([]string, error) {
	t.Helper()
	program, err := parser.ParseSource(src, "", true)
	require.NoError(t, err)
	env := e.GlobalEnv
	if env == nil {
		env = e.NewGlobalEnvironment()
	}
	_, runErr := e.Run(program, env)
	return e.Output.Drain(), runErr
}

func requireRunError(t *testing.T, err error) *Error {
	t.Helper()
	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	return runErr.Err
}

func TestEvaluatePrograms(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output []string
	}{
		{"precedence", "print(1 + 2 * 3)", []string{"7"}},
		{"power is right associative", "print(2 ** 3 ** 2)", []string{"512"}},
		{"string coercion left", `print("a" + 1)`, []string{"a1"}},
		{"string coercion right", `print(1 + "a")`, []string{"1a"}},
		{"division by zero", "print(5 / 0)", []string{"0"}},
		{"modulo", "print(7 % 3)", []string{"1"}},
		{"fractions", "print(1.5); print(10 / 4); print(1 / 3)", []string{"1.5", "2.5", "0.333333"}},
		{"bitwise", "print(6 & 3); print(6 | 3); print(6 ^ 3); print(1 << 4); print(256 >> 4); print(~0)",
			[]string{"2", "7", "5", "16", "16", "-1"}},
		{"comparison", "print(1 < 2, 2 <= 1, 3 >= 3, 4 > 5)", []string{"true false true false"}},
		{"equality falls back to display form", `print(1 == "1"); print(null == null); print("a" != "b")`,
			[]string{"true", "true", "true"}},
		{"logical", `print(true && false); print(0 || "x"); print(false && missing)`,
			[]string{"false", "true", "false"}},
		{"unary", `print(-3); print(!0); print(!"")`, []string{"-3", "true", "true"}},
		{"closure snapshot", "x = 10; func f() { return x; } x = 20; print(f());", []string{"10"}},
		{"iterate string", `for c in "abc" { print(c); }`, []string{"a", "b", "c"}},
		{"try catch", `try { throw("boom"); } catch (e) { print(e); }`, []string{"boom"}},
		{"throw statement non-string", `try { throw 42 } catch (e) { print(e) }`, []string{"42"}},
		{"catch binds message only", `try { x = [1]; x[3]; } catch (e) { print(e); }`,
			[]string{"Array index out of bounds"}},
		{"array padding", "a = [1, 2]; a[5] = 1; print(a); print(len(a))",
			[]string{"[1, 2, null, null, null, 1]", "6"}},
		{"deep return from if", `func f(x) { if x > 0 { return "pos"; } return "neg"; } print(f(1)); print(f(-1))`,
			[]string{"pos", "neg"}},
		{"deep return from loop", `func find(a, t) { for x in a { if x == t { return "found" } } return "missing" }
print(find([1, 2, 3], 2)); print(find([1], 5))`, []string{"found", "missing"}},
		{"bare return", "func f() { return } print(f())", []string{"null"}},
		{"assignment stays in innermost frame", "x = 1; if true { x = 2; print(x) } print(x)", []string{"2", "1"}},
		{"shared array mutation", "c = [0]; for i in [1, 2, 3] { c[0] = c[0] + i } print(c[0])", []string{"6"}},
		{"while with shared state", "c = [0]; while c[0] < 3 { c[0] = c[0] + 1 } print(c[0])", []string{"3"}},
		{"recursion", "func fib(n) { if n < 2 { return n } return fib(n - 1) + fib(n - 2) } print(fib(15))",
			[]string{"610"}},
		{"namespace", `namespace m { a = 1; func g() { return 2; } } print(m.a); print(m.g())`, []string{"1", "2"}},
		{"dict members", `d = {"a": 1}; d.b = 2; d["c"] = 3; print(d); print(d["a"] + d.b)`,
			[]string{"{a: 1, b: 2, c: 3}", "3"}},
		{"nested values", `print([1, "two", [3], {"k": null}])`, []string{"[1, two, [3], {k: null}]"}},
		{"comprehension", "print([x * 2 for x in [1, 2, 3] if x > 1])", []string{"[4, 6]"}},
		{"comprehension over string", `print([c + c for c in "ab"])`, []string{"[aa, bb]"}},
		{"string index", `s = "abc"; print(s[1])`, []string{"b"}},
		{"else if chain", `func s(n) { if n < 0 { return "neg" } else if n == 0 { return "zero" } else { return "pos" } }
print(s(-1), s(0), s(1))`, []string{"neg zero pos"}},
		{"function display", "func f() {} async func g() {} print(f, g, print)",
			[]string{"<function f> <async function g> <builtin print>"}},
		{"assignment is an expression", "a = b = 3; print(a + b)", []string{"6"}},
		{"program value", "print(type(1), type(\"s\"), type([]), type({}), type(null), type(print), type(true))",
			[]string{"number string array dict null builtin boolean"}},
		{"exit stops run", `print("a"); exit(0); print("b")`, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSource(t, tt.input)
			var exit *ExitSignal
			if !errors.As(err, &exit) {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.output, out)
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    ErrorKind
		message string
	}{
		{"undefined variable", "print(y)", UndefinedVariable, "Undefined variable: y"},
		{"index out of bounds", "a = [1, 2]; a[2]", IndexOutOfBounds, "Array index out of bounds"},
		{"negative index", "a = [1]; a[-1] = 0", IndexOutOfBounds, "Array index out of bounds"},
		{"string index", `s = "ab"; s[5]`, IndexOutOfBounds, "String index out of bounds"},
		{"missing key", `d = {"a": 1}; d["b"]`, KeyNotFound, "Key not found: b"},
		{"missing member", `d = {}; d.z`, KeyNotFound, "Key not found: z"},
		{"index non-container", "x = 5; x[0]", TypeMismatch, "Cannot index this type"},
		{"member of non-dict", "x = [1]; x.len", TypeMismatch, "Cannot access member of this type"},
		{"power operands", `"a" ** 2`, TypeMismatch, "Power operator (**) requires number operands. Got string and number"},
		{"invalid operation", `"a" < "b"`, InvalidOperation, "Invalid operation: '<' between string and string"},
		{"unary minus", `-"a"`, TypeMismatch, "Unary minus requires a number, got string"},
		{"arity", "func f(a) { return a; } f(1, 2)", ArityMismatch, "function f expects 1 arguments, got 2"},
		{"not callable", "x = 1; x()", NotCallable, "Not a function: number"},
		{"iterate number", "for i in 3 { }", TypeMismatch, "Cannot iterate over number"},
		{"iterate dict", "for k in {} { }", TypeMismatch, "Cannot iterate over dict"},
		{"user error", `throw "custom"`, UserError, "custom"},
		{"import failure", `import "definitely_missing_module"`, ImportFailure, "Cannot import module: definitely_missing_module"},
		{"await non promise", "await 1", TypeMismatch, "Cannot await non-promise value"},
		{"await sync function", "func f() {} await f", TypeMismatch, "Cannot await non-promise value"},
		{"unbound sugar", `inject(1, "x.dll")`, UndefinedVariable, "Undefined variable: inject_dll"},
		{"builtin arity", "len()", ArityMismatch, "len expects 1 argument(s), got 0"},
		{"builtin argument kind", "upper(1)", TypeMismatch, "upper requires string, got number"},
		{"recursion limit", "func f(n) { return f(n + 1); } f(0)", ExecutionLimit, "maximum recursion depth exceeded"},
		{"recursion limit not caught", "func f(n) { return f(n + 1); } try { f(0) } catch (e) { print(e) }",
			ExecutionLimit, "maximum recursion depth exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSource(t, tt.input)
			evalErr := requireRunError(t, err)
			assert.Equal(t, tt.kind, evalErr.Kind, evalErr.Message)
			assert.Equal(t, tt.message, evalErr.Message)
			assert.Equal(t, "Error: "+tt.message, err.Error())
		})
	}
}

func TestErrorLocationAndStack(t *testing.T) {
	src := "func inner() {\n  return missing\n}\nfunc outer() {\n  return inner()\n}\nouter()\n"
	_, err := runSource(t, src)
	evalErr := requireRunError(t, err)
	assert.Equal(t, 2, evalErr.Line)
	require.Len(t, evalErr.StackTrace, 2)
	assert.Equal(t, "outer", evalErr.StackTrace[0].Name)
	assert.Equal(t, 7, evalErr.StackTrace[0].Line)
	assert.Equal(t, "inner", evalErr.StackTrace[1].Name)
	assert.Equal(t, 5, evalErr.StackTrace[1].Line)
	assert.Contains(t, evalErr.FormatStack("main.oll"), "at main.oll:5 (called inner)")
}

func TestExitCode(t *testing.T) {
	out, err := runSource(t, `print("before"); exit(3)`)
	var exit *ExitSignal
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 3, exit.Code)
	assert.Equal(t, []string{"before"}, out)
	assert.Equal(t, "before", FormatRun(out, err))
}

func TestExitIsNotCaught(t *testing.T) {
	out, err := runSource(t, `try { exit(2) } catch (e) { print("caught") }`)
	var exit *ExitSignal
	require.ErrorAs(t, err, &exit)
	assert.Empty(t, out)
}

func TestFormatRun(t *testing.T) {
	assert.Equal(t, "a\nb", FormatRun([]string{"a", "b"}, nil))
	assert.Equal(t, "Error: boom", FormatRun([]string{"a"}, &RunError{Err: &Error{Message: "boom"}}))
	assert.Equal(t, "", FormatRun(nil, nil))
}

func TestReplKeepsEnvironment(t *testing.T) {
	e := New()
	e.NewGlobalEnvironment()

	_, err := runWith(t, e, "x = 41")
	require.NoError(t, err)
	out, err := runWith(t, e, "print(x + 1)")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, out)
}

func TestRunResultValue(t *testing.T) {
	program, err := parser.ParseSource("1 + 1", "", true)
	require.NoError(t, err)
	e := New()
	result, err := e.Run(program, nil)
	require.NoError(t, err)
	assert.Equal(t, "2", result.Inspect())

	program, err = parser.ParseSource("return 5\nprint(1)", "", true)
	require.NoError(t, err)
	result, err = e.Run(program, nil)
	require.NoError(t, err)
	assert.Equal(t, "5", result.Inspect())
	assert.Empty(t, e.Output.Drain())
}

func TestCancellation(t *testing.T) {
	e := New()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	e.Context = ctx

	_, err := runWith(t, e, "c = [0]; while true { c[0] = c[0] + 1 }")
	evalErr := requireRunError(t, err)
	assert.Equal(t, ExecutionLimit, evalErr.Kind)
	assert.Contains(t, evalErr.Message, "execution cancelled")
}

func TestMaxDepthSetting(t *testing.T) {
	s := config.DefaultSettings()
	s.Eval.MaxDepth = 50
	e := NewWithSettings(s)

	_, err := runWith(t, e, "func f(n) { if n == 0 { return 0 } return f(n - 1) } f(100)")
	evalErr := requireRunError(t, err)
	assert.Equal(t, ExecutionLimit, evalErr.Kind)

	e = NewWithSettings(s)
	out, err := runWith(t, e, "func f(n) { if n == 0 { return 0 } return f(n - 1) } print(f(2))")
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, out)
}

func TestEmbedderBindsSugarTargets(t *testing.T) {
	e := New()
	env := e.NewGlobalEnvironment()
	var got []string
	env.Set(config.InjectDLLFuncName, &Builtin{Name: config.InjectDLLFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		for _, a := range args {
			got = append(got, a.Inspect())
		}
		return TRUE
	}})

	out, err := runWith(t, e, `inject(1234, "hook.dll")
print("done")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, out)
	assert.Equal(t, []string{"1234", "hook.dll"}, got)
}

func TestRunRecoversPanics(t *testing.T) {
	e := New()
	env := e.NewGlobalEnvironment()
	env.Set("explode", &Builtin{Name: "explode", Fn: func(e *Evaluator, args ...Object) Object {
		panic("kaboom")
	}})

	out, err := runWith(t, e, `func f() { return explode() }
print("before")
f()`)
	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "Fatal Error: kaboom", err.Error())
	assert.NotEmpty(t, fatal.Stack)
	assert.Equal(t, []string{"before"}, out)
	assert.Empty(t, e.CallStack)

	out, err = runWith(t, e, `print("still usable")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"still usable"}, out)

	fn, ok := env.Get("explode")
	require.True(t, ok)
	_, err = e.Call(fn, nil)
	require.ErrorAs(t, err, &fatal)
}

func TestArrayLengthLimit(t *testing.T) {
	_, err := runSource(t, "a = []; a[1e9] = 1")
	evalErr := requireRunError(t, err)
	assert.Equal(t, IndexOutOfBounds, evalErr.Kind)
	assert.Equal(t, "Array length 1000000001 exceeds limit of 16777216", evalErr.Message)

	out, err := runSource(t, "a = [0]; try { a[1e9] = 1 } catch (e) { print(len(a)) }")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, out)

	_, err = runSource(t, "range(1e12)")
	assert.Equal(t, IndexOutOfBounds, requireRunError(t, err).Kind)

	s := config.DefaultSettings()
	s.Eval.MaxArrayLen = 4
	e := NewWithSettings(s)
	out, err = runWith(t, e, "a = [1]; a[3] = 2; print(a); print(range(4))")
	require.NoError(t, err)
	assert.Equal(t, []string{"[1, null, null, 2]", "[0, 1, 2, 3]"}, out)

	for _, src := range []string{"a = []; a[4] = 1", "range(5)", "range(0, 10, 2)"} {
		_, err = runWith(t, NewWithSettings(s), src)
		assert.Equal(t, IndexOutOfBounds, requireRunError(t, err).Kind, src)
	}
}
