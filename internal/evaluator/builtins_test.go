package evaluator

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/config"
)

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output []string
	}{
		{"print joins with spaces", `print("a", 1, true, null)`, []string{"a 1 true null"}},
		{"println", `println("x")`, []string{"x"}},
		{"len", `print(len([1, 2]), len("héllo"), len({"a": 1}))`, []string{"2 5 1"}},
		{"math", "print(abs(-3), sqrt(16), floor(1.7), ceil(1.2), round(2.5), pow(2, 10))",
			[]string{"3 4 1 2 3 1024"}},
		{"max min", "print(max(1, 5, 3), min([4, 2, 8]))", []string{"5 2"}},
		{"constants", "print(floor(PI * 100), floor(E * 100))", []string{"314 271"}},
		{"trig and logs", "print(sin(0), cos(0), log(1), log10(1000), exp(0), tan(0))", []string{"0 1 0 3 1 0"}},
		{"strings", `print(upper("ab"), lower("CD"), trim("  x  "))`, []string{"AB cd x"}},
		{"split", `print(split("a,b,c", ","))`, []string{"[a, b, c]"}},
		{"replace", `print(replace("aXbX", "X", "-"))`, []string{"a-b-"}},
		{"substr", `print(substr("hello", 1, 3), substr("hello", 3), substr("hi", 5))`, []string{"ell lo "}},
		{"push pop", "a = [1]; print(push(a, 2, 3)); print(pop(a)); print(a); print(pop([]))",
			[]string{"3", "3", "[1, 2]", "null"}},
		{"slice", `print(slice([1, 2, 3, 4], 1, 3), slice([1, 2, 3], -2), slice("hello", 1, 4))`,
			[]string{"[2, 3] [2, 3] ell"}},
		{"range", "print(range(3)); print(range(1, 4)); print(range(10, 0, -3))",
			[]string{"[0, 1, 2]", "[1, 2, 3]", "[10, 7, 4, 1]"}},
		{"map with user function", "func dbl(x) { return x * 2; } print(map(dbl, [1, 2]))", []string{"[2, 4]"}},
		{"map with builtin", `print(map(upper, ["a", "b"]))`, []string{"[A, B]"}},
		{"filter", "func odd(x) { return x % 2 == 1 } print(filter(odd, range(6)))", []string{"[1, 3, 5]"}},
		{"type", `func f() {} print(type(f), type(alloc(1)), type(async_sleep(0)))`,
			[]string{"function pointer promise"}},
		{"rand ranges", `r = rand(); print(r >= 0 && r < 1)
n = rand(10); print(n >= 0 && n < 10 && n == floor(n))
k = randint(3, 5); print(k >= 3 && k <= 5)
print(rand(4, 4))
x = random(); print(x >= 0 && x < 1)`, []string{"true", "true", "true", "4", "true"}},
		{"timestamp and ticks", "print(timestamp() > 1600000000, ticks() >= 0, pid() > 0, tid() > 0)",
			[]string{"true true true true"}},
		{"yaml decode", `d = yaml_decode("a: 1\nb: [x, 2.5]\nc: null"); print(d.a, d.b[0], d.b[1], d.c)`,
			[]string{"1 x 2.5 null"}},
		{"throw builtin", `try { throw({"code": 1}) } catch (e) { print(e) }`, []string{"{code: 1}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSource(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.output, out)
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		input   string
		kind    ErrorKind
		message string
	}{
		{"sqrt()", ArityMismatch, "sqrt expects 1 argument(s), got 0"},
		{`sqrt("x")`, TypeMismatch, "sqrt requires number, got string"},
		{"push([])", ArityMismatch, "push expects at least 2 argument(s), got 1"},
		{"push(1, 2)", TypeMismatch, "push requires array, got number"},
		{"range(1, 2, 0)", InvalidOperation, "range step must not be zero"},
		{"map(1, [1])", NotCallable, "Not a function: number"},
		{"len(1)", TypeMismatch, "len requires array, string or dict, got number"},
		{`yaml_decode("a: [")`, InvalidOperation, ""},
		{"yaml_encode(print)", TypeMismatch, "yaml_encode: cannot encode builtin"},
		{"type()", ArityMismatch, "type expects 1 argument(s), got 0"},
		{"max()", ArityMismatch, "max expects at least 1 argument(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := runSource(t, tt.input)
			evalErr := requireRunError(t, err)
			assert.Equal(t, tt.kind, evalErr.Kind, evalErr.Message)
			if tt.message != "" {
				assert.Equal(t, tt.message, evalErr.Message)
			}
		})
	}
}

func TestFileBuiltins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	src := fmt.Sprintf(`p = %q
print(file_exists(p))
print(file_write(p, "one"))
print(appendFile(p, "-two"))
print(file_read(p))
print(readFile(p + ".missing"))
print(deleteFile(p), fileExists(p), file_delete(p))`, path)

	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"false", "true", "true", "one-two", "null", "true false false"}, out)
}

func TestYamlEncode(t *testing.T) {
	s, err := yamlEncode(&Dict{Pairs: map[string]Object{
		"count": &Number{Value: 3},
		"f":     &Number{Value: 0.5},
		"list":  &Array{Elements: []Object{&String{Value: "a"}, TRUE, NULL}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "count: 3\nf: 0.5\nlist:\n    - a\n    - true\n    - null\n", s)

	obj, err := yamlDecode(s)
	require.NoError(t, err)
	assert.Equal(t, "{count: 3, f: 0.5, list: [a, true, null]}", obj.Inspect())
}

func TestInput(t *testing.T) {
	e := New()
	var prompt bytes.Buffer
	e.Out = &prompt
	e.In = bufio.NewReader(strings.NewReader("alice\nbob"))

	out, err := runWith(t, e, `print(input("name? ")); print(input()); print(input())`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "null"}, out)
	assert.Equal(t, "name? ", prompt.String())
}

func TestTimeFormat(t *testing.T) {
	out, err := runSource(t, `print(time()); print(time("%Y"))`)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), out[0])
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), out[1])
}

func TestUUIDBuiltin(t *testing.T) {
	out, err := runSource(t, "a = uuid(); b = uuid(); print(len(a), a == b)")
	require.NoError(t, err)
	assert.Equal(t, []string{"36 false"}, out)
}

func TestImportDLL(t *testing.T) {
	out, err := runSource(t, `ImportDLL("kernel32.dll", "GetCurrentProcessId", "gpid")
print(gpid() == pid())
f = ImportDLL("kernel32.dll", "GetTickCount")
print(type(f), GetTickCount() >= 0)
print(gpid)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "builtin true", "<native GetCurrentProcessId>"}, out)

	s := config.DefaultSettings()
	s.Sandbox.AllowNative = false
	_, err = runWith(t, NewWithSettings(s), `ImportDLL("kernel32.dll", "GetCurrentProcessId")`)
	evalErr := requireRunError(t, err)
	assert.Equal(t, NativeLibraryFailure, evalErr.Kind)
	assert.Equal(t, "native libraries are disabled", evalErr.Message)

	_, err = runSource(t, `ImportDLL("/nonexistent/libnothing.so", "f")`)
	evalErr = requireRunError(t, err)
	assert.Equal(t, NativeLibraryFailure, evalErr.Kind)
}

func TestBuiltinRegistryNames(t *testing.T) {
	for _, name := range []string{
		"print", "println", "abs", "sqrt", "pow", "sin", "cos", "tan", "log", "log10", "exp", "floor",
		"ceil", "round", "max", "min", "rand", "randint", "random", "upper", "lower", "trim", "split",
		"replace", "substr", "len", "push", "pop", "slice", "range", "map", "filter", "file_write",
		"file_read", "file_append", "file_exists", "file_delete", "writeFile", "readFile", "appendFile",
		"fileExists", "deleteFile", "exit", "sleep", "pid", "tid", "time", "timestamp", "ticks",
		"memcpy", "memset", "ptr", "addr", "type", "input", "async_sleep", "throw", "ImportDLL",
		"uuid", "yaml_encode", "yaml_decode",
	} {
		b, ok := Builtins[name]
		if assert.True(t, ok, name) {
			assert.Equal(t, name, b.Name)
		}
	}
}
