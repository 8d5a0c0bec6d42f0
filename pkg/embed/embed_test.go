package ollang_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/evaluator"
	ollang "github.com/funvibe/ollang/pkg/embed"
)

// User is converted to a dict of its exported fields.
type User struct {
	Name  string
	Score int
	tag   string
}

func TestEmbedAPI(t *testing.T) {
	in := ollang.New()
	require.NoError(t, in.Bind("double", func(x int) int { return x * 2 }))
	require.NoError(t, in.Bind("player", User{Name: "Alice", Score: 10, tag: "hidden"}))

	res, err := in.Eval(`doubled = double(21)
name = player.Name;
[doubled, name, player.Score + 5, len(player)]`)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{float64(42), "Alice", float64(15), float64(2)}, res)
}

func TestBoundFunctionErrors(t *testing.T) {
	in := ollang.New()
	require.NoError(t, in.Bind("fail", func() (int, error) { return 0, errors.New("boom") }))
	require.NoError(t, in.Bind("pair", func() (int, string) { return 1, "x" }))
	require.NoError(t, in.Bind("sum", func(xs ...int) int {
		total := 0
		for _, x := range xs {
			total += x
		}
		return total
	}))

	out := in.Run(`try { fail() } catch (e) { print(e) }
print(pair())
print(sum(), sum(1, 2, 3))
sum("a")`)
	assert.Equal(t, `Error: sum: argument 1: cannot convert STRING to int`, out)

	out = in.Run(`try { fail() } catch (e) { print(e) }
print(pair())
print(sum(), sum(1, 2, 3))`)
	assert.Equal(t, "fail: boom\n[1, x]\n0 6", out)

	_, err := in.Eval("double(1)")
	require.Error(t, err)
}

func TestSetAndGet(t *testing.T) {
	in := ollang.New()
	require.NoError(t, in.Set("cfg", map[string]int{"retries": 3}))
	require.NoError(t, in.Set("tags", []string{"a", "b"}))
	require.NoError(t, in.Set("nothing", nil))

	res, err := in.Eval("cfg.retries + len(tags)")
	require.NoError(t, err)
	assert.Equal(t, float64(5), res)

	_, err = in.Eval(`greeting = "hi " + tags[1]`)
	require.NoError(t, err)
	got, err := in.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hi b", got)

	got, err = in.Get("nothing")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = in.Get("missing")
	assert.EqualError(t, err, "variable 'missing' not found")

	assert.Error(t, in.Set("ch", make(chan int)))
}

func TestRunSurvivesHostPanics(t *testing.T) {
	in := ollang.New()
	require.NoError(t, in.Bind("explode", func() int { panic("kaboom") }))

	assert.Equal(t, "Fatal Error: kaboom", in.Run(`print("lost"); explode()`))
	assert.Equal(t, "ok", in.Run(`print("ok")`))

	_, err := in.Call("explode")
	var fatal *evaluator.FatalError
	require.ErrorAs(t, err, &fatal)

	_, err = in.Eval(`explode()`)
	require.ErrorAs(t, err, &fatal)

	out := in.Run(`p = alloc(8); read(p, 9223372036854775807, "i32")`)
	assert.True(t, strings.HasPrefix(out, "Error: memory access out of bounds"), out)
}

func TestCallScriptFunction(t *testing.T) {
	in := ollang.New()
	_, err := in.Eval(`func add(a, b) { return a + b }
func boom() { throw "kaput" }`)
	require.NoError(t, err)

	res, err := in.Call("add", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, float64(5), res)

	res, err = in.Call("add", "a", 1)
	require.NoError(t, err)
	assert.Equal(t, "a1", res)

	_, err = in.Call("boom")
	var runErr *evaluator.RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, "Error: kaput", err.Error())

	_, err = in.Call("add", 1)
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, evaluator.ArityMismatch, runErr.Kind())

	_, err = in.Call("nope")
	assert.EqualError(t, err, "function 'nope' not found")

	res, err = in.Call("len", []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, float64(3), res)
}

func TestRunFormatsOutcome(t *testing.T) {
	in := ollang.New()
	assert.Equal(t, "1\n2", in.Run("print(1)\nprint(2)"))
	assert.Equal(t, "Error: Undefined variable: x", in.Run(`print("lost"); print(x)`))
	assert.Equal(t, "a", in.Run(`print("a"); exit(1); print("b")`))
	assert.True(t, strings.HasPrefix(in.Run("x = ("), "Error: "))
	assert.Equal(t, "", in.Run("y = 1"))
	assert.Equal(t, "1", in.Run("print(y)"), "globals persist between runs")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mylib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mylib", "greet.oll"),
		[]byte(`func get_greeting() { return "Hello from Import" }`), 0o644))
	mainPath := filepath.Join(dir, "main.oll")
	require.NoError(t, os.WriteFile(mainPath,
		[]byte("import \"mylib/greet\"\ngreeting = get_greeting()\n"), 0o644))

	in := ollang.New()
	require.NoError(t, in.LoadFile(mainPath))
	res, err := in.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello from Import", res)

	assert.Error(t, in.LoadFile(filepath.Join(dir, "absent.oll")))
}

func TestStreamingOutput(t *testing.T) {
	in := ollang.New()
	var buf bytes.Buffer
	in.SetOutput(&buf)
	_, err := in.Eval(`print("streamed")`)
	require.NoError(t, err)
	assert.Equal(t, "streamed\n", buf.String())
	assert.Empty(t, in.Output())
	assert.NoError(t, in.Close())
}

func TestMarshallerStructs(t *testing.T) {
	m := ollang.NewMarshaller()
	obj, err := m.ToValue(&User{Name: "Bob", Score: 7})
	require.NoError(t, err)
	assert.Equal(t, "{Name: Bob, Score: 7}", obj.Inspect())

	back, err := m.FromValue(obj, reflect.TypeOf(User{}))
	require.NoError(t, err)
	assert.Equal(t, User{Name: "Bob", Score: 7}, back)

	ptr, err := m.FromValue(obj, reflect.TypeOf(&User{}))
	require.NoError(t, err)
	assert.Equal(t, &User{Name: "Bob", Score: 7}, ptr)

	_, err = m.FromValue(&evaluator.String{Value: "x"}, reflect.TypeOf(0))
	assert.Error(t, err)
}
