package evaluator

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitAsyncFunction(t *testing.T) {
	out, err := runSource(t, "async func f() { return 42; } print(await f());")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, out)
}

func TestAwaitBareAsyncFunction(t *testing.T) {
	out, err := runSource(t, "async func f() { return 7 } print(await f)")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, out)

	_, err = runSource(t, "async func g(x) { return x } await g")
	evalErr := requireRunError(t, err)
	assert.Equal(t, ArityMismatch, evalErr.Kind)
}

func TestAwaitResolvesOnce(t *testing.T) {
	e := New()
	env := e.NewGlobalEnvironment()
	var calls int32
	env.Set("counter", &Builtin{Name: "counter", Fn: func(e *Evaluator, args ...Object) Object {
		atomic.AddInt32(&calls, 1)
		return NULL
	}})

	out, err := runWith(t, e, `async func f() { counter(); return 42; }
h = f()
print(await h)
print(await h)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "42"}, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAsyncCallReturnsHandle(t *testing.T) {
	out, err := runSource(t, `async func f(x) { return x * 2 }
h = f(21)
print(type(h))
print(await h)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"promise", "42"}, out)
}

func TestAsyncTasksUsePrivateFrames(t *testing.T) {
	out, err := runSource(t, `async func f() { y = 5; return y }
print(await f())
try { print(y) } catch (e) { print(e) }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "Undefined variable: y"}, out)
}

func TestManyConcurrentTasks(t *testing.T) {
	out, err := runSource(t, `async func sq(n) { return n * n }
hs = []
for i in range(50) { push(hs, sq(i)) }
total = [0]
for h in hs { total[0] = total[0] + await h }
print(total[0])`)
	require.NoError(t, err)
	assert.Equal(t, []string{"40425"}, out)
}

func TestAsyncErrorReraisesInAwaiter(t *testing.T) {
	out, err := runSource(t, `async func bad() { throw "nope" }
h = bad()
try { await h } catch (e) { print("first " + e) }
try { await h } catch (e) { print("second " + e) }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"first nope", "second nope"}, out)
}

func TestAsyncSleep(t *testing.T) {
	out, err := runSource(t, `h = async_sleep(5)
print(type(h))
print(await h)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"promise", "null"}, out)
}

func TestAsyncHandleDisplay(t *testing.T) {
	h := newAsyncHandle("f")
	assert.Contains(t, h.Inspect(), "pending")
	h.resolve(&Number{Value: 1})
	h.resolve(&Number{Value: 2})
	assert.Contains(t, h.Inspect(), h.ID+" resolved")
	assert.Equal(t, "1", h.Wait().Inspect())
}

func TestAsyncPrintsFromTasks(t *testing.T) {
	out, err := runSource(t, `async func say(x) { print(x); return x }
a = say("one")
await a
b = say("two")
await b`)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, out)
}
