package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/token"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	path := writeScript(t, "hello.oll", `name = "world"
print("hello " + name)`)

	r := execute(t, "", "run", path)
	require.NoError(t, r.err)
	assert.Equal(t, "hello world\n", r.stdout)
	assert.Empty(t, r.stderr)

	r = execute(t, "", path)
	require.NoError(t, r.err)
	assert.Equal(t, "hello world\n", r.stdout)
}

func TestRunRuntimeError(t *testing.T) {
	path := writeScript(t, "bad.oll", "print(1)\nprint(y)\nprint(2)")

	r := execute(t, "", "run", path)
	require.Error(t, r.err)
	assert.Equal(t, 1, ExitCode(r.err))
	assert.Equal(t, "1\n", r.stdout)
	assert.Contains(t, r.stderr, "Error: Undefined variable: y at line 2:")
}

func TestRunParseError(t *testing.T) {
	path := writeScript(t, "broken.oll", "x = (1 + ")

	r := execute(t, "", "run", path)
	require.Error(t, r.err)
	assert.Equal(t, 1, ExitCode(r.err))
	assert.Empty(t, r.stdout)
	assert.NotEmpty(t, r.stderr)
}

func TestRunMissingFile(t *testing.T) {
	r := execute(t, "", "run", filepath.Join(t.TempDir(), "nope.oll"))
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "read script")
	assert.Equal(t, 1, ExitCode(r.err))
}

func TestEval(t *testing.T) {
	r := execute(t, "", "eval", "-e", "print(1 + 2)")
	require.NoError(t, r.err)
	assert.Equal(t, "3\n", r.stdout)

	r = execute(t, "", "eval", "print(2 * 3)")
	require.NoError(t, r.err)
	assert.Equal(t, "6\n", r.stdout)

	r = execute(t, "", "-e", `print(upper("x"))`)
	require.NoError(t, r.err)
	assert.Equal(t, "X\n", r.stdout)
}

func TestEvalInputErrors(t *testing.T) {
	r := execute(t, "", "eval")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "no code given")

	r = execute(t, "", "eval", "-e", "1", "2")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "multiple input sources")
}

func TestStdinScript(t *testing.T) {
	r := execute(t, "print(\"from stdin\")\n")
	require.NoError(t, r.err)
	assert.Equal(t, "from stdin\n", r.stdout)
}

func TestInputReadsCommandStdin(t *testing.T) {
	r := execute(t, "Ada\n", "-e", `name = input("name? "); print("hi " + name)`)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "hi Ada")
}

func TestExitStatus(t *testing.T) {
	r := execute(t, "", "-e", `print("a"); exit(3); print("b")`)
	require.Error(t, r.err)
	assert.Equal(t, 3, ExitCode(r.err))
	assert.Equal(t, "a\n", r.stdout)
	assert.Empty(t, r.stderr)

	r = execute(t, "", "-e", "exit(0)")
	assert.Equal(t, 0, ExitCode(r.err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 7, ExitCode(&exitError{code: 7}))
	assert.Equal(t, 1, ExitCode(io.EOF))
}

func TestASTCommand(t *testing.T) {
	path := writeScript(t, "ast.oll", "x = 1 + 2 * 3")

	r := execute(t, "", "ast", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "(+ 1 (* 2 3))")

	r = execute(t, "", "ast", "--format", "code", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "1 + 2 * 3")

	r = execute(t, "", "ast", "-f", "repr", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "ast.Program")

	r = execute(t, "", "ast", "-f", "json", path)
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "unknown format")
}

func TestASTParseError(t *testing.T) {
	path := writeScript(t, "bad.oll", "func (")
	r := execute(t, "", "ast", path)
	require.Error(t, r.err)
	assert.Equal(t, 1, ExitCode(r.err))
	assert.NotEmpty(t, r.stderr)
}

func TestVersion(t *testing.T) {
	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "ollang "))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ollang.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("sandbox:\n  allow_native: false\n"), 0o644))

	r := execute(t, "", "--config", cfg, "-e", `ImportDLL("kernel32.dll", "GetCurrentProcessId")`)
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "native libraries are disabled")

	r = execute(t, "", "--config", filepath.Join(dir, "missing.yaml"), "-e", "1")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "read config")
}

func TestConfigValidation(t *testing.T) {
	r := execute(t, "", "--max-depth", "0", "-e", "1")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "eval.max_depth must be positive")
}

func TestFlagsOverrideDefaults(t *testing.T) {
	r := execute(t, "", "--max-memory", "4", "-e", "alloc(8)")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "exceeds sandbox limit of 4 bytes")

	r = execute(t, "", "--max-memory", "16", "-e", `p = alloc(8); print("ok")`)
	require.NoError(t, r.err)
	assert.Equal(t, "ok\n", r.stdout)
}

func TestEnvironmentSettings(t *testing.T) {
	t.Setenv("OLLANG_SANDBOX_MAX_BYTES", "4")
	r := execute(t, "", "-e", "alloc(8)")
	require.Error(t, r.err)
	assert.Equal(t, 1, ExitCode(r.err))
}

func TestInvalidLogLevel(t *testing.T) {
	r := execute(t, "", "--log-level", "loud", "-e", "1")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "invalid log level")
}

// fakePrompter feeds scripted lines to the REPL.
type fakePrompter struct {
	lines   []string
	history []string
	closed  bool
}

func (p *fakePrompter) Prompt(string) (string, error) {
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func (p *fakePrompter) AppendHistory(line string) { p.history = append(p.history, line) }

func (p *fakePrompter) Close() error {
	p.closed = true
	return nil
}

func runREPL(t *testing.T, lines ...string) (string, string, *fakePrompter, error) {
	t.Helper()
	root, a := newRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	require.NoError(t, a.setup(root))

	p := &fakePrompter{lines: lines}
	err := a.repl(root, p)
	return out.String(), errOut.String(), p, err
}

func TestREPLKeepsState(t *testing.T) {
	out, errOut, p, err := runREPL(t, "x = 20", "", "func add(a) { return a + x }", "add(1)", `print("hi")`)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "OLLang ")
	assert.Contains(t, out, "\n21\n")
	assert.Contains(t, out, "hi\n")
	assert.True(t, p.closed)
	assert.Len(t, p.history, 4)
}

func TestREPLContinuesAfterErrors(t *testing.T) {
	out, errOut, _, err := runREPL(t, "print(nope)", "1 +", "print(5)")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Undefined variable: nope")
	assert.Contains(t, out, "5\n")
}

func TestREPLExit(t *testing.T) {
	out, _, _, err := runREPL(t, "exit", "print(1)")
	require.NoError(t, err)
	assert.NotContains(t, out, "1\n")

	_, _, _, err = runREPL(t, "exit(4)", "print(1)")
	require.Error(t, err)
	assert.Equal(t, 4, ExitCode(err))
}

func TestReportFatalErrors(t *testing.T) {
	diag := diagnostics.NewError(diagnostics.ErrR002, token.Token{}, "kaboom")
	diag.Msg += "\ngoroutine 1 [running]:"

	for _, debug := range []bool{false, true} {
		var errOut bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetErr(&errOut)
		a := &app{debug: debug}
		a.reportErrors(cmd, []*diagnostics.DiagnosticError{diag})

		assert.Contains(t, errOut.String(), "Fatal Error: kaboom")
		if debug {
			assert.Contains(t, errOut.String(), "goroutine 1 [running]:")
		} else {
			assert.NotContains(t, errOut.String(), "goroutine")
		}
	}
}

func TestHugeOffsetIsSandboxError(t *testing.T) {
	r := execute(t, "", "-e", `print("a"); p = alloc(8); read(p, 9223372036854775807, "i32")`)
	require.Error(t, r.err)
	assert.Equal(t, 1, ExitCode(r.err))
	assert.Equal(t, "a\n", r.stdout)
	assert.Contains(t, r.stderr, "Error: memory access out of bounds")
}
