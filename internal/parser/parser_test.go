package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/ast"
	"github.com/funvibe/ollang/internal/lexer"
	"github.com/funvibe/ollang/internal/parser"
	"github.com/funvibe/ollang/internal/pipeline"
	"github.com/funvibe/ollang/internal/prettyprinter"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}

	lexerProcessor := &lexer.LexerProcessor{}
	ctx = lexerProcessor.Process(ctx)

	parserProcessor := &parser.ParserProcessor{}
	ctx = parserProcessor.Process(ctx)

	if len(ctx.Errors) > 0 {
		var errorMessages []string
		for _, err := range ctx.Errors {
			errorMessages = append(errorMessages, err.Error())
		}
		t.Fatalf("parsing failed with errors:\n%s", strings.Join(errorMessages, "\n"))
	}
	return ctx.AstRoot.(*ast.Program)
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		tree  string
	}{
		{"precedence", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"power_right_assoc", "2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"unary_binds_tighter_than_power", "-2 ** 2", "(** (- 2) 2)"},
		{"power_over_product", "2 * 3 ** 2", "(* 2 (** 3 2))"},
		{"assign_right_assoc", "a = b = 1", "(= a (= b 1))"},
		{"logical_one_tier", "x = a && b || c", "(= x (|| (&& a b) c))"},
		{"bitwise_in_logical_tier", "a & b | c ^ d", "(^ (| (& a b) c) d)"},
		{"comparison_one_tier", "a < b == c", "(== (< a b) c)"},
		{"shift_in_additive_tier", "1 << 2 + 3", "(+ (<< 1 2) 3)"},
		{"grouping", "(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"prefix_operators", "!true", "(! true)"},
		{"bitwise_not", "~5", "(~ 5)"},
		{"postfix_chain", "f(1, 2)[0].name", "(. (index (call f 1 2) 0) name)"},
		{"keyword_member", "ns.read", "(. ns read)"},
		{"await_call", "await f()", "(await (call f))"},
		{"await_function", "x = await f", "(= x (await f))"},
		{"decimal", "x = 1.5", "(= x 1.5)"},
		{"literals", `x = [1, "a", true, false, null]`, `(= x (array 1 "a" true false null))`},
		{"empty_array", "x = []", "(= x (array))"},
		{"trailing_comma", "x = [1, 2,]", "(= x (array 1 2))"},
		{"comprehension", "[x * 2 for x in xs if x > 1]", "(comp (* x 2) x xs (> x 1))"},
		{"comprehension_no_filter", "[c for c in \"ab\"]", `(comp c c "ab")`},
		{"dict", `d = {"a": 1, "b": [2]}`, `(= d (dict ("a" 1) ("b" (array 2))))`},
		{"empty_dict", "d = {}", "(= d (dict))"},
		{"index_assign", "a[5] = 1", "(= (index a 5) 1)"},
		{"member_assign", "a.b = 1", "(= (. a b) 1)"},
		{"alloc", "p = alloc(8)", "(= p (alloc 8))"},
		{"free", "free(p)", "(free p)"},
		{"write", `write(p, 0, 1234, "i32")`, "(write p 0 1234 i32)"},
		{"read", `x = read(p, 4, "u8") + 1`, "(= x (+ (read p 4 u8) 1))"},
		{"syscall", "syscall(1, a, b, 3)", "(syscall 1 a b 3)"},
		{"function", "func add(a, b) { return a + b; }", "(func add (a b) (block (return (+ a b))))"},
		{"async_function", "async func f() { return 42 }", "(async-func f () (block (return 42)))"},
		{"bare_return", "func f() { return }", "(func f () (block (return)))"},
		{"if_else_chain", "if x { 1 } else if y { 2 } else { 3 }", "(if x (block 1) (block (if y (block 2) (block 3))))"},
		{"if_parenthesized", "if (x > 1) { y }", "(if (> x 1) (block y))"},
		{"while", "while i < 3 { i = i + 1 }", "(while (< i 3) (block (= i (+ i 1))))"},
		{"for_in", `for c in "abc" { print(c) }`, `(for c "abc" (block (call print c)))`},
		{"try_catch", `try { throw "boom" } catch (e) { print(e) }`, `(try (block (throw "boom")) e (block (call print e)))`},
		{"try_catch_no_parens", "try { x } catch e { y }", "(try (block x) e (block y))"},
		{"throw_call_form", `throw("boom")`, `(throw "boom")`},
		{"import", `import "lib";`, `(import "lib")`},
		{"import_dll", `ImportDLL("k.so", "f", "g")`, `(importdll "k.so" "f" "g")`},
		{"import_dll_expression", `h = ImportDLL("k.so", "f")`, `(= h (call ImportDLL "k.so" "f"))`},
		{"namespace", "namespace m { x = 1 }", "(namespace m (block (= x 1)))"},
		{"semicolons", "a = 1; b = 2;;", "(= a 1)\n(= b 2)"},
		{"comments", "a = 1 # one\n# whole line\nb = 2", "(= a 1)\n(= b 2)"},
		{"process_find", `process find("notepad.exe")`, `(call find_process "notepad.exe")`},
		{"process_open", "process open(pid, 1)", "(call open_process pid 1)"},
		{"inject", `inject(pid, "a.dll")`, `(call inject_dll pid "a.dll")`},
		{"hook", "hook jmp(a, b)", "(call write_jmp a b)"},
		{"scan", "scan memory(h, 0, 16, pat, mask)", "(call scan_memory h 0 16 pat mask)"},
		{"window", `window find("cls", "title")`, `(call find_window "cls" "title")`},
		{"thread", "thread resume(h)", "(call resume_thread h)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program := parse(t, tc.input)
			require.Equal(t, tc.tree, prettyprinter.Tree(program))
		})
	}
}

func TestParserRecordsPositions(t *testing.T) {
	program := parse(t, "x = 1\n  y = 2")
	require.Len(t, program.Statements, 2)

	tok := program.Statements[1].GetToken()
	require.Equal(t, 2, tok.Line)
	require.Equal(t, 3, tok.Column)
}

func TestCodePrinterRoundTrip(t *testing.T) {
	inputs := []string{
		"x = (1 + 2) * 3",
		"y = 2 ** 3 ** 2",
		"z = (2 ** 3) ** 2",
		`func f(a, b) { if a { return b } else { return [a for a in b if a] } }`,
		`d = {"k": -x, "n": await g(1)}`,
		`try { write(p, 0, 1, "u8") } catch (e) { print(e) }`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := parse(t, input)
			printed := prettyprinter.Print(first)
			second := parse(t, printed)
			require.Equal(t, prettyprinter.Tree(first), prettyprinter.Tree(second), printed)
		})
	}
}

func TestParseSource(t *testing.T) {
	program, err := parser.ParseSource("a = 1", "main.oll", true)
	require.NoError(t, err)
	require.Equal(t, "main.oll", program.File)

	_, err = parser.ParseSource("a = ", "bad.oll", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.oll")
}
