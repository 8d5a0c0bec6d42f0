package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funvibe/ollang/internal/diagnostics"
	"github.com/funvibe/ollang/internal/evaluator"
	"github.com/funvibe/ollang/internal/pipeline"
	ollang "github.com/funvibe/ollang/pkg/embed"
)

func (a *app) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Run a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFile(cmd, args[0])
		},
	}
}

func (a *app) newEvalCommand() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "eval [CODE]",
		Short: "Evaluate code given on the command line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case cmd.Flags().Changed("eval") && len(args) > 0:
				return fmt.Errorf("multiple input sources specified")
			case len(args) == 1:
				code = args[0]
			case !cmd.Flags().Changed("eval"):
				return fmt.Errorf("no code given; use -e CODE")
			}
			return a.runSource(cmd, code, "")
		},
	}
	cmd.Flags().StringVarP(&code, "eval", "e", "", "code to evaluate")
	return cmd
}

func (a *app) runFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return a.runSource(cmd, string(data), path)
}

func (a *app) runSource(cmd *cobra.Command, source, file string) error {
	in := a.newInterpreter(cmd)
	defer in.Close()
	_, err := a.execute(cmd, in, source, file)
	return err
}

// errScriptFailed is returned once the diagnostics have been printed.
var errScriptFailed = &exitError{code: 1}

// execute runs one source text through the interpreter's pipeline and
// returns the value of its last statement. Diagnostics are printed and
// yield errScriptFailed; exit(n) yields an exitError with status n.
func (a *app) execute(cmd *cobra.Command, in *ollang.Interpreter, source, file string) (evaluator.Object, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = file
	ctx.Settings = in.Settings()
	ctx = in.Pipeline().Run(ctx)

	if len(ctx.Errors) > 0 {
		a.reportErrors(cmd, ctx.Errors)
		return nil, errScriptFailed
	}
	switch result := ctx.Result.(type) {
	case *evaluator.ExitSignal:
		return nil, &exitError{code: result.Code}
	case evaluator.Object:
		return result, nil
	}
	return nil, nil
}

// reportErrors prints runtime errors as "Error: message at line L:C"
// followed by the stack, recovered panics as "Fatal Error: ..." (with the
// Go stack under --debug), and other diagnostics with their code.
func (a *app) reportErrors(cmd *cobra.Command, errs []*diagnostics.DiagnosticError) {
	out := cmd.ErrOrStderr()
	for _, d := range errs {
		if d.Code == diagnostics.ErrR002 {
			msg, stack, _ := strings.Cut(d.Msg, "\n")
			fmt.Fprintln(out, red(msg))
			if a.debug && stack != "" {
				fmt.Fprintln(out, stack)
			}
			continue
		}
		if d.Code != diagnostics.ErrR001 {
			fmt.Fprintln(out, red(d.Error()))
			continue
		}
		msg, trace, _ := strings.Cut(d.Msg, "\n")
		line := "Error: " + msg
		if d.Token.Line > 0 {
			line += fmt.Sprintf(" at line %d:%d", d.Token.Line, d.Token.Column)
		}
		fmt.Fprintln(out, red(line))
		if trace != "" {
			fmt.Fprintln(out, trace)
		}
	}
}
