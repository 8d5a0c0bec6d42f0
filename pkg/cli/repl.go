package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/funvibe/ollang/internal/config"
	"github.com/funvibe/ollang/internal/evaluator"
)

const historyFile = ".ollang_history"

// prompter reads REPL lines. *linerPrompter is the terminal one.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

type linerPrompter struct {
	state   *liner.State
	history string
}

func newLinerPrompter() *linerPrompter {
	p := &linerPrompter{state: liner.NewLiner()}
	p.state.SetCtrlCAborts(true)
	if home, err := os.UserHomeDir(); err == nil {
		p.history = filepath.Join(home, historyFile)
		if f, err := os.Open(p.history); err == nil {
			_, _ = p.state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return p
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	return p.state.Prompt(prompt)
}

func (p *linerPrompter) AppendHistory(line string) {
	p.state.AppendHistory(line)
}

func (p *linerPrompter) Close() error {
	if p.history != "" {
		if f, err := os.Create(p.history); err == nil {
			_, _ = p.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.state.Close()
}

func (a *app) newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd, newLinerPrompter())
		},
	}
}

// repl evaluates one line at a time on a single interpreter, so bindings,
// imports and allocations carry over. Non-null results are echoed.
func (a *app) repl(cmd *cobra.Command, p prompter) error {
	defer p.Close()
	in := a.newInterpreter(cmd)
	defer in.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.CyanString("OLLang %s", config.Version)+" (type exit to quit)")

	for {
		line, err := p.Prompt("ollang> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if code == "exit" {
			return nil
		}
		p.AppendHistory(line)

		result, err := a.execute(cmd, in, code, "")
		if err == errScriptFailed {
			continue
		}
		if err != nil {
			return err
		}
		if result != nil && result.Type() != evaluator.NULL_OBJ {
			fmt.Fprintln(out, result.Inspect())
		}
	}
}
