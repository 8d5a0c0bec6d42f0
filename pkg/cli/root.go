// Package cli implements the ollang command line.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"

	"github.com/funvibe/ollang/internal/config"
	ollang "github.com/funvibe/ollang/pkg/embed"
)

// app holds what the commands share: the viper instance the flags are
// bound to and the options read before any command runs.
type app struct {
	v          *viper.Viper
	configPath string
	debug      bool
	noColor    bool
	code       string

	settings *config.Settings
	log      zerolog.Logger
}

// NewRootCommand builds the command tree. Each call gets its own viper
// instance, so trees do not share state.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{v: viper.New()}
	defaults := config.DefaultSettings()

	root := &cobra.Command{
		Use:           "ollang [file]",
		Short:         "OLLang scripting language interpreter",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.runRoot,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.SettingsFileName+" if present)")
	flags.String("log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	flags.StringSlice("import-path", nil, "extra directory searched for imports")
	flags.Bool("strict", defaults.Lexer.Strict, "reject unknown characters instead of skipping them")
	flags.Int("max-memory", defaults.Sandbox.MaxBytes, "sandbox allocation budget in bytes")
	flags.Bool("allow-syscalls", defaults.Sandbox.AllowSyscalls, "enable the syscall table")
	flags.Bool("allow-native", defaults.Sandbox.AllowNative, "enable ImportDLL")
	flags.Int("max-depth", defaults.Eval.MaxDepth, "maximum evaluation depth")
	flags.BoolVar(&a.debug, "debug", false, "print Go stack traces for internal failures")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.Flags().StringVarP(&a.code, "eval", "e", "", "code to evaluate")

	if err := bindSettings(a.v, root); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.newRunCommand(),
		a.newEvalCommand(),
		a.newReplCommand(),
		a.newASTCommand(),
		newVersionCommand(),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stderr) {
		color.NoColor = true
	}
	s, err := loadSettings(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.settings = s

	log, err := newLogger(s.LogLevel, cmd.ErrOrStderr(), color.NoColor)
	if err != nil {
		return err
	}
	a.log = log
	a.log.Debug().Str("config", a.v.ConfigFileUsed()).Msg("settings loaded")
	return nil
}

// newInterpreter wires an interpreter to the command's streams.
func (a *app) newInterpreter(cmd *cobra.Command) *ollang.Interpreter {
	in := ollang.NewWithSettings(a.settings)
	in.SetLogger(a.log)
	in.SetOutput(cmd.OutOrStdout())
	e := in.Evaluator()
	e.Out = cmd.OutOrStdout()
	e.In = bufio.NewReader(cmd.InOrStdin())
	return in
}

// runRoot runs -e code, a file, the REPL on a terminal, or a script
// piped on stdin, in that order.
func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case cmd.Flags().Changed("eval"):
		return a.runSource(cmd, a.code, "")
	case len(args) == 1:
		return a.runFile(cmd, args[0])
	case isTerminalIO(cmd):
		return a.repl(cmd, newLinerPrompter())
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return a.runSource(cmd, string(data), "")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the interpreter version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ollang "+config.Version)
		},
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isTerminalIO reports whether the command talks to a terminal on both
// ends. Redirected streams in tests are never terminals.
func isTerminalIO(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isTerminal(in) && isTerminal(out)
}

// Execute runs the command line and exits the process with its status.
// Panics during a script run surface as R002 diagnostics; any other
// panic is reported here, with the Go stack under --debug.
func Execute() {
	root, a := newRootCommand()
	errOut := root.ErrOrStderr()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(errOut, red(fmt.Sprintf("Fatal Error: %v", r)))
			if a.debug {
				errOut.Write(debug.Stack())
			}
			os.Exit(2)
		}
	}()

	err := root.Execute()
	if err != nil {
		var exit *exitError
		if !errors.As(err, &exit) {
			if a.debug {
				tracerr.PrintSourceColor(err)
			} else {
				fmt.Fprintln(errOut, red(err.Error()))
			}
		}
	}
	os.Exit(ExitCode(err))
}

func red(s string) string {
	return color.New(color.FgRed).Sprint(s)
}
