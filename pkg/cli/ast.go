package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/funvibe/ollang/internal/parser"
	"github.com/funvibe/ollang/internal/prettyprinter"
)

func (a *app) newASTCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			program, err := parser.ParseSource(string(data), args[0], a.settings.Lexer.Strict)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), red(err.Error()))
				return errScriptFailed
			}

			out := cmd.OutOrStdout()
			switch format {
			case "tree":
				fmt.Fprintln(out, prettyprinter.Tree(program))
			case "code":
				fmt.Fprint(out, prettyprinter.Print(program))
			case "repr":
				fmt.Fprintln(out, repr.String(program, repr.Indent("  "), repr.OmitEmpty(true)))
			default:
				return fmt.Errorf("unknown format %q (want tree, code or repr)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format: tree, code or repr")
	return cmd
}
