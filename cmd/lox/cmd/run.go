package cmd

import (
	"context"
	"os"

	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/interp"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/parser"
	"github.com/loxrun/lox/internal/resolver"
	"github.com/spf13/cobra"
)

var runExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox program",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  lox run script.lox
  lox run -e "print \"hi\";"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runExpr, "eval", "e", "", "run inline source instead of reading a file")
}

func runProgram(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args, runExpr)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		cmd.Printf("Running: %s\n", filename)
	}

	sink := diagnostics.NewCollectingSink()
	tokens := lexer.New(source, lexer.WithSink(sink)).Scan()
	stmts := parser.New(tokens, sink).Parse()
	if sink.HadError() {
		sink.WriteTo(os.Stderr)
		os.Exit(65)
	}

	locals := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		sink.WriteTo(os.Stderr)
		os.Exit(65)
	}
	sink.WriteTo(os.Stderr) // non-fatal hints (e.g. unused variable) collected so far

	in := interp.New(os.Stdout, locals)
	if err := in.Interpret(context.Background(), stmts); err != nil {
		if rerr, ok := err.(*diagnostics.RuntimeError); ok {
			rerr.WriteTo(os.Stderr)
			os.Exit(70)
		}
		exitCLIError(70, "%v", err)
	}
	return nil
}
